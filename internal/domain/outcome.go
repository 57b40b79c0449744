package domain

// Outcome is the fixed-vocabulary result of an auth operation as seen by clients.
type Outcome string

const (
	OutcomeRegistered         Outcome = "registered"
	OutcomeInvalidInput       Outcome = "invalid_input"
	OutcomeEmailExists        Outcome = "email_exists"
	OutcomeLoginOK            Outcome = "login_ok"
	OutcomeInvalidCredentials Outcome = "invalid_credentials"
)

func (o Outcome) String() string {
	return string(o)
}
