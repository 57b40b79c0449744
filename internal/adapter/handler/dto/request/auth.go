package request

// Fields are validated by the auth service, not by binding tags, so the
// validation order of the register flow stays in one place.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
