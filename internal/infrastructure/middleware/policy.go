package middleware

import "strings"

type Capability string

const (
	CapabilityPublic        Capability = "public"
	CapabilityAuthenticated Capability = "authenticated"
)

// Rule grants a capability to requests whose method and route template match.
// Method "*" matches any method. A Pattern ending in "/*" matches the prefix
// and everything below it.
type Rule struct {
	Method     string
	Pattern    string
	Capability Capability
}

// Policy is an ordered rule list; the first matching rule wins.
type Policy []Rule

// DefaultPolicy keeps every current route open except the profile endpoint.
func DefaultPolicy() Policy {
	return Policy{
		{Method: "GET", Pattern: "/api/health", Capability: CapabilityPublic},
		{Method: "POST", Pattern: "/api/auth/*", Capability: CapabilityPublic},
		{Method: "GET", Pattern: "/api/auth/me", Capability: CapabilityAuthenticated},
		{Method: "*", Pattern: "/*", Capability: CapabilityPublic},
	}
}

func (p Policy) Match(method, route string) (Capability, bool) {
	for _, r := range p {
		if r.matches(method, route) {
			return r.Capability, true
		}
	}
	return "", false
}

func (r Rule) matches(method, route string) bool {
	if r.Method != "*" && !strings.EqualFold(r.Method, method) {
		return false
	}
	if prefix, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
		return route == prefix || strings.HasPrefix(route, prefix+"/")
	}
	return r.Pattern == route
}
