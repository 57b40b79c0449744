package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcos-nsantos/famly-backend/internal/pkg/httputil"
)

const BearerPrefix = "Bearer "

type TokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, error)
}

type AuthMiddleware struct {
	validator TokenValidator
	policy    Policy
}

// NewAuthMiddleware builds the route guard. With a nil validator every
// authenticated route answers 401.
func NewAuthMiddleware(validator TokenValidator, policy Policy) *AuthMiddleware {
	return &AuthMiddleware{validator: validator, policy: policy}
}

// Authorize looks up the matched route in the policy. Requests that match no
// route at all fall through to gin's 404 handling.
func (m *AuthMiddleware) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}

		capability, ok := m.policy.Match(c.Request.Method, route)
		if !ok {
			httputil.ErrorWithCode(c, http.StatusForbidden, "FORBIDDEN", "route not permitted")
			c.Abort()
			return
		}

		if capability == CapabilityAuthenticated {
			m.authenticate(c)
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) {
	if m.validator == nil {
		httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication unavailable")
		c.Abort()
		return
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "authorization header required")
		c.Abort()
		return
	}

	if !strings.HasPrefix(authHeader, BearerPrefix) {
		httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization format")
		c.Abort()
		return
	}

	userID, err := m.validator.ValidateAccessToken(strings.TrimPrefix(authHeader, BearerPrefix))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
		c.Abort()
		return
	}

	c.Set(httputil.UserIDKey, userID)
	c.Next()
}
