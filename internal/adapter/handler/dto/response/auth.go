package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/famly-backend/internal/domain"
	"github.com/marcos-nsantos/famly-backend/internal/domain/entity"
)

// AuthResponse carries the outcome of register and login. Token fields are
// only present when token issuance is enabled.
type AuthResponse struct {
	Message     domain.Outcome `json:"message"`
	AccessToken string         `json:"access_token,omitempty"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
}

func Outcome(o domain.Outcome) AuthResponse {
	return AuthResponse{Message: o}
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func UserFromEntity(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type HealthResponse struct {
	Status string `json:"status"`
}
