package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/famly-backend/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// UserRepository persists users keyed by a unique email.
// Create must return domain.ErrUserAlreadyExists when the email is taken,
// including when a concurrent Create for the same email wins the race.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Ping(ctx context.Context) error
}
