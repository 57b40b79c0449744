package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/famly-backend/internal/domain/entity"
	"github.com/marcos-nsantos/famly-backend/internal/usecase/auth"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type AuthService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error)
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// OutcomeRecorder counts auth outcomes. May be nil.
type OutcomeRecorder interface {
	RecordOutcome(outcome string)
}
