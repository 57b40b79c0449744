package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/famly-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/famly-backend/internal/domain"
	"github.com/marcos-nsantos/famly-backend/internal/domain/entity"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/auth"
)

// TokenIssuer issues access tokens on successful login. A nil issuer disables tokens.
type TokenIssuer interface {
	IssueAccessToken(userID uuid.UUID, email string) (string, time.Time, error)
}

type Service struct {
	userRepo       repository.UserRepository
	passwordHasher *auth.PasswordHasher
	tokenIssuer    TokenIssuer
}

func NewService(
	userRepo repository.UserRepository,
	passwordHasher *auth.PasswordHasher,
	tokenIssuer TokenIssuer,
) *Service {
	return &Service{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		tokenIssuer:    tokenIssuer,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

func (in RegisterInput) valid() bool {
	return in.Email != "" && strings.TrimSpace(in.Password) != ""
}

// Register creates a user. It returns domain.ErrInvalidInput or
// domain.ErrUserAlreadyExists for the expected rejections, checked in that order.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if !input.valid() {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	// The store's uniqueness check is authoritative; a concurrent registration
	// that passed ExistsByEmail still fails here.
	user := entity.NewUser(input.Email, hash)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User        *entity.User
	AccessToken string
	ExpiresAt   time.Time
}

// Login verifies credentials. Unknown email and wrong password both yield
// domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = s.passwordHasher.CompareDummy(input.Password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if err := s.passwordHasher.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	result := &LoginResult{User: user}
	if s.tokenIssuer == nil {
		return result, nil
	}

	token, expiresAt, err := s.tokenIssuer.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issuing access token: %w", err)
	}
	result.AccessToken = token
	result.ExpiresAt = expiresAt

	return result, nil
}

func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}
