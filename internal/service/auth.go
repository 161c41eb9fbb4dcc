package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
	"atelier-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	users    repository.UserRepository
	tokens   security.TokenManager
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, tokens security.TokenManager, tokenTTL time.Duration) AuthService {
	return &authService{users: users, tokens: tokens, tokenTTL: tokenTTL}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("look up user: %w", err)
	}
	if !user.IsActive {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(user, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

func (s *authService) CreateUser(ctx context.Context, scope domain.CallerScope, user *domain.User, password string) error {
	// Only the general manager provisions staff accounts.
	if !scope.Unscoped() {
		return domain.ErrUnauthorized
	}
	if user.Email == "" {
		return domain.NewValidationError("email", "must not be empty")
	}
	if len(password) < 8 {
		return domain.NewValidationError("password", "must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.PasswordHash = string(hash)
	user.IsActive = true
	return s.users.Create(ctx, user)
}
