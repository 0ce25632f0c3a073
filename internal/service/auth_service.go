package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reuse/internal/auth"
	errs "reuse/internal/errors"
	"reuse/internal/model"
	"reuse/internal/repository"
)

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	City     *string
	Age      *int
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (token string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	users      repository.UserRepository
	tokens     *auth.TokenService
	bcryptCost int
}

// NewAuthService creates a new authentication service. cost is the bcrypt
// work factor (operational parameter, 10 in the default config).
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, cost int) AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &authService{users: users, tokens: tokens, bcryptCost: cost}
}

// Register creates a user with a hashed password and issues a token.
// The email existence probe races with concurrent registrations; the
// unique index is the backstop and the loser gets the same conflict error.
func (s *authService) Register(ctx context.Context, input RegisterInput) (string, *model.User, error) {
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return "", nil, errs.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		City:     input.City,
		Age:      input.Age,
		Level:    1,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", nil, errs.ErrEmailTaken
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same error.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errs.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errs.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}
