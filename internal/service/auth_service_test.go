package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reuse/internal/auth"
	errs "reuse/internal/errors"
	"reuse/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*model.User, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			input: RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "Abcdef1!"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "email already registered",
			input: RegisterInput{Name: "Ana", Email: "existing@x.com", Password: "Abcdef1!"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@x.com").Return(&model.User{Email: "existing@x.com"}, nil)
			},
			expectedError: errs.ErrEmailTaken,
		},
		{
			name:  "duplicate key lost race surfaces as conflict",
			input: RegisterInput{Name: "Ana", Email: "racer@x.com", Password: "Abcdef1!"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "racer@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errs.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			tokens := auth.NewTokenService("test-secret")
			svc := NewAuthService(mockRepo, tokens, bcrypt.MinCost)

			token, user, err := svc.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, tt.input.Name, user.Name)
				assert.Equal(t, 1, user.Level)

				// Stored password is a verifiable hash, never the secret
				assert.NotEqual(t, tt.input.Password, user.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(tt.input.Password)))

				claims, err := tokens.Verify(token)
				require.NoError(t, err)
				assert.Equal(t, user.Email, claims.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Abcdef1!"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "ana@x.com",
			password: "Abcdef1!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@x.com").Return(&model.User{
					ID:       7,
					Email:    "ana@x.com",
					Password: string(hashed),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "Abcdef1!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errs.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "ana@x.com",
			password: "Wrong1!pass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@x.com").Return(&model.User{
					ID:       7,
					Email:    "ana@x.com",
					Password: string(hashed),
				}, nil)
			},
			expectedError: errs.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			tokens := auth.NewTokenService("test-secret")
			svc := NewAuthService(mockRepo, tokens, bcrypt.MinCost)

			token, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				// Unknown email and wrong password are indistinguishable
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)

				claims, err := tokens.Verify(token)
				require.NoError(t, err)
				assert.Equal(t, uint(7), claims.UserID)
				assert.Equal(t, "ana@x.com", claims.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
