package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "reuse/internal/errors"
)

func TestTokenService_GenerateAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Generate(42, "ana@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_Verify_Failures(t *testing.T) {
	svc := NewTokenService("test-secret")

	valid, err := svc.Generate(1, "user@example.com")
	require.NoError(t, err)

	expired := func() string {
		claims := &Claims{
			UserID: 1,
			Email:  "user@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return token
	}()

	otherSecret, err := NewTokenService("another-secret").Generate(1, "user@example.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed token", token: "not-a-jwt"},
		{name: "empty token", token: ""},
		{name: "tampered signature", token: valid[:len(valid)-2] + "xx"},
		{name: "expired token", token: expired},
		{name: "wrong secret", token: otherSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, errs.ErrInvalidToken)
		})
	}
}
