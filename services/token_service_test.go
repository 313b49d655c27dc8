// File: /services/token_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"friendloop-api/models"
)

func TestTokenRoundtrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	user := &models.User{ID: "u1", Email: "u1@example.com", Username: "sam"}

	token, err := svc.Sign(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1@example.com", claims.Email)
	assert.Equal(t, "sam", claims.Username)
}

func TestVerifyGarbageToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Verify("not-a-token")
	require.Error(t, err)
	assert.Equal(t, KindInvalidToken, KindOf(err))
}

func TestVerifyWrongSecret(t *testing.T) {
	user := &models.User{ID: "u1", Email: "u1@example.com", Username: "sam"}

	token, err := NewTokenService("secret-a", time.Hour).Sign(user)
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Verify(token)
	require.Error(t, err)
	assert.Equal(t, KindInvalidToken, KindOf(err))
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)
	user := &models.User{ID: "u1", Email: "u1@example.com", Username: "sam"}

	token, err := svc.Sign(user)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.Equal(t, KindInvalidToken, KindOf(err))
}

func TestVerifyRejectsMissingUserID(t *testing.T) {
	secret := "test-secret"
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "u1@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokenService(secret, time.Hour).Verify(token)
	require.Error(t, err)
	assert.Equal(t, KindInvalidToken, KindOf(err))
}
