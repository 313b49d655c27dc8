// File: /services/token_service.go
package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"friendloop-api/models"
)

// AuthClaims is the decoded identity carried by a signed token.
type AuthClaims struct {
	UserID   string
	Email    string
	Username string
}

// TokenService signs and verifies the opaque credentials used by both the
// HTTP layer and the websocket handshake.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Sign issues a token for the user.
func (t *TokenService) Sign(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"username": user.Username,
		"exp":      time.Now().Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", UnavailableError("failed to sign token", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the decoded identity.
// Any failure surfaces as a KindInvalidToken error.
func (t *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, InvalidTokenError("invalid token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, InvalidTokenError("invalid token claims", nil)
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, InvalidTokenError("token missing user identity", nil)
	}

	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)

	return &AuthClaims{UserID: userID, Email: email, Username: username}, nil
}
