package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails verification.
var ErrInvalidToken = errors.New("invalid access token")

// Claims is the payload carried by admin access tokens.
type Claims struct {
	// UserID is the internal id of the authenticated user.
	UserID string `json:"id"`
	// Username is the login name of the authenticated user.
	Username string `json:"username"`
	// Email is the email of the authenticated user.
	Email string `json:"email"`
	// Role is the user's role (e.g., admin).
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SignAccessToken creates a signed JWT for the given user claims.
func SignAccessToken(secret string, claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken parses and validates a signed JWT, returning its claims.
func VerifyAccessToken(secret string, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
