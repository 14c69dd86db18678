package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails signature or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// NewToken signs an HS256 token carrying only the username claim. It has no expiry.
func NewToken(secret []byte, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies tokenStr and returns its username claim.
func ParseToken(secret []byte, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return "", ErrInvalidToken
	}
	return username, nil
}

// UnverifiedUsername reads the username claim without checking the signature.
// Clients use it to display who a stored token belongs to.
func UnverifiedUsername(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return "", ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return "", ErrInvalidToken
	}
	return username, nil
}
