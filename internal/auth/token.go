package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NewToken signs an HS256 token carrying the owner identity and display
// name, expiring after ttl.
func NewToken(secret []byte, owner, name string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"email": owner,
		"name":  name,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a signed token and returns the identity it carries.
func ParseToken(secret []byte, raw string) (AuthContext, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return AuthContext{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return AuthContext{}, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	owner, _ := claims["email"].(string)
	if owner == "" {
		return AuthContext{}, fmt.Errorf("token missing email claim")
	}
	name, _ := claims["name"].(string)
	return AuthContext{Owner: owner, Name: name}, nil
}
