package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("token inválido o expirado")

// TokenClaims is what a verified credential carries: the subject as issued
// (numeric user ID for current tokens, an email for tokens issued before the
// encoding change) and an optional action tag such as "reset_password".
type TokenClaims struct {
	Subject string
	Action  string
}

// NewAccessToken builds and signs an HS256 token for a subject. The action
// tag is omitted from the claims when empty.
func NewAccessToken(secret, subject, action string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	if action != "" {
		claims["action"] = action
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAccessToken verifies a token and extracts its claims. Expired,
// malformed, or wrongly signed tokens all map to ErrInvalidToken; callers do
// not distinguish further.
func ParseAccessToken(secret, tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrInvalidToken
	}

	action, _ := claims["action"].(string)

	return &TokenClaims{Subject: sub, Action: action}, nil
}
