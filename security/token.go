// Package security contains everything related to the security of user data
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL bounds how long a stolen token stays usable
const DefaultTokenTTL = time.Hour

// Claims is the identity a verified token proves. Verification only
// proves integrity and freshness, the subject may have been deleted since
// issuance and downstream lookups handle that case
type Claims struct {
	UserID string
	Email  string
}

// Tokens issues and verifies signed bearer tokens. Stateless, nothing is
// persisted
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

func (t *Tokens) Issue(userID, email string) (string, error) {
	now := time.Now()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	})

	return tok.SignedString(t.secret)
}

// Verify checks the signature and expiry of a raw token and returns the
// embedded identity
func (t *Tokens) Verify(raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", tok.Method.Alg())
		}

		return t.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)

	return Claims{UserID: userID, Email: email}, nil
}
