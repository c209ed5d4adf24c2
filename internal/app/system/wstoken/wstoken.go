// internal/app/system/wstoken/wstoken.go
// Package wstoken mints and verifies the short-lived tokens used to
// authenticate websocket upgrades. Browsers cannot attach the session
// cookie to a cross-origin upgrade, so the client first calls the
// ws-token endpoint (cookie-authenticated) and passes the token as a
// query parameter on the upgrade request.
package wstoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is deliberately short: the token is minted immediately before the
// upgrade and has no other use.
const TTL = 5 * time.Minute

var ErrInvalid = errors.New("invalid websocket token")

// Issuer signs and verifies HS256 tokens carrying a user id.
type Issuer struct {
	key []byte
}

// NewIssuer creates an Issuer with the given signing key.
func NewIssuer(key string) (*Issuer, error) {
	if len(key) < 32 {
		return nil, fmt.Errorf("ws token key too short; provide at least 32 random chars")
	}
	return &Issuer{key: []byte(key)}, nil
}

// Mint returns a signed token for the user, valid for TTL.
func (i *Issuer) Mint(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
}

// Verify parses a token and returns the user id it was minted for.
func (i *Issuer) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return i.key, nil
		})
	if err != nil || !parsed.Valid {
		return "", ErrInvalid
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}
