package gateway

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"auth-bridge/app/domain"
)

const tokenIssuer = "auth-bridge"

// TokenGateway mints and verifies the JWT session tokens issued after a
// successful authentication. Implements port.TokenIssuer.
type TokenGateway struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenGateway creates a new token gateway.
func NewTokenGateway(secret string, ttl time.Duration) *TokenGateway {
	return &TokenGateway{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue generates a signed session token bound to the username.
func (g *TokenGateway) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Verify parses and validates a session token and returns the bound
// username.
func (g *TokenGateway) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrSessionExpired
		}
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}

	return claims.Subject, nil
}
