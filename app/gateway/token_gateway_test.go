package gateway

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-bridge/app/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenGateway_IssueAndVerify(t *testing.T) {
	gateway := NewTokenGateway(testSecret, time.Hour)

	token, err := gateway.Issue("jdoe")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := gateway.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", username)
}

func TestTokenGateway_Verify_Expired(t *testing.T) {
	gateway := NewTokenGateway(testSecret, -time.Minute)

	token, err := gateway.Issue("jdoe")
	require.NoError(t, err)

	username, err := gateway.Verify(token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Empty(t, username)
}

func TestTokenGateway_Verify_InvalidTokens(t *testing.T) {
	gateway := NewTokenGateway(testSecret, time.Hour)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "garbage token",
			token: func(t *testing.T) string {
				return "not-a-token"
			},
		},
		{
			name: "tampered signature",
			token: func(t *testing.T) string {
				token, err := gateway.Issue("jdoe")
				require.NoError(t, err)
				return token + "xx"
			},
		},
		{
			name: "wrong signing key",
			token: func(t *testing.T) string {
				other := NewTokenGateway("another-secret-another-secret-00", time.Hour)
				token, err := other.Issue("jdoe")
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				claims := jwt.RegisteredClaims{
					Issuer:    "someone-else",
					Subject:   "jdoe",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "missing subject",
			token: func(t *testing.T) string {
				claims := jwt.RegisteredClaims{
					Issuer:    tokenIssuer,
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, err := gateway.Verify(tt.token(t))
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
			assert.Empty(t, username)
		})
	}
}
