package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens() TokenService {
	return TokenService{Secret: []byte("b8a3c2267dc85f855dea9b46b452bf20"), Issuer: "coursetrack", TTL: 7 * 24 * time.Hour}
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	tokens := newTestTokens()

	token, exp, err := tokens.Issue("user-1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, 5*time.Second)

	subject, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestTokenService_ValidUntilExpiry(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	current := issuedAt
	tokens := newTestTokens()
	tokens.Now = func() time.Time { return current }

	token, _, err := tokens.Issue("user-1")
	require.NoError(t, err)

	current = issuedAt.Add(7*24*time.Hour - time.Minute)
	subject, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)

	current = issuedAt.Add(7*24*time.Hour + time.Second)
	_, err = tokens.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsInvalidTokens(t *testing.T) {
	tokens := newTestTokens()
	now := time.Now()

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
		signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return signed
	}
	valid := jwt.RegisteredClaims{
		Issuer:    "coursetrack",
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	otherSecret := TokenService{Secret: []byte("other"), Issuer: "coursetrack", TTL: time.Hour}
	forged, _, err := otherSecret.Issue("user-1")
	require.NoError(t, err)

	tests := map[string]string{
		"empty":           "",
		"garbage":         "not-a-token",
		"bad signature":   forged,
		"wrong algorithm": sign(jwt.SigningMethodHS512, tokens.Secret, valid),
		"unsigned":        sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid),
		"missing subject": sign(jwt.SigningMethodHS256, tokens.Secret, jwt.RegisteredClaims{Issuer: "coursetrack", ExpiresAt: valid.ExpiresAt}),
		"missing expiry":  sign(jwt.SigningMethodHS256, tokens.Secret, jwt.RegisteredClaims{Issuer: "coursetrack", Subject: "user-1"}),
		"other issuer":    sign(jwt.SigningMethodHS256, tokens.Secret, jwt.RegisteredClaims{Issuer: "elsewhere", Subject: "user-1", ExpiresAt: valid.ExpiresAt}),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			subject, err := tokens.Validate(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, subject)
		})
	}
}
