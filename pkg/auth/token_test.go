package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	service := NewTokenService([]byte("test-secret"))

	token, err := service.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, AccessAuth, claims.Access)
}

func TestTokenService_TokensAreUnique(t *testing.T) {
	service := NewTokenService([]byte("test-secret"))

	// Back-to-back issuance lands in the same second; iat alone would
	// produce identical tokens. The jti claim keeps them distinct.
	first, err := service.Issue("user-1")
	require.NoError(t, err)
	second, err := service.Issue("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	claims, err := service.Verify(first)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenService_NoExpiry(t *testing.T) {
	service := NewTokenService([]byte("test-secret"))

	token, err := service.Issue("user-1")
	require.NoError(t, err)

	claims, err := service.Verify(token)
	require.NoError(t, err)
	// Tokens are valid until revoked; they carry no exp claim.
	assert.Nil(t, claims.ExpiresAt)
}

func TestTokenService_RejectsForgedToken(t *testing.T) {
	service := NewTokenService([]byte("test-secret"))
	forger := NewTokenService([]byte("other-secret"))

	token, err := forger.Issue("user-1")
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	service := NewTokenService([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "invalid token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenService_RejectsUnsignedAlgorithm(t *testing.T) {
	service := NewTokenService([]byte("test-secret"))

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "user-1",
		Access: AccessAuth,
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsWrongPurposeTag(t *testing.T) {
	secret := []byte("test-secret")
	service := NewTokenService(secret)

	wrongAccess := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "user-1",
		Access: "reset",
	})
	token, err := wrongAccess.SignedString(secret)
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
