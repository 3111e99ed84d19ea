package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessAuth is the purpose tag carried by session tokens.
const AccessAuth = "auth"

// TokenHeader is the HTTP header clients use to present a session token.
// It is also set on signup and login responses.
const TokenHeader = "x-auth"

// ErrInvalidToken is returned when a token fails signature or claims
// validation. This check is purely cryptographic and never touches storage;
// revocation is enforced separately by the authentication guard.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims embedded in a session token. Tokens carry no
// expiry: they are valid until removed from the user's stored token set.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Access string `json:"access"`
}

// TokenService issues and verifies signed bearer tokens. The signing key is
// process-wide configuration, injected once at construction.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given signing key
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret}
}

// Issue produces a signed token binding the subject id and the "auth"
// purpose tag. The jti claim makes every token unique, even two issued to
// the same user within the same second; the stored token set keys on the
// full token string, so sessions must never collide.
func (s *TokenService) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Access: AccessAuth,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature and returns the embedded claims.
// Forged or malformed tokens are rejected with ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.Access != AccessAuth {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
