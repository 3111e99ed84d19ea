package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/platinummonkey/todos/pkg/auth"
)

// Service provides account operations: signup, login, and logout.
type Service struct {
	store  Store
	hasher auth.Hasher
	tokens *auth.TokenService
}

// NewService creates a new account service
func NewService(store Store, hasher auth.Hasher, tokens *auth.TokenService) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

// Signup registers a new user and issues its first session token.
//
// This is the only code path where a plaintext password exists: it is
// hashed exactly once here and the stored record never passes through the
// hasher again.
func (s *Service) Signup(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if len(password) < MinPasswordLength {
		return nil, "", ErrWeakPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("signup: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a new session token. An unknown
// email and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout removes exactly the given session token from the user. Other
// sessions issued to the same user stay valid. Idempotent.
func (s *Service) Logout(ctx context.Context, userID, token string) error {
	return s.store.RemoveToken(ctx, userID, token)
}

func (s *Service) issueToken(ctx context.Context, user *User) (string, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	record := Token{Access: auth.AccessAuth, Token: token}
	if err := s.store.AddToken(ctx, user.ID, record); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	user.Tokens = append(user.Tokens, record)
	return token, nil
}

func validateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}
