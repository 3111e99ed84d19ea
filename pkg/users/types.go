package users

import (
	"context"
	"errors"
	"time"
)

// Errors returned by the account service and its storage backends.
var (
	// ErrNotFound means no user matches the given id or email.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail means the email is already registered. Uniqueness
	// is enforced by the storage layer's unique index.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrInvalidEmail means the email is missing or not syntactically valid.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWeakPassword means the plaintext password is shorter than MinPasswordLength.
	ErrWeakPassword = errors.New("password too short")
	// ErrInvalidCredentials means the email/password pair does not match a user.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidProperties means the signup payload contains fields outside
	// the {email, password} whitelist.
	ErrInvalidProperties = errors.New("invalid properties")
)

// MinPasswordLength is the minimum plaintext password length at signup.
const MinPasswordLength = 6

// Token is a session token stored on a user. Tokens are owned exclusively
// by their user and are added and removed as a unit.
type Token struct {
	Access string `json:"access"`
	Token  string `json:"token"`
}

// User is a registered account. The password hash and token set are never
// serialized in responses.
type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Tokens       []Token   `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store is the persistence interface for user accounts.
type Store interface {
	// CreateUser inserts a new user. Returns ErrDuplicateEmail when the
	// email unique index is violated.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByEmail returns the user with the given email, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID returns the user with the given id, or ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// AddToken appends a session token to the user's token set.
	AddToken(ctx context.Context, userID string, token Token) error

	// RemoveToken removes exactly the matching token. Removing a token
	// that is not present is not an error.
	RemoveToken(ctx context.Context, userID, token string) error
}
