package todos

import (
	"context"
	"errors"
)

// Errors returned by the todo service and its storage backends.
var (
	// ErrNotFound means no todo matches the id for the requesting owner.
	// A todo owned by someone else produces the same error: ownership
	// mismatch and nonexistence are deliberately indistinguishable.
	ErrNotFound = errors.New("todo not found")
	// ErrInvalidID means the id is not a well-formed identifier.
	ErrInvalidID = errors.New("invalid todo id")
	// ErrInvalidProperties means a patch payload contains fields outside
	// the {text, completed} whitelist.
	ErrInvalidProperties = errors.New("invalid properties")
	// ErrMissingText means the todo text is empty.
	ErrMissingText = errors.New("text is required")
)

// Todo is a single todo item. CreatorID is set once at creation and is
// immutable thereafter. CompletedAt is unix milliseconds, present only
// while the todo is completed.
type Todo struct {
	ID          string `json:"_id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	CreatorID   string `json:"_creator"`
}

// Patch is a sanitized partial update. A present Completed also carries
// the derived CompletedAt: a timestamp when completing, nil when clearing.
type Patch struct {
	Text        *string
	Completed   *bool
	CompletedAt *int64
}

// OwnedRef identifies a todo together with its requesting owner. Every
// single-document read, update, and delete goes through it so the
// ownership filter cannot be forgotten per operation.
type OwnedRef struct {
	ID        string
	CreatorID string
}

// Store is the persistence interface for todos.
type Store interface {
	// CreateTodo inserts a new todo.
	CreateTodo(ctx context.Context, todo *Todo) error

	// ListTodos returns all todos owned by the creator. Order is not
	// guaranteed.
	ListTodos(ctx context.Context, creatorID string) ([]*Todo, error)

	// GetTodo returns the todo matching id and owner, or ErrNotFound.
	GetTodo(ctx context.Context, ref OwnedRef) (*Todo, error)

	// DeleteTodo removes the todo matching id and owner and returns the
	// prior document, or ErrNotFound.
	DeleteTodo(ctx context.Context, ref OwnedRef) (*Todo, error)

	// UpdateTodo applies a sanitized patch to the todo matching id and
	// owner and returns the updated document, or ErrNotFound.
	UpdateTodo(ctx context.Context, ref OwnedRef, patch *Patch) (*Todo, error)
}
