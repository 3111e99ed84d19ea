package todos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service provides ownership-scoped todo operations. Every read and write
// is filtered or stamped by the authenticated owner's id.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a new todo service
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// Create stamps the new todo with its creator
func (s *Service) Create(ctx context.Context, creatorID, text string) (*Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrMissingText
	}

	todo := &Todo{
		ID:        uuid.NewString(),
		Text:      text,
		CreatorID: creatorID,
	}
	if err := s.store.CreateTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// List returns all todos owned by the creator
func (s *Service) List(ctx context.Context, creatorID string) ([]*Todo, error) {
	return s.store.ListTodos(ctx, creatorID)
}

// Get returns the owned todo, ErrInvalidID for a malformed id, or
// ErrNotFound.
func (s *Service) Get(ctx context.Context, id, creatorID string) (*Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.GetTodo(ctx, OwnedRef{ID: id, CreatorID: creatorID})
}

// Delete removes the owned todo and returns the prior document
func (s *Service) Delete(ctx context.Context, id, creatorID string) (*Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.DeleteTodo(ctx, OwnedRef{ID: id, CreatorID: creatorID})
}

// Update sanitizes the raw patch payload and applies it to the owned todo.
// Payload legality is checked before the id, matching the endpoint's
// observable error precedence.
func (s *Service) Update(ctx context.Context, id, creatorID string, body []byte) (*Todo, error) {
	patch, err := SanitizePatch(body, s.now())
	if err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.UpdateTodo(ctx, OwnedRef{ID: id, CreatorID: creatorID}, patch)
}

// validateID rejects ids the storage layer could never match, before any
// query is made.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
