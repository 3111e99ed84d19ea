package storage

import (
	"context"
	"sync"

	"github.com/platinummonkey/todos/pkg/todos"
	"github.com/platinummonkey/todos/pkg/users"
)

// MemoryStore is an in-memory Store for tests and local development. All
// operations copy documents on the way in and out so callers never share
// state with the store.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]*users.User
	usersByEmail map[string]string
	todos        map[string]*todos.Todo
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]*users.User),
		usersByEmail: make(map[string]string),
		todos:        make(map[string]*todos.Todo),
	}
}

// CreateUser inserts a new user, enforcing email uniqueness
func (m *MemoryStore) CreateUser(ctx context.Context, user *users.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.usersByEmail[user.Email]; exists {
		return users.ErrDuplicateEmail
	}
	m.users[user.ID] = copyUser(user)
	m.usersByEmail[user.Email] = user.ID
	return nil
}

// GetUserByEmail returns the user with the given email
func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usersByEmail[email]
	if !ok {
		return nil, users.ErrNotFound
	}
	return copyUser(m.users[id]), nil
}

// GetUserByID returns the user with the given id
func (m *MemoryStore) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return copyUser(user), nil
}

// AddToken appends a session token to the user's token set
func (m *MemoryStore) AddToken(ctx context.Context, userID string, token users.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return users.ErrNotFound
	}
	user.Tokens = append(user.Tokens, token)
	return nil
}

// RemoveToken removes exactly the matching token; idempotent
func (m *MemoryStore) RemoveToken(ctx context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return users.ErrNotFound
	}
	kept := user.Tokens[:0]
	for _, t := range user.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	user.Tokens = kept
	return nil
}

// CreateTodo inserts a new todo
func (m *MemoryStore) CreateTodo(ctx context.Context, todo *todos.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.todos[todo.ID] = copyTodo(todo)
	return nil
}

// ListTodos returns all todos owned by the creator
func (m *MemoryStore) ListTodos(ctx context.Context, creatorID string) ([]*todos.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var list []*todos.Todo
	for _, todo := range m.todos {
		if todo.CreatorID == creatorID {
			list = append(list, copyTodo(todo))
		}
	}
	return list, nil
}

// GetTodo returns the todo matching id and owner
func (m *MemoryStore) GetTodo(ctx context.Context, ref todos.OwnedRef) (*todos.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	todo, err := m.findOwned(ref)
	if err != nil {
		return nil, err
	}
	return copyTodo(todo), nil
}

// DeleteTodo removes the todo matching id and owner, returning the prior
// document
func (m *MemoryStore) DeleteTodo(ctx context.Context, ref todos.OwnedRef) (*todos.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo, err := m.findOwned(ref)
	if err != nil {
		return nil, err
	}
	delete(m.todos, ref.ID)
	return copyTodo(todo), nil
}

// UpdateTodo applies a sanitized patch to the todo matching id and owner
func (m *MemoryStore) UpdateTodo(ctx context.Context, ref todos.OwnedRef, patch *todos.Patch) (*todos.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo, err := m.findOwned(ref)
	if err != nil {
		return nil, err
	}
	if patch.Text != nil {
		todo.Text = *patch.Text
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
		todo.CompletedAt = patch.CompletedAt
	}
	return copyTodo(todo), nil
}

// findOwned applies the ownership filter; callers hold the lock. A todo
// owned by someone else yields the same ErrNotFound as a missing one.
func (m *MemoryStore) findOwned(ref todos.OwnedRef) (*todos.Todo, error) {
	todo, ok := m.todos[ref.ID]
	if !ok || todo.CreatorID != ref.CreatorID {
		return nil, todos.ErrNotFound
	}
	return todo, nil
}

// Ping always succeeds for the in-memory store
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store
func (m *MemoryStore) Close() error {
	return nil
}

func copyUser(user *users.User) *users.User {
	c := *user
	c.Tokens = append([]users.Token(nil), user.Tokens...)
	return &c
}

func copyTodo(todo *todos.Todo) *todos.Todo {
	c := *todo
	if todo.CompletedAt != nil {
		ms := *todo.CompletedAt
		c.CompletedAt = &ms
	}
	return &c
}

var _ Store = (*MemoryStore)(nil)
