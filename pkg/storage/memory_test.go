package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/todos/pkg/todos"
	"github.com/platinummonkey/todos/pkg/users"
)

func TestMemoryStore_Users(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user := &users.User{ID: "user-1", Email: "user1@example.com", PasswordHash: "hash"}
	require.NoError(t, store.CreateUser(ctx, user))

	err := store.CreateUser(ctx, &users.User{ID: "user-2", Email: "user1@example.com"})
	assert.ErrorIs(t, err, users.ErrDuplicateEmail)

	byEmail, err := store.GetUserByEmail(ctx, "user1@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", byEmail.ID)

	byID, err := store.GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user1@example.com", byID.Email)

	_, err = store.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, users.ErrNotFound)
	_, err = store.GetUserByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestMemoryStore_Tokens(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &users.User{ID: "user-1", Email: "user1@example.com"}))
	require.NoError(t, store.AddToken(ctx, "user-1", users.Token{Access: "auth", Token: "tok-a"}))
	require.NoError(t, store.AddToken(ctx, "user-1", users.Token{Access: "auth", Token: "tok-b"}))

	require.NoError(t, store.RemoveToken(ctx, "user-1", "tok-a"))

	user, err := store.GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, user.Tokens, 1)
	assert.Equal(t, "tok-b", user.Tokens[0].Token)

	// Removing a token that is already gone is not an error.
	assert.NoError(t, store.RemoveToken(ctx, "user-1", "tok-a"))

	assert.ErrorIs(t, store.AddToken(ctx, "ghost", users.Token{Token: "x"}), users.ErrNotFound)
	assert.ErrorIs(t, store.RemoveToken(ctx, "ghost", "x"), users.ErrNotFound)
}

func TestMemoryStore_TodosOwnership(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	mine := &todos.Todo{ID: "todo-1", Text: "walk the dog", CreatorID: "user-1"}
	theirs := &todos.Todo{ID: "todo-2", Text: "water plants", CreatorID: "user-2"}
	require.NoError(t, store.CreateTodo(ctx, mine))
	require.NoError(t, store.CreateTodo(ctx, theirs))

	list, err := store.ListTodos(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "todo-1", list[0].ID)

	// Another user's todo is indistinguishable from a missing one.
	_, err = store.GetTodo(ctx, todos.OwnedRef{ID: "todo-2", CreatorID: "user-1"})
	assert.ErrorIs(t, err, todos.ErrNotFound)
	_, err = store.DeleteTodo(ctx, todos.OwnedRef{ID: "todo-2", CreatorID: "user-1"})
	assert.ErrorIs(t, err, todos.ErrNotFound)
	_, err = store.UpdateTodo(ctx, todos.OwnedRef{ID: "todo-2", CreatorID: "user-1"}, &todos.Patch{})
	assert.ErrorIs(t, err, todos.ErrNotFound)

	deleted, err := store.DeleteTodo(ctx, todos.OwnedRef{ID: "todo-1", CreatorID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "walk the dog", deleted.Text)

	_, err = store.GetTodo(ctx, todos.OwnedRef{ID: "todo-1", CreatorID: "user-1"})
	assert.ErrorIs(t, err, todos.ErrNotFound)
}

func TestMemoryStore_UpdateTodo(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	ref := todos.OwnedRef{ID: "todo-1", CreatorID: "user-1"}

	require.NoError(t, store.CreateTodo(ctx, &todos.Todo{ID: "todo-1", Text: "initial", CreatorID: "user-1"}))

	text := "updated"
	completed := true
	now := int64(1500000000000)
	updated, err := store.UpdateTodo(ctx, ref, &todos.Patch{Text: &text, Completed: &completed, CompletedAt: &now})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Text)
	assert.True(t, updated.Completed)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, now, *updated.CompletedAt)

	// Re-opening clears the completion timestamp.
	reopened := false
	updated, err = store.UpdateTodo(ctx, ref, &todos.Patch{Completed: &reopened})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.Nil(t, updated.CompletedAt)

	// An empty patch leaves the document unchanged.
	updated, err = store.UpdateTodo(ctx, ref, &todos.Patch{})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Text)
}

func TestMemoryStore_CopiesDocuments(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	todo := &todos.Todo{ID: "todo-1", Text: "original", CreatorID: "user-1"}
	require.NoError(t, store.CreateTodo(ctx, todo))

	// Mutating the caller's struct after insert must not affect the store.
	todo.Text = "mutated"
	got, err := store.GetTodo(ctx, todos.OwnedRef{ID: "todo-1", CreatorID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)

	// Mutating a read result must not affect the store either.
	got.Text = "mutated again"
	again, err := store.GetTodo(ctx, todos.OwnedRef{ID: "todo-1", CreatorID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "original", again.Text)
}
