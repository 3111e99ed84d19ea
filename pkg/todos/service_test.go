package todos_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/todos/pkg/storage"
	"github.com/platinummonkey/todos/pkg/todos"
)

func newService(t *testing.T) (*todos.Service, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return todos.NewService(store), store
}

func TestService_CreateStampsCreator(t *testing.T) {
	service, _ := newService(t)

	todo, err := service.Create(context.Background(), "owner-a", "eat me")
	require.NoError(t, err)
	assert.Equal(t, "owner-a", todo.CreatorID)
	assert.Equal(t, "eat me", todo.Text)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)
	assert.NotEmpty(t, todo.ID)
}

func TestService_CreateRequiresText(t *testing.T) {
	service, _ := newService(t)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), "owner-a", tt.text)
			assert.ErrorIs(t, err, todos.ErrMissingText)
		})
	}
}

func TestService_OwnershipIsolation(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	mine, err := service.Create(ctx, "owner-a", "eat me")
	require.NoError(t, err)
	theirs, err := service.Create(ctx, "owner-b", "drink me")
	require.NoError(t, err)

	// Another owner's todo is indistinguishable from a missing one.
	_, err = service.Get(ctx, theirs.ID, "owner-a")
	assert.ErrorIs(t, err, todos.ErrNotFound)
	_, err = service.Delete(ctx, theirs.ID, "owner-a")
	assert.ErrorIs(t, err, todos.ErrNotFound)
	_, err = service.Update(ctx, theirs.ID, "owner-a", []byte(`{"text":"stolen"}`))
	assert.ErrorIs(t, err, todos.ErrNotFound)

	// The failed delete above must not have touched the record.
	kept, err := service.Get(ctx, theirs.ID, "owner-b")
	require.NoError(t, err)
	assert.Equal(t, "drink me", kept.Text)

	list, err := service.List(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)
}

func TestService_MalformedID(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	_, err := service.Get(ctx, "invalid id", "owner-a")
	assert.ErrorIs(t, err, todos.ErrInvalidID)
	_, err = service.Delete(ctx, "invalid id", "owner-a")
	assert.ErrorIs(t, err, todos.ErrInvalidID)
	_, err = service.Update(ctx, "invalid id", "owner-a", []byte(`{"text":"x"}`))
	assert.ErrorIs(t, err, todos.ErrInvalidID)
}

func TestService_UpdateChecksPayloadBeforeID(t *testing.T) {
	service, _ := newService(t)

	// Both the id and the payload are bad; the payload error wins.
	_, err := service.Update(context.Background(), "invalid id", "owner-a", []byte(`{"completedAt":1}`))
	assert.ErrorIs(t, err, todos.ErrInvalidProperties)
}

func TestService_UpdateCompletionLifecycle(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	todo, err := service.Create(ctx, "owner-a", "eat me")
	require.NoError(t, err)

	completed, err := service.Update(ctx, todo.ID, "owner-a", []byte(`{"completed":true}`))
	require.NoError(t, err)
	assert.True(t, completed.Completed)
	require.NotNil(t, completed.CompletedAt)

	reopened, err := service.Update(ctx, todo.ID, "owner-a", []byte(`{"completed":false}`))
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)
}

func TestService_UpdateMissing(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Update(context.Background(), uuid.NewString(), "owner-a", []byte(`{"text":"x"}`))
	assert.ErrorIs(t, err, todos.ErrNotFound)
}

func TestService_DeleteReturnsPriorDocument(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	todo, err := service.Create(ctx, "owner-a", "eat me")
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, todo.ID, "owner-a")
	require.NoError(t, err)
	assert.Equal(t, todo.ID, deleted.ID)
	assert.Equal(t, "eat me", deleted.Text)

	_, err = service.Get(ctx, todo.ID, "owner-a")
	assert.ErrorIs(t, err, todos.ErrNotFound)
}
