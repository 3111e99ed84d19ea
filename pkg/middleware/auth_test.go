package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/todos/pkg/auth"
	"github.com/platinummonkey/todos/pkg/middleware"
	"github.com/platinummonkey/todos/pkg/storage"
	"github.com/platinummonkey/todos/pkg/users"
)

func newGuard(t *testing.T) (*middleware.AuthMiddleware, *storage.MemoryStore, *auth.TokenService) {
	t.Helper()
	store := storage.NewMemoryStore()
	tokens := auth.NewTokenService([]byte("guard-secret"))
	return middleware.NewAuthMiddleware(tokens, store, nil), store, tokens
}

// seedUser stores a user together with an issued token, the state a
// successful signup or login leaves behind.
func seedUser(t *testing.T, store *storage.MemoryStore, tokens *auth.TokenService, id, email string) string {
	t.Helper()
	token, err := tokens.Issue(id)
	require.NoError(t, err)
	err = store.CreateUser(context.Background(), &users.User{
		ID:     id,
		Email:  email,
		Tokens: []users.Token{{Access: auth.AccessAuth, Token: token}},
	})
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	guard, store, tokens := newGuard(t)
	token := seedUser(t, store, tokens, "user-1", "user1@example.com")

	var gotSession *users.Session
	handler := guard.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = users.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	otherService := auth.NewTokenService([]byte("other-secret"))
	forged, err := otherService.Issue("user-1")
	require.NoError(t, err)

	// Signed for a user that was never stored.
	orphan, err := tokens.Issue("no-such-user")
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{"valid token", token, http.StatusOK},
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "not.a.jwt", http.StatusUnauthorized},
		{"forged signature", forged, http.StatusUnauthorized},
		{"unknown user", orphan, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSession = nil
			req := httptest.NewRequest("GET", "/todos", nil)
			if tt.token != "" {
				req.Header.Set(auth.TokenHeader, tt.token)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				require.NotNil(t, gotSession)
				assert.Equal(t, "user-1", gotSession.User.ID)
				assert.Equal(t, tt.token, gotSession.Token)
			} else {
				assert.Nil(t, gotSession)
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

// failingStore simulates a storage outage on the guard's user lookup.
type failingStore struct {
	users.Store
}

func (failingStore) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	return nil, errors.New("connection refused")
}

func TestAuthMiddleware_StorageFailureIsNotARejection(t *testing.T) {
	tokens := auth.NewTokenService([]byte("guard-secret"))
	guard := middleware.NewAuthMiddleware(tokens, failingStore{}, nil)

	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	handler := guard.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/todos", nil)
	req.Header.Set(auth.TokenHeader, token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// An unreachable backend must not masquerade as a revoked token.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"errors":["INTERNAL_ERROR"]}`, rec.Body.String())
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	guard, store, tokens := newGuard(t)
	token := seedUser(t, store, tokens, "user-1", "user1@example.com")

	handler := guard.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/todos", nil)
	req.Header.Set(auth.TokenHeader, token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Logout removes the token from the stored set; the signature is still
	// valid but the guard no longer accepts it.
	require.NoError(t, store.RemoveToken(context.Background(), "user-1", token))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Body.String())
}
