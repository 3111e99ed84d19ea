package middleware

import (
	"errors"
	"net/http"

	"github.com/platinummonkey/todos/pkg/auth"
	"github.com/platinummonkey/todos/pkg/contextkeys"
	"github.com/platinummonkey/todos/pkg/httputil"
	"github.com/platinummonkey/todos/pkg/observability"
	"github.com/platinummonkey/todos/pkg/users"
)

// AuthMiddleware is the authentication guard. A request passes through
// three stages: token presence, signature verification (stateless), and
// membership in the user's stored token set (stateful, enables logout).
// All authentication failures collapse to the same 401 with an empty
// body; a storage failure during the lookup is a 500, not a rejection.
type AuthMiddleware struct {
	tokens  *auth.TokenService
	store   users.Store
	metrics *observability.Metrics
}

// NewAuthMiddleware creates a new authentication guard
func NewAuthMiddleware(tokens *auth.TokenService, store users.Store, metrics *observability.Metrics) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:  tokens,
		store:   store,
		metrics: metrics,
	}
}

// Handler wraps an HTTP handler with authentication
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(auth.TokenHeader)
		if token == "" {
			m.reject(w, "missing_token")
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			m.reject(w, "bad_signature")
			return
		}

		user, err := m.store.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			if !errors.Is(err, users.ErrNotFound) {
				// A storage outage is not an auth decision: answer 500 so
				// callers can tell it apart from a revoked token.
				observability.FromContext(r.Context()).WithError(err).Error("auth guard storage lookup failed")
				httputil.WriteInternalError(w)
				return
			}
			m.reject(w, "unknown_user")
			return
		}

		if !hasToken(user, token) {
			// Well-formed signature but the token is not stored: this is
			// where logged-out sessions land.
			m.reject(w, "revoked")
			return
		}

		ctx := contextkeys.WithSession(r.Context(), &users.Session{User: user, Token: token})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, reason string) {
	if m.metrics != nil {
		m.metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	}
	httputil.WriteUnauthorized(w)
}

func hasToken(user *users.User, token string) bool {
	for _, t := range user.Tokens {
		if t.Access == auth.AccessAuth && t.Token == token {
			return true
		}
	}
	return false
}
