package users

import (
	"context"

	"github.com/platinummonkey/todos/pkg/contextkeys"
)

// Session is the resolved identity the authentication guard attaches to a
// request. Token is the exact token presented on this request; logout uses
// it to revoke the current session and no others.
type Session struct {
	User  *User
	Token string
}

// SessionFromContext extracts the authenticated session. Returns nil for
// requests that did not pass through the guard.
func SessionFromContext(ctx context.Context) *Session {
	session, ok := ctx.Value(contextkeys.SessionKey).(*Session)
	if !ok {
		return nil
	}
	return session
}
