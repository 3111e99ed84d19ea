// Package middleware provides the HTTP middleware chain: the
// authentication guard plus request id, access logging, metrics, and
// panic recovery.
//
// # Authentication guard
//
// AuthMiddleware resolves the x-auth header to a user identity in three
// stages. Signature verification is stateless and rejects forged tokens
// without a storage round trip; the membership check against the user's
// stored token set is what makes logout revoke a session. Every
// authentication failure produces the same 401 with an empty body;
// storage failures during the lookup surface as 500.
package middleware
