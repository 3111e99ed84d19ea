// Package auth provides credential hashing and bearer token management.
//
// # Passwords
//
// BcryptHasher stores passwords as salted bcrypt hashes with a configurable
// work factor. Plaintext passwords exist only transiently: they enter the
// hasher once at signup and are compared (never re-hashed) at login.
//
// # Tokens
//
// TokenService issues HS256-signed JWTs binding a user id to the "auth"
// purpose tag. Validity is checked in two independent stages: TokenService
// verifies the signature statelessly, and the authentication guard then
// checks membership in the user's stored token set, which is what makes
// logout revoke exactly one session.
package auth
