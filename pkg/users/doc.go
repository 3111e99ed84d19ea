// Package users provides user accounts: signup, login, logout, and the
// session model the authentication guard attaches to requests.
//
// A user's password is stored only as a bcrypt hash and its session tokens
// are stored as an embedded set; neither is ever serialized in responses.
// Signup and login respond with the session token in the x-auth header.
package users
