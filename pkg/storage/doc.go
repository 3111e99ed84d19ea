// Package storage provides the persistence backends for users and todos.
//
// Three backends implement the combined Store interface: an in-memory
// store for tests and local development, and a database/sql store with
// sqlite and postgres dialects. Email uniqueness is enforced by a unique
// index and surfaced as users.ErrDuplicateEmail; the todo ownership filter
// is part of every single-document query predicate.
package storage
