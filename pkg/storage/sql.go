package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/platinummonkey/todos/pkg/todos"
	"github.com/platinummonkey/todos/pkg/users"
)

// schema is applied on startup; all statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_tokens (
		user_id TEXT NOT NULL REFERENCES users(id),
		access TEXT NOT NULL,
		token TEXT NOT NULL,
		PRIMARY KEY (user_id, token)
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at BIGINT,
		creator_id TEXT NOT NULL REFERENCES users(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_creator ON todos(creator_id)`,
}

// SQLStore implements Store over database/sql with a sqlite or postgres
// backend.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// NewSQLStore wraps an open database handle with the given dialect
func NewSQLStore(db *sql.DB, d dialect) *SQLStore {
	return &SQLStore{db: db, dialect: d}
}

func openSQLite(ctx context.Context, cfg Config) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// The sqlite driver is not safe for concurrent writers on one file.
	db.SetMaxOpenConns(1)

	store := NewSQLStore(db, sqliteDialect{})
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func openPostgres(ctx context.Context, cfg Config) (*SQLStore, error) {
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(cfg.PostgresMaxConns)
	db.SetMaxIdleConns(cfg.PostgresMinConns)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PostgresTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	store := NewSQLStore(db, postgresDialect{})
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Migrate applies the schema
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user. The email unique index turns duplicate
// inserts into users.ErrDuplicateEmail.
func (s *SQLStore) CreateUser(ctx context.Context, user *users.User) error {
	query := s.dialect.rebind(`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if s.dialect.isUniqueViolation(err) {
			return users.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByEmail returns the user with the given email
func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	query := s.dialect.rebind(`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`)
	return s.scanUser(ctx, s.db.QueryRowContext(ctx, query, email))
}

// GetUserByID returns the user with the given id
func (s *SQLStore) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	query := s.dialect.rebind(`SELECT id, email, password_hash, created_at FROM users WHERE id = ?`)
	return s.scanUser(ctx, s.db.QueryRowContext(ctx, query, id))
}

func (s *SQLStore) scanUser(ctx context.Context, row *sql.Row) (*users.User, error) {
	user := &users.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, users.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	tokens, err := s.loadTokens(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Tokens = tokens
	return user, nil
}

func (s *SQLStore) loadTokens(ctx context.Context, userID string) ([]users.Token, error) {
	query := s.dialect.rebind(`SELECT access, token FROM user_tokens WHERE user_id = ?`)
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tokens: %w", err)
	}
	defer rows.Close()

	var tokens []users.Token
	for rows.Next() {
		var t users.Token
		if err := rows.Scan(&t.Access, &t.Token); err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// AddToken appends a session token to the user's token set
func (s *SQLStore) AddToken(ctx context.Context, userID string, token users.Token) error {
	query := s.dialect.rebind(`INSERT INTO user_tokens (user_id, access, token) VALUES (?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, userID, token.Access, token.Token); err != nil {
		return fmt.Errorf("failed to insert token: %w", err)
	}
	return nil
}

// RemoveToken removes exactly the matching token; idempotent
func (s *SQLStore) RemoveToken(ctx context.Context, userID, token string) error {
	query := s.dialect.rebind(`DELETE FROM user_tokens WHERE user_id = ? AND token = ?`)
	if _, err := s.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// CreateTodo inserts a new todo
func (s *SQLStore) CreateTodo(ctx context.Context, todo *todos.Todo) error {
	query := s.dialect.rebind(`INSERT INTO todos (id, text, completed, completed_at, creator_id) VALUES (?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, todo.ID, todo.Text, todo.Completed, todo.CompletedAt, todo.CreatorID)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

// ListTodos returns all todos owned by the creator
func (s *SQLStore) ListTodos(ctx context.Context, creatorID string) ([]*todos.Todo, error) {
	query := s.dialect.rebind(`SELECT id, text, completed, completed_at, creator_id FROM todos WHERE creator_id = ?`)
	rows, err := s.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	var list []*todos.Todo
	for rows.Next() {
		todo := &todos.Todo{}
		if err := rows.Scan(&todo.ID, &todo.Text, &todo.Completed, &todo.CompletedAt, &todo.CreatorID); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		list = append(list, todo)
	}
	return list, rows.Err()
}

// GetTodo returns the todo matching id and owner. Ownership is part of
// the query predicate, so another user's todo scans as no rows.
func (s *SQLStore) GetTodo(ctx context.Context, ref todos.OwnedRef) (*todos.Todo, error) {
	query := s.dialect.rebind(`SELECT id, text, completed, completed_at, creator_id FROM todos WHERE id = ? AND creator_id = ?`)
	todo := &todos.Todo{}
	err := s.db.QueryRowContext(ctx, query, ref.ID, ref.CreatorID).
		Scan(&todo.ID, &todo.Text, &todo.Completed, &todo.CompletedAt, &todo.CreatorID)
	if err == sql.ErrNoRows {
		return nil, todos.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan todo: %w", err)
	}
	return todo, nil
}

// DeleteTodo removes the todo matching id and owner, returning the prior
// document
func (s *SQLStore) DeleteTodo(ctx context.Context, ref todos.OwnedRef) (*todos.Todo, error) {
	todo, err := s.GetTodo(ctx, ref)
	if err != nil {
		return nil, err
	}

	query := s.dialect.rebind(`DELETE FROM todos WHERE id = ? AND creator_id = ?`)
	result, err := s.db.ExecContext(ctx, query, ref.ID, ref.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete todo: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return nil, todos.ErrNotFound
	}
	return todo, nil
}

// UpdateTodo applies a sanitized patch to the todo matching id and owner
// and returns the updated document
func (s *SQLStore) UpdateTodo(ctx context.Context, ref todos.OwnedRef, patch *todos.Patch) (*todos.Todo, error) {
	set := ""
	args := []interface{}{}
	if patch.Text != nil {
		set += "text = ?"
		args = append(args, *patch.Text)
	}
	if patch.Completed != nil {
		if set != "" {
			set += ", "
		}
		set += "completed = ?, completed_at = ?"
		args = append(args, *patch.Completed, patch.CompletedAt)
	}

	// An empty patch is legal and returns the document unchanged.
	if set == "" {
		return s.GetTodo(ctx, ref)
	}

	args = append(args, ref.ID, ref.CreatorID)
	query := s.dialect.rebind(`UPDATE todos SET ` + set + ` WHERE id = ? AND creator_id = ?`)
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, todos.ErrNotFound
	}

	return s.GetTodo(ctx, ref)
}

// Ping verifies the database is reachable
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLStore)(nil)
