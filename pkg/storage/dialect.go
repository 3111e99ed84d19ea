package storage

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// dialect abstracts the differences between the supported SQL backends:
// placeholder syntax and unique-constraint violation detection.
type dialect interface {
	name() string
	// rebind converts ?-style placeholders to the backend's syntax
	rebind(query string) string
	// isUniqueViolation reports whether err is a unique-index violation
	isUniqueViolation(err error) bool
}

type sqliteDialect struct{}

func (sqliteDialect) name() string { return "sqlite" }

func (sqliteDialect) rebind(query string) string { return query }

func (sqliteDialect) isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

type postgresDialect struct{}

func (postgresDialect) name() string { return "postgres" }

// rebind numbers ?-style placeholders as $1, $2, ...
func (postgresDialect) rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// uniqueViolation is the PostgreSQL error code for unique_violation
const uniqueViolation = "23505"

func (postgresDialect) isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == uniqueViolation
}
