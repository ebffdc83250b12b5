// Package postgres provides the Postgres-backed user and task repositories.
package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// emailKey matches the in-memory repository: emails are unique case-insensitively.
func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
