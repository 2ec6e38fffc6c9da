package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"together/internal/domain"
)

// DBTX is the subset of *sql.DB and *sql.Tx used by the repositories, so the same repository
// code runs inside and outside a unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open opens a connection pool to dsn and verifies it with a ping.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Postgres error codes mapped to domain errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// foreignKeyFields names the request field behind each foreign key, for client-facing messages.
var foreignKeyFields = map[string]string{
	"events_sport_id_fkey":             "sport_id",
	"events_experience_id_fkey":        "experience_id",
	"user_equipment_equipment_id_fkey": "equipment_id",
	"event_requests_event_id_fkey":     "event_id",
	"favorites_event_id_fkey":          "event_id",
}

// mapError translates constraint violations into domain errors and passes everything else through.
// Messages never carry constraint or table names.
func mapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return fmt.Errorf("%w: record already exists", domain.ErrConflict)
	case pqForeignKeyViolation:
		if field, ok := foreignKeyFields[pqErr.Constraint]; ok {
			return fmt.Errorf("%w: %s does not exist", domain.ErrInvalidInput, field)
		}
		return fmt.Errorf("%w: referenced record does not exist", domain.ErrInvalidInput)
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere, with LIKE wildcards in s escaped.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
