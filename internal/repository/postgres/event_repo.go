package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"together/internal/domain"
)

const eventColumns = `id, owner_id, sport_id, experience_id, status_id, title, description,
		event_date, event_hour, city, country, image_url, created_at, updated_at`

type eventRepository struct {
	DB DBTX
}

func NewEventRepository(db DBTX) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var experienceID sql.NullInt64
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.SportID, &experienceID, &e.StatusID, &e.Title, &e.Description,
		&e.Date, &e.Hour, &e.City, &e.Country, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.ExperienceID = int(experienceID.Int64)
	return e, nil
}

// nullableID stores the zero id as NULL.
func nullableID(id int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(id), Valid: id != 0}
}

func scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (owner_id, sport_id, experience_id, status_id, title, description,
			event_date, event_hour, city, country, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.OwnerID, e.SportID, nullableID(e.ExperienceID), e.StatusID, e.Title, e.Description,
		e.Date, e.Hour, e.City, e.Country, e.ImageURL, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	return mapError(err)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events SET sport_id = $1, experience_id = $2, title = $3, description = $4,
			event_date = $5, event_hour = $6, city = $7, country = $8, image_url = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.SportID, nullableID(e.ExperienceID), e.Title, e.Description,
		e.Date, e.Hour, e.City, e.Country, e.ImageURL, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return mapError(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE owner_id = $1 ORDER BY event_date ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// List applies every set filter as a SQL predicate so filtering, counting and paging all happen
// in the database. Rows are ordered by date then id, which keeps pages stable.
func (r *eventRepository) List(ctx context.Context, f domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	var where []string
	var args []any
	argN := 1

	add := func(condFmt string, val any) {
		where = append(where, fmt.Sprintf(condFmt, argN))
		args = append(args, val)
		argN++
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		where = append(where, fmt.Sprintf(
			"(title ILIKE $%[1]d OR description ILIKE $%[1]d OR city ILIKE $%[1]d OR country ILIKE $%[1]d)", argN))
		args = append(args, containsPattern(q))
		argN++
	}
	if f.SportID != nil {
		add("sport_id = $%d", *f.SportID)
	}
	if f.ExperienceID != nil {
		// Events open to any level (NULL) match every experience filter.
		add("(experience_id = $%d OR experience_id IS NULL)", *f.ExperienceID)
	}
	if f.DateFrom != nil {
		add("event_date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("event_date <= $%d", *f.DateTo)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM events"+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := fmt.Sprintf("SELECT %s FROM events%s ORDER BY event_date ASC, id ASC LIMIT $%d OFFSET $%d",
		eventColumns, whereSQL, argN, argN+1)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.DB.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) ListLocations(ctx context.Context) ([]*domain.EventLocation, error) {
	query := `
		SELECT id, title, sport_id, city, country, event_date
		FROM events
		WHERE status_id = $1
		ORDER BY event_date ASC, id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, domain.EventStatusOpen)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	locations := make([]*domain.EventLocation, 0)
	for rows.Next() {
		l := &domain.EventLocation{}
		if err := rows.Scan(&l.ID, &l.Title, &l.SportID, &l.City, &l.Country, &l.Date); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}
