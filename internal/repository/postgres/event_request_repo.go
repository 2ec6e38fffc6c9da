package postgres

import (
	"context"
	"database/sql"
	"errors"

	"together/internal/domain"
)

const requestColumns = `id, event_id, guest_id, owner_id, status_id, requested_at, decided_at`

type eventRequestRepository struct {
	DB DBTX
}

func NewEventRequestRepository(db DBTX) domain.EventRequestRepository {
	return &eventRequestRepository{
		DB: db,
	}
}

func scanRequest(row rowScanner) (*domain.EventRequest, error) {
	req := &domain.EventRequest{}
	var decidedAt sql.NullTime
	if err := row.Scan(&req.ID, &req.EventID, &req.GuestID, &req.OwnerID, &req.StatusID, &req.RequestedAt, &decidedAt); err != nil {
		return nil, err
	}
	if decidedAt.Valid {
		req.DecidedAt = &decidedAt.Time
	}
	return req, nil
}

func (r *eventRequestRepository) getOne(ctx context.Context, query string, args ...any) (*domain.EventRequest, error) {
	req, err := scanRequest(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *eventRequestRepository) list(ctx context.Context, query string, args ...any) ([]*domain.EventRequest, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reqs := make([]*domain.EventRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *eventRequestRepository) Create(ctx context.Context, req *domain.EventRequest) error {
	query := `
		INSERT INTO event_requests (event_id, guest_id, owner_id, status_id, requested_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, req.EventID, req.GuestID, req.OwnerID, req.StatusID, req.RequestedAt).
		Scan(&req.ID)
	return mapError(err)
}

func (r *eventRequestRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.EventRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM event_requests WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *eventRequestRepository) GetActiveByEventAndGuest(ctx context.Context, eventID int64, guestID string) (*domain.EventRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM event_requests
		WHERE event_id = $1 AND guest_id = $2 AND status_id IN ($3, $4)
	`
	return r.getOne(ctx, query, eventID, guestID, domain.RequestStatusPending, domain.RequestStatusAccepted)
}

func (r *eventRequestRepository) GetLatestByEventAndGuest(ctx context.Context, eventID int64, guestID string) (*domain.EventRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM event_requests
		WHERE event_id = $1 AND guest_id = $2
		ORDER BY requested_at DESC, id DESC
		LIMIT 1
	`
	return r.getOne(ctx, query, eventID, guestID)
}

func (r *eventRequestRepository) UpdateStatus(ctx context.Context, req *domain.EventRequest) error {
	query := `UPDATE event_requests SET status_id = $1, decided_at = $2 WHERE id = $3`
	result, err := r.DB.ExecContext(ctx, query, req.StatusID, req.DecidedAt, req.ID)
	if err != nil {
		return mapError(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRequestRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.EventRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM event_requests WHERE event_id = $1 ORDER BY requested_at ASC, id ASC`
	return r.list(ctx, query, eventID)
}

func (r *eventRequestRepository) ListByGuestID(ctx context.Context, guestID string) ([]*domain.EventRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM event_requests WHERE guest_id = $1 ORDER BY requested_at DESC, id DESC`
	return r.list(ctx, query, guestID)
}
