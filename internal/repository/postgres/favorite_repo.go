package postgres

import (
	"context"

	"together/internal/domain"
)

type favoriteRepository struct {
	DB DBTX
}

func NewFavoriteRepository(db DBTX) domain.FavoriteRepository {
	return &favoriteRepository{
		DB: db,
	}
}

func (r *favoriteRepository) Add(ctx context.Context, userID string, eventID int64) error {
	query := `
		INSERT INTO favorites (user_id, event_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, userID, eventID)
	return mapError(err)
}

func (r *favoriteRepository) Remove(ctx context.Context, userID string, eventID int64) (bool, error) {
	query := `DELETE FROM favorites WHERE user_id = $1 AND event_id = $2`
	result, err := r.DB.ExecContext(ctx, query, userID, eventID)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID string, eventID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND event_id = $2)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, userID, eventID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *favoriteRepository) ListEventIDsByUser(ctx context.Context, userID string) ([]int64, error) {
	query := `SELECT event_id FROM favorites WHERE user_id = $1`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *favoriteRepository) ListEventsByUser(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.owner_id, e.sport_id, e.experience_id, e.status_id, e.title, e.description,
			e.event_date, e.event_hour, e.city, e.country, e.image_url, e.created_at, e.updated_at
		FROM favorites f
		JOIN events e ON e.id = f.event_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, e.id DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}
