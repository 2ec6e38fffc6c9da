package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"together/internal/domain"
)

type equipmentRepository struct {
	DB DBTX
}

func NewEquipmentRepository(db DBTX) domain.EquipmentRepository {
	return &equipmentRepository{DB: db}
}

func (r *equipmentRepository) ListCatalog(ctx context.Context) ([]*domain.Equipment, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, sport_id, name FROM equipment ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]*domain.Equipment, 0)
	for rows.Next() {
		e := &domain.Equipment{}
		var sportID sql.NullInt64
		if err := rows.Scan(&e.ID, &sportID, &e.Name); err != nil {
			return nil, err
		}
		e.SportID = int(sportID.Int64)
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	var sportID sql.NullInt64
	err := r.DB.QueryRowContext(ctx, `SELECT id, sport_id, name FROM equipment WHERE id = $1`, id).
		Scan(&e.ID, &sportID, &e.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.SportID = int(sportID.Int64)
	return e, nil
}

func (r *equipmentRepository) AddForUser(ctx context.Context, userID string, equipmentID int, at time.Time) error {
	query := `
		INSERT INTO user_equipment (user_id, equipment_id, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, equipment_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, userID, equipmentID, at)
	return mapError(err)
}

func (r *equipmentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.UserEquipment, error) {
	query := `
		SELECT e.id, e.sport_id, e.name, ue.added_at
		FROM user_equipment ue
		JOIN equipment e ON e.id = ue.equipment_id
		WHERE ue.user_id = $1
		ORDER BY e.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]*domain.UserEquipment, 0)
	for rows.Next() {
		ue := &domain.UserEquipment{}
		var sportID sql.NullInt64
		if err := rows.Scan(&ue.ID, &sportID, &ue.Name, &ue.AddedAt); err != nil {
			return nil, err
		}
		ue.SportID = int(sportID.Int64)
		items = append(items, ue)
	}
	return items, rows.Err()
}
