package postgres

import (
	"context"

	"together/internal/domain"
)

type referenceRepository struct {
	DB DBTX
}

func NewReferenceRepository(db DBTX) domain.ReferenceRepository {
	return &referenceRepository{DB: db}
}

func (r *referenceRepository) ListSports(ctx context.Context) ([]*domain.Sport, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM sports ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sports := make([]*domain.Sport, 0)
	for rows.Next() {
		s := &domain.Sport{}
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		sports = append(sports, s)
	}
	return sports, rows.Err()
}

func (r *referenceRepository) ListExperienceLevels(ctx context.Context) ([]*domain.ExperienceLevel, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM experience_levels ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	levels := make([]*domain.ExperienceLevel, 0)
	for rows.Next() {
		l := &domain.ExperienceLevel{}
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}
