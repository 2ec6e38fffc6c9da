package postgres

import (
	"context"
	"database/sql"
	"errors"

	"together/internal/domain"
)

type userRepository struct {
	DB DBTX
}

func NewUserRepository(db DBTX) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	query := `
		SELECT id, display_name, username, email, profile_image_url, city, country
		FROM users
		WHERE id = $1
	`
	u := &domain.UserProfile{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.DisplayName, &u.Username, &u.Email, &u.ProfileImageURL, &u.City, &u.Country)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
