package domain

import "context"

// FavoriteRepository stores per-user favorite marks. A (user, event) pair exists at most once.
type FavoriteRepository interface {
	// Add inserts the pair; inserting an existing pair is a no-op.
	Add(ctx context.Context, userID string, eventID int64) error
	// Remove deletes the pair and reports whether it existed.
	Remove(ctx context.Context, userID string, eventID int64) (bool, error)
	Exists(ctx context.Context, userID string, eventID int64) (bool, error)
	ListEventIDsByUser(ctx context.Context, userID string) ([]int64, error)
	ListEventsByUser(ctx context.Context, userID string) ([]*Event, error)
}

// FavoriteResult is the outcome of a toggle.
// swagger:model FavoriteResult
type FavoriteResult struct {
	EventID    int64 `json:"event_id"`
	IsFavorite bool  `json:"is_favorite"`
}

// FavoriteService toggles and lists a user's favorite events.
type FavoriteService interface {
	Toggle(ctx context.Context, userID string, eventID int64) (*FavoriteResult, error)
	ListFavorites(ctx context.Context, userID string) ([]*Event, error)
}
