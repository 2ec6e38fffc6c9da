package services

import (
	"context"
	"fmt"
	"time"

	"together/internal/domain"
)

type favoriteService struct {
	uow            domain.UnitOfWork
	contextTimeout time.Duration
}

func NewFavoriteService(uow domain.UnitOfWork, timeout time.Duration) domain.FavoriteService {
	return &favoriteService{uow: uow, contextTimeout: timeout}
}

// Toggle removes the mark if present and adds it otherwise, in one transaction.
func (s *favoriteService) Toggle(ctx context.Context, userID string, eventID int64) (*domain.FavoriteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	result := &domain.FavoriteResult{EventID: eventID}
	err := s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		if _, err := tx.Events().GetByID(ctx, eventID); err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		removed, err := tx.Favorites().Remove(ctx, userID, eventID)
		if err != nil {
			return fmt.Errorf("remove favorite: %w", err)
		}
		if removed {
			result.IsFavorite = false
			return nil
		}
		if err := tx.Favorites().Add(ctx, userID, eventID); err != nil {
			return fmt.Errorf("add favorite: %w", err)
		}
		result.IsFavorite = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var events []*domain.Event
	err := s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		var err error
		events, err = tx.Favorites().ListEventsByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list favorites: %w", err)
		}
		return nil
	})
	return events, err
}
