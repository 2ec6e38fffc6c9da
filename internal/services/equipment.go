package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"together/internal/domain"
)

const equipmentCacheKey = "equipment"

type equipmentService struct {
	repo           domain.EquipmentRepository
	cache          domain.ReferenceCache
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEquipmentService(
	repo domain.EquipmentRepository,
	cache domain.ReferenceCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EquipmentService {
	return &equipmentService{
		repo:           repo,
		cache:          cache,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// ListEquipment serves the catalog from the reference cache. A sport filter keeps that
// sport's items plus general gear.
func (s *equipmentService) ListEquipment(ctx context.Context, sportID *int) ([]*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if sportID != nil && *sportID <= 0 {
		return nil, fmt.Errorf("%w: sport_id must be positive", domain.ErrInvalidInput)
	}
	catalog, err := cachedList(ctx, s.cache, s.logger, equipmentCacheKey, s.repo.ListCatalog)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	if sportID == nil {
		return catalog, nil
	}
	items := make([]*domain.Equipment, 0, len(catalog))
	for _, e := range catalog {
		if e.SportID == 0 || e.SportID == *sportID {
			items = append(items, e)
		}
	}
	return items, nil
}

// AddUserEquipment records that userID owns an item and returns the user's updated list.
func (s *equipmentService) AddUserEquipment(ctx context.Context, userID string, equipmentID int) ([]*domain.UserEquipment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", domain.ErrInvalidInput)
	}
	if equipmentID <= 0 {
		return nil, fmt.Errorf("%w: equipment_id must be positive", domain.ErrInvalidInput)
	}
	if _, err := s.repo.GetByID(ctx, equipmentID); err != nil {
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	if err := s.repo.AddForUser(ctx, userID, equipmentID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("add user equipment: %w", err)
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user equipment: %w", err)
	}
	return items, nil
}

func (s *equipmentService) ListUserEquipment(ctx context.Context, userID string) ([]*domain.UserEquipment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user equipment: %w", err)
	}
	return items, nil
}
