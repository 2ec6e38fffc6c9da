package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"together/internal/domain"
)

const (
	sportsCacheKey           = "sports"
	experienceLevelsCacheKey = "experience_levels"
)

type referenceService struct {
	repo           domain.ReferenceRepository
	cache          domain.ReferenceCache
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewReferenceService(
	repo domain.ReferenceRepository,
	cache domain.ReferenceCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ReferenceService {
	return &referenceService{
		repo:           repo,
		cache:          cache,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *referenceService) ListSports(ctx context.Context) ([]*domain.Sport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sports, err := cachedList(ctx, s.cache, s.logger, sportsCacheKey, s.repo.ListSports)
	if err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}
	return sports, nil
}

func (s *referenceService) ListExperienceLevels(ctx context.Context) ([]*domain.ExperienceLevel, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	levels, err := cachedList(ctx, s.cache, s.logger, experienceLevelsCacheKey, s.repo.ListExperienceLevels)
	if err != nil {
		return nil, fmt.Errorf("list experience levels: %w", err)
	}
	return levels, nil
}
