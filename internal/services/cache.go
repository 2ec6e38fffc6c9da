package services

import (
	"context"
	"log/slog"

	"together/internal/domain"
)

// cachedList serves key from cache and falls back to load on a miss.
// Cache failures are logged and never fail the read.
func cachedList[T any](ctx context.Context, cache domain.ReferenceCache, logger *slog.Logger, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	var items []T
	ok, err := cache.Get(ctx, key, &items)
	if err != nil {
		logger.WarnContext(ctx, "reference cache get failed", "key", key, "err", err)
	} else if ok {
		return items, nil
	}

	items, err = load(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, key, items); err != nil {
		logger.WarnContext(ctx, "reference cache set failed", "key", key, "err", err)
	}
	return items, nil
}
