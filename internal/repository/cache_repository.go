package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RT-Jeion/AI-Powered-Class-routine-management/internal/models"
	appErrors "github.com/RT-Jeion/AI-Powered-Class-routine-management/pkg/errors"
)

const viewKeyPattern = "routine:view:*"

// CacheRepository stores rendered routine views in Redis with a TTL.
type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheRepository builds the repository.
func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	return &CacheRepository{client: client, ttl: ttl}
}

// GetView returns the cached entries for a key, or a cache-miss error.
func (r *CacheRepository) GetView(ctx context.Context, key string) ([]models.SlotEntry, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, appErrors.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	var entries []models.SlotEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return entries, nil
}

// SetView stores entries under a key with the configured TTL.
func (r *CacheRepository) SetView(ctx context.Context, key string, entries []models.SlotEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// InvalidateViews drops every cached routine view.
func (r *CacheRepository) InvalidateViews(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, viewKeyPattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}
