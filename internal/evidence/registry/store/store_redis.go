package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"moncomptepro/internal/organization/models"
	"moncomptepro/pkg/platform/sentinel"
)

const keyPrefix = "registry:siret:"

// RedisCache stores snapshots as JSON with a key TTL equal to retention.
type RedisCache struct {
	client    *redis.Client
	retention time.Duration
	now       func() time.Time
}

func NewRedisCache(client *redis.Client, retention time.Duration) *RedisCache {
	return &RedisCache{client: client, retention: retention, now: time.Now}
}

func (c *RedisCache) Save(ctx context.Context, info *models.OrganizationInfo) error {
	if info == nil {
		return nil
	}
	payload, err := json.Marshal(Entry{Info: *info, StoredAt: c.now()})
	if err != nil {
		return fmt.Errorf("encode registry entry: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+info.Siret, payload, c.retention).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (c *RedisCache) Find(ctx context.Context, siret string) (*Entry, error) {
	payload, err := c.client.Get(ctx, keyPrefix+siret).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get: %w", sentinel.ErrUnavailable, err)
	}
	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("decode registry entry: %w", err)
	}
	return &entry, nil
}
