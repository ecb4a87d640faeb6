package store

import (
	"context"
	"sync"
	"time"

	"moncomptepro/internal/organization/models"
	"moncomptepro/pkg/platform/sentinel"
)

// InMemoryCache keeps snapshots in process memory.
type InMemoryCache struct {
	mu        sync.RWMutex
	entries   map[string]Entry
	retention time.Duration
	now       func() time.Time
}

func NewInMemoryCache(retention time.Duration) *InMemoryCache {
	return &InMemoryCache{
		entries:   make(map[string]Entry),
		retention: retention,
		now:       time.Now,
	}
}

func (c *InMemoryCache) Save(_ context.Context, info *models.OrganizationInfo) error {
	if info == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[info.Siret] = Entry{Info: *info, StoredAt: c.now()}
	return nil
}

// Find returns sentinel.ErrNotFound when there is no entry or it is past
// retention.
func (c *InMemoryCache) Find(_ context.Context, siret string) (*Entry, error) {
	c.mu.RLock()
	entry, ok := c.entries[siret]
	c.mu.RUnlock()
	if !ok || entry.Age(c.now()) >= c.retention {
		return nil, sentinel.ErrNotFound
	}
	return &entry, nil
}
