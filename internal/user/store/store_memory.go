package store

import (
	"context"
	"sync"
	"time"

	"moncomptepro/internal/user/models"
	"moncomptepro/pkg/email"
	"moncomptepro/pkg/platform/sentinel"
)

// InMemoryUserStore is a concurrency-safe user store for tests and local runs.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	users   map[int64]*models.User
	byEmail map[string]int64
	nextID  int64
}

func NewInMemory() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:   make(map[int64]*models.User),
		byEmail: make(map[string]int64),
	}
}

// Create stores a new user and assigns its id. Emails are unique
// case-insensitively.
func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	key := email.Normalize(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[key]; exists {
		return nil, sentinel.ErrAlreadyUsed
	}
	s.nextID++
	created := *user
	created.ID = s.nextID
	created.Email = key
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	s.users[created.ID] = &created
	s.byEmail[key] = created.ID

	out := created
	return &out, nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, address string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email.Normalize(address)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *s.users[id]
	return &out, nil
}
