package store

import (
	"context"
	"sync"
	"time"

	"moncomptepro/internal/moderation/models"
	"moncomptepro/pkg/platform/sentinel"
)

type pendingKey struct {
	userID         int64
	organizationID int64
	kind           models.Type
}

// InMemoryModerationStore enforces one pending case per (user, organization,
// type) under its mutex.
type InMemoryModerationStore struct {
	mu      sync.RWMutex
	cases   map[int64]*models.Moderation
	pending map[pendingKey]int64
	nextID  int64
}

func NewInMemory() *InMemoryModerationStore {
	return &InMemoryModerationStore{
		cases:   make(map[int64]*models.Moderation),
		pending: make(map[pendingKey]int64),
	}
}

func (s *InMemoryModerationStore) Create(_ context.Context, m models.Moderation) (*models.Moderation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.IsPending() {
		if _, exists := s.pending[keyOf(m)]; exists {
			return nil, sentinel.ErrAlreadyUsed
		}
	}
	return s.insert(m), nil
}

func (s *InMemoryModerationStore) CreateIfAbsent(_ context.Context, m models.Moderation) (*models.Moderation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.IsPending() {
		if id, exists := s.pending[keyOf(m)]; exists {
			out := *s.cases[id]
			return &out, nil
		}
	}
	return s.insert(m), nil
}

func keyOf(m models.Moderation) pendingKey {
	return pendingKey{userID: m.UserID, organizationID: m.OrganizationID, kind: m.Type}
}

// insert must be called with s.mu held.
func (s *InMemoryModerationStore) insert(m models.Moderation) *models.Moderation {
	s.nextID++
	m.ID = s.nextID
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	stored := m
	s.cases[m.ID] = &stored
	if m.IsPending() {
		s.pending[keyOf(m)] = m.ID
	}
	return &m
}

func (s *InMemoryModerationStore) FindPending(_ context.Context, userID, organizationID int64, kind models.Type) (*models.Moderation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.pending[pendingKey{userID: userID, organizationID: organizationID, kind: kind}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *s.cases[id]
	return &out, nil
}

// ListByOrganization returns every case for an organization, oldest first.
func (s *InMemoryModerationStore) ListByOrganization(_ context.Context, organizationID int64) ([]*models.Moderation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Moderation
	for id := int64(1); id <= s.nextID; id++ {
		if m, ok := s.cases[id]; ok && m.OrganizationID == organizationID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

// MarkModerated closes a pending case.
func (s *InMemoryModerationStore) MarkModerated(_ context.Context, id int64, by string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.cases[id]
	if !ok || !m.IsPending() {
		return sentinel.ErrNotFound
	}
	m.ModeratedAt = &at
	m.ModeratedBy = &by
	delete(s.pending, pendingKey{userID: m.UserID, organizationID: m.OrganizationID, kind: m.Type})
	return nil
}
