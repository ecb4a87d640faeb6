package store

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"moncomptepro/internal/organization/models"
	usermodels "moncomptepro/internal/user/models"
	"moncomptepro/pkg/email"
	"moncomptepro/pkg/platform/sentinel"
)

// UserLookup resolves member emails for domain based queries.
type UserLookup interface {
	FindByID(ctx context.Context, id int64) (*usermodels.User, error)
}

type linkKey struct {
	userID         int64
	organizationID int64
}

// InMemoryOrganizationStore keeps organizations and membership links in maps
// guarded by a single mutex, so every mutation is atomic.
type InMemoryOrganizationStore struct {
	mu      sync.RWMutex
	users   UserLookup
	orgs    map[int64]*models.Organization
	bySiret map[string]int64
	links   map[linkKey]*models.UserOrganizationLink
	nextID  int64
}

func NewInMemory(users UserLookup) *InMemoryOrganizationStore {
	return &InMemoryOrganizationStore{
		users:   users,
		orgs:    make(map[int64]*models.Organization),
		bySiret: make(map[string]int64),
		links:   make(map[linkKey]*models.UserOrganizationLink),
	}
}

func (s *InMemoryOrganizationStore) Upsert(_ context.Context, info models.OrganizationInfo) (*models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if info.FetchedAt.IsZero() {
		info.FetchedAt = now
	}
	if id, ok := s.bySiret[info.Siret]; ok {
		org := s.orgs[id]
		org.Info = info
		org.UpdatedAt = now
		return cloneOrganization(org), nil
	}

	s.nextID++
	org := &models.Organization{
		ID:                             s.nextID,
		Siret:                          info.Siret,
		Info:                           info,
		AuthorizedEmailDomains:         []string{},
		VerifiedEmailDomains:           []string{},
		ExternalAuthorizedEmailDomains: []string{},
		CreatedAt:                      now,
		UpdatedAt:                      now,
	}
	s.orgs[org.ID] = org
	s.bySiret[org.Siret] = org.ID
	return cloneOrganization(org), nil
}

func (s *InMemoryOrganizationStore) FindByID(_ context.Context, id int64) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.orgs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneOrganization(org), nil
}

func (s *InMemoryOrganizationStore) FindBySiret(_ context.Context, siret string) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.bySiret[siret]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneOrganization(s.orgs[id]), nil
}

func (s *InMemoryOrganizationStore) FindByUserID(_ context.Context, userID int64) ([]*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Organization
	for key := range s.links {
		if key.userID == userID {
			out = append(out, cloneOrganization(s.orgs[key.organizationID]))
		}
	}
	sortByID(out)
	return out, nil
}

func (s *InMemoryOrganizationStore) FindByVerifiedEmailDomain(_ context.Context, domain string) ([]*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Organization
	for _, org := range s.orgs {
		if slices.Contains(org.VerifiedEmailDomains, domain) {
			out = append(out, cloneOrganization(org))
		}
	}
	sortByID(out)
	return out, nil
}

// FindByMostUsedEmailDomain returns organizations where domain is the most
// frequent email domain among members. Ties count for every tied domain.
func (s *InMemoryOrganizationStore) FindByMostUsedEmailDomain(ctx context.Context, domain string) ([]*models.Organization, error) {
	s.mu.RLock()
	members := make(map[int64][]int64)
	for key := range s.links {
		members[key.organizationID] = append(members[key.organizationID], key.userID)
	}
	s.mu.RUnlock()

	var ids []int64
	for orgID, userIDs := range members {
		counts := make(map[string]int)
		for _, userID := range userIDs {
			user, err := s.users.FindByID(ctx, userID)
			if err != nil {
				return nil, err
			}
			counts[email.Domain(user.Email)]++
		}
		best := 0
		for _, c := range counts {
			best = max(best, c)
		}
		if counts[domain] > 0 && counts[domain] == best {
			ids = append(ids, orgID)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Organization, 0, len(ids))
	for _, id := range ids {
		if org, ok := s.orgs[id]; ok {
			out = append(out, cloneOrganization(org))
		}
	}
	sortByID(out)
	return out, nil
}

// MarkDomainVerified adds domain to the verified and authorized sets and
// upgrades unverified links of members on that domain.
func (s *InMemoryOrganizationStore) MarkDomainVerified(ctx context.Context, organizationID int64, domain string, verificationType models.VerificationType) error {
	s.mu.Lock()
	org, ok := s.orgs[organizationID]
	if !ok {
		s.mu.Unlock()
		return sentinel.ErrNotFound
	}
	org.VerifiedEmailDomains = appendIfAbsent(org.VerifiedEmailDomains, domain)
	org.AuthorizedEmailDomains = appendIfAbsent(org.AuthorizedEmailDomains, domain)
	org.UpdatedAt = time.Now()

	var candidates []*models.UserOrganizationLink
	for key, link := range s.links {
		if key.organizationID == organizationID && link.VerificationType == models.VerificationNone {
			candidates = append(candidates, link)
		}
	}
	s.mu.Unlock()

	for _, link := range candidates {
		user, err := s.users.FindByID(ctx, link.UserID)
		if err != nil {
			return err
		}
		if email.Domain(user.Email) != domain {
			continue
		}
		s.mu.Lock()
		if link.VerificationType == models.VerificationNone {
			link.VerificationType = verificationType
		}
		s.mu.Unlock()
	}
	return nil
}

func (s *InMemoryOrganizationStore) AddAuthorizedDomain(_ context.Context, organizationID int64, domain string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[organizationID]
	if !ok {
		return sentinel.ErrNotFound
	}
	org.AuthorizedEmailDomains = appendIfAbsent(org.AuthorizedEmailDomains, domain)
	org.UpdatedAt = time.Now()
	return nil
}

func (s *InMemoryOrganizationStore) AddExternalAuthorizedDomain(_ context.Context, organizationID int64, domain string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[organizationID]
	if !ok {
		return sentinel.ErrNotFound
	}
	org.ExternalAuthorizedEmailDomains = appendIfAbsent(org.ExternalAuthorizedEmailDomains, domain)
	org.UpdatedAt = time.Now()
	return nil
}

// LinkUser creates the membership edge. An existing edge for the pair yields
// sentinel.ErrAlreadyUsed.
func (s *InMemoryOrganizationStore) LinkUser(_ context.Context, link models.UserOrganizationLink) (*models.UserOrganizationLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[link.OrganizationID]; !ok {
		return nil, sentinel.ErrNotFound
	}
	key := linkKey{userID: link.UserID, organizationID: link.OrganizationID}
	if _, exists := s.links[key]; exists {
		return nil, sentinel.ErrAlreadyUsed
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}
	stored := link
	s.links[key] = &stored
	return &link, nil
}

func (s *InMemoryOrganizationStore) FindLink(_ context.Context, userID, organizationID int64) (*models.UserOrganizationLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.links[linkKey{userID: userID, organizationID: organizationID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *link
	return &out, nil
}

func appendIfAbsent(values []string, value string) []string {
	if slices.Contains(values, value) {
		return values
	}
	return append(values, value)
}

func cloneOrganization(org *models.Organization) *models.Organization {
	out := *org
	out.AuthorizedEmailDomains = slices.Clone(org.AuthorizedEmailDomains)
	out.VerifiedEmailDomains = slices.Clone(org.VerifiedEmailDomains)
	out.ExternalAuthorizedEmailDomains = slices.Clone(org.ExternalAuthorizedEmailDomains)
	return &out
}

func sortByID(orgs []*models.Organization) {
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].ID < orgs[j].ID })
}
