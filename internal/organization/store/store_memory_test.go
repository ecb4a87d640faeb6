package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"moncomptepro/internal/organization/models"
	usermodels "moncomptepro/internal/user/models"
	userstore "moncomptepro/internal/user/store"
	"moncomptepro/pkg/platform/sentinel"
)

type InMemoryOrganizationStoreSuite struct {
	suite.Suite
	ctx   context.Context
	users *userstore.InMemoryUserStore
	store *InMemoryOrganizationStore
}

func TestInMemoryOrganizationStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryOrganizationStoreSuite))
}

func (s *InMemoryOrganizationStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = userstore.NewInMemory()
	s.store = NewInMemory(s.users)
}

func (s *InMemoryOrganizationStoreSuite) createUser(address string) *usermodels.User {
	user, err := s.users.Create(s.ctx, &usermodels.User{Email: address})
	s.Require().NoError(err)
	return user
}

func (s *InMemoryOrganizationStoreSuite) upsert(siret string) *models.Organization {
	org, err := s.store.Upsert(s.ctx, models.OrganizationInfo{Siret: siret, Libelle: "Org " + siret, EstActive: true})
	s.Require().NoError(err)
	return org
}

func (s *InMemoryOrganizationStoreSuite) TestUpsertRefreshesSnapshotAndKeepsDomains() {
	org := s.upsert("21340172201787")
	s.Require().NoError(s.store.AddAuthorizedDomain(s.ctx, org.ID, "acme.example"))

	refreshed, err := s.store.Upsert(s.ctx, models.OrganizationInfo{Siret: "21340172201787", Libelle: "Renamed", EstActive: false})
	s.Require().NoError(err)
	s.Equal(org.ID, refreshed.ID)
	s.Equal("Renamed", refreshed.Info.Libelle)
	s.False(refreshed.Info.EstActive)
	s.False(refreshed.Info.FetchedAt.IsZero())
	s.Equal([]string{"acme.example"}, refreshed.AuthorizedEmailDomains)

	bySiret, err := s.store.FindBySiret(s.ctx, "21340172201787")
	s.Require().NoError(err)
	s.Equal(org.ID, bySiret.ID)
}

func (s *InMemoryOrganizationStoreSuite) TestDomainAdditionsAreIdempotent() {
	org := s.upsert("21340172201787")

	for range 3 {
		s.Require().NoError(s.store.AddAuthorizedDomain(s.ctx, org.ID, "acme.example"))
		s.Require().NoError(s.store.AddExternalAuthorizedDomain(s.ctx, org.ID, "partner.example"))
		s.Require().NoError(s.store.MarkDomainVerified(s.ctx, org.ID, "mairie.example", models.VerificationOfficialContactDomain))
	}

	got, err := s.store.FindByID(s.ctx, org.ID)
	s.Require().NoError(err)
	s.Equal([]string{"acme.example", "mairie.example"}, got.AuthorizedEmailDomains)
	s.Equal([]string{"mairie.example"}, got.VerifiedEmailDomains)
	s.Equal([]string{"partner.example"}, got.ExternalAuthorizedEmailDomains)
}

func (s *InMemoryOrganizationStoreSuite) TestConcurrentDomainAdditionsAreNotLost() {
	org := s.upsert("21340172201787")

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			domain := fmt.Sprintf("d%d.example", i%10)
			s.NoError(s.store.MarkDomainVerified(s.ctx, org.ID, domain, models.VerificationVerifiedEmailDomain))
		}()
	}
	wg.Wait()

	got, err := s.store.FindByID(s.ctx, org.ID)
	s.Require().NoError(err)
	s.Len(got.VerifiedEmailDomains, 10)
}

func (s *InMemoryOrganizationStoreSuite) TestMarkDomainVerifiedUpgradesUnverifiedMembers() {
	org := s.upsert("21340172201787")
	onDomain := s.createUser("agent@mairie.example")
	alreadyVerified := s.createUser("maire@mairie.example")
	elsewhere := s.createUser("agent@other.example")

	_, err := s.store.LinkUser(s.ctx, models.UserOrganizationLink{UserID: onDomain.ID, OrganizationID: org.ID})
	s.Require().NoError(err)
	_, err = s.store.LinkUser(s.ctx, models.UserOrganizationLink{
		UserID: alreadyVerified.ID, OrganizationID: org.ID, VerificationType: models.VerificationOfficialContactEmail,
	})
	s.Require().NoError(err)
	_, err = s.store.LinkUser(s.ctx, models.UserOrganizationLink{UserID: elsewhere.ID, OrganizationID: org.ID})
	s.Require().NoError(err)

	s.Require().NoError(s.store.MarkDomainVerified(s.ctx, org.ID, "mairie.example", models.VerificationOfficialContactDomain))

	link, err := s.store.FindLink(s.ctx, onDomain.ID, org.ID)
	s.Require().NoError(err)
	s.Equal(models.VerificationOfficialContactDomain, link.VerificationType)

	link, err = s.store.FindLink(s.ctx, alreadyVerified.ID, org.ID)
	s.Require().NoError(err)
	s.Equal(models.VerificationOfficialContactEmail, link.VerificationType)

	link, err = s.store.FindLink(s.ctx, elsewhere.ID, org.ID)
	s.Require().NoError(err)
	s.Equal(models.VerificationNone, link.VerificationType)
}

func (s *InMemoryOrganizationStoreSuite) TestLinkUser() {
	org := s.upsert("21340172201787")
	user := s.createUser("agent@mairie.example")

	s.Run("creates the edge once", func() {
		link, err := s.store.LinkUser(s.ctx, models.UserOrganizationLink{UserID: user.ID, OrganizationID: org.ID, IsExternal: true})
		s.Require().NoError(err)
		s.True(link.IsExternal)
		s.False(link.CreatedAt.IsZero())

		_, err = s.store.LinkUser(s.ctx, models.UserOrganizationLink{UserID: user.ID, OrganizationID: org.ID})
		s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("unknown organization", func() {
		_, err := s.store.LinkUser(s.ctx, models.UserOrganizationLink{UserID: user.ID, OrganizationID: 999})
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("missing link", func() {
		_, err := s.store.FindLink(s.ctx, 999, org.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryOrganizationStoreSuite) TestConcurrentLinkYieldsOneSuccess() {
	org := s.upsert("21340172201787")
	user := s.createUser("agent@mairie.example")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.LinkUser(s.ctx, models.UserOrganizationLink{UserID: user.ID, OrganizationID: org.ID})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				dupes++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(9, dupes)
}

func (s *InMemoryOrganizationStoreSuite) TestLookups() {
	first := s.upsert("21340172201787")
	second := s.upsert("21750001600019")
	third := s.upsert("83014132100034")

	s.Require().NoError(s.store.MarkDomainVerified(s.ctx, second.ID, "acme.example", models.VerificationVerifiedEmailDomain))

	a1 := s.createUser("a1@acme.example")
	a2 := s.createUser("a2@acme.example")
	b1 := s.createUser("b1@other.example")
	for _, l := range []models.UserOrganizationLink{
		{UserID: a1.ID, OrganizationID: first.ID},
		{UserID: a2.ID, OrganizationID: first.ID},
		{UserID: b1.ID, OrganizationID: first.ID},
		{UserID: b1.ID, OrganizationID: third.ID},
	} {
		_, err := s.store.LinkUser(s.ctx, l)
		s.Require().NoError(err)
	}

	s.Run("by verified domain", func() {
		orgs, err := s.store.FindByVerifiedEmailDomain(s.ctx, "acme.example")
		s.Require().NoError(err)
		s.Require().Len(orgs, 1)
		s.Equal(second.ID, orgs[0].ID)
	})

	s.Run("by most used domain", func() {
		orgs, err := s.store.FindByMostUsedEmailDomain(s.ctx, "acme.example")
		s.Require().NoError(err)
		s.Require().Len(orgs, 1)
		s.Equal(first.ID, orgs[0].ID)

		orgs, err = s.store.FindByMostUsedEmailDomain(s.ctx, "other.example")
		s.Require().NoError(err)
		s.Require().Len(orgs, 1)
		s.Equal(third.ID, orgs[0].ID)
	})

	s.Run("by user", func() {
		orgs, err := s.store.FindByUserID(s.ctx, b1.ID)
		s.Require().NoError(err)
		s.Require().Len(orgs, 2)
		s.Equal(first.ID, orgs[0].ID)
		s.Equal(third.ID, orgs[1].ID)
	})

	s.Run("unknown id", func() {
		_, err := s.store.FindByID(s.ctx, 999)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		s.Require().ErrorIs(s.store.AddAuthorizedDomain(s.ctx, 999, "x.example"), sentinel.ErrNotFound)
	})
}
