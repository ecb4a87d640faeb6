package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"moncomptepro/internal/organization/models"
	"moncomptepro/pkg/platform/sentinel"
)

type InMemoryCacheSuite struct {
	suite.Suite
	now   time.Time
	cache *InMemoryCache
}

func TestInMemoryCacheSuite(t *testing.T) {
	suite.Run(t, new(InMemoryCacheSuite))
}

func (s *InMemoryCacheSuite) SetupTest() {
	s.now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s.cache = NewInMemoryCache(time.Hour)
	s.cache.now = func() time.Time { return s.now }
}

func (s *InMemoryCacheSuite) TestSaveAndFind() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Save(ctx, &models.OrganizationInfo{Siret: "21340172201787", Libelle: "Clapiers"}))

	s.now = s.now.Add(10 * time.Minute)
	entry, err := s.cache.Find(ctx, "21340172201787")
	s.Require().NoError(err)
	s.Equal("Clapiers", entry.Info.Libelle)
	s.Equal(10*time.Minute, entry.Age(s.now))
}

func (s *InMemoryCacheSuite) TestExpiredAndMissing() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Save(ctx, &models.OrganizationInfo{Siret: "21340172201787"}))

	s.now = s.now.Add(time.Hour)
	_, err := s.cache.Find(ctx, "21340172201787")
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.cache.Find(ctx, "00000000000000")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryCacheSuite) TestSaveNilIsNoop() {
	s.NoError(s.cache.Save(context.Background(), nil))
}
