package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"servicecatalog/internal/catalog/ledger"
	"servicecatalog/internal/catalog/models"
	"servicecatalog/internal/catalog/ports"
	"servicecatalog/pkg/domain"
)

var (
	buildingPermit = domain.MustRootID("6f1c1a52-0d5e-4c5e-9a55-1b7b0d3f0001")
	helsinki       = domain.MustRootID("6f1c1a52-0d5e-4c5e-9a55-1b7b0d3f0003")
	lupapiste      = domain.MustRootID("6f1c1a52-0d5e-4c5e-9a55-1b7b0d3f0004")
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = New()
	s.Require().NoError(s.store.LoadSeedFile("testdata/seed.yaml"))
}

func (s *InMemoryStoreSuite) snapshot() ports.Snapshot {
	snap, err := s.store.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = snap.Close() })
	return snap
}

func (s *InMemoryStoreSuite) TestSeedLoadsAllKinds() {
	snap := s.snapshot()

	services, err := ports.CollectVersions(snap.QueryVersions(s.ctx, ports.VersionQuery{Kind: models.KindService}))
	s.Require().NoError(err)
	s.Len(services, 2)
	for _, v := range services {
		s.Equal(buildingPermit, v.RootID)
		s.Equal(models.KindService, v.Kind)
		s.False(v.Modified.IsZero())
	}

	orgs, err := ports.CollectVersions(snap.QueryOrganizationsByIDs(s.ctx, []domain.RootID{helsinki}))
	s.Require().NoError(err)
	s.Require().Len(orgs, 1)
	s.Len(orgs[0].Names, 2)

	channels, err := ports.CollectVersions(snap.QueryChannelsByIDs(s.ctx, []domain.RootID{lupapiste}))
	s.Require().NoError(err)
	s.Require().Len(channels, 1)
	s.Equal("EChannel", channels[0].Type)
}

func (s *InMemoryStoreSuite) TestQueryFiltersByStatusAndCriteria() {
	snap := s.snapshot()

	published, err := ports.CollectVersions(snap.QueryVersions(s.ctx, ports.VersionQuery{
		Kind:     models.KindService,
		RootIDs:  []domain.RootID{buildingPermit},
		Statuses: []models.PublicationStatus{models.StatusPublished},
	}))
	s.Require().NoError(err)
	s.Require().Len(published, 1)
	s.Equal(models.ServiceTypePermitOrObligation, published[0].Type)

	byArea, err := ports.CollectVersions(snap.QueryVersions(s.ctx, ports.VersionQuery{
		Kind:     models.KindService,
		Criteria: &models.FilterCriteria{AreaType: models.AreaMunicipality, AreaCodes: []string{"091"}},
	}))
	s.Require().NoError(err)
	s.Len(byArea, 1)
}

func (s *InMemoryStoreSuite) TestLanguageAvailability() {
	snap := s.snapshot()
	vid := domain.VersionID(domain.MustRootID("6f1c1a52-0d5e-4c5e-9a55-1b7b0d3f1002"))

	led, err := ledger.Collect(snap.QueryLanguageAvailability(s.ctx, []domain.VersionID{vid}))
	s.Require().NoError(err)
	s.True(led.IsPublished(vid, domain.LanguageFinnish))
	s.False(led.IsPublished(vid, domain.LanguageSwedish))
}

func (s *InMemoryStoreSuite) TestSnapshotIsolation() {
	snap := s.snapshot()

	newRoot := domain.NewRootID()
	s.Require().NoError(s.store.Put(models.Version{
		ID:      domain.NewVersionID(),
		RootID:  newRoot,
		Kind:    models.KindService,
		Status:  models.StatusDraft,
		Created: time.Now(),
	}))
	s.Require().NoError(s.store.Put(models.Version{
		ID:      domain.NewVersionID(),
		RootID:  buildingPermit,
		Kind:    models.KindService,
		Status:  models.StatusModified,
		Created: time.Now(),
	}))

	old, err := ports.CollectVersions(snap.QueryVersions(s.ctx, ports.VersionQuery{Kind: models.KindService}))
	s.Require().NoError(err)
	s.Len(old, 2)

	fresh, err := ports.CollectVersions(s.snapshot().QueryVersions(s.ctx, ports.VersionQuery{Kind: models.KindService}))
	s.Require().NoError(err)
	s.Len(fresh, 4)
}

func (s *InMemoryStoreSuite) TestQueryHonoursCancellation() {
	snap := s.snapshot()
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := ports.CollectVersions(snap.QueryVersions(ctx, ports.VersionQuery{Kind: models.KindService}))
	s.ErrorIs(err, context.Canceled)
}

func (s *InMemoryStoreSuite) TestQueryStopsWhenConsumerStops() {
	snap := s.snapshot()
	n := 0
	for range snap.QueryVersions(s.ctx, ports.VersionQuery{Kind: models.KindService}) {
		n++
		break
	}
	s.Equal(1, n)
}

func (s *InMemoryStoreSuite) TestPutValidates() {
	s.Error(s.store.Put(models.Version{RootID: domain.NewRootID(), Kind: models.KindService, Status: models.StatusDraft}))
	s.Error(s.store.Put(models.Version{ID: domain.NewVersionID(), RootID: domain.NewRootID(), Kind: "Widget", Status: models.StatusDraft}))
	s.Error(s.store.Put(models.Version{ID: domain.NewVersionID(), RootID: domain.NewRootID(), Kind: models.KindService, Status: "Live"}))
	s.Error(s.store.Put(
		models.Version{ID: domain.NewVersionID(), RootID: domain.NewRootID(), Kind: models.KindService, Status: models.StatusDraft},
		models.LanguageAvailability{Language: "xx", Status: models.StatusPublished},
	))
}

func (s *InMemoryStoreSuite) TestLoadSeedRejectsUnknownFields() {
	err := New().LoadSeed(strings.NewReader("services:\n  - root: 6f1c1a52-0d5e-4c5e-9a55-1b7b0d3f0001\n    colour: blue\n"))
	s.Error(err)
}
