package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicecatalog/internal/catalog/ledger"
	"servicecatalog/internal/catalog/models"
	"servicecatalog/internal/catalog/ports"
	"servicecatalog/pkg/domain"
)

var (
	rootA = domain.MustRootID("6f0a3c1e-0000-4000-8000-00000000000a")
	orgA  = domain.MustRootID("6f0a3c1e-0000-4000-8000-0000000000f1")
)

func setupMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func sampleVersion() models.Version {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.Version{
		ID:       domain.NewVersionID(),
		RootID:   rootA,
		Kind:     models.KindService,
		Status:   models.StatusPublished,
		Created:  created,
		Modified: created,
		Names: []models.LocalizedText{
			{Type: models.TextName, Language: domain.LanguageFinnish, Value: "Kirjasto"},
		},
		Type:           models.ServiceTypeService,
		OrganizationID: &orgA,
		Areas:          []models.Area{{Type: models.AreaMunicipality, Code: "091"}},
		TargetGroups:   []string{"KR1"},
	}
}

func TestBuildVersionQuery_KindOnly(t *testing.T) {
	query, args := buildVersionQuery(ports.VersionQuery{Kind: models.KindChannel})

	assert.Equal(t, "SELECT content FROM catalog_versions WHERE kind = $1 ORDER BY root_id, created_at, id", query)
	assert.Equal(t, []any{"Channel"}, args)
}

func TestBuildVersionQuery_AllConstraints(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	query, args := buildVersionQuery(ports.VersionQuery{
		Kind:     models.KindService,
		RootIDs:  []domain.RootID{rootA},
		Statuses: []models.PublicationStatus{models.StatusPublished, models.StatusModified},
		Criteria: &models.FilterCriteria{
			ModifiedFrom:   &from,
			ModifiedTo:     &to,
			ServiceType:    models.ServiceTypeService,
			TargetGroup:    "KR1",
			AreaType:       models.AreaMunicipality,
			AreaCodes:      []string{"091", "049"},
			OrganizationID: &orgA,
		},
	})

	assert.Contains(t, query, "root_id = ANY($2::uuid[])")
	assert.Contains(t, query, "status = ANY($3::text[])")
	assert.Contains(t, query, "modified_at >= $4")
	assert.Contains(t, query, "modified_at <= $5")
	assert.Contains(t, query, "service_type = $6")
	assert.Contains(t, query, "$7 = ANY(target_groups)")
	assert.Contains(t, query, "area_refs && $8::text[]")
	assert.Contains(t, query, "$9::uuid = ANY(organization_ids)")
	assert.Len(t, args, 9)
	assert.Equal(t, orgA.String(), args[8])
}

func TestBuildVersionQuery_AreaTypeWithoutCodes(t *testing.T) {
	query, args := buildVersionQuery(ports.VersionQuery{
		Kind:     models.KindService,
		Criteria: &models.FilterCriteria{AreaType: models.AreaMunicipality},
	})

	assert.Contains(t, query, "$2 = ANY(area_types)")
	assert.NotContains(t, query, "area_refs")
	assert.Equal(t, models.AreaMunicipality, args[1])
}

func TestSnapshot_QueryVersionsDecodesContent(t *testing.T) {
	store, mock := setupMockStore(t)
	v := sampleVersion()
	content, err := json.Marshal(v)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT content FROM catalog_versions WHERE kind = \$1 AND root_id = ANY`).
		WithArgs("Service", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"content"}).AddRow(content))
	mock.ExpectRollback()

	ctx := context.Background()
	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)

	got, err := ports.CollectVersions(snap.QueryVersions(ctx, ports.VersionQuery{
		Kind:    models.KindService,
		RootIDs: []domain.RootID{rootA},
	}))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, v.ID, got[0].ID)
	assert.Equal(t, rootA, got[0].RootID)
	assert.True(t, v.Created.Equal(got[0].Created))
	assert.Equal(t, "Kirjasto", got[0].Names[0].Value)

	require.NoError(t, snap.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshot_QueryErrorIsYieldedOnce(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT content FROM catalog_versions`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	ctx := context.Background()
	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)

	var errs int
	for _, err := range snap.QueryVersions(ctx, ports.VersionQuery{Kind: models.KindService}) {
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		errs++
	}
	assert.Equal(t, 1, errs)

	require.NoError(t, snap.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshot_LanguageAvailability(t *testing.T) {
	store, mock := setupMockStore(t)
	vid := domain.NewVersionID()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM catalog_language_availability`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"version_id", "language", "status"}).
			AddRow(vid.String(), "fi", "Published").
			AddRow(vid.String(), "sv", "Draft"))
	mock.ExpectRollback()

	ctx := context.Background()
	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)

	led, err := ledger.Collect(snap.QueryLanguageAvailability(ctx, []domain.VersionID{vid}))
	require.NoError(t, err)
	assert.True(t, led.IsPublished(vid, domain.LanguageFinnish))
	assert.False(t, led.IsPublished(vid, domain.LanguageSwedish))

	require.NoError(t, snap.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshot_EmptyIDListSkipsQuery(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	ctx := context.Background()
	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)

	for range snap.QueryLanguageAvailability(ctx, nil) {
		t.Fatal("expected no rows")
	}

	require.NoError(t, snap.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_WritesVersionAndLanguages(t *testing.T) {
	store, mock := setupMockStore(t)
	v := sampleVersion()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO catalog_versions`).
		WithArgs(
			v.ID.String(), v.RootID.String(), "Service", "Published",
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM catalog_language_availability`).
		WithArgs(v.ID.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO catalog_language_availability`).
		WithArgs(v.ID.String(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := store.Upsert(context.Background(), v,
		models.LanguageAvailability{VersionID: v.ID, Language: domain.LanguageFinnish, Status: models.StatusPublished},
		models.LanguageAvailability{VersionID: v.ID, Language: domain.LanguageSwedish, Status: models.StatusDraft},
	)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_RollsBackOnFailure(t *testing.T) {
	store, mock := setupMockStore(t)
	v := sampleVersion()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO catalog_versions`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.Upsert(context.Background(), v)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAreaColumns(t *testing.T) {
	types, refs := areaColumns([]models.Area{
		{Type: models.AreaMunicipality, Code: "091"},
		{Type: models.AreaMunicipality, Code: "049"},
		{Type: models.AreaProvince, Code: "01"},
	})

	assert.Equal(t, []string{models.AreaMunicipality, models.AreaProvince}, types)
	assert.Equal(t, []string{"Municipality:091", "Municipality:049", "Province:01"}, refs)
}
