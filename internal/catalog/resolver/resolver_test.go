package resolver

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicecatalog/internal/catalog/models"
	"servicecatalog/pkg/domain"
	dErrors "servicecatalog/pkg/domain-errors"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func version(root domain.RootID, st models.PublicationStatus, age int) models.Version {
	return models.Version{
		ID:      domain.NewVersionID(),
		RootID:  root,
		Status:  st,
		Created: base.Add(time.Duration(age) * time.Hour),
	}
}

func TestResolvePublished(t *testing.T) {
	root := domain.NewRootID()
	pub := version(root, models.StatusPublished, 1)
	versions := []models.Version{
		version(root, models.StatusOldPublished, 0),
		pub,
		version(root, models.StatusModified, 2),
	}

	got, err := Resolve(root, versions, models.ModePublished)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, pub.ID, got.ID)

	t.Run("no published version is not found", func(t *testing.T) {
		got, err := Resolve(root, versions[2:], models.ModePublished)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("two published versions are inconsistent", func(t *testing.T) {
		second := version(root, models.StatusPublished, 3)
		_, err := Resolve(root, append(versions, second), models.ModePublished)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInconsistentData))

		var inc *InconsistentError
		require.True(t, errors.As(err, &inc))
		assert.ElementsMatch(t, []domain.VersionID{pub.ID, second.ID}, inc.VersionIDs)
	})
}

func TestResolveLatest(t *testing.T) {
	root := domain.NewRootID()
	newest := version(root, models.StatusDeleted, 5)
	versions := []models.Version{
		version(root, models.StatusPublished, 1),
		newest,
		version(root, models.StatusModified, 3),
	}

	got, err := Resolve(root, versions, models.ModeLatest)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, got.ID)
}

func TestResolveLatestActive(t *testing.T) {
	root := domain.NewRootID()
	modified := version(root, models.StatusModified, 3)
	versions := []models.Version{
		version(root, models.StatusPublished, 1),
		modified,
		version(root, models.StatusDeleted, 5),
		version(root, models.StatusOldPublished, 4),
	}

	got, err := Resolve(root, versions, models.ModeLatestActive)
	require.NoError(t, err)
	assert.Equal(t, modified.ID, got.ID)

	t.Run("never returns archived states", func(t *testing.T) {
		archived := []models.Version{
			version(root, models.StatusDeleted, 5),
			version(root, models.StatusOldPublished, 4),
			version(root, models.StatusRemoved, 6),
		}
		got, err := Resolve(root, archived, models.ModeLatestActive)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestResolveIgnoresOtherRoots(t *testing.T) {
	root, other := domain.NewRootID(), domain.NewRootID()
	versions := []models.Version{version(other, models.StatusPublished, 1)}

	got, err := Resolve(root, versions, models.ModePublished)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = Resolve(root, versions, models.ModeLatest)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveRejectsUnknownMode(t *testing.T) {
	_, err := Resolve(domain.NewRootID(), nil, models.ResolutionMode("Oldest"))
	assert.True(t, dErrors.IsCallerError(err))
}

func TestGroupByRoot(t *testing.T) {
	a, b := domain.NewRootID(), domain.NewRootID()
	va1, vb, va2 := version(a, models.StatusDraft, 1), version(b, models.StatusDraft, 1), version(a, models.StatusDraft, 2)

	groups := GroupByRoot([]models.Version{va1, vb, va2})
	assert.Len(t, groups, 2)
	assert.Equal(t, []models.Version{va1, va2}, groups[a])
}
