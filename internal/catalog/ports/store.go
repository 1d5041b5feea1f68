// Package ports defines the store collaborator the catalog engine reads from.
// Implementations live under internal/catalog/store.
package ports

import (
	"context"
	"iter"

	"servicecatalog/internal/catalog/models"
	"servicecatalog/pkg/domain"
)

// VersionQuery selects versions of one entity kind. Zero fields do not
// constrain; a query with only Kind returns every version of that kind.
type VersionQuery struct {
	Kind     models.EntityKind
	RootIDs  []domain.RootID
	Statuses []models.PublicationStatus
	Criteria *models.FilterCriteria
}

// Store opens point-in-time read handles.
type Store interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// Snapshot is a consistent read view. Sequences are finite, lazily
// evaluated and not restartable; an error is yielded once and ends the
// sequence. A Snapshot is safe for concurrent reads and must be closed.
type Snapshot interface {
	QueryVersions(ctx context.Context, q VersionQuery) iter.Seq2[models.Version, error]
	QueryLanguageAvailability(ctx context.Context, versionIDs []domain.VersionID) iter.Seq2[models.LanguageAvailability, error]
	QueryOrganizationsByIDs(ctx context.Context, ids []domain.RootID) iter.Seq2[models.Version, error]
	QueryChannelsByIDs(ctx context.Context, ids []domain.RootID) iter.Seq2[models.Version, error]
	Close() error
}

// CollectVersions drains seq.
func CollectVersions(seq iter.Seq2[models.Version, error]) ([]models.Version, error) {
	var out []models.Version
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
