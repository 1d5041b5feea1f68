// Package resolver picks the version of a root that answers a lookup.
package resolver

import (
	"strings"

	"servicecatalog/internal/catalog/models"
	"servicecatalog/pkg/domain"
	dErrors "servicecatalog/pkg/domain-errors"
)

// InconsistentError reports a root holding more than one Published version.
type InconsistentError struct {
	RootID     domain.RootID
	VersionIDs []domain.VersionID
}

func (e *InconsistentError) Error() string {
	ids := make([]string, len(e.VersionIDs))
	for i, id := range e.VersionIDs {
		ids[i] = id.String()
	}
	return "root " + e.RootID.String() + " has multiple published versions: " + strings.Join(ids, ",")
}

// Resolve returns the version of root selected by mode, or nil when no
// version qualifies. Versions belonging to other roots are ignored.
//
// A root with more than one Published version is reported as
// CodeInconsistentData wrapping an *InconsistentError.
func Resolve(root domain.RootID, versions []models.Version, mode models.ResolutionMode) (*models.Version, error) {
	switch mode {
	case models.ModePublished:
		return published(root, versions)
	case models.ModeLatest:
		return latest(root, versions, func(models.PublicationStatus) bool { return true }), nil
	case models.ModeLatestActive:
		return latest(root, versions, models.PublicationStatus.IsActive), nil
	default:
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid resolution mode: "+string(mode))
	}
}

func published(root domain.RootID, versions []models.Version) (*models.Version, error) {
	var found *models.Version
	var conflict []domain.VersionID
	for i := range versions {
		v := &versions[i]
		if v.RootID != root || v.Status != models.StatusPublished {
			continue
		}
		if found != nil {
			if conflict == nil {
				conflict = []domain.VersionID{found.ID}
			}
			conflict = append(conflict, v.ID)
			continue
		}
		found = v
	}
	if conflict != nil {
		return nil, dErrors.Wrap(&InconsistentError{RootID: root, VersionIDs: conflict},
			dErrors.CodeInconsistentData, "inconsistent publication state")
	}
	return found, nil
}

func latest(root domain.RootID, versions []models.Version, eligible func(models.PublicationStatus) bool) *models.Version {
	var best *models.Version
	for i := range versions {
		v := &versions[i]
		if v.RootID != root || !eligible(v.Status) {
			continue
		}
		if best == nil || v.After(*best) {
			best = v
		}
	}
	return best
}

// GroupByRoot buckets versions by root, preserving input order per root.
func GroupByRoot(versions []models.Version) map[domain.RootID][]models.Version {
	out := make(map[domain.RootID][]models.Version)
	for _, v := range versions {
		out[v.RootID] = append(out[v.RootID], v)
	}
	return out
}
