// Package filter narrows raw collection results to one visible version per
// root and pages the outcome.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"servicecatalog/internal/catalog/ledger"
	"servicecatalog/internal/catalog/models"
	"servicecatalog/internal/catalog/resolver"
	"servicecatalog/pkg/domain"
	dErrors "servicecatalog/pkg/domain-errors"
)

// DefaultMaxBatch is the id-list cap used when none is configured.
const DefaultMaxBatch = 100

// Deduplicate keeps at most one version per root for class, judging
// visibility on versions alone. Use DeduplicateVisible when versions is a
// status-filtered subset of each root's history.
func Deduplicate(versions []models.Version, led *ledger.Ledger, class models.VisibilityClass) []models.Version {
	return DeduplicateVisible(versions, VisibleRoots(versions, led), class)
}

// VisibleRoots reports the roots of history with a published language in
// any of their versions.
func VisibleRoots(history []models.Version, led *ledger.Ledger) map[domain.RootID]bool {
	visible := make(map[domain.RootID]bool)
	for root, group := range resolver.GroupByRoot(history) {
		if led.RootHasPublished(group) {
			visible[root] = true
		}
	}
	return visible
}

// DeduplicateVisible keeps at most one version per visible root for class.
// The result is ordered newest first, then by root id.
func DeduplicateVisible(versions []models.Version, visible map[domain.RootID]bool, class models.VisibilityClass) []models.Version {
	preference := class.Statuses()
	if len(preference) == 0 {
		return nil
	}

	groups := resolver.GroupByRoot(versions)
	out := make([]models.Version, 0, len(groups))
	for root, group := range groups {
		if !visible[root] {
			continue
		}
		if v, ok := pick(group, preference); ok {
			out = append(out, v)
		}
	}
	Sort(out)
	return out
}

// pick returns the most recent version holding the first status in
// preference that any version of the group holds.
func pick(group []models.Version, preference []models.PublicationStatus) (models.Version, bool) {
	for _, st := range preference {
		var best *models.Version
		for i := range group {
			v := &group[i]
			if v.Status != st {
				continue
			}
			if best == nil || v.After(*best) {
				best = v
			}
		}
		if best != nil {
			return *best, true
		}
	}
	return models.Version{}, false
}

// Sort orders versions newest first with root id as the tie breaker so pages
// are stable across calls.
func Sort(versions []models.Version) {
	slices.SortStableFunc(versions, func(a, b models.Version) int {
		if c := b.Created.Compare(a.Created); c != 0 {
			return c
		}
		return strings.Compare(a.RootID.String(), b.RootID.String())
	})
}

// CheckBatch rejects id lists longer than limit. The raw count is checked
// before duplicates are removed.
func CheckBatch(n, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxBatch
	}
	if n > limit {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("at most %d ids may be requested, got %d", limit, n))
	}
	return nil
}

// UniqueRoots removes duplicate and nil ids, preserving first occurrence.
func UniqueRoots(ids []domain.RootID) []domain.RootID {
	seen := make(map[domain.RootID]struct{}, len(ids))
	out := make([]domain.RootID, 0, len(ids))
	for _, id := range ids {
		if id.IsNil() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
