// Package memory is an arena store: versions keyed by kind and root, plus
// language availability rows keyed by version.
package memory

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"

	"servicecatalog/internal/catalog/models"
	"servicecatalog/internal/catalog/ports"
	"servicecatalog/pkg/domain"
)

type arena map[models.EntityKind]map[domain.RootID][]models.Version

// InMemory holds every version in process memory. Writes never modify a
// slice a snapshot may hold; they replace it.
type InMemory struct {
	mu           sync.RWMutex
	versions     arena
	availability map[domain.VersionID][]models.LanguageAvailability
}

func New() *InMemory {
	return &InMemory{
		versions:     make(arena),
		availability: make(map[domain.VersionID][]models.LanguageAvailability),
	}
}

// Put stores v and replaces its language availability rows. A version with
// the same id is replaced.
func (s *InMemory) Put(v models.Version, langs ...models.LanguageAvailability) error {
	if v.ID.IsNil() || v.RootID.IsNil() {
		return fmt.Errorf("version and root ids are required")
	}
	switch v.Kind {
	case models.KindService, models.KindGeneralDescription, models.KindOrganization, models.KindChannel:
	default:
		return fmt.Errorf("unknown entity kind %q", v.Kind)
	}
	if !v.Status.IsValid() {
		return fmt.Errorf("version %s: invalid status %q", v.ID, v.Status)
	}
	rows := make([]models.LanguageAvailability, 0, len(langs))
	for _, l := range langs {
		if !l.Language.IsValid() || !l.Status.IsValid() {
			return fmt.Errorf("version %s: invalid language row %s=%s", v.ID, l.Language, l.Status)
		}
		l.VersionID = v.ID
		rows = append(rows, l)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	byRoot, ok := s.versions[v.Kind]
	if !ok {
		byRoot = make(map[domain.RootID][]models.Version)
		s.versions[v.Kind] = byRoot
	}
	existing := byRoot[v.RootID]
	next := make([]models.Version, 0, len(existing)+1)
	for _, e := range existing {
		if e.ID != v.ID {
			next = append(next, e)
		}
	}
	byRoot[v.RootID] = append(next, v.Clone())
	s.availability[v.ID] = rows
	return nil
}

// Snapshot copies the arena index under the read lock. Version slices are
// shared because writers replace rather than mutate them.
func (s *InMemory) Snapshot(_ context.Context) (ports.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	versions := make(arena, len(s.versions))
	for kind, byRoot := range s.versions {
		versions[kind] = maps.Clone(byRoot)
	}
	return &snapshot{
		versions:     versions,
		availability: maps.Clone(s.availability),
	}, nil
}

type snapshot struct {
	versions     arena
	availability map[domain.VersionID][]models.LanguageAvailability
}

func (s *snapshot) QueryVersions(ctx context.Context, q ports.VersionQuery) iter.Seq2[models.Version, error] {
	return func(yield func(models.Version, error) bool) {
		byRoot := s.versions[q.Kind]
		roots := q.RootIDs
		if roots == nil {
			roots = sortedRoots(byRoot)
		}
		for _, root := range roots {
			for _, v := range byRoot[root] {
				if !matches(v, q) {
					continue
				}
				if err := ctx.Err(); err != nil {
					yield(models.Version{}, err)
					return
				}
				if !yield(v.Clone(), nil) {
					return
				}
			}
		}
	}
}

func (s *snapshot) QueryLanguageAvailability(ctx context.Context, ids []domain.VersionID) iter.Seq2[models.LanguageAvailability, error] {
	return func(yield func(models.LanguageAvailability, error) bool) {
		for _, id := range ids {
			for _, row := range s.availability[id] {
				if err := ctx.Err(); err != nil {
					yield(models.LanguageAvailability{}, err)
					return
				}
				if !yield(row, nil) {
					return
				}
			}
		}
	}
}

func (s *snapshot) QueryOrganizationsByIDs(ctx context.Context, ids []domain.RootID) iter.Seq2[models.Version, error] {
	return s.QueryVersions(ctx, ports.VersionQuery{Kind: models.KindOrganization, RootIDs: ids})
}

func (s *snapshot) QueryChannelsByIDs(ctx context.Context, ids []domain.RootID) iter.Seq2[models.Version, error] {
	return s.QueryVersions(ctx, ports.VersionQuery{Kind: models.KindChannel, RootIDs: ids})
}

func (s *snapshot) Close() error { return nil }

func matches(v models.Version, q ports.VersionQuery) bool {
	if len(q.Statuses) > 0 && !slices.Contains(q.Statuses, v.Status) {
		return false
	}
	if q.Criteria != nil && !q.Criteria.Matches(v) {
		return false
	}
	return true
}

func sortedRoots(byRoot map[domain.RootID][]models.Version) []domain.RootID {
	roots := slices.Collect(maps.Keys(byRoot))
	slices.SortFunc(roots, func(a, b domain.RootID) int {
		return strings.Compare(a.String(), b.String())
	})
	return roots
}
