// Package ledger indexes per-version, per-language publication state for the
// duration of one query.
package ledger

import (
	"iter"
	"maps"
	"slices"

	"servicecatalog/internal/catalog/models"
	"servicecatalog/pkg/domain"
)

// Ledger answers language visibility questions. The zero value is empty and
// usable. A Ledger is read-only after construction.
type Ledger struct {
	rows map[domain.VersionID]map[domain.Language]models.PublicationStatus
}

// New indexes rows. A later row for the same version and language replaces
// an earlier one.
func New(rows ...models.LanguageAvailability) *Ledger {
	l := &Ledger{rows: make(map[domain.VersionID]map[domain.Language]models.PublicationStatus)}
	for _, r := range rows {
		l.add(r)
	}
	return l
}

// Collect drains a store sequence into a ledger, stopping at the first error.
func Collect(seq iter.Seq2[models.LanguageAvailability, error]) (*Ledger, error) {
	l := New()
	for row, err := range seq {
		if err != nil {
			return nil, err
		}
		l.add(row)
	}
	return l, nil
}

// Merge folds other into l. Rows in other win on conflict.
func (l *Ledger) Merge(other *Ledger) {
	if other == nil {
		return
	}
	if l.rows == nil {
		l.rows = make(map[domain.VersionID]map[domain.Language]models.PublicationStatus)
	}
	for vid, langs := range other.rows {
		for lang, st := range langs {
			l.add(models.LanguageAvailability{VersionID: vid, Language: lang, Status: st})
		}
	}
}

func (l *Ledger) add(r models.LanguageAvailability) {
	if l.rows == nil {
		l.rows = make(map[domain.VersionID]map[domain.Language]models.PublicationStatus)
	}
	byLang, ok := l.rows[r.VersionID]
	if !ok {
		byLang = make(map[domain.Language]models.PublicationStatus)
		l.rows[r.VersionID] = byLang
	}
	byLang[r.Language] = r.Status
}

// Status returns the recorded state of lang within the version.
func (l *Ledger) Status(vid domain.VersionID, lang domain.Language) (models.PublicationStatus, bool) {
	if l == nil {
		return "", false
	}
	st, ok := l.rows[vid][lang]
	return st, ok
}

func (l *Ledger) IsPublished(vid domain.VersionID, lang domain.Language) bool {
	st, ok := l.Status(vid, lang)
	return ok && st == models.StatusPublished
}

// HasPublished reports whether any language of the version is published.
func (l *Ledger) HasPublished(vid domain.VersionID) bool {
	if l == nil {
		return false
	}
	for _, st := range l.rows[vid] {
		if st == models.StatusPublished {
			return true
		}
	}
	return false
}

// PublishedLanguages lists the version's published languages in code order.
func (l *Ledger) PublishedLanguages(vid domain.VersionID) []domain.Language {
	if l == nil {
		return nil
	}
	var out []domain.Language
	for lang, st := range l.rows[vid] {
		if st == models.StatusPublished {
			out = append(out, lang)
		}
	}
	slices.Sort(out)
	return out
}

// RootHasPublished reports whether any of the versions has a published
// language.
func (l *Ledger) RootHasPublished(versions []models.Version) bool {
	for _, v := range versions {
		if l.HasPublished(v.ID) {
			return true
		}
	}
	return false
}

// Languages returns a copy of every recorded language state of the version.
func (l *Ledger) Languages(vid domain.VersionID) map[domain.Language]models.PublicationStatus {
	if l == nil || l.rows[vid] == nil {
		return map[domain.Language]models.PublicationStatus{}
	}
	return maps.Clone(l.rows[vid])
}
