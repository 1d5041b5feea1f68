// Package postgres is the PostgreSQL store. Filterable columns are
// denormalized next to a JSONB copy of the full version.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/lib/pq"

	"servicecatalog/internal/catalog/models"
	"servicecatalog/internal/catalog/ports"
	"servicecatalog/pkg/domain"
	"servicecatalog/pkg/platform/tx"
)

//go:embed schema.sql
var Schema string

// PostgresStore reads versions through read-only repeatable-read snapshots.
type PostgresStore struct {
	db *sql.DB
}

func New(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies the schema. Statements are idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply catalog schema: %w", err)
	}
	return nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// conn returns the transaction carried by ctx, or the pool.
func (s *PostgresStore) conn(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

// Snapshot opens a read-only repeatable-read transaction.
func (s *PostgresStore) Snapshot(ctx context.Context) (ports.Snapshot, error) {
	t, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	return &snapshot{store: s, tx: t}, nil
}

// Upsert writes v and replaces its language availability rows in one
// transaction. It joins a transaction already carried by ctx.
func (s *PostgresStore) Upsert(ctx context.Context, v models.Version, langs ...models.LanguageAvailability) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		return s.upsert(ctx, v, langs)
	})
}

func (s *PostgresStore) upsert(ctx context.Context, v models.Version, langs []models.LanguageAvailability) error {
	content, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode version %s: %w", v.ID, err)
	}
	areaTypes, areaRefs := areaColumns(v.Areas)
	q := s.conn(ctx)
	_, err = q.ExecContext(ctx, `
		INSERT INTO catalog_versions (
			id, root_id, kind, status, created_at, modified_at,
			service_type, target_groups, area_types, area_refs, organization_ids, content
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::uuid[], $12)
		ON CONFLICT (id) DO UPDATE SET
			root_id = EXCLUDED.root_id,
			kind = EXCLUDED.kind,
			status = EXCLUDED.status,
			created_at = EXCLUDED.created_at,
			modified_at = EXCLUDED.modified_at,
			service_type = EXCLUDED.service_type,
			target_groups = EXCLUDED.target_groups,
			area_types = EXCLUDED.area_types,
			area_refs = EXCLUDED.area_refs,
			organization_ids = EXCLUDED.organization_ids,
			content = EXCLUDED.content
	`,
		v.ID.String(), v.RootID.String(), string(v.Kind), string(v.Status), v.Created, v.Modified,
		v.Type, pq.Array(nonNil(v.TargetGroups)), pq.Array(areaTypes), pq.Array(areaRefs),
		pq.Array(organizationIDs(v)), content,
	)
	if err != nil {
		return fmt.Errorf("upsert version %s: %w", v.ID, err)
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM catalog_language_availability WHERE version_id = $1`, v.ID.String()); err != nil {
		return fmt.Errorf("clear language availability %s: %w", v.ID, err)
	}
	if len(langs) == 0 {
		return nil
	}
	languages := make([]string, len(langs))
	statuses := make([]string, len(langs))
	for i, l := range langs {
		languages[i] = string(l.Language)
		statuses[i] = string(l.Status)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO catalog_language_availability (version_id, language, status)
		SELECT $1, l, s FROM unnest($2::text[], $3::text[]) AS t(l, s)
	`, v.ID.String(), pq.Array(languages), pq.Array(statuses))
	if err != nil {
		return fmt.Errorf("insert language availability %s: %w", v.ID, err)
	}
	return nil
}

// snapshot serializes queries on its transaction; a connection cannot run
// two statements at once. Each query is read fully before yielding.
type snapshot struct {
	store *PostgresStore
	tx    *sql.Tx
	mu    sync.Mutex
}

func (s *snapshot) QueryVersions(ctx context.Context, q ports.VersionQuery) iter.Seq2[models.Version, error] {
	return func(yield func(models.Version, error) bool) {
		query, args := buildVersionQuery(q)
		versions, err := s.readVersions(ctx, query, args)
		if err != nil {
			yield(models.Version{}, err)
			return
		}
		for _, v := range versions {
			if !yield(v, nil) {
				return
			}
		}
	}
}

func (s *snapshot) QueryLanguageAvailability(ctx context.Context, ids []domain.VersionID) iter.Seq2[models.LanguageAvailability, error] {
	return func(yield func(models.LanguageAvailability, error) bool) {
		if len(ids) == 0 {
			return
		}
		rows, err := s.readAvailability(ctx, ids)
		if err != nil {
			yield(models.LanguageAvailability{}, err)
			return
		}
		for _, r := range rows {
			if !yield(r, nil) {
				return
			}
		}
	}
}

func (s *snapshot) QueryOrganizationsByIDs(ctx context.Context, ids []domain.RootID) iter.Seq2[models.Version, error] {
	return s.QueryVersions(ctx, ports.VersionQuery{Kind: models.KindOrganization, RootIDs: nonEmptyRoots(ids)})
}

func (s *snapshot) QueryChannelsByIDs(ctx context.Context, ids []domain.RootID) iter.Seq2[models.Version, error] {
	return s.QueryVersions(ctx, ports.VersionQuery{Kind: models.KindChannel, RootIDs: nonEmptyRoots(ids)})
}

// Close ends the read-only transaction.
func (s *snapshot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}

func (s *snapshot) readVersions(ctx context.Context, query string, args []any) ([]models.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.store.conn(tx.WithTx(ctx, s.tx)).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query versions: %w", err)
	}
	defer rows.Close()

	var out []models.Version
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		var v models.Version
		if err := json.Unmarshal(content, &v); err != nil {
			return nil, fmt.Errorf("decode version: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}
	return out, nil
}

func (s *snapshot) readAvailability(ctx context.Context, ids []domain.VersionID) ([]models.LanguageAvailability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	rows, err := s.store.conn(tx.WithTx(ctx, s.tx)).QueryContext(ctx, `
		SELECT version_id, language, status
		FROM catalog_language_availability
		WHERE version_id = ANY($1::uuid[])
		ORDER BY version_id, language
	`, pq.Array(strs))
	if err != nil {
		return nil, fmt.Errorf("query language availability: %w", err)
	}
	defer rows.Close()

	var out []models.LanguageAvailability
	for rows.Next() {
		var vid, lang, status string
		if err := rows.Scan(&vid, &lang, &status); err != nil {
			return nil, fmt.Errorf("scan language availability: %w", err)
		}
		id, err := domain.ParseVersionID(vid)
		if err != nil {
			return nil, fmt.Errorf("language availability version id: %w", err)
		}
		out = append(out, models.LanguageAvailability{
			VersionID: id,
			Language:  domain.Language(lang),
			Status:    models.PublicationStatus(status),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate language availability: %w", err)
	}
	return out, nil
}

// buildVersionQuery renders q as SQL with positional arguments.
func buildVersionQuery(q ports.VersionQuery) (string, []any) {
	var b strings.Builder
	args := []any{string(q.Kind)}
	b.WriteString("SELECT content FROM catalog_versions WHERE kind = $1")

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.RootIDs != nil {
		ids := make([]string, len(q.RootIDs))
		for i, id := range q.RootIDs {
			ids[i] = id.String()
		}
		b.WriteString(" AND root_id = ANY(" + arg(pq.Array(ids)) + "::uuid[])")
	}
	if len(q.Statuses) > 0 {
		sts := make([]string, len(q.Statuses))
		for i, st := range q.Statuses {
			sts[i] = string(st)
		}
		b.WriteString(" AND status = ANY(" + arg(pq.Array(sts)) + "::text[])")
	}
	if c := q.Criteria; c != nil {
		if c.ModifiedFrom != nil {
			b.WriteString(" AND modified_at >= " + arg(*c.ModifiedFrom))
		}
		if c.ModifiedTo != nil {
			b.WriteString(" AND modified_at <= " + arg(*c.ModifiedTo))
		}
		if c.ServiceType != "" {
			b.WriteString(" AND service_type = " + arg(c.ServiceType))
		}
		if c.TargetGroup != "" {
			b.WriteString(" AND " + arg(c.TargetGroup) + " = ANY(target_groups)")
		}
		if c.AreaType != "" {
			if len(c.AreaCodes) > 0 {
				refs := make([]string, len(c.AreaCodes))
				for i, code := range c.AreaCodes {
					refs[i] = areaRef(c.AreaType, code)
				}
				b.WriteString(" AND area_refs && " + arg(pq.Array(refs)) + "::text[]")
			} else {
				b.WriteString(" AND " + arg(c.AreaType) + " = ANY(area_types)")
			}
		}
		if c.OrganizationID != nil {
			b.WriteString(" AND " + arg(c.OrganizationID.String()) + "::uuid = ANY(organization_ids)")
		}
	}
	b.WriteString(" ORDER BY root_id, created_at, id")
	return b.String(), args
}

func areaRef(areaType, code string) string { return areaType + ":" + code }

func areaColumns(areas []models.Area) (types, refs []string) {
	types, refs = []string{}, []string{}
	for _, a := range areas {
		refs = append(refs, areaRef(a.Type, a.Code))
		if !slices.Contains(types, a.Type) {
			types = append(types, a.Type)
		}
	}
	return types, refs
}

func organizationIDs(v models.Version) []string {
	out := []string{}
	if v.OrganizationID != nil {
		out = append(out, v.OrganizationID.String())
	}
	for _, r := range v.Roles {
		out = append(out, r.OrganizationID.String())
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonEmptyRoots(ids []domain.RootID) []domain.RootID {
	if ids == nil {
		return []domain.RootID{}
	}
	return ids
}
