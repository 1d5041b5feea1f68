package service

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"servicecatalog/internal/catalog/cache"
	"servicecatalog/internal/catalog/filter"
	"servicecatalog/internal/catalog/ledger"
	"servicecatalog/internal/catalog/metrics"
	"servicecatalog/internal/catalog/models"
	"servicecatalog/internal/catalog/ports"
	"servicecatalog/internal/catalog/projection"
	"servicecatalog/internal/catalog/resolver"
	"servicecatalog/internal/catalog/schema"
	"servicecatalog/internal/catalog/template"
	"servicecatalog/pkg/domain"
)

// GetOptions configures a single lookup. A zero Mode means Published and a
// zero Language means the default language.
type GetOptions struct {
	SchemaVersion           domain.SchemaVersion
	Mode                    models.ResolutionMode
	AttachAllTemplateData   bool
	IncludeProposedChannels bool
	Language                domain.Language
}

// ListOptions configures an id-list lookup. Id lists always resolve the
// Published version.
type ListOptions struct {
	SchemaVersion           domain.SchemaVersion
	AttachAllTemplateData   bool
	IncludeProposedChannels bool
	Language                domain.Language
}

// GetByID resolves one service root. found is false when no version
// satisfies the mode or, in Published mode, when the root has no published
// language.
func (s *Service) GetByID(ctx context.Context, root domain.RootID, opts GetOptions) (svc *schema.Service, found bool, err error) {
	ctx, finish := s.start(ctx, opGetByID)
	defer finish(&err)

	if err := s.CheckSchemaVersion(opts.SchemaVersion); err != nil {
		return nil, false, err
	}
	if opts.Mode == "" {
		opts.Mode = models.ModePublished
	}
	opts.Language = s.language(opts.Language)

	load := func(ctx context.Context) (*schema.Service, bool, error) {
		snap, err := s.store.Snapshot(ctx)
		if err != nil {
			return nil, false, storeError(err, "open snapshot")
		}
		defer snap.Close()
		return s.assemble(ctx, snap, root, opts)
	}

	if opts.Mode == models.ModePublished && !opts.AttachAllTemplateData && !opts.IncludeProposedChannels {
		svc, found, err = s.cache.GetOrLoad(ctx, cache.Key{
			Root:     root,
			Schema:   opts.SchemaVersion,
			Language: opts.Language,
		}, load)
	} else {
		svc, found, err = load(ctx)
	}

	switch {
	case err != nil:
		s.metrics.IncrementResolution(string(opts.Mode), metrics.OutcomeError)
	case !found:
		s.metrics.IncrementResolution(string(opts.Mode), metrics.OutcomeNotFound)
	default:
		s.metrics.IncrementResolution(string(opts.Mode), metrics.OutcomeFound)
	}
	return svc, found, err
}

// GetByIDList resolves the Published version of each root. Duplicate ids are
// ignored and results keep request order; roots that are not visible are
// left out. More than the configured cap of ids is a caller error, checked
// before duplicates are removed.
func (s *Service) GetByIDList(ctx context.Context, roots []domain.RootID, opts ListOptions) (out []schema.Service, err error) {
	ctx, finish := s.start(ctx, opGetByIDList)
	defer finish(&err)

	if err := s.CheckSchemaVersion(opts.SchemaVersion); err != nil {
		return nil, err
	}
	if err := filter.CheckBatch(len(roots), s.maxBatch); err != nil {
		return nil, err
	}
	unique := filter.UniqueRoots(roots)

	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, storeError(err, "open snapshot")
	}
	defer snap.Close()

	get := GetOptions{
		SchemaVersion:           opts.SchemaVersion,
		Mode:                    models.ModePublished,
		AttachAllTemplateData:   opts.AttachAllTemplateData,
		IncludeProposedChannels: opts.IncludeProposedChannels,
		Language:                s.language(opts.Language),
	}
	results := make([]*schema.Service, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.fanOut, 1))
	for i, root := range unique {
		g.Go(func() error {
			svc, found, err := s.assemble(gctx, snap, root, get)
			if err != nil {
				return err
			}
			if found {
				results[i] = svc
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out = make([]schema.Service, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// assemble runs the full pipeline for one root inside snap.
func (s *Service) assemble(ctx context.Context, snap ports.Snapshot, root domain.RootID, opts GetOptions) (*schema.Service, bool, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.assemble")
	defer span.End()
	span.SetAttributes(
		attribute.String("catalog.root_id", root.String()),
		attribute.String("catalog.mode", string(opts.Mode)),
		attribute.Int("catalog.schema_version", int(opts.SchemaVersion)),
	)

	versions, err := ports.CollectVersions(snap.QueryVersions(ctx, ports.VersionQuery{
		Kind:    models.KindService,
		RootIDs: []domain.RootID{root},
	}))
	if err != nil {
		return nil, false, storeError(err, "query service versions")
	}
	v, err := resolver.Resolve(root, versions, opts.Mode)
	if err != nil || v == nil {
		return nil, false, err
	}

	led, err := ledger.Collect(snap.QueryLanguageAvailability(ctx, versionIDs(versions)))
	if err != nil {
		return nil, false, storeError(err, "query language availability")
	}
	gated := opts.Mode == models.ModePublished
	if gated && !led.RootHasPublished(versions) {
		return nil, false, nil
	}

	tmpl, err := s.template(ctx, snap, v.TemplateID)
	if err != nil {
		return nil, false, err
	}
	view := s.merger.Merge(*v, tmpl, template.Options{
		AttachAll:               opts.AttachAllTemplateData,
		IncludeProposedChannels: opts.IncludeProposedChannels,
	})
	view.Languages = led.Languages(v.ID)
	if gated {
		langs := led.PublishedLanguages(v.ID)
		view.Version = view.Version.InLanguages(langs)
		view.TemplateDescriptions = inLanguages(view.TemplateDescriptions, langs)
	}

	rel, err := s.related(ctx, snap, view.Version, led)
	if err != nil {
		return nil, false, err
	}
	if err := projection.Project(&view, rel, led, opts.Language); err != nil {
		return nil, false, err
	}

	out, err := s.adapter.Adapt(&view, opts.SchemaVersion)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// template returns the published version of the linked general description,
// nil when there is no link or nothing is published.
func (s *Service) template(ctx context.Context, snap ports.Snapshot, id *domain.RootID) (*models.Version, error) {
	if id == nil {
		return nil, nil
	}
	versions, err := ports.CollectVersions(snap.QueryVersions(ctx, ports.VersionQuery{
		Kind:    models.KindGeneralDescription,
		RootIDs: []domain.RootID{*id},
	}))
	if err != nil {
		return nil, storeError(err, "query general description")
	}
	return resolver.Resolve(*id, versions, models.ModePublished)
}

// related loads every version of the referenced organizations and channels
// and adds their language availability to led.
func (s *Service) related(ctx context.Context, snap ports.Snapshot, v models.Version, led *ledger.Ledger) (projection.Related, error) {
	orgIDs, channelIDs := projection.ReferencedIDs(v)
	rel := projection.Related{
		Organizations: map[domain.RootID][]models.Version{},
		Channels:      map[domain.RootID][]models.Version{},
	}
	var ids []domain.VersionID

	if len(orgIDs) > 0 {
		orgs, err := ports.CollectVersions(snap.QueryOrganizationsByIDs(ctx, orgIDs))
		if err != nil {
			return rel, storeError(err, "query organizations")
		}
		rel.Organizations = resolver.GroupByRoot(orgs)
		ids = append(ids, versionIDs(orgs)...)
	}
	if len(channelIDs) > 0 {
		channels, err := ports.CollectVersions(snap.QueryChannelsByIDs(ctx, channelIDs))
		if err != nil {
			return rel, storeError(err, "query channels")
		}
		rel.Channels = resolver.GroupByRoot(channels)
		ids = append(ids, versionIDs(channels)...)
	}
	if len(ids) == 0 {
		return rel, nil
	}

	related, err := ledger.Collect(snap.QueryLanguageAvailability(ctx, ids))
	if err != nil {
		return rel, storeError(err, "query related language availability")
	}
	led.Merge(related)
	return rel, nil
}

func versionIDs(versions []models.Version) []domain.VersionID {
	ids := make([]domain.VersionID, len(versions))
	for i, v := range versions {
		ids[i] = v.ID
	}
	return ids
}

func inLanguages(texts []models.LocalizedText, langs []domain.Language) []models.LocalizedText {
	var out []models.LocalizedText
	for _, t := range texts {
		if slices.Contains(langs, t.Language) {
			out = append(out, t)
		}
	}
	return out
}
