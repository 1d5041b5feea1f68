package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"servicecatalog/internal/catalog/filter"
	"servicecatalog/internal/catalog/ledger"
	"servicecatalog/internal/catalog/models"
	"servicecatalog/internal/catalog/ports"
	"servicecatalog/internal/catalog/schema"
	"servicecatalog/pkg/domain"
	dErrors "servicecatalog/pkg/domain-errors"
)

// GetByFilter pages the services matching criteria, one version per root
// chosen by class. Roots without any published language are never listed.
// When criteria names a language only versions published in it are listed;
// that language also selects the summary names.
func (s *Service) GetByFilter(ctx context.Context, criteria models.FilterCriteria, page, pageSize int, class models.VisibilityClass) (res *models.PagedResult[schema.Summary], err error) {
	ctx, finish := s.start(ctx, opGetByFilter)
	defer finish(&err)

	if class == "" {
		class = models.VisibilityPublished
	}
	if !class.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid visibility class: "+string(class))
	}
	if err := criteria.Normalize(); err != nil {
		return nil, err
	}
	req, err := filter.PageRequest{Page: page, Size: pageSize}.Normalize(s.defaultPageSize, s.maxPageSize)
	if err != nil {
		return nil, err
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("catalog.visibility", string(class)),
		attribute.Int("catalog.page", req.Page),
	)

	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, storeError(err, "open snapshot")
	}
	defer snap.Close()

	// Service type can be inherited, so it is matched after the store query.
	storeCriteria := criteria
	storeCriteria.ServiceType = ""
	versions, err := ports.CollectVersions(snap.QueryVersions(ctx, ports.VersionQuery{
		Kind:     models.KindService,
		Statuses: class.Statuses(),
		Criteria: &storeCriteria,
	}))
	if err != nil {
		return nil, storeError(err, "query service versions")
	}
	if criteria.ServiceType != "" {
		if versions, err = s.matchServiceType(ctx, snap, versions, criteria.ServiceType); err != nil {
			return nil, err
		}
	}
	history, err := s.rootHistory(ctx, snap, versions)
	if err != nil {
		return nil, err
	}
	led, err := ledger.Collect(snap.QueryLanguageAvailability(ctx, versionIDs(history)))
	if err != nil {
		return nil, storeError(err, "query language availability")
	}

	candidates := filter.DeduplicateVisible(versions, filter.VisibleRoots(history, led), class)
	if criteria.Language != "" {
		kept := candidates[:0]
		for _, v := range candidates {
			if led.IsPublished(v.ID, criteria.Language) {
				kept = append(kept, v)
			}
		}
		candidates = kept
	}

	lang := s.language(criteria.Language)
	paged := filter.Paginate(candidates, req)
	out := models.PagedResult[schema.Summary]{
		Items:      make([]schema.Summary, 0, len(paged.Items)),
		Page:       paged.Page,
		PageSize:   paged.PageSize,
		PageCount:  paged.PageCount,
		TotalCount: paged.TotalCount,
	}
	for _, v := range paged.Items {
		out.Items = append(out.Items, schema.Summarize(v, summaryName(v, led, lang)))
	}
	return &out, nil
}

// matchServiceType keeps versions whose own type is want, or whose type is
// unset and inherited as want from an inheritable general description.
func (s *Service) matchServiceType(ctx context.Context, snap ports.Snapshot, versions []models.Version, want string) ([]models.Version, error) {
	inherited := map[domain.RootID]string{}
	out := versions[:0]
	for _, v := range versions {
		typ := v.Type
		if typ == "" && v.TemplateID != nil {
			t, ok := inherited[*v.TemplateID]
			if !ok {
				tmpl, err := s.template(ctx, snap, v.TemplateID)
				if err != nil {
					return nil, err
				}
				if tmpl != nil && s.merger.Inheritable(tmpl.TemplateKind) {
					t = tmpl.Type
				}
				inherited[*v.TemplateID] = t
			}
			typ = t
		}
		if typ == want {
			out = append(out, v)
		}
	}
	return out, nil
}

// rootHistory loads every version of the roots in candidates, whatever
// their status, so visibility is judged per root rather than per match.
func (s *Service) rootHistory(ctx context.Context, snap ports.Snapshot, candidates []models.Version) ([]models.Version, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	roots := make([]domain.RootID, 0, len(candidates))
	for _, v := range candidates {
		roots = append(roots, v.RootID)
	}
	history, err := ports.CollectVersions(snap.QueryVersions(ctx, ports.VersionQuery{
		Kind:    models.KindService,
		RootIDs: filter.UniqueRoots(roots),
	}))
	if err != nil {
		return nil, storeError(err, "query root history")
	}
	return history, nil
}

// summaryName is the version's name in lang when lang is published for it.
func summaryName(v models.Version, led *ledger.Ledger, lang domain.Language) *string {
	if !led.IsPublished(v.ID, lang) {
		return nil
	}
	if n, ok := models.Text(v.Names, models.TextName, lang); ok {
		return &n
	}
	return nil
}
