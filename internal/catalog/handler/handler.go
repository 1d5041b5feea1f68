// Package handler exposes the catalog service over chi routes. It translates
// query parameters into service options and domain errors into statuses.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"servicecatalog/internal/catalog/models"
	"servicecatalog/internal/catalog/schema"
	"servicecatalog/internal/catalog/service"
	"servicecatalog/pkg/domain"
	dErrors "servicecatalog/pkg/domain-errors"
	"servicecatalog/pkg/platform/httputil"
	"servicecatalog/pkg/platform/middleware/version"
	pstrings "servicecatalog/pkg/platform/strings"
	"servicecatalog/pkg/requestcontext"
)

// Service defines the catalog operations served over HTTP.
type Service interface {
	GetByID(ctx context.Context, root domain.RootID, opts service.GetOptions) (*schema.Service, bool, error)
	GetByIDList(ctx context.Context, roots []domain.RootID, opts service.ListOptions) ([]schema.Service, error)
	GetByFilter(ctx context.Context, criteria models.FilterCriteria, page, pageSize int, class models.VisibilityClass) (*models.PagedResult[schema.Summary], error)
	CheckSchemaVersion(v domain.SchemaVersion) error
}

// Handler serves the versioned service read API.
type Handler struct {
	catalog Service
	logger  *slog.Logger
}

// New creates a new catalog Handler.
func New(catalog Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{catalog: catalog, logger: logger}
}

// Register mounts the routes under /api/{version}.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/{"+version.URLParam+"}", func(api chi.Router) {
		api.Use(version.ExtractVersion)
		api.Use(languageFromQuery)
		api.Get("/Service", h.handleGetByFilter)
		api.Get("/Service/list", h.handleGetByIDList)
		api.Get("/Service/{id}", h.handleGetByID)
	})
}

// languageFromQuery validates the optional language parameter and stores it
// in the request context.
func languageFromQuery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("language")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		lang, err := domain.ParseLanguage(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(requestcontext.WithLanguage(r.Context(), lang)))
	})
}

func (h *Handler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	root, err := domain.ParseRootID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeFailure(ctx, w, "invalid service id", err)
		return
	}
	q := r.URL.Query()
	mode, err := models.ParseResolutionMode(q.Get("mode"))
	if err != nil {
		h.writeFailure(ctx, w, "invalid resolution mode", err)
		return
	}
	attachAll, err := boolParam(q.Get("attachAllTemplateData"), "attachAllTemplateData")
	if err != nil {
		h.writeFailure(ctx, w, "invalid flag", err)
		return
	}
	proposed, err := boolParam(q.Get("includeProposedChannels"), "includeProposedChannels")
	if err != nil {
		h.writeFailure(ctx, w, "invalid flag", err)
		return
	}

	svc, found, err := h.catalog.GetByID(ctx, root, service.GetOptions{
		SchemaVersion:           requestcontext.SchemaVersion(ctx),
		Mode:                    mode,
		AttachAllTemplateData:   attachAll,
		IncludeProposedChannels: proposed,
		Language:                requestcontext.Language(ctx),
	})
	if err != nil {
		h.writeFailure(ctx, w, "failed to get service", err)
		return
	}
	if !found {
		h.logger.DebugContext(ctx, "service not found",
			"request_id", requestID,
			"root_id", root.String(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "service "+root.String()+" not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, svc)
}

func (h *Handler) handleGetByIDList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	roots, err := parseRootList(q.Get("guids"))
	if err != nil {
		h.writeFailure(ctx, w, "invalid id list", err)
		return
	}
	attachAll, err := boolParam(q.Get("attachAllTemplateData"), "attachAllTemplateData")
	if err != nil {
		h.writeFailure(ctx, w, "invalid flag", err)
		return
	}
	proposed, err := boolParam(q.Get("includeProposedChannels"), "includeProposedChannels")
	if err != nil {
		h.writeFailure(ctx, w, "invalid flag", err)
		return
	}

	out, err := h.catalog.GetByIDList(ctx, roots, service.ListOptions{
		SchemaVersion:           requestcontext.SchemaVersion(ctx),
		AttachAllTemplateData:   attachAll,
		IncludeProposedChannels: proposed,
		Language:                requestcontext.Language(ctx),
	})
	if err != nil {
		h.writeFailure(ctx, w, "failed to get services", err)
		return
	}
	if len(out) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "none of the requested services were found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetByFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.catalog.CheckSchemaVersion(requestcontext.SchemaVersion(ctx)); err != nil {
		h.writeFailure(ctx, w, "unsupported schema version", err)
		return
	}
	req, err := parseFilterRequest(r.URL.Query())
	if err != nil {
		h.writeFailure(ctx, w, "invalid filter", err)
		return
	}
	req.criteria.Language = requestcontext.Language(ctx)

	res, err := h.catalog.GetByFilter(ctx, req.criteria, req.page, req.pageSize, req.class)
	if err != nil {
		h.writeFailure(ctx, w, "failed to list services", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// writeFailure logs caller errors at warn and everything else at error.
func (h *Handler) writeFailure(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	level := slog.LevelError
	if dErrors.IsCallerError(err) {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}

// parseRootList splits a comma separated id list. Blank entries are skipped;
// duplicates are kept so the batch cap sees the raw count.
func parseRootList(raw string) ([]domain.RootID, error) {
	var roots []domain.RootID
	for _, part := range pstrings.Fields(raw) {
		id, err := domain.ParseRootID(part)
		if err != nil {
			return nil, err
		}
		roots = append(roots, id)
	}
	if len(roots) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "guids is required")
	}
	return roots, nil
}
