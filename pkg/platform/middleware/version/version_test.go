package version

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"servicecatalog/pkg/domain"
	"servicecatalog/pkg/requestcontext"
)

func TestExtractVersion(t *testing.T) {
	var got domain.SchemaVersion
	r := chi.NewRouter()
	r.Route("/api/{version}", func(api chi.Router) {
		api.Use(ExtractVersion)
		api.Get("/Service", func(w http.ResponseWriter, r *http.Request) {
			got = requestcontext.SchemaVersion(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	})

	t.Run("prefixed version is parsed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v10/Service", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.SchemaV10, got)
	})

	t.Run("bare number is parsed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/7/Service", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.SchemaV7, got)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/vX/Service", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
