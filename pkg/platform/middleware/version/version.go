// Package version provides middleware that resolves the requested schema
// version from the route and stores it in the request context.
package version

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"servicecatalog/pkg/domain"
	"servicecatalog/pkg/platform/httputil"
	"servicecatalog/pkg/requestcontext"
)

// URLParam is the chi route parameter carrying the version, as in
// /api/{version}/Service.
const URLParam = "version"

// ExtractVersion parses the {version} route parameter ("v11" or "11") and
// sets it in the context. Unparseable versions are rejected with 400; whether
// a parseable version is supported is decided downstream.
//
//	r.Route("/api/{version}", func(api chi.Router) {
//	    api.Use(version.ExtractVersion)
//	    // ... routes
//	})
func ExtractVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, err := domain.ParseSchemaVersion(chi.URLParam(r, URLParam))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		ctx := requestcontext.WithSchemaVersion(r.Context(), v)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Fixed pins a version for routes that do not carry one in the path.
func Fixed(v domain.SchemaVersion) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithSchemaVersion(r.Context(), v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
