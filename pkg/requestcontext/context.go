// Package requestcontext provides HTTP-independent accessors for request-scoped
// values. Middleware sets them, services read them.
//
//	requestID := requestcontext.RequestID(ctx)
//	lang := requestcontext.Language(ctx)
//	v := requestcontext.SchemaVersion(ctx)
package requestcontext

import (
	"context"

	"servicecatalog/pkg/domain"
)

type (
	requestIDKey     struct{}
	schemaVersionKey struct{}
	languageKey      struct{}
)

// Exported keys for tests that need context.WithValue directly.
var (
	ContextKeyRequestID     = requestIDKey{}
	ContextKeySchemaVersion = schemaVersionKey{}
	ContextKeyLanguage      = languageKey{}
)

// RequestID returns the request correlation id, or "" when unset.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return v
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// SchemaVersion returns the schema version selected by the route, or zero.
func SchemaVersion(ctx context.Context) domain.SchemaVersion {
	if v, ok := ctx.Value(ContextKeySchemaVersion).(domain.SchemaVersion); ok {
		return v
	}
	return 0
}

func WithSchemaVersion(ctx context.Context, v domain.SchemaVersion) context.Context {
	return context.WithValue(ctx, ContextKeySchemaVersion, v)
}

// Language returns the requested content language, or "" when unset.
func Language(ctx context.Context) domain.Language {
	if v, ok := ctx.Value(ContextKeyLanguage).(domain.Language); ok {
		return v
	}
	return ""
}

func WithLanguage(ctx context.Context, lang domain.Language) context.Context {
	return context.WithValue(ctx, ContextKeyLanguage, lang)
}
