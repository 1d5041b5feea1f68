package domain

import (
	"strconv"
	"strings"

	dErrors "servicecatalog/pkg/domain-errors"
)

// SchemaVersion identifies a frozen external response shape consumed by API
// clients. Versions are plain integers; routes spell them as "v11".
type SchemaVersion int

// Known schema versions, oldest first.
const (
	SchemaV7  SchemaVersion = 7
	SchemaV8  SchemaVersion = 8
	SchemaV9  SchemaVersion = 9
	SchemaV10 SchemaVersion = 10
	SchemaV11 SchemaVersion = 11
)

// OldestSchemaVersion and LatestSchemaVersion bound the versions this build
// knows how to render. The minimum a deployment accepts is configured separately.
const (
	OldestSchemaVersion = SchemaV7
	LatestSchemaVersion = SchemaV11
)

// ParseSchemaVersion accepts "11", "v11" or "V11".
// It only checks syntax; whether the version is served is decided by the adapter.
func ParseSchemaVersion(s string) (SchemaVersion, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "v"), "V")
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "schema version cannot be empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid schema version: "+s)
	}
	return SchemaVersion(n), nil
}

// IsAtLeast returns true if this version is >= other.
func (v SchemaVersion) IsAtLeast(other SchemaVersion) bool {
	return v >= other
}

// IsKnown reports whether this build has a shape for v.
func (v SchemaVersion) IsKnown() bool {
	return v >= OldestSchemaVersion && v <= LatestSchemaVersion
}

// IsNil returns true for the zero value.
func (v SchemaVersion) IsNil() bool {
	return v == 0
}

// String renders the route form, e.g. "v11".
func (v SchemaVersion) String() string {
	return "v" + strconv.Itoa(int(v))
}

// SupportedSchemaVersions returns every version at or above minimum that this build renders.
func SupportedSchemaVersions(minimum SchemaVersion) []SchemaVersion {
	var out []SchemaVersion
	for v := OldestSchemaVersion; v <= LatestSchemaVersion; v++ {
		if v >= minimum {
			out = append(out, v)
		}
	}
	return out
}
