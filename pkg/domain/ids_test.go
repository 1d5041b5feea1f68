package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "servicecatalog/pkg/domain-errors"
)

// TestParseRootID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseRootID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseRootID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseRootID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseRootID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID with surrounding whitespace", func(t *testing.T) {
		u := uuid.New()
		id, err := ParseRootID("  " + u.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, RootID(u), id)
	})
}

func TestParseID_HostileInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"SQL injection attempt", "'; DROP TABLE services;--"},
		{"Path traversal", "../../../etc/passwd"},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000"},
		{"Oversized input", strings.Repeat("a", 1000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errRoot := ParseRootID(tt.input)
			_, errVersion := ParseVersionID(tt.input)
			require.Error(t, errRoot)
			require.Error(t, errVersion)
		})
	}
}

func TestIDTextRoundTrip(t *testing.T) {
	root := NewRootID()
	b, err := root.MarshalText()
	require.NoError(t, err)

	var parsed RootID
	require.NoError(t, parsed.UnmarshalText(b))
	assert.Equal(t, root, parsed)
}

func TestParseLanguage(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		l, err := ParseLanguage(" SV ")
		require.NoError(t, err)
		assert.Equal(t, LanguageSwedish, l)
	})

	t.Run("rejects unsupported language", func(t *testing.T) {
		_, err := ParseLanguage("de")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects empty language", func(t *testing.T) {
		_, err := ParseLanguage("")
		require.Error(t, err)
	})
}

func TestParseSchemaVersion(t *testing.T) {
	for _, in := range []string{"11", "v11", "V11"} {
		v, err := ParseSchemaVersion(in)
		require.NoError(t, err, in)
		assert.Equal(t, SchemaV11, v)
	}

	_, err := ParseSchemaVersion("vNext")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	assert.True(t, SchemaV9.IsAtLeast(SchemaV8))
	assert.False(t, SchemaV7.IsAtLeast(SchemaV8))
	assert.Equal(t, "v10", SchemaV10.String())
	assert.Equal(t, []SchemaVersion{SchemaV10, SchemaV11}, SupportedSchemaVersions(SchemaV10))
}
