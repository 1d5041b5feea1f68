package domain

import (
	"strings"

	dErrors "servicecatalog/pkg/domain-errors"
)

// Language is a content language code.
// Invariant: the value must be one of the supported catalog languages.
//
// Usage: construct via ParseLanguage at trust boundaries; direct casting
// bypasses validation and is reserved for constants and fixtures.
type Language string

// Supported catalog languages.
const (
	LanguageFinnish      Language = "fi"
	LanguageSwedish      Language = "sv"
	LanguageEnglish      Language = "en"
	LanguageNorthernSami Language = "se"
	LanguageInariSami    Language = "smn"
	LanguageSkoltSami    Language = "sms"
)

// validLanguages is the single source of truth for supported languages.
var validLanguages = map[Language]bool{
	LanguageFinnish:      true,
	LanguageSwedish:      true,
	LanguageEnglish:      true,
	LanguageNorthernSami: true,
	LanguageInariSami:    true,
	LanguageSkoltSami:    true,
}

// ParseLanguage constructs a Language from external input. Input is trimmed
// and lowercased before validation.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "language cannot be empty")
	}
	l := Language(s)
	if !l.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported language: "+s)
	}
	return l, nil
}

// IsValid checks if the language is one of the supported values.
func (l Language) IsValid() bool {
	return validLanguages[l]
}

// String returns the language code.
func (l Language) String() string {
	return string(l)
}
