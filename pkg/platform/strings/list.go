// Package strings parses comma separated query parameter lists.
package strings

import (
	"strings"
)

// Fields splits every value on commas and returns the trimmed, non-empty
// parts in order. Duplicates are kept.
//
//	Fields("a, b", "", "b,,c") // []string{"a", "b", "b", "c"}
func Fields(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Dedupe removes repeated values, keeping the first occurrence. A nil input
// stays nil.
func Dedupe(values []string) []string {
	if values == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
