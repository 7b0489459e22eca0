// Package strings provides string list utilities shared by configuration
// and hostname handling.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
func DedupeAndTrim(values []string) []string {
	return dedupe(values, strings.TrimSpace)
}

// NormalizeHosts lowercases hostnames and drops surrounding dots before
// deduplicating, so "Platform.Dev." and "platform.dev" collapse to one entry.
func NormalizeHosts(values []string) []string {
	return dedupe(values, func(v string) string {
		return strings.Trim(strings.ToLower(strings.TrimSpace(v)), ".")
	})
}

func dedupe(values []string, normalize func(string) string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		v = normalize(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}

	return result
}
