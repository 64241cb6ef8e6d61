// Package filter implements container name matching for query endpoints.
package filter

import "strings"

// Spec is a parsed name filter: a comma-separated list of patterns combined
// with OR. A Spec with no patterns at all matches every name; a Spec whose
// patterns are all empty strings matches none. The two cases are distinct on
// purpose, so "no filter" and "filter that excludes everything" stay apart.
type Spec struct {
	patterns []string
}

// ParseSpec splits raw on commas and trims whitespace around each pattern.
// Input that is empty (or only whitespace) yields the empty Spec, which
// matches everything. Empty items between commas are kept as empty patterns
// and match nothing.
func ParseSpec(raw string) Spec {
	if strings.TrimSpace(raw) == "" {
		return Spec{}
	}

	parts := strings.Split(raw, ",")
	patterns := make([]string, 0, len(parts))
	for _, p := range parts {
		patterns = append(patterns, strings.TrimSpace(p))
	}

	return Spec{patterns: patterns}
}

// IsEmpty reports whether the Spec carries no patterns.
func (s Spec) IsEmpty() bool {
	return len(s.patterns) == 0
}

// Match reports whether name satisfies the Spec. The empty Spec matches
// every name; otherwise any single matching pattern is enough.
func (s Spec) Match(name string) bool {
	if len(s.patterns) == 0 {
		return true
	}

	for _, pattern := range s.patterns {
		if Matches(name, pattern) {
			return true
		}
	}

	return false
}

// Matches reports whether one pattern matches a container name. Matching is
// case-sensitive. A pattern without wildcards must equal the name exactly.
// A trailing "*" matches a prefix, a leading "*" matches a suffix, and both
// together match a substring. A bare "*" matches everything; an empty
// pattern matches nothing. Asterisks anywhere else are literal text.
func Matches(name, pattern string) bool {
	if pattern == "" {
		return false
	}
	if pattern == "*" {
		return true
	}

	leading := strings.HasPrefix(pattern, "*")
	trailing := strings.HasSuffix(pattern, "*")

	switch {
	case leading && trailing:
		return strings.Contains(name, pattern[1:len(pattern)-1])
	case trailing:
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	case leading:
		return strings.HasSuffix(name, pattern[1:])
	default:
		return name == pattern
	}
}
