// Package discovery selects which registered checks a run executes.
package discovery

import (
	"path/filepath"
	"strings"

	"hbsmoke/internal/domain"
)

// Filter filters checks by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the checks whose name matches pattern, preserving order.
// Supports patterns like "*Assets" or "*HTML*"; a pattern without wildcards is a
// case-insensitive substring match.
func (f *Filter) FilterByName(checks []domain.Check, pattern string) []domain.Check {
	if pattern == "" {
		return checks
	}

	var filtered []domain.Check
	for _, check := range checks {
		if matchName(check.Name, pattern) {
			filtered = append(filtered, check)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	name = strings.ToLower(name)
	pattern = strings.ToLower(pattern)

	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// Looser match for patterns like "*html*": every non-empty part must appear
	if strings.Contains(pattern, "*") {
		hasPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasPart
	}
	return false
}
