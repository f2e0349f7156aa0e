package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters file paths by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the paths whose base name matches pattern. Patterns with
// wildcards are matched with filepath.Match first, then as ordered
// "*"-separated fragments ("*Payment*"); plain patterns match as substrings.
func (f *Filter) FilterByName(paths []string, pattern string) []string {
	if pattern == "" {
		return paths
	}

	var filtered []string
	for _, p := range paths {
		if f.Match(p, pattern) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Match reports whether the base name of path matches pattern.
func (f *Filter) Match(path, pattern string) bool {
	if pattern == "" {
		return true
	}
	name := filepath.Base(path)

	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	rest := name
	found := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		i := strings.Index(rest, part)
		if i < 0 {
			return false
		}
		rest = rest[i+len(part):]
		found = true
	}
	return found
}
