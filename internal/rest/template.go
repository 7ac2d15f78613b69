package rest

import (
	"net/url"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Placeholders returns the placeholder names of a URL template in order of
// appearance.
//
// Example:
//
//	Placeholders("/courses/{courseId}/announcements/{id}") // ["courseId", "id"]
func Placeholders(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// ResolveURL substitutes every {name} placeholder in template with the
// path-escaped value of values[name].
//
// All-or-nothing: a placeholder whose value is missing or empty yields a
// MissingPathParameterError naming the first such placeholder.
func ResolveURL(template string, values map[string]string) (string, error) {
	var missing string
	resolved := placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := values[name]
		if !ok || v == "" {
			if missing == "" {
				missing = name
			}
			return m
		}
		return url.PathEscape(v)
	})
	if missing != "" {
		return "", &MissingPathParameterError{Template: template, Name: missing}
	}
	return resolved, nil
}

// joinURL joins a base URL and a template path with exactly one slash.
func joinURL(base, path string) string {
	if base == "" {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
