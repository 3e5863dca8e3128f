package pongo

import (
	"sort"
	"strings"
)

// CSSDeclarations joins custom properties into "--a: 1; --b: 2" form. Keys
// without the leading dashes get them added.
func CSSDeclarations(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		parts = append(parts, name+": "+strings.TrimSpace(vars[key]))
	}
	return strings.Join(parts, "; ")
}
