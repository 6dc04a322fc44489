package phrase

import (
	"regexp"
	"strings"
)

// placeholderPattern matches {{key}} tokens. There is no nesting or escaping;
// a literal "{{" is always placeholder syntax. This syntax is persisted with
// templates and must stay backward-compatible.
var placeholderPattern = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// ExtractFieldKeys scans a template left to right and returns the distinct
// placeholder keys in first-occurrence order. Keys are case-sensitive;
// empty or whitespace-only keys are ignored.
func ExtractFieldKeys(template string) []string {
	var keys []string
	seen := map[string]bool{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		key := strings.TrimSpace(m[1])
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}
