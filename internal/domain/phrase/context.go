package phrase

import "strings"

// PatientContext is a read-only bag of patient attributes addressable by
// dotted source paths such as "labs.creatinine". The persistence/UI layer
// populates it; the engine only reads it.
type PatientContext map[string]any

// Resolve walks a dotted path through nested maps and returns the value at
// the leaf rendered as text. Unresolvable paths return the empty string.
func (pc PatientContext) Resolve(path string) string {
	if pc == nil {
		return ""
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}

	var current any = map[string]any(pc)
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			var ok bool
			current, ok = node[part]
			if !ok {
				return ""
			}
		case map[string]string:
			v, ok := node[part]
			if !ok {
				return ""
			}
			current = v
		case map[string]float64:
			v, ok := node[part]
			if !ok {
				return ""
			}
			current = v
		default:
			return ""
		}
	}
	return stringifyValue(current)
}
