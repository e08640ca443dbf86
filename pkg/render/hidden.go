package render

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is a hidden input emitted before the visible fields.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden builds a hidden input, formatting value with fmt.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken is Hidden for an anti-forgery token; name matches whatever the
// backend middleware reads, such as "_csrf".
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MergeHiddenFields layers extras over base into a new map. Blank names are
// dropped and later entries win.
func MergeHiddenFields(base map[string]string, extras ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(extras))
	for name, value := range base {
		out[strings.TrimSpace(name)] = value
	}
	for _, field := range extras {
		out[strings.TrimSpace(field.Name)] = field.Value
	}
	delete(out, "")
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields lists hidden inputs by name so output is deterministic.
func SortedHiddenFields(hidden map[string]string) []HiddenField {
	clean := MergeHiddenFields(hidden)
	if clean == nil {
		return nil
	}
	out := make([]HiddenField, 0, len(clean))
	for name, value := range clean {
		out = append(out, HiddenField{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
