package schemaform

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/render"
)

// Values is the flat values snapshot of a schema form, keyed by dotted field
// path. Text-like fields hold strings, checkboxes bools and search selects
// fields.Option. A Values is never mutated; With returns a copy.
type Values map[string]any

// String returns the text input stored at path.
func (v Values) String(path string) string {
	switch value := v[path].(type) {
	case string:
		return value
	case nil:
		return ""
	case fields.Option:
		return value.Value
	default:
		return formatScalar(value)
	}
}

// Bool returns the checkbox input stored at path.
func (v Values) Bool(path string) bool {
	switch value := v[path].(type) {
	case bool:
		return value
	case string:
		return isTrue(value)
	default:
		return false
	}
}

// Option returns the search-select input stored at path.
func (v Values) Option(path string) fields.Option {
	switch value := v[path].(type) {
	case fields.Option:
		return value
	case string:
		return fields.Option{Value: value, Label: value}
	default:
		return fields.Option{}
	}
}

// With returns a copy of v with path set to value.
func (v Values) With(path string, value any) Values {
	out := make(Values, len(v)+1)
	for key, existing := range v {
		out[key] = existing
	}
	out[path] = value
	return out
}

// Keys returns the stored paths in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		if key == errorsKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FlattenValues converts a nested document (as decoded from JSON or YAML)
// into Values. Scalars other than strings and bools are stored as text so
// numeric inputs round-trip through text fields.
func FlattenValues(nested map[string]any) Values {
	out := make(Values)
	flattenInto(out, "", nested)
	return out
}

func flattenInto(out Values, prefix string, nested map[string]any) {
	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch typed := value.(type) {
		case map[string]any:
			flattenInto(out, path, typed)
		case string, bool:
			out[path] = typed
		case nil:
		default:
			out[path] = formatScalar(typed)
		}
	}
}

// Defaults returns the schema defaults of op as Values.
func Defaults(op Operation) Values {
	out := make(Values)
	collectDefaults(out, "", op.Schema)
	return out
}

func collectDefaults(out Values, prefix string, schema *Schema) {
	if schema == nil {
		return
	}
	for name, property := range schema.Properties {
		path := joinPath(prefix, name)
		if property.Type == "object" {
			collectDefaults(out, path, property)
			continue
		}
		switch value := property.Default.(type) {
		case nil:
		case bool:
			out[path] = value
		case string:
			out[path] = value
		default:
			out[path] = formatScalar(value)
		}
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func isTrue(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

const errorsKey = "\x00errors"

// WithErrors returns a copy of v carrying a server error mapping. Fields built
// by Build report the mapped messages as External errors.
func (v Values) WithErrors(mapping render.ErrorMapping) Values {
	return v.With(errorsKey, mapping)
}

// Errors returns the error mapping stored by WithErrors.
func (v Values) Errors() render.ErrorMapping {
	mapping, _ := v[errorsKey].(render.ErrorMapping)
	return mapping
}
