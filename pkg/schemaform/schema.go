package schemaform

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema is the subset of a JSON schema the form builder understands.
type Schema struct {
	Type        string
	Format      string
	Title       string
	Description string
	Pattern     string
	Default     any
	Enum        []string
	Required    []string
	Properties  map[string]*Schema
	Minimum     *float64
	Maximum     *float64
	MinLength   uint64
	MaxLength   *uint64
	ReadOnly    bool
}

// IsRequired reports whether name is listed in the schema's required set.
func (s *Schema) IsRequired(name string) bool {
	if s == nil {
		return false
	}
	for _, candidate := range s.Required {
		if candidate == name {
			return true
		}
	}
	return false
}

func convertSchema(ref *openapi3.SchemaRef, visiting map[*openapi3.Schema]struct{}) *Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	src := ref.Value
	if _, cycle := visiting[src]; cycle {
		// recursive references stop at the first repetition
		return nil
	}
	visiting[src] = struct{}{}
	defer delete(visiting, src)

	schema := &Schema{
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Pattern:     src.Pattern,
		Default:     src.Default,
		MinLength:   src.MinLength,
		ReadOnly:    src.ReadOnly,
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	for _, value := range src.Enum {
		if value == nil {
			continue
		}
		schema.Enum = append(schema.Enum, formatScalar(value))
	}
	if src.Min != nil {
		value := *src.Min
		schema.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		schema.Maximum = &value
	}
	if src.MaxLength != nil {
		value := *src.MaxLength
		schema.MaxLength = &value
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]*Schema, len(src.Properties))
		for name, property := range src.Properties {
			if converted := convertSchema(property, visiting); converted != nil {
				schema.Properties[name] = converted
			}
		}
	}
	mergeAllOf(schema, src.AllOf, visiting)
	if schema.Type == "" && len(schema.Properties) > 0 {
		schema.Type = "object"
	}
	return schema
}

// mergeAllOf folds allOf members into target: properties and required names
// are unioned, scalar keywords fill gaps only.
func mergeAllOf(target *Schema, refs openapi3.SchemaRefs, visiting map[*openapi3.Schema]struct{}) {
	for _, ref := range refs {
		member := convertSchema(ref, visiting)
		if member == nil {
			continue
		}
		if target.Type == "" {
			target.Type = member.Type
		}
		if target.Format == "" {
			target.Format = member.Format
		}
		if target.Description == "" {
			target.Description = member.Description
		}
		target.Required = append(target.Required, member.Required...)
		for name, property := range member.Properties {
			if target.Properties == nil {
				target.Properties = make(map[string]*Schema)
			}
			if _, exists := target.Properties[name]; !exists {
				target.Properties[name] = property
			}
		}
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		// "null" only marks nullability
		if value != "null" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
