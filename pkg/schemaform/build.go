package schemaform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Field is the field union of schema forms.
type Field = fields.Field[Values]

// Form is a schema form: it reads Values and produces the request payload.
type Form = form.Form[Values, map[string]any, Field]

// Option configures Build.
type Option func(*builder)

// WithOverlay applies presentation hints; the operation id selects the entry.
func WithOverlay(overlay *Overlay) Option {
	return func(b *builder) {
		b.overlay = overlay
	}
}

// WithWidgets replaces the default widget registry.
func WithWidgets(registry *widgets.Registry) Option {
	return func(b *builder) {
		if registry != nil {
			b.widgets = registry
		}
	}
}

// WithLoader attaches a search loader to the field at path. Fields resolved
// to the search-select widget require one.
func WithLoader(path string, loader fields.Loader) Option {
	return func(b *builder) {
		if loader == nil {
			return
		}
		if b.loaders == nil {
			b.loaders = make(map[string]fields.Loader)
		}
		b.loaders[normalizeFieldPath(path)] = loader
	}
}

// WithNamedLoader registers a loader overlay fields can select with
// "loader: <name>".
func WithNamedLoader(name string, loader fields.Loader) Option {
	return func(b *builder) {
		if loader == nil {
			return
		}
		if b.named == nil {
			b.named = make(map[string]fields.Loader)
		}
		b.named[strings.TrimSpace(name)] = loader
	}
}

// WithExternalErrors replaces the lookup of server errors. The default reads
// the mapping stored with Values.WithErrors.
func WithExternalErrors(lookup func(Values) render.ErrorMapping) Option {
	return func(b *builder) {
		if lookup != nil {
			b.external = lookup
		}
	}
}

type builder struct {
	op       OperationOverlay
	overlay  *Overlay
	widgets  *widgets.Registry
	loaders  map[string]fields.Loader
	named    map[string]fields.Loader
	external func(Values) render.ErrorMapping
}

// entry is one property's contribution to the payload.
type entry struct {
	key     string
	value   any
	present bool
}

// Build turns the request body of op into a form. Read-only, hidden, array
// and free-form object properties get no field.
func Build(op Operation, options ...Option) (Form, error) {
	if op.Schema == nil || op.Schema.Type != "object" {
		return nil, fmt.Errorf("%w: %s", ErrNoRequestSchema, op.ID)
	}

	b := &builder{
		widgets:  widgets.NewRegistry(),
		external: Values.Errors,
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	b.op = b.overlay.Operation(op.ID)

	return b.object("", op.Schema)
}

// Snapshot fills f with values and describes the result for renderers.
func Snapshot(f Form, values Values) render.FormView {
	return render.Snapshot[Values](form.Fill(f, values))
}

// RenderOptions derives the document options of op: action, method, title
// and submit label, plus hidden overlay fields filled from values.
func RenderOptions(op Operation, overlay *Overlay, values Values) render.RenderOptions {
	opOverlay := overlay.Operation(op.ID)
	opts := render.RenderOptions{
		Action:      op.Path,
		Method:      op.Method,
		Title:       opOverlay.Title,
		SubmitLabel: opOverlay.SubmitLabel,
	}
	if opts.Title == "" {
		opts.Title = op.Summary
	}

	var hidden []render.HiddenField
	for path, field := range opOverlay.Fields {
		if field.Hidden {
			hidden = append(hidden, render.Hidden(path, values.String(path)))
		}
	}
	opts.Hidden = render.MergeHiddenFields(nil, hidden...)
	return opts
}

func (b *builder) object(prefix string, schema *Schema) (Form, error) {
	acc := form.Succeed[Values, map[string]any, Field](map[string]any{})
	for _, name := range b.order(prefix, schema) {
		property := schema.Properties[name]
		path := joinPath(prefix, name)
		if b.skip(path, property) {
			continue
		}
		next, err := b.property(path, property, schema.IsRequired(name))
		if err != nil {
			return nil, err
		}
		acc = form.Append(form.Map(collect, acc), next)
	}
	return acc, nil
}

func collect(payload map[string]any) func(entry) map[string]any {
	return func(e entry) map[string]any {
		if !e.present {
			return payload
		}
		out := make(map[string]any, len(payload)+1)
		for key, value := range payload {
			out[key] = value
		}
		out[e.key] = e.value
		return out
	}
}

func (b *builder) skip(path string, property *Schema) bool {
	if property == nil || property.ReadOnly || b.op.Field(path).Hidden {
		return true
	}
	switch property.Type {
	case "array":
		return true
	case "object":
		return len(property.Properties) == 0
	}
	return false
}

// order returns the property names of schema: overlay order first, then
// required properties, then the rest, alphabetically within each group.
func (b *builder) order(prefix string, schema *Schema) []string {
	rank := make(map[string]int, len(b.op.Order))
	for idx, path := range b.op.Order {
		rank[path] = idx
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		left, right := names[i], names[j]
		leftRank, leftRanked := rank[joinPath(prefix, left)]
		rightRank, rightRanked := rank[joinPath(prefix, right)]
		switch {
		case leftRanked && rightRanked:
			return leftRank < rightRank
		case leftRanked != rightRanked:
			return leftRanked
		}
		leftRequired, rightRequired := schema.IsRequired(left), schema.IsRequired(right)
		if leftRequired != rightRequired {
			return leftRequired
		}
		return left < right
	})
	return names
}

func (b *builder) property(path string, schema *Schema, required bool) (form.Form[Values, entry, Field], error) {
	key := path[strings.LastIndex(path, ".")+1:]
	overlay := b.op.Field(path)

	if schema.Type == "object" {
		inner, err := b.object(path, schema)
		if err != nil {
			return nil, err
		}
		title := b.label(path, schema, overlay)
		if required {
			return form.Map(present[map[string]any](key), fields.Section(title, inner)), nil
		}
		return form.Map(optional[map[string]any](key), optionalSection(title, inner)), nil
	}

	kind, ok := b.widgets.Resolve(widgets.Property{
		Name:      path,
		Type:      schema.Type,
		Format:    schema.Format,
		Enum:      schema.Enum,
		MaxLength: schema.MaxLength,
		Widget:    overlay.Widget,
	})
	if !ok {
		kind = fields.KindText
	}

	switch kind {
	case fields.KindCheckbox:
		return form.Map(present[bool](key), b.checkbox(path, schema, overlay)), nil
	case fields.KindSearchSelect:
		return b.searchSelect(key, path, schema, overlay, required)
	}

	leaf, err := b.textual(kind, path, schema, overlay)
	if err != nil {
		return nil, err
	}
	if required {
		return form.Map(present[any](key), leaf), nil
	}
	return form.Map(optional[any](key), form.Optional(leaf)), nil
}

// optionalSection renders an optional nested object. Left blank it yields nil
// and stays empty; the section itself never carries the required marker.
func optionalSection(title string, inner Form) form.Form[Values, *map[string]any, Field] {
	optional := form.Optional(inner)
	return func(values Values) form.FilledForm[*map[string]any, Field] {
		filled := form.Fill(optional, values)
		section := form.FilledField[Field]{
			State: fields.SectionField[Values]{Title: title, Fields: filled.Fields},
		}
		if failure := filled.Result.Failure; failure != nil {
			first := failure.First
			section.Error = &first
		}
		return form.FilledForm[*map[string]any, Field]{
			Fields:  []form.FilledField[Field]{section},
			Result:  filled.Result,
			IsEmpty: filled.IsEmpty,
		}
	}
}

func present[O any](key string) func(O) entry {
	return func(value O) entry {
		return entry{key: key, value: value, present: true}
	}
}

func optional[O any](key string) func(*O) entry {
	return func(value *O) entry {
		if value == nil {
			return entry{key: key}
		}
		return entry{key: key, value: *value, present: true}
	}
}

func (b *builder) textual(kind fields.Kind, path string, schema *Schema, overlay FieldOverlay) (form.Form[Values, any, Field], error) {
	parse, err := textParser(schema)
	if err != nil {
		return nil, fmt.Errorf("schemaform: field %s: %w", path, err)
	}
	value := func(v Values) string { return v.String(path) }
	update := func(input string, v Values) Values { return v.With(path, input) }
	external := render.ExternalErrors(b.external, path)

	switch kind {
	case fields.KindRadio, fields.KindSelect:
		config := form.FieldConfig[fields.ChoiceAttributes, string, Values, any]{
			Parser: parse,
			Value:  value,
			Update: update,
			Error:  external,
			Attributes: fields.ChoiceAttributes{
				Name:        path,
				Label:       b.label(path, schema, overlay),
				Placeholder: overlay.Placeholder,
				Help:        b.help(schema, overlay),
				Options:     enumOptions(schema, overlay),
			},
		}
		if kind == fields.KindRadio {
			return fields.Radio(config), nil
		}
		return fields.Select(config), nil
	}

	return fields.Input(kind, form.FieldConfig[fields.TextAttributes, string, Values, any]{
		Parser: parse,
		Value:  value,
		Update: update,
		Error:  external,
		Attributes: fields.TextAttributes{
			Name:        path,
			Label:       b.label(path, schema, overlay),
			Placeholder: overlay.Placeholder,
			Help:        b.help(schema, overlay),
			HTML:        htmlAttributes(schema, overlay),
		},
	}), nil
}

func (b *builder) checkbox(path string, schema *Schema, overlay FieldOverlay) form.Form[Values, bool, Field] {
	return fields.Checkbox(form.FieldConfig[fields.CheckboxAttributes, bool, Values, bool]{
		Parser: fields.Identity[bool],
		Value:  func(v Values) bool { return v.Bool(path) },
		Update: func(checked bool, v Values) Values { return v.With(path, checked) },
		Error:  render.ExternalErrors(b.external, path),
		Attributes: fields.CheckboxAttributes{
			Name: path,
			Text: b.label(path, schema, overlay),
			Help: b.help(schema, overlay),
		},
	})
}

func (b *builder) searchSelect(key, path string, schema *Schema, overlay FieldOverlay, required bool) (form.Form[Values, entry, Field], error) {
	loader, ok := b.loaders[path]
	if !ok && overlay.Loader != "" {
		if loader, ok = b.named[overlay.Loader]; !ok {
			return nil, fmt.Errorf("schemaform: field %s names unknown loader %q", path, overlay.Loader)
		}
	}
	if !ok {
		return nil, fmt.Errorf("schemaform: field %s uses the search-select widget without a loader", path)
	}
	convert, err := textParser(&Schema{Type: schema.Type, Minimum: schema.Minimum, Maximum: schema.Maximum})
	if err != nil {
		return nil, err
	}
	parse := func(selected fields.Option) (entry, error) {
		if selected.Value == "" {
			if required {
				return entry{}, fields.ErrNoSelection
			}
			return entry{key: key}, nil
		}
		value, err := convert(selected.Value)
		if err != nil {
			return entry{}, err
		}
		return entry{key: key, value: value, present: true}, nil
	}
	return fields.SearchSelect(form.FieldConfig[fields.SearchAttributes, fields.Option, Values, entry]{
		Parser: parse,
		Value:  func(v Values) fields.Option { return v.Option(path) },
		Update: func(selected fields.Option, v Values) Values { return v.With(path, selected) },
		Error:  render.ExternalErrors(b.external, path),
		Attributes: fields.SearchAttributes{
			Name:        path,
			Label:       b.label(path, schema, overlay),
			Placeholder: overlay.Placeholder,
			Help:        b.help(schema, overlay),
			Load:        loader,
		},
	}), nil
}

func (b *builder) label(path string, schema *Schema, overlay FieldOverlay) string {
	if overlay.Label != "" {
		return overlay.Label
	}
	if schema.Title != "" {
		return schema.Title
	}
	return Humanize(path[strings.LastIndex(path, ".")+1:])
}

func (b *builder) help(schema *Schema, overlay FieldOverlay) string {
	if overlay.Help != "" {
		return overlay.Help
	}
	return schema.Description
}

// htmlAttributes mirrors the schema constraints as HTML validation attributes;
// overlay attributes win.
func htmlAttributes(schema *Schema, overlay FieldOverlay) map[string]string {
	attrs := make(map[string]string)
	if schema.MinLength > 0 {
		attrs["minlength"] = strconv.FormatUint(schema.MinLength, 10)
	}
	if schema.MaxLength != nil {
		attrs["maxlength"] = strconv.FormatUint(*schema.MaxLength, 10)
	}
	if schema.Pattern != "" {
		attrs["pattern"] = schema.Pattern
	}
	if schema.Minimum != nil {
		attrs["min"] = formatNumber(*schema.Minimum)
	}
	if schema.Maximum != nil {
		attrs["max"] = formatNumber(*schema.Maximum)
	}
	if schema.Type == "integer" {
		attrs["step"] = "1"
	}
	for key, value := range overlay.Attributes {
		attrs[key] = value
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
