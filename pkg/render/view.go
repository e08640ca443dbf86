package render

import (
	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/form"
)

// FormView is the non-generic snapshot of a filled form that renderers
// consume. Fields keep declaration order.
type FormView struct {
	Fields []FieldView `json:"fields"`
	// Valid gates submission: true only when the form result is Ok.
	Valid bool `json:"valid"`
	// IsEmpty is true before the user entered anything; renderers use it to
	// show required markers instead of errors.
	IsEmpty bool `json:"isEmpty"`
	// Errors lists every validation message in declaration order, the
	// headline error first.
	Errors []string `json:"errors,omitempty"`
}

// FieldView is one rendered field.
type FieldView struct {
	Name        string            `json:"name,omitempty"`
	Kind        fields.Kind       `json:"kind"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Help        string            `json:"help,omitempty"`
	Value       string            `json:"value,omitempty"`
	Checked     bool              `json:"checked,omitempty"`
	Options     []OptionView      `json:"options,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Error       string            `json:"error,omitempty"`
	ErrorKind   string            `json:"errorKind,omitempty"`
	Disabled    bool              `json:"disabled,omitempty"`
	Searchable  bool              `json:"searchable,omitempty"`
	Title       string            `json:"title,omitempty"`
	Fields      []FieldView       `json:"fields,omitempty"`
}

// OptionView is a selectable choice with its selection state.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Snapshot converts a filled form built from package fields into a FormView.
// The value type cannot be inferred from the field union, so callers name it:
// render.Snapshot[MyValues](filled).
func Snapshot[V, O any](filled form.FilledForm[O, fields.Field[V]]) FormView {
	view := FormView{
		Fields:  snapshotFields[V](filled.Fields),
		Valid:   filled.Result.IsOk(),
		IsEmpty: filled.IsEmpty,
	}
	for _, err := range filled.Result.Errors() {
		view.Errors = append(view.Errors, err.Error())
	}
	return view
}

func snapshotFields[V any](filled []form.FilledField[fields.Field[V]]) []FieldView {
	if len(filled) == 0 {
		return nil
	}
	out := make([]FieldView, 0, len(filled))
	for _, field := range filled {
		view := describe[V](field.State)
		view.Disabled = field.IsDisabled
		if field.Error != nil {
			view.Error = field.Error.Error()
			view.ErrorKind = field.Error.Kind.String()
		}
		out = append(out, view)
	}
	return out
}

func describe[V any](field fields.Field[V]) FieldView {
	switch f := field.(type) {
	case fields.TextField[V]:
		return FieldView{
			Name:        f.Attributes.Name,
			Kind:        f.Kind(),
			Label:       f.Attributes.Label,
			Placeholder: f.Attributes.Placeholder,
			Help:        f.Attributes.Help,
			Value:       f.Value,
			Attributes:  copyAttributes(f.Attributes.HTML),
		}
	case fields.CheckboxField[V]:
		return FieldView{
			Name:    f.Attributes.Name,
			Kind:    fields.KindCheckbox,
			Label:   f.Attributes.Text,
			Help:    f.Attributes.Help,
			Checked: f.Value,
		}
	case fields.RadioField[V]:
		return choiceView(fields.KindRadio, f.Attributes, f.Value)
	case fields.SelectField[V]:
		return choiceView(fields.KindSelect, f.Attributes, f.Value)
	case fields.SearchSelectField[V]:
		view := FieldView{
			Name:        f.Attributes.Name,
			Kind:        fields.KindSearchSelect,
			Label:       f.Attributes.Label,
			Placeholder: f.Attributes.Placeholder,
			Help:        f.Attributes.Help,
			Value:       f.Value.Value,
			Searchable:  true,
		}
		if f.Value.Value != "" {
			view.Options = []OptionView{{Value: f.Value.Value, Label: f.Value.Label, Selected: true}}
		}
		return view
	case fields.SectionField[V]:
		return FieldView{Kind: fields.KindSection, Title: f.Title, Fields: snapshotFields[V](f.Fields)}
	case fields.GroupField[V]:
		return FieldView{Kind: fields.KindGroup, Fields: snapshotFields[V](f.Fields)}
	default:
		return FieldView{}
	}
}

func choiceView(kind fields.Kind, attrs fields.ChoiceAttributes, selected string) FieldView {
	view := FieldView{
		Name:        attrs.Name,
		Kind:        kind,
		Label:       attrs.Label,
		Placeholder: attrs.Placeholder,
		Help:        attrs.Help,
		Value:       selected,
	}
	if len(attrs.Options) > 0 {
		view.Options = make([]OptionView, 0, len(attrs.Options))
		for _, option := range attrs.Options {
			view.Options = append(view.Options, OptionView{
				Value:    option.Value,
				Label:    option.Label,
				Selected: option.Value == selected,
			})
		}
	}
	return view
}

func copyAttributes(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
