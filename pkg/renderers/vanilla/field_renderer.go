package vanilla

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/pongo"
)

// defaultControls maps field kinds to control templates under
// templates/controls.
var defaultControls = map[fields.Kind]string{
	fields.KindText:         "input",
	fields.KindPassword:     "input",
	fields.KindEmail:        "input",
	fields.KindSearch:       "input",
	fields.KindTel:          "input",
	fields.KindURL:          "input",
	fields.KindDate:         "input",
	fields.KindNumber:       "input",
	fields.KindTextArea:     "textarea",
	fields.KindCheckbox:     "checkbox",
	fields.KindRadio:        "radio",
	fields.KindSelect:       "select",
	fields.KindSearchSelect: "search_select",
	fields.KindSection:      "section",
	fields.KindGroup:        "group",
}

type fieldRenderer struct {
	templates template.TemplateRenderer
	policy    *bluemonday.Policy
	controls  map[fields.Kind]string
	classes   map[string]any
	// formEmpty hides required errors behind a marker until input starts.
	formEmpty bool
}

func (r *fieldRenderer) renderAll(views []render.FieldView) (string, error) {
	var b strings.Builder
	for _, view := range views {
		markup, err := r.render(view)
		if err != nil {
			return "", err
		}
		b.WriteString(markup)
	}
	return b.String(), nil
}

func (r *fieldRenderer) render(view render.FieldView) (string, error) {
	control := r.controls[view.Kind]
	if control == "" {
		control = defaultControls[view.Kind]
	}
	if control == "" {
		return "", fmt.Errorf("no control template for field %q of kind %q", view.Name, view.Kind)
	}

	data := r.fieldData(view)

	if len(view.Fields) > 0 {
		children, err := r.renderAll(view.Fields)
		if err != nil {
			return "", err
		}
		data["children_html"] = children
	}

	markup, err := r.templates.RenderTemplate("templates/controls/"+control, data)
	if err != nil {
		return "", fmt.Errorf("render control %q for field %q: %w", control, view.Name, err)
	}
	if view.Kind == fields.KindSection || view.Kind == fields.KindGroup {
		return markup, nil
	}

	data["control_html"] = markup
	if view.Kind == fields.KindCheckbox {
		// the checkbox control wraps its own label
		data["label_html"] = ""
	}
	wrapped, err := r.templates.RenderTemplate("templates/field", data)
	if err != nil {
		return "", fmt.Errorf("render field %q: %w", view.Name, err)
	}
	return wrapped, nil
}

func (r *fieldRenderer) fieldData(view render.FieldView) map[string]any {
	required := view.ErrorKind == "required"
	showError := view.Error != "" && !(required && r.formEmpty)

	value := view.Value
	if view.Kind == fields.KindPassword {
		value = ""
	}

	options := make([]any, 0, len(view.Options))
	selectedLabel := ""
	for _, option := range view.Options {
		options = append(options, map[string]any{
			"value":    option.Value,
			"label":    option.Label,
			"selected": option.Selected,
		})
		if option.Selected {
			selectedLabel = option.Label
		}
	}

	return map[string]any{
		"id":             pongo.DOMID(view.Name),
		"name":           view.Name,
		"kind":           string(view.Kind),
		"input_type":     inputType(view.Kind),
		"label_html":     sanitizeText(r.policy, view.Label),
		"help_html":      sanitizeText(r.policy, view.Help),
		"title_html":     sanitizeText(r.policy, view.Title),
		"placeholder":    view.Placeholder,
		"value":          value,
		"checked":        view.Checked,
		"options":        options,
		"selected_label": selectedLabel,
		"attrs_html":     attributesHTML(view.Attributes),
		"error":          view.Error,
		"show_error":     showError,
		"required":       required,
		"disabled":       view.Disabled,
		"searchable":     view.Searchable,
		"classes":        r.classes,
	}
}

func inputType(kind fields.Kind) string {
	switch kind {
	case fields.KindPassword, fields.KindEmail, fields.KindSearch, fields.KindTel, fields.KindURL, fields.KindDate, fields.KindNumber:
		return string(kind)
	default:
		return "text"
	}
}
