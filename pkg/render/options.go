package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data renderers use to wrap the field
// list in a submittable document.
type RenderOptions struct {
	// Action is the form's submission URL.
	Action string
	// Method overrides the default POST. Renderers translate verbs browsers
	// cannot submit (PATCH/PUT/DELETE) into POST plus a hidden _method input.
	Method string
	// Title is rendered above the fields when set.
	Title string
	// SubmitLabel overrides the submit button text.
	SubmitLabel string
	// Hidden fields (CSRF tokens, versions) emitted before the visible fields.
	Hidden map[string]string
	// FormErrors are form-level messages, typically the Form slice of an
	// ErrorMapping, rendered above the fields.
	FormErrors []string
	// Theme carries resolved theme tokens and CSS variables.
	Theme *theme.RendererConfig
}

// FormMethod is the verb a browser submits with: GET stays GET and
// everything else travels as POST.
func (o RenderOptions) FormMethod() string {
	if strings.EqualFold(strings.TrimSpace(o.Method), "GET") {
		return "GET"
	}
	return "POST"
}

// HiddenInputs lists the hidden inputs of the document in name order. Verbs
// other than GET and POST add a _method override.
func (o RenderOptions) HiddenInputs() []HiddenField {
	switch method := strings.ToUpper(strings.TrimSpace(o.Method)); method {
	case "", "GET", "POST":
		return SortedHiddenFields(o.Hidden)
	default:
		return SortedHiddenFields(MergeHiddenFields(o.Hidden, Hidden("_method", method)))
	}
}
