package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "formkit-form"
	ClassHeader  ChromeClass = "formkit-header"
	ClassSection ChromeClass = "formkit-section"
	ClassGroup   ChromeClass = "formkit-group"
	ClassField   ChromeClass = "formkit-field"
	ClassInvalid ChromeClass = "formkit-invalid"
	ClassActions ChromeClass = "formkit-actions"
	ClassErrors  ChromeClass = "formkit-errors"
)

// ChromeClasses overrides the class attribute of structural elements. Empty
// entries fall back to the Class* defaults.
type ChromeClasses struct {
	Form    string
	Header  string
	Section string
	Group   string
	Field   string
	Invalid string
	Actions string
	Errors  string
}

func (c ChromeClasses) resolve() map[string]any {
	pick := func(override string, fallback ChromeClass) string {
		if cleaned := sanitizeClassList(override); cleaned != "" {
			return cleaned
		}
		return string(fallback)
	}
	return map[string]any{
		"form":    pick(c.Form, ClassForm),
		"header":  pick(c.Header, ClassHeader),
		"section": pick(c.Section, ClassSection),
		"group":   pick(c.Group, ClassGroup),
		"field":   pick(c.Field, ClassField),
		"invalid": pick(c.Invalid, ClassInvalid),
		"actions": pick(c.Actions, ClassActions),
		"errors":  pick(c.Errors, ClassErrors),
	}
}
