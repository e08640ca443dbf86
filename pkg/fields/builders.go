package fields

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formkit/pkg/form"
)

// ErrNoSelection is returned by RequireSelection when nothing was chosen.
var ErrNoSelection = errors.New("please select an option")

func isBlank(input string) bool {
	return input == ""
}

func neverEmpty[I any](I) bool {
	return false
}

func textInput[V, O any](kind Kind, config form.FieldConfig[TextAttributes, string, V, O]) form.Form[V, O, Field[V]] {
	return form.Field(isBlank, func(state form.State[TextAttributes, string, V]) Field[V] {
		return TextField[V]{State: state, Type: kind}
	}, config)
}

// Text builds a single-line text input. A blank input is RequiredFieldIsEmpty.
func Text[V, O any](config form.FieldConfig[TextAttributes, string, V, O]) form.Form[V, O, Field[V]] {
	return textInput(KindText, config)
}

// Password builds a masked text input.
func Password[V, O any](config form.FieldConfig[TextAttributes, string, V, O]) form.Form[V, O, Field[V]] {
	return textInput(KindPassword, config)
}

// Email builds an email input. Address validation is left to the parser;
// see ParseEmail.
func Email[V, O any](config form.FieldConfig[TextAttributes, string, V, O]) form.Form[V, O, Field[V]] {
	return textInput(KindEmail, config)
}

// TextArea builds a multi-line text input.
func TextArea[V, O any](config form.FieldConfig[TextAttributes, string, V, O]) form.Form[V, O, Field[V]] {
	return textInput(KindTextArea, config)
}

// Input builds a text-like input of an arbitrary kind (search, tel, url,
// date, number...).
func Input[V, O any](kind Kind, config form.FieldConfig[TextAttributes, string, V, O]) form.Form[V, O, Field[V]] {
	return textInput(kind, config)
}

// Checkbox builds a boolean toggle. A checkbox is never empty: an unchecked
// box is a value, so required-ness belongs in the parser (see MustBeChecked).
func Checkbox[V, O any](config form.FieldConfig[CheckboxAttributes, bool, V, O]) form.Form[V, O, Field[V]] {
	return form.Field(neverEmpty[bool], func(state form.State[CheckboxAttributes, bool, V]) Field[V] {
		return CheckboxField[V]{State: state}
	}, config)
}

// Radio builds an inline single choice. An empty value is RequiredFieldIsEmpty.
func Radio[V, O any](config form.FieldConfig[ChoiceAttributes, string, V, O]) form.Form[V, O, Field[V]] {
	return form.Field(isBlank, func(state form.State[ChoiceAttributes, string, V]) Field[V] {
		return RadioField[V]{State: state}
	}, config)
}

// Select builds a dropdown. An empty value is RequiredFieldIsEmpty.
func Select[V, O any](config form.FieldConfig[ChoiceAttributes, string, V, O]) form.Form[V, O, Field[V]] {
	return form.Field(isBlank, func(state form.State[ChoiceAttributes, string, V]) Field[V] {
		return SelectField[V]{State: state}
	}, config)
}

// SearchSelect builds a searchable select. The selection is never considered
// empty; callers decide required-ness in the parser (see RequireSelection).
func SearchSelect[V, O any](config form.FieldConfig[SearchAttributes, Option, V, O]) form.Form[V, O, Field[V]] {
	return form.Field(neverEmpty[Option], func(state form.State[SearchAttributes, Option, V]) Field[V] {
		return SearchSelectField[V]{State: state}
	}, config)
}

// Section wraps f under a titled container. The section is a single field
// whose nested fields are f's fields; result and emptiness pass through.
func Section[V, O any](title string, f form.Form[V, O, Field[V]]) form.Form[V, O, Field[V]] {
	return form.Custom(func(values V) form.CustomField[O, Field[V]] {
		filled := form.Fill(f, values)
		return form.CustomField[O, Field[V]]{
			State:   SectionField[V]{Title: title, Fields: filled.Fields},
			Result:  filled.Result,
			IsEmpty: filled.IsEmpty,
		}
	})
}

// Group wraps f in an untitled container rendered as one row.
func Group[V, O any](f form.Form[V, O, Field[V]]) form.Form[V, O, Field[V]] {
	return form.Custom(func(values V) form.CustomField[O, Field[V]] {
		filled := form.Fill(f, values)
		return form.CustomField[O, Field[V]]{
			State:   GroupField[V]{Fields: filled.Fields},
			Result:  filled.Result,
			IsEmpty: filled.IsEmpty,
		}
	})
}

// Identity is the parser for fields whose raw input is already the output.
func Identity[I any](input I) (I, error) {
	return input, nil
}

// ParseEmail accepts addresses with a local part, an @ and a dotted domain.
func ParseEmail(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	at := strings.LastIndex(trimmed, "@")
	if at <= 0 || at == len(trimmed)-1 || strings.ContainsAny(trimmed, " \t") {
		return "", errors.New("invalid email")
	}
	domain := trimmed[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", errors.New("invalid email")
	}
	return trimmed, nil
}

// MustBeChecked is a checkbox parser that only accepts true.
func MustBeChecked(message string) func(bool) (bool, error) {
	return func(checked bool) (bool, error) {
		if !checked {
			return false, errors.New(message)
		}
		return true, nil
	}
}

// RequireSelection is a search-select parser rejecting an empty selection.
func RequireSelection(selected Option) (Option, error) {
	if strings.TrimSpace(selected.Value) == "" {
		return Option{}, ErrNoSelection
	}
	return selected, nil
}

// OneOf returns a choice parser accepting only the configured option values.
func OneOf(options []Option) func(string) (string, error) {
	allowed := make(map[string]struct{}, len(options))
	for _, option := range options {
		allowed[option.Value] = struct{}{}
	}
	return func(input string) (string, error) {
		if _, ok := allowed[input]; !ok {
			return "", errors.New("invalid option")
		}
		return input, nil
	}
}
