package fields

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/form"
)

// Kind identifies a widget variant.
type Kind string

const (
	KindText         Kind = "text"
	KindPassword     Kind = "password"
	KindEmail        Kind = "email"
	KindTextArea     Kind = "textarea"
	KindSearch       Kind = "search"
	KindTel          Kind = "tel"
	KindURL          Kind = "url"
	KindDate         Kind = "date"
	KindNumber       Kind = "number"
	KindCheckbox     Kind = "checkbox"
	KindRadio        Kind = "radio"
	KindSelect       Kind = "select"
	KindSearchSelect Kind = "search-select"
	KindSection      Kind = "section"
	KindGroup        Kind = "group"
)

// Field is the union of widgets produced by this package. The set is closed;
// renderers type-switch over TextField, CheckboxField, RadioField,
// SelectField, SearchSelectField, SectionField and GroupField.
type Field[V any] interface {
	// Name is the submission key, empty for containers.
	Name() string
	Kind() Kind
	isField()
}

// Option is one selectable choice.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Loader fetches options for a searchable select. The engine never calls it;
// hosts invoke it with their own context and cancellation.
type Loader func(ctx context.Context, query string) ([]Option, error)

// TextAttributes configures text-like inputs.
type TextAttributes struct {
	Name        string
	Label       string
	Placeholder string
	Help        string
	// HTML carries extra attributes (autocomplete, inputmode, min, max...)
	// passed through to HTML renderers untouched.
	HTML map[string]string
}

// CheckboxAttributes configures a checkbox.
type CheckboxAttributes struct {
	Name string
	Text string
	Help string
}

// ChoiceAttributes configures radios and selects.
type ChoiceAttributes struct {
	Name        string
	Label       string
	Placeholder string
	Help        string
	Options     []Option
}

// SearchAttributes configures a searchable select.
type SearchAttributes struct {
	Name        string
	Label       string
	Placeholder string
	Help        string
	Load        Loader
}

// TextField is a single-line or multi-line text input.
type TextField[V any] struct {
	form.State[TextAttributes, string, V]
	Type Kind
}

// CheckboxField is a boolean toggle.
type CheckboxField[V any] struct {
	form.State[CheckboxAttributes, bool, V]
}

// RadioField selects one option from an inline list.
type RadioField[V any] struct {
	form.State[ChoiceAttributes, string, V]
}

// SelectField selects one option from a dropdown.
type SelectField[V any] struct {
	form.State[ChoiceAttributes, string, V]
}

// SearchSelectField selects one option from a remotely searched list.
type SearchSelectField[V any] struct {
	form.State[SearchAttributes, Option, V]
}

// SectionField groups nested fields under a title.
type SectionField[V any] struct {
	Title  string
	Fields []form.FilledField[Field[V]]
}

// GroupField lays nested fields out together without a title.
type GroupField[V any] struct {
	Fields []form.FilledField[Field[V]]
}

func (f TextField[V]) Name() string         { return f.Attributes.Name }
func (f CheckboxField[V]) Name() string     { return f.Attributes.Name }
func (f RadioField[V]) Name() string        { return f.Attributes.Name }
func (f SelectField[V]) Name() string       { return f.Attributes.Name }
func (f SearchSelectField[V]) Name() string { return f.Attributes.Name }
func (SectionField[V]) Name() string        { return "" }
func (GroupField[V]) Name() string          { return "" }

func (f TextField[V]) Kind() Kind {
	if f.Type == "" {
		return KindText
	}
	return f.Type
}
func (CheckboxField[V]) Kind() Kind     { return KindCheckbox }
func (RadioField[V]) Kind() Kind        { return KindRadio }
func (SelectField[V]) Kind() Kind       { return KindSelect }
func (SearchSelectField[V]) Kind() Kind { return KindSearchSelect }
func (SectionField[V]) Kind() Kind      { return KindSection }
func (GroupField[V]) Kind() Kind        { return KindGroup }

func (TextField[V]) isField()         {}
func (CheckboxField[V]) isField()     {}
func (RadioField[V]) isField()        {}
func (SelectField[V]) isField()       {}
func (SearchSelectField[V]) isField() {}
func (SectionField[V]) isField()      {}
func (GroupField[V]) isField()        {}
