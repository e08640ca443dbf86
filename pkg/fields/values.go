package fields

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-formkit/pkg/form"
)

// MapValues embeds a form over B into a form over A. Unlike form.MapValues,
// which only projects values, this also re-targets every field's setter so
// that editing a nested field yields a complete A snapshot: update receives
// the new B and the A snapshot the form was filled with.
func MapValues[A, B, O any](value func(A) B, update func(B, A) A, f form.Form[B, O, Field[B]]) form.Form[A, O, Field[A]] {
	inner := form.MapValues(value, f)
	return form.Meta(func(outer A) form.Form[A, O, Field[A]] {
		return form.MapField(func(field Field[B]) Field[A] {
			return retarget(field, func(next B) A { return update(next, outer) })
		}, inner)
	})
}

func retarget[A, B any](field Field[B], lift func(B) A) Field[A] {
	switch f := field.(type) {
	case TextField[B]:
		return TextField[A]{State: liftState(f.State, lift), Type: f.Type}
	case CheckboxField[B]:
		return CheckboxField[A]{State: liftState(f.State, lift)}
	case RadioField[B]:
		return RadioField[A]{State: liftState(f.State, lift)}
	case SelectField[B]:
		return SelectField[A]{State: liftState(f.State, lift)}
	case SearchSelectField[B]:
		return SearchSelectField[A]{State: liftState(f.State, lift)}
	case SectionField[B]:
		return SectionField[A]{Title: f.Title, Fields: retargetFilled(f.Fields, lift)}
	case GroupField[B]:
		return GroupField[A]{Fields: retargetFilled(f.Fields, lift)}
	default:
		return nil
	}
}

func retargetFilled[A, B any](filled []form.FilledField[Field[B]], lift func(B) A) []form.FilledField[Field[A]] {
	out := make([]form.FilledField[Field[A]], len(filled))
	for i, field := range filled {
		out[i] = form.FilledField[Field[A]]{
			State:      retarget(field.State, lift),
			Error:      field.Error,
			IsDisabled: field.IsDisabled,
		}
	}
	return out
}

func liftState[Attr, I, A, B any](state form.State[Attr, I, B], lift func(B) A) form.State[Attr, I, A] {
	update := state.Update
	return form.State[Attr, I, A]{
		Value:      state.Value,
		Attributes: state.Attributes,
		Update: func(input I) A {
			return lift(update(input))
		},
	}
}

// Walk visits every filled field depth-first in declaration order, descending
// into sections and groups after visiting the container itself.
func Walk[V any](filled []form.FilledField[Field[V]], visit func(form.FilledField[Field[V]]) bool) bool {
	for _, field := range filled {
		if !visit(field) {
			return false
		}
		var nested []form.FilledField[Field[V]]
		switch container := field.State.(type) {
		case SectionField[V]:
			nested = container.Fields
		case GroupField[V]:
			nested = container.Fields
		}
		if len(nested) > 0 && !Walk(nested, visit) {
			return false
		}
	}
	return true
}

// Decode folds a submitted payload into values. Fields are applied one at a
// time in declaration order, re-filling the form after each one so fields
// that only exist for certain values (form.Meta, form.AndThen) are picked up
// as soon as they appear. Text, radio and select fields are only updated when
// their name is present in submitted; checkboxes are always applied since
// browsers omit unchecked boxes.
func Decode[V, O any](f form.Form[V, O, Field[V]], values V, submitted url.Values) V {
	applied := make(map[string]struct{})
	for {
		var (
			next  Field[V]
			found bool
		)
		Walk(form.Fill(f, values).Fields, func(field form.FilledField[Field[V]]) bool {
			name := field.State.Name()
			if name == "" {
				return true
			}
			if _, done := applied[name]; done {
				return true
			}
			if _, isCheckbox := field.State.(CheckboxField[V]); !isCheckbox && !submitted.Has(name) {
				return true
			}
			next, found = field.State, true
			return false
		})
		if !found {
			return values
		}
		applied[next.Name()] = struct{}{}
		values = apply(next, values, submitted)
	}
}

func apply[V any](field Field[V], values V, submitted url.Values) V {
	raw := submitted.Get(field.Name())
	switch f := field.(type) {
	case TextField[V]:
		return f.Set(raw)
	case CheckboxField[V]:
		return f.Set(isTruthy(raw))
	case RadioField[V]:
		return f.Set(raw)
	case SelectField[V]:
		return f.Set(raw)
	case SearchSelectField[V]:
		if raw == f.Value.Value {
			return f.Set(f.Value)
		}
		label := submitted.Get(field.Name() + "_label")
		if label == "" {
			label = raw
		}
		return f.Set(Option{Value: raw, Label: label})
	default:
		return values
	}
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes", "checked":
		return true
	default:
		return false
	}
}
