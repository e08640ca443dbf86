package form

// Form is an immutable description of a form over values V producing O, with
// rendered fields of type F. Compose forms with the functions in this package
// and evaluate them with Fill.
type Form[V, O, F any] func(values V) FilledForm[O, F]

// Fill evaluates f against a values snapshot. It is deterministic and never
// mutates values or f.
func Fill[V, O, F any](f Form[V, O, F], values V) FilledForm[O, F] {
	return f(values)
}

// Succeed returns a form with no fields that always yields output. It is the
// identity for Append and the usual seed of an Append chain.
func Succeed[V, O, F any](output O) Form[V, O, F] {
	return func(V) FilledForm[O, F] {
		return FilledForm[O, F]{
			Result:  Ok(output),
			IsEmpty: true,
		}
	}
}

// Field builds a leaf form producing exactly one FilledField. isEmpty decides
// when the raw input counts as blank, build wraps the generic State into the
// widget type F, and config supplies parsing and value plumbing.
//
// Checks run in order: isEmpty (RequiredFieldIsEmpty, parser skipped), the
// parser (ValidationFailed), then config.Error (External). The descriptor is
// built regardless of the outcome so invalid fields stay editable.
func Field[V, I, O, A, F any](isEmpty func(I) bool, build func(State[A, I, V]) F, config FieldConfig[A, I, V, O]) Form[V, O, F] {
	return func(values V) FilledForm[O, F] {
		input := config.Value(values)
		result := evaluateField(isEmpty, config, input, values)

		update := config.Update
		state := build(State[A, I, V]{
			Value: input,
			Update: func(next I) V {
				if update == nil {
					return values
				}
				return update(next, values)
			},
			Attributes: config.Attributes,
		})

		return FilledForm[O, F]{
			Fields: []FilledField[F]{{
				State: state,
				Error: firstError(result),
			}},
			Result:  result,
			IsEmpty: result.Failure != nil && result.Failure.First.Kind == RequiredFieldIsEmpty,
		}
	}
}

func evaluateField[V, I, O, A any](isEmpty func(I) bool, config FieldConfig[A, I, V, O], input I, values V) Result[O] {
	if isEmpty != nil && isEmpty(input) {
		return Fail[O](ErrRequired)
	}
	output, err := config.Parser(input)
	if err != nil {
		return Fail[O](Invalid(err.Error()))
	}
	if config.Error != nil {
		if msg, ok := config.Error(values); ok {
			return Fail[O](ExternalError(msg))
		}
	}
	return Ok(output)
}

// Custom lifts a hand-written evaluator into the algebra. The synthesized
// field reports RequiredFieldIsEmpty when the evaluator says it is empty,
// otherwise the first error of its result.
func Custom[V, O, F any](fn func(values V) CustomField[O, F]) Form[V, O, F] {
	return func(values V) FilledForm[O, F] {
		custom := fn(values)

		fieldErr := firstError(custom.Result)
		if custom.IsEmpty {
			required := ErrRequired
			fieldErr = &required
		}

		return FilledForm[O, F]{
			Fields: []FilledField[F]{{
				State: custom.State,
				Error: fieldErr,
			}},
			Result:  custom.Result,
			IsEmpty: custom.IsEmpty,
		}
	}
}

// Meta defers the choice of form until evaluation, letting the current values
// decide which fields exist.
func Meta[V, O, F any](fn func(values V) Form[V, O, F]) Form[V, O, F] {
	return func(values V) FilledForm[O, F] {
		return fn(values)(values)
	}
}

// MapValues embeds a form defined over B into a form over A by projecting
// the values before filling.
func MapValues[A, B, O, F any](fn func(A) B, f Form[B, O, F]) Form[A, O, F] {
	return func(values A) FilledForm[O, F] {
		return f(fn(values))
	}
}

// MapField rewrites the state of every field. Errors, disabled flags and the
// result are untouched.
func MapField[V, O, F, G any](fn func(F) G, f Form[V, O, F]) Form[V, O, G] {
	return func(values V) FilledForm[O, G] {
		filled := f(values)

		fields := make([]FilledField[G], len(filled.Fields))
		for i, field := range filled.Fields {
			fields[i] = FilledField[G]{
				State:      fn(field.State),
				Error:      field.Error,
				IsDisabled: field.IsDisabled,
			}
		}

		return FilledForm[O, G]{
			Fields:  fields,
			Result:  filled.Result,
			IsEmpty: filled.IsEmpty,
		}
	}
}

// Map transforms the output of a successful result.
func Map[V, A, B, F any](fn func(A) B, f Form[V, A, F]) Form[V, B, F] {
	return func(values V) FilledForm[B, F] {
		filled := f(values)
		return FilledForm[B, F]{
			Fields:  filled.Fields,
			Result:  mapResult(filled.Result, fn),
			IsEmpty: filled.IsEmpty,
		}
	}
}

// Append applies the function produced by current to the output of next.
// Both forms are always filled, so every field renders and every error is
// collected: the leftmost failure keeps the headline, all other errors follow
// in declaration order.
func Append[V, A, B, F any](current Form[V, func(A) B, F], next Form[V, A, F]) Form[V, B, F] {
	return func(values V) FilledForm[B, F] {
		filledCurrent := current(values)
		filledNext := next(values)

		fields := make([]FilledField[F], 0, len(filledCurrent.Fields)+len(filledNext.Fields))
		fields = append(fields, filledCurrent.Fields...)
		fields = append(fields, filledNext.Fields...)

		var result Result[B]
		switch cur, nxt := filledCurrent.Result, filledNext.Result; {
		case cur.Failure == nil && nxt.Failure == nil:
			result = Ok(cur.Value(nxt.Value))
		case nxt.Failure == nil:
			result = propagate[B](cur.Failure)
		case cur.Failure == nil:
			result = propagate[B](nxt.Failure)
		default:
			others := make([]Error, 0, len(cur.Failure.Others)+1+len(nxt.Failure.Others))
			others = append(others, cur.Failure.Others...)
			others = append(others, nxt.Failure.First)
			others = append(others, nxt.Failure.Others...)
			result = Result[B]{Failure: &Failure{First: cur.Failure.First, Others: others}}
		}

		return FilledForm[B, F]{
			Fields:  fields,
			Result:  result,
			IsEmpty: filledCurrent.IsEmpty && filledNext.IsEmpty,
		}
	}
}

// AndThen fills parent and, only when it succeeds, fills the form child
// builds from its output. A failing parent hides the child's fields
// entirely.
func AndThen[V, A, B, F any](child func(A) Form[V, B, F], parent Form[V, A, F]) Form[V, B, F] {
	return func(values V) FilledForm[B, F] {
		filled := parent(values)
		if filled.Result.Failure != nil {
			return FilledForm[B, F]{
				Fields:  filled.Fields,
				Result:  propagate[B](filled.Result.Failure),
				IsEmpty: filled.IsEmpty,
			}
		}

		filledChild := child(filled.Result.Value)(values)

		fields := make([]FilledField[F], 0, len(filled.Fields)+len(filledChild.Fields))
		fields = append(fields, filled.Fields...)
		fields = append(fields, filledChild.Fields...)

		return FilledForm[B, F]{
			Fields:  fields,
			Result:  filledChild.Result,
			IsEmpty: filled.IsEmpty && filledChild.IsEmpty,
		}
	}
}

// Optional makes f succeed with nil when it was left completely empty. A
// partially filled form still has to validate, and is never reported empty.
func Optional[V, O, F any](f Form[V, O, F]) Form[V, *O, F] {
	return func(values V) FilledForm[*O, F] {
		filled := f(values)

		if filled.Result.Failure == nil {
			value := filled.Result.Value
			return FilledForm[*O, F]{
				Fields:  filled.Fields,
				Result:  Ok(&value),
				IsEmpty: filled.IsEmpty,
			}
		}

		if filled.IsEmpty {
			fields := make([]FilledField[F], len(filled.Fields))
			for i, field := range filled.Fields {
				field.Error = nil
				fields[i] = field
			}
			return FilledForm[*O, F]{
				Fields:  fields,
				Result:  Ok[*O](nil),
				IsEmpty: filled.IsEmpty,
			}
		}

		return FilledForm[*O, F]{
			Fields:  filled.Fields,
			Result:  propagate[*O](filled.Result.Failure),
			IsEmpty: false,
		}
	}
}

func firstError[O any](result Result[O]) *Error {
	if result.Failure == nil {
		return nil
	}
	first := result.Failure.First
	return &first
}
