package form

// Result is the outcome of filling a form: either a parsed Value or a
// Failure. A nil Failure means success.
type Result[O any] struct {
	Value   O
	Failure *Failure
}

// Ok wraps a successful output.
func Ok[O any](value O) Result[O] {
	return Result[O]{Value: value}
}

// Fail builds a failing result from a headline error and any trailing ones.
func Fail[O any](first Error, others ...Error) Result[O] {
	failure := &Failure{First: first}
	if len(others) > 0 {
		failure.Others = append([]Error(nil), others...)
	}
	return Result[O]{Failure: failure}
}

// IsOk reports whether the result carries a value.
func (r Result[O]) IsOk() bool {
	return r.Failure == nil
}

// Get returns the value and a nil error on success, or the zero value and the
// Failure as an error.
func (r Result[O]) Get() (O, error) {
	if r.Failure != nil {
		var zero O
		return zero, *r.Failure
	}
	return r.Value, nil
}

// Errors returns every error in declaration order, or nil on success.
func (r Result[O]) Errors() []Error {
	if r.Failure == nil {
		return nil
	}
	return r.Failure.Errors()
}

// FirstError returns the headline error, if any.
func (r Result[O]) FirstError() (Error, bool) {
	if r.Failure == nil {
		return Error{}, false
	}
	return r.Failure.First, true
}

func mapResult[A, B any](r Result[A], fn func(A) B) Result[B] {
	if r.Failure != nil {
		return propagate[B](r.Failure)
	}
	return Result[B]{Value: fn(r.Value)}
}

// propagate carries a failure into a result of another type. Each result owns
// its Failure, so editing one never leaks into the results derived from it.
func propagate[O any](failure *Failure) Result[O] {
	return Fail[O](failure.First, failure.Others...)
}
