package form

// Descriptor is the structural contract a rendered widget exposes to its
// host: the current input and a setter producing the next values snapshot.
type Descriptor[I, V any] interface {
	Input() I
	Set(input I) V
}

// State is the descriptor Field builds for every leaf on every fill. Update
// is bound to the values snapshot the form was filled with.
type State[A, I, V any] struct {
	Value      I
	Update     func(I) V
	Attributes A
}

var _ Descriptor[string, struct{}] = State[struct{}, string, struct{}]{}

// Input returns the current input value.
func (s State[A, I, V]) Input() I {
	return s.Value
}

// Set folds a new input into the values snapshot the state was built from.
func (s State[A, I, V]) Set(input I) V {
	return s.Update(input)
}

// FieldConfig is the authoring contract for one leaf field.
//
// Parser converts the raw input into the field's output; a non-nil error is
// reported as ValidationFailed with err.Error() as the reason. Value projects
// the input out of a values snapshot and Update folds a new input back in.
// Error, when set, supplies an externally sourced message (for example a
// server-side check) consulted only after Parser succeeds.
type FieldConfig[A, I, V, O any] struct {
	Parser     func(I) (O, error)
	Value      func(V) I
	Update     func(I, V) V
	Error      func(V) (string, bool)
	Attributes A
}

// FilledField is one rendered field: its descriptor plus its own error.
type FilledField[F any] struct {
	State      F
	Error      *Error
	IsDisabled bool
}

// FilledForm is the per-evaluation output of a form.
type FilledForm[O, F any] struct {
	Fields  []FilledField[F]
	Result  Result[O]
	IsEmpty bool
}

// CustomField is what a hand-written evaluator passed to Custom returns.
type CustomField[O, F any] struct {
	State   F
	Result  Result[O]
	IsEmpty bool
}
