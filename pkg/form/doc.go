// Package form implements the composable form engine. A Form is a pure
// function from an application-defined values snapshot to a FilledForm: the
// ordered list of rendered fields plus an aggregated validation Result.
//
// Forms are built once from leaf fields (Field, Custom) and combined with
// Succeed, Append, AndThen, Map, MapValues, MapField, Meta and Optional. The
// host calls Fill on every values change and renders FilledForm.Fields in
// order. Evaluation never mutates the values or the form, so a single Form can
// be filled concurrently from any number of goroutines.
//
// The engine is agnostic to widgets: the field type parameter F is whatever
// the build function passed to Field produces. Package fields provides a
// ready-made widget union.
package form
