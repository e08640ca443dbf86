// Package fields provides the stock widget set for the form engine: text-like
// inputs, checkboxes, radios, selects, searchable selects, and the Section
// and Group containers. Every builder returns a form.Form whose field type is
// the sealed Field union, so renderers can switch over a closed set of
// variants.
package fields
