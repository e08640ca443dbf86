// Package schemaform builds forms from OpenAPI request bodies.
//
// Parse extracts operations from an OpenAPI 3 document; Build turns one
// operation's request schema into a form.Form over Values whose output is the
// request payload as a nested map. An Overlay supplies presentation details
// the schema lacks (labels, placeholders, ordering, widget overrides).
package schemaform
