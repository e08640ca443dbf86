// Package timezones serves IANA time zone identifiers as search-select
// options: Loader plugs into fields.SearchSelect and Handler exposes the same
// search as a JSON endpoint for browser autocompletion.
package timezones
