package render

import (
	"sort"
	"strconv"
	"strings"
)

// ErrorMapping splits a server error payload into field-level messages keyed
// by field name and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// First returns the first message mapped onto the named field.
func (m ErrorMapping) First(name string) (string, bool) {
	messages := m.Fields[name]
	if len(messages) == 0 {
		return "", false
	}
	return messages[0], true
}

// ExternalErrors returns a form.FieldConfig Error accessor for the named
// field. lookup extracts the mapping the host stored in its values snapshot
// after the last server round-trip, so the engine reports the message as an
// External error once local parsing succeeds.
func ExternalErrors[V any](lookup func(V) ErrorMapping, name string) func(V) (string, bool) {
	return func(values V) (string, bool) {
		return lookup(values).First(name)
	}
}

// MergeFormErrors concatenates form-level messages, trimming blanks and
// duplicates while keeping the first occurrence order.
func MergeFormErrors(existing []string, extras ...string) []string {
	return cleanMessages(append(append([]string(nil), existing...), extras...))
}

// MapErrorPayload assigns server error messages to the fields of view.
//
// Keys may be dotted names ("owner.email"), JSON pointers ("/owner/email")
// or bracketed paths ("tags[0]"). Array indices are ignored and leading
// segments that name no field, such as a "body" envelope, are skipped. A key
// that reaches a section prefix lands on that prefix, so "owner" errors stay
// next to the owner fields. Anything else becomes a form-level message.
func MapErrorPayload(view FormView, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	names := indexNames(view.Fields)
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		messages := cleanMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		name, ok := names.resolve(key)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[name] = append(mapping.Fields[name], messages...)
	}
	mapping.Form = cleanMessages(mapping.Form)
	return mapping
}

// nameIndex holds every field name of a view plus each dotted parent.
type nameIndex map[string]bool

func indexNames(views []FieldView) nameIndex {
	index := make(nameIndex)
	var walk func([]FieldView)
	walk = func(views []FieldView) {
		for _, view := range views {
			for name := view.Name; name != ""; {
				index[name] = true
				dot := strings.LastIndex(name, ".")
				if dot < 0 {
					break
				}
				name = name[:dot]
			}
			walk(view.Fields)
		}
	}
	walk(views)
	return index
}

func (ix nameIndex) resolve(key string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "form", "_form", "__all__", "non_field_errors":
		return "", false
	}

	segments := keySegments(key)
	for start := range segments {
		for end := len(segments); end > start; end-- {
			if name := strings.Join(segments[start:end], "."); ix[name] {
				return name, true
			}
		}
	}
	return "", false
}

// keySegments splits a payload key on dots, slashes and brackets, decoding
// JSON pointer escapes and dropping array indices.
func keySegments(key string) []string {
	parts := strings.FieldsFunc(strings.TrimSpace(key), func(r rune) bool {
		switch r {
		case '.', '/', '[', ']', '#', '$':
			return true
		}
		return false
	})
	out := parts[:0]
	for _, part := range parts {
		if _, err := strconv.Atoi(part); err == nil {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		out = append(out, strings.ReplaceAll(part, "~0", "~"))
	}
	return out
}

func cleanMessages(messages []string) []string {
	var out []string
	seen := make(map[string]bool, len(messages))
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" || seen[message] {
			continue
		}
		seen[message] = true
		out = append(out, message)
	}
	return out
}
