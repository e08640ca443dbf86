package widgets

import (
	"testing"

	"github.com/goliatone/go-formkit/pkg/fields"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	property := Property{Type: "boolean", Widget: "search-select"}

	if got, ok := reg.Resolve(property); !ok || got != fields.KindSearchSelect {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()
	long := uint64(1000)
	short := uint64(40)

	cases := []struct {
		name     string
		property Property
		expect   fields.Kind
	}{
		{name: "boolean checkbox", property: Property{Type: "boolean"}, expect: fields.KindCheckbox},
		{name: "small enum radio", property: Property{Type: "string", Enum: []string{"a", "b"}}, expect: fields.KindRadio},
		{name: "large enum select", property: Property{Type: "string", Enum: []string{"a", "b", "c", "d"}}, expect: fields.KindSelect},
		{name: "integer enum select", property: Property{Type: "integer", Enum: []string{"1", "2", "3", "4"}}, expect: fields.KindSelect},
		{name: "email format", property: Property{Type: "string", Format: "email"}, expect: fields.KindEmail},
		{name: "password format", property: Property{Type: "string", Format: "Password"}, expect: fields.KindPassword},
		{name: "uri format", property: Property{Type: "string", Format: "uri"}, expect: fields.KindURL},
		{name: "date format", property: Property{Type: "string", Format: "date"}, expect: fields.KindDate},
		{name: "long string textarea", property: Property{Type: "string", MaxLength: &long}, expect: fields.KindTextArea},
		{name: "short string text", property: Property{Type: "string", MaxLength: &short}, expect: fields.KindText},
		{name: "integer number", property: Property{Type: "integer"}, expect: fields.KindNumber},
		{name: "number", property: Property{Type: "number"}, expect: fields.KindNumber},
		{name: "untyped text", property: Property{}, expect: fields.KindText},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(tc.property)
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got)
			}
		})
	}
}

func TestResolve_Unresolved(t *testing.T) {
	reg := NewRegistry()
	if got, ok := reg.Resolve(Property{Type: "array"}); ok {
		t.Fatalf("arrays have no built-in widget, got %q", got)
	}
	if got, ok := (&Registry{}).Resolve(Property{Type: "string"}); ok {
		t.Fatalf("empty registry should not resolve, got %q", got)
	}
}

func TestResolve_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fields.KindSearchSelect, 999, func(p Property) bool {
		return p.Name == "country"
	})

	got, ok := reg.Resolve(Property{Name: "country", Type: "string", Enum: []string{"de"}})
	if !ok || got != fields.KindSearchSelect {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}
}
