// Package widgets picks the field kind used to render a schema property.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/fields"
)

// RadioThreshold is the largest enum rendered as radio buttons instead of a
// select.
const RadioThreshold = 3

// TextAreaThreshold is the maxLength above which strings become textareas.
const TextAreaThreshold = 255

// Property is the subset of a schema property widget selection looks at.
type Property struct {
	Name      string
	Type      string
	Format    string
	Enum      []string
	MaxLength *uint64
	// Widget is an explicit override (from an overlay); it always wins.
	Widget string
}

// Matcher decides whether a kind should render the supplied property.
type Matcher func(property Property) bool

type rule struct {
	kind     fields.Kind
	priority int
	match    Matcher
	order    int
}

// Registry selects field kinds for properties based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry only resolves explicit hints.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for kind with the provided priority.
func (r *Registry) Register(kind fields.Kind, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := fields.Kind(strings.TrimSpace(string(kind)))
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		kind:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the kind for a property. Explicit hints are honoured before
// matcher evaluation.
func (r *Registry) Resolve(property Property) (fields.Kind, bool) {
	if explicit := strings.TrimSpace(property.Widget); explicit != "" {
		return fields.Kind(explicit), true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(property) {
			return entry.kind, true
		}
	}
	return "", false
}

func formatIs(property Property, formats ...string) bool {
	if property.Type != "string" {
		return false
	}
	format := strings.TrimSpace(strings.ToLower(property.Format))
	for _, candidate := range formats {
		if format == candidate {
			return true
		}
	}
	return false
}

func (r *Registry) registerBuiltins() {
	r.Register(fields.KindCheckbox, 90, func(p Property) bool {
		return p.Type == "boolean"
	})

	r.Register(fields.KindRadio, 80, func(p Property) bool {
		return len(p.Enum) > 0 && len(p.Enum) <= RadioThreshold
	})

	r.Register(fields.KindSelect, 70, func(p Property) bool {
		return len(p.Enum) > 0
	})

	r.Register(fields.KindPassword, 60, func(p Property) bool {
		return formatIs(p, "password")
	})
	r.Register(fields.KindEmail, 60, func(p Property) bool {
		return formatIs(p, "email", "idn-email")
	})
	r.Register(fields.KindURL, 60, func(p Property) bool {
		return formatIs(p, "uri", "url", "iri")
	})
	r.Register(fields.KindDate, 60, func(p Property) bool {
		return formatIs(p, "date")
	})
	r.Register(fields.KindTel, 60, func(p Property) bool {
		return formatIs(p, "tel", "phone")
	})

	r.Register(fields.KindTextArea, 50, func(p Property) bool {
		if formatIs(p, "textarea", "markdown", "html") {
			return true
		}
		return p.Type == "string" && p.MaxLength != nil && *p.MaxLength > TextAreaThreshold
	})

	r.Register(fields.KindNumber, 40, func(p Property) bool {
		return p.Type == "integer" || p.Type == "number"
	})

	r.Register(fields.KindText, 0, func(p Property) bool {
		return p.Type == "string" || p.Type == ""
	})
}
