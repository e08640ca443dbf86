package render

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Registry resolves renderers by name so hosts can pick an output format at
// runtime. It is fixed at construction and safe for concurrent use.
type Registry struct {
	byName map[string]Renderer
}

// NewRegistry indexes renderers by Name. Nil, unnamed and duplicate
// renderers are rejected.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	byName := make(map[string]Renderer, len(renderers))
	for i, renderer := range renderers {
		if renderer == nil {
			return nil, fmt.Errorf("render: renderer %d is nil", i)
		}
		name := renderer.Name()
		switch {
		case name == "":
			return nil, fmt.Errorf("render: renderer %d has no name", i)
		case byName[name] != nil:
			return nil, fmt.Errorf("render: renderer %q registered twice", name)
		}
		byName[name] = renderer
	}
	return &Registry{byName: byName}, nil
}

// Names lists the registered renderer names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render renders view with the named renderer and reports its content type.
func (r *Registry) Render(ctx context.Context, name string, view FormView, options RenderOptions) ([]byte, string, error) {
	renderer, ok := r.byName[name]
	if !ok {
		return nil, "", fmt.Errorf("render: unknown renderer %q (have %s)", name, strings.Join(r.Names(), ", "))
	}
	out, err := renderer.Render(ctx, view, options)
	if err != nil {
		return nil, "", fmt.Errorf("render: %s: %w", name, err)
	}
	return out, renderer.ContentType(), nil
}
