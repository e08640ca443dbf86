// Package jsonview renders form snapshots as JSON documents for clients that
// draw their own widgets.
package jsonview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/render"
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	indent string
}

// WithIndent pretty-prints the document using indent per nesting level.
func WithIndent(indent string) Option {
	return func(cfg *config) {
		cfg.indent = indent
	}
}

// Document is the JSON payload emitted per render.
type Document struct {
	Action      string               `json:"action,omitempty"`
	Method      string               `json:"method"`
	Title       string               `json:"title,omitempty"`
	SubmitLabel string               `json:"submitLabel,omitempty"`
	Hidden      []render.HiddenField `json:"hidden,omitempty"`
	FormErrors  []string             `json:"formErrors,omitempty"`
	Theme       *Theme               `json:"theme,omitempty"`
	Form        render.FormView      `json:"form"`
}

// Theme is the subset of a theme.RendererConfig clients need.
type Theme struct {
	Name    string            `json:"name,omitempty"`
	Variant string            `json:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens,omitempty"`
	CSSVars map[string]string `json:"cssVars,omitempty"`
}

// Renderer implements render.Renderer.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON renderer.
func New(options ...Option) *Renderer {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Renderer{indent: cfg.indent}
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render marshals view together with the submission metadata of options.
// Unlike HTML forms, the method is reported verbatim (PATCH stays PATCH).
func (r *Renderer) Render(ctx context.Context, view render.FormView, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := Document{
		Action:      options.Action,
		Method:      method(options.Method),
		Title:       options.Title,
		SubmitLabel: options.SubmitLabel,
		Hidden:      render.SortedHiddenFields(options.Hidden),
		FormErrors:  options.FormErrors,
		Theme:       themeFrom(options.Theme),
		Form:        view,
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if r.indent != "" {
		encoder.SetIndent("", r.indent)
	}
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("json renderer: marshal document: %w", err)
	}
	return buf.Bytes(), nil
}

func method(raw string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return "POST"
	}
	return trimmed
}

func themeFrom(cfg *theme.RendererConfig) *Theme {
	if cfg == nil {
		return nil
	}
	return &Theme{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  cfg.Tokens,
		CSSVars: cfg.CSSVars,
	}
}
