package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/render"
	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/pongo"
)

// Option configures the renderer.
type Option func(*config)

type stylesheetMode int

const (
	stylesheetNone stylesheetMode = iota
	stylesheetInline
	stylesheetLink
)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	controls         map[fields.Kind]string
	classes          ChromeClasses
	stylesheet       stylesheetMode
	stylesheetHref   string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/form.tmpl, templates/field.tmpl and the control
// templates referenced by the kinds it renders.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSanitizer replaces the policy applied to labels, help texts and
// section titles.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithControlTemplate renders fields of kind with templates/controls/<name>.tmpl.
func WithControlTemplate(kind fields.Kind, name string) Option {
	return func(cfg *config) {
		if name == "" {
			return
		}
		if cfg.controls == nil {
			cfg.controls = make(map[fields.Kind]string)
		}
		cfg.controls[kind] = name
	}
}

// WithChromeClasses overrides structural CSS classes.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// WithInlineStylesheet embeds the default stylesheet in a <style> element.
func WithInlineStylesheet() Option {
	return func(cfg *config) {
		cfg.stylesheet = stylesheetInline
	}
}

// WithStylesheetLink emits a <link> to the stylesheet. A theme AssetURL
// resolver, when present, takes precedence over href.
func WithStylesheetLink(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = stylesheetLink
		cfg.stylesheetHref = href
	}
}

// Renderer renders a FormView into an HTML form fragment.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	policy     *bluemonday.Policy
	controls   map[fields.Kind]string
	classes    map[string]any
	stylesheet stylesheetMode
	href       string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = inlineTextPolicy()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:  renderer,
		policy:     cfg.policy,
		controls:   cfg.controls,
		classes:    cfg.classes.resolve(),
		stylesheet: cfg.stylesheet,
		href:       cfg.stylesheetHref,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the <form> markup for view. The submit button stays
// disabled until the view is valid.
func (r *Renderer) Render(ctx context.Context, view render.FormView, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	fieldsRenderer := &fieldRenderer{
		templates: r.templates,
		policy:    r.policy,
		controls:  r.controls,
		classes:   r.classes,
		formEmpty: view.IsEmpty,
	}
	fieldsHTML, err := fieldsRenderer.renderAll(view.Fields)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	hidden := make([]any, 0, len(options.Hidden)+1)
	for _, field := range options.HiddenInputs() {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	submitLabel := options.SubmitLabel
	if submitLabel == "" {
		submitLabel = "Submit"
	}

	data := map[string]any{
		"action":        options.Action,
		"method":        options.FormMethod(),
		"title":         options.Title,
		"submit_label":  submitLabel,
		"hidden_fields": hidden,
		"form_errors":   toAnySlice(options.FormErrors),
		"valid":         view.Valid,
		"fields_html":   fieldsHTML,
		"classes":       r.classes,
		"theme":         buildThemeContext(options.Theme),
	}
	switch r.stylesheet {
	case stylesheetInline:
		data["stylesheet"] = defaultStylesheet()
	case stylesheetLink:
		data["stylesheet_href"] = stylesheetHref(options.Theme, r.href)
	}

	result, err := r.templates.RenderTemplate("templates/form", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func toAnySlice(values []string) []any {
	out := make([]any, 0, len(values))
	for _, value := range values {
		out = append(out, value)
	}
	return out
}
