package vanilla_test

import (
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

func signupView() render.FormView {
	return render.FormView{
		Fields: []render.FieldView{
			{
				Name:       "email",
				Kind:       fields.KindEmail,
				Label:      "Email",
				Value:      "nope",
				Attributes: map[string]string{"autocomplete": "email", "onclick": "steal()"},
				Error:      "invalid email",
				ErrorKind:  "validation",
			},
			{
				Name:      "password",
				Kind:      fields.KindPassword,
				Label:     "Password",
				Value:     "hunter2",
				Error:     "this field is required",
				ErrorKind: "required",
			},
			{
				Name:  "topic",
				Kind:  fields.KindSelect,
				Label: "Topic",
				Value: "go",
				Options: []render.OptionView{
					{Value: "go", Label: "Go", Selected: true},
					{Value: "rust", Label: "Rust"},
				},
			},
			{
				Kind:  fields.KindSection,
				Title: "Owner",
				Fields: []render.FieldView{
					{Name: "owner.email", Kind: fields.KindText, Label: "Owner email", Value: "a@b.co"},
				},
			},
			{Name: "terms", Kind: fields.KindCheckbox, Label: "I accept the <em>terms</em>", Checked: true},
		},
		Errors: []string{"invalid email", "this field is required"},
	}
}

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func renderHTML(t *testing.T, renderer *vanilla.Renderer, view render.FormView, options render.RenderOptions) string {
	t.Helper()
	out, err := renderer.Render(testsupport.Context(), view, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func assertNotContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != "vanilla" {
		t.Fatalf("name = %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("content type = %q", renderer.ContentType())
	}
}

func TestRenderer_RendersFieldsAndErrors(t *testing.T) {
	html := renderHTML(t, newRenderer(t), signupView(), render.RenderOptions{
		Action:      "/signup",
		Title:       "Create account",
		SubmitLabel: "Sign up",
	})

	assertContains(t, html,
		`<form class="formkit-form" method="POST" action="/signup"`,
		`<h2>Create account</h2>`,
		`<input type="email" id="fk-email" name="email" value="nope"`,
		` autocomplete="email"`,
		`<p class="formkit-error" id="fk-email-error" role="alert">invalid email</p>`,
		`<option value="go" selected>Go</option>`,
		`<option value="rust">Rust</option>`,
		`<fieldset class="formkit-section"><legend>Owner</legend>`,
		`id="fk-owner-email" name="owner.email" value="a@b.co"`,
		`name="terms" value="true" checked`,
		`I accept the <em>terms</em>`,
		`<button type="submit" disabled>Sign up</button>`,
	)
	assertNotContains(t, html, "onclick", "hunter2")
}

func TestRenderer_SubmitEnabledWhenValid(t *testing.T) {
	view := render.FormView{
		Valid:  true,
		Fields: []render.FieldView{{Name: "name", Kind: fields.KindText, Label: "Name", Value: "Ada"}},
	}
	html := renderHTML(t, newRenderer(t), view, render.RenderOptions{})

	assertContains(t, html, `<button type="submit">Submit</button>`)
}

func TestRenderer_EmptyFormShowsRequiredMarkers(t *testing.T) {
	view := render.FormView{
		IsEmpty: true,
		Fields: []render.FieldView{
			{Name: "name", Kind: fields.KindText, Label: "Name", Error: "this field is required", ErrorKind: "required"},
		},
		Errors: []string{"this field is required"},
	}
	html := renderHTML(t, newRenderer(t), view, render.RenderOptions{})

	assertContains(t, html, `<span class="formkit-required" aria-hidden="true">*</span>`, ` required`)
	assertNotContains(t, html, "this field is required", "formkit-invalid")
}

func TestRenderer_SanitizesLabelsAndEscapesValues(t *testing.T) {
	view := render.FormView{
		Fields: []render.FieldView{{
			Name:  "bio",
			Kind:  fields.KindTextArea,
			Label: `<b>Bio</b><script>alert(1)</script>`,
			Help:  `See <a href="javascript:alert(1)">docs</a>`,
			Value: `</textarea><script>`,
		}},
	}
	html := renderHTML(t, newRenderer(t), view, render.RenderOptions{})

	assertContains(t, html, `<b>Bio</b>`, `&lt;/textarea&gt;&lt;script&gt;`)
	assertNotContains(t, html, `<script>`, `javascript:`)
}

func TestRenderer_HiddenFieldsAndMethodOverride(t *testing.T) {
	html := renderHTML(t, newRenderer(t), render.FormView{}, render.RenderOptions{
		Method:     "patch",
		Hidden:     render.MergeHiddenFields(nil, render.CSRFToken("_csrf", "tok")),
		FormErrors: []string{"email already taken"},
	})

	assertContains(t, html,
		`method="POST"`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`<input type="hidden" name="_method" value="PATCH">`,
		`<li>email already taken</li>`,
	)
}

func TestRenderer_ThemeVariables(t *testing.T) {
	html := renderHTML(t, newRenderer(t), render.FormView{}, render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--formkit-accent": "#ff0066", "color": "red"},
		},
	})

	assertContains(t, html, `--formkit-accent: #ff0066;`, `data-theme="acme"`, `data-theme-variant="dark"`)
	assertNotContains(t, html, "color: red")
}

func TestRenderer_Stylesheet(t *testing.T) {
	inline := renderHTML(t, newRenderer(t, vanilla.WithInlineStylesheet()), render.FormView{}, render.RenderOptions{})
	assertContains(t, inline, ".formkit-form {")

	linked := renderHTML(t, newRenderer(t, vanilla.WithStylesheetLink("/static/formkit.css")), render.FormView{}, render.RenderOptions{
		Theme: &theme.RendererConfig{AssetURL: func(name string) string { return "/assets/acme/" + name }},
	})
	assertContains(t, linked, `<link rel="stylesheet" href="/assets/acme/formkit-vanilla.css">`)
}

func TestRenderer_ChromeClassOverride(t *testing.T) {
	html := renderHTML(t, newRenderer(t, vanilla.WithChromeClasses(vanilla.ChromeClasses{Form: "stack gap-4", Actions: "bad\"class ok"})), render.FormView{}, render.RenderOptions{})

	assertContains(t, html, `<form class="stack gap-4"`, `<div class="ok">`)
}

func TestRenderer_CustomControlTemplate(t *testing.T) {
	files := fstest.MapFS{
		"templates/form.tmpl":           {Data: []byte(`{{ fields_html|safe }}`)},
		"templates/field.tmpl":          {Data: []byte(`[{{ control_html|safe }}]`)},
		"templates/controls/stars.tmpl": {Data: []byte(`***{{ name }}`)},
	}
	renderer := newRenderer(t, vanilla.WithTemplatesFS(files), vanilla.WithControlTemplate(fields.KindText, "stars"))

	html := renderHTML(t, renderer, render.FormView{Fields: []render.FieldView{{Name: "nick", Kind: fields.KindText}}}, render.RenderOptions{})
	if html != "[***nick]" {
		t.Fatalf("custom template output = %q", html)
	}
}

func TestRenderer_UnknownKind(t *testing.T) {
	_, err := newRenderer(t).Render(testsupport.Context(), render.FormView{
		Fields: []render.FieldView{{Name: "x", Kind: fields.Kind("color")}},
	}, render.RenderOptions{})
	if err == nil {
		t.Fatal("expected error for kind without control template")
	}
}

func TestAssetsFS_ExposesStylesheet(t *testing.T) {
	if _, err := vanilla.AssetsFS().Open(vanilla.StylesheetName); err != nil {
		t.Fatalf("open stylesheet: %v", err)
	}
}
