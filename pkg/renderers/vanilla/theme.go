package vanilla

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

func buildThemeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":           cfg.Theme,
		"variant":        cfg.Variant,
		"tokens":         copyStringMap(cfg.Tokens),
		"css_vars_style": cssVarsStyle(cfg.CSSVars),
	}
}

// stylesheetHref resolves the stylesheet URL through the theme's asset
// resolver when one is configured.
func stylesheetHref(cfg *theme.RendererConfig, fallback string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return fallback
	}
	if resolved := strings.TrimSpace(cfg.AssetURL(StylesheetName)); resolved != "" {
		return resolved
	}
	return fallback
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		name := strings.TrimSpace(key)
		if !strings.HasPrefix(name, "--") || strings.ContainsAny(name, ";{}<>") {
			continue
		}
		value := strings.NewReplacer(";", "", "{", "", "}", "", "<", "", ">", "").Replace(vars[key])
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(value))
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
