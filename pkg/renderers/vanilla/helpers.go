package vanilla

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	attrNamePattern = regexp.MustCompile(`^[a-zA-Z_:][-a-zA-Z0-9_:.]*$`)
)

// reservedAttributes are emitted by the control templates themselves.
var reservedAttributes = map[string]struct{}{
	"id": {}, "name": {}, "type": {}, "value": {}, "checked": {}, "selected": {},
}

// inlineTextPolicy allows the inline formatting labels and help texts use
// (emphasis, code, links) and strips everything else.
func inlineTextPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "code", "kbd", "small", "br", "span", "abbr")
		policy.AllowAttrs("title").OnElements("abbr", "span")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		textPolicy = policy
	})
	return textPolicy
}

func sanitizeText(policy *bluemonday.Policy, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(policy.Sanitize(trimmed))
}

func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := tokens[:0]
	for _, token := range tokens {
		if attrNamePattern.MatchString(token) {
			keep = append(keep, token)
		}
	}
	return strings.Join(keep, " ")
}

// attributesHTML renders extra input attributes in a stable order. Names that
// collide with template-managed attributes or event handlers are dropped.
func attributesHTML(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		lower := strings.ToLower(strings.TrimSpace(name))
		if _, reserved := reservedAttributes[lower]; reserved {
			continue
		}
		if strings.HasPrefix(lower, "on") || !attrNamePattern.MatchString(lower) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(strings.TrimSpace(name)))
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attrs[name]))
		b.WriteByte('"')
	}
	return b.String()
}
