package schemaform

import (
	"regexp"
	"strings"
	"unicode"
)

var wordSeparators = regexp.MustCompile(`[_\-\s.]+`)

// Humanize turns a property name into a label: "first_name" and "firstName"
// both become "First name".
func Humanize(name string) string {
	var words []string
	for _, chunk := range wordSeparators.Split(name, -1) {
		if chunk == "" {
			continue
		}
		words = append(words, splitCamel(chunk)...)
	}
	if len(words) == 0 {
		return ""
	}
	label := strings.ToLower(strings.Join(words, " "))
	runes := []rune(label)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func splitCamel(word string) []string {
	var (
		out   []string
		start int
	)
	runes := []rune(word)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur))
		if boundary {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	return append(out, string(runes[start:]))
}
