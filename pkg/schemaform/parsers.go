package schemaform

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/fields"
)

// parser converts a raw text input into the payload value.
type parser func(string) (any, error)

// textParser compiles the validation keywords of schema into one parser. The
// pattern is compiled once, at build time.
func textParser(schema *Schema) (parser, error) {
	var pattern *regexp.Regexp
	if schema.Pattern != "" {
		compiled, err := regexp.Compile(schema.Pattern)
		if err != nil {
			return nil, fmt.Errorf("schemaform: compile pattern %q: %w", schema.Pattern, err)
		}
		pattern = compiled
	}

	var allowed func(string) (string, error)
	if len(schema.Enum) > 0 {
		allowed = fields.OneOf(enumOptions(schema, FieldOverlay{}))
	}

	return func(input string) (any, error) {
		length := uint64(utf8.RuneCountInString(input))
		if schema.MinLength > 0 && length < schema.MinLength {
			return nil, fmt.Errorf("must be at least %d characters", schema.MinLength)
		}
		if schema.MaxLength != nil && length > *schema.MaxLength {
			return nil, fmt.Errorf("must be at most %d characters", *schema.MaxLength)
		}
		if pattern != nil && !pattern.MatchString(input) {
			return nil, fmt.Errorf("must match pattern %s", schema.Pattern)
		}
		if allowed != nil {
			if _, err := allowed(input); err != nil {
				return nil, err
			}
		}
		if err := checkFormat(schema.Format, input); err != nil {
			return nil, err
		}
		return convertScalar(schema, input)
	}, nil
}

func checkFormat(format, input string) error {
	switch format {
	case "email":
		_, err := fields.ParseEmail(input)
		return err
	case "uri", "url":
		parsed, err := url.Parse(input)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return errors.New("invalid URL")
		}
	case "date":
		if _, err := time.Parse(time.DateOnly, input); err != nil {
			return errors.New("invalid date (expected YYYY-MM-DD)")
		}
	case "date-time":
		if _, err := time.Parse(time.RFC3339, input); err != nil {
			return errors.New("invalid date-time (expected RFC 3339)")
		}
	}
	return nil
}

// convertScalar turns the validated text into the payload type and applies
// numeric bounds.
func convertScalar(schema *Schema, input string) (any, error) {
	switch schema.Type {
	case "integer":
		value, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return nil, errors.New("must be a whole number")
		}
		if err := checkBounds(schema, float64(value)); err != nil {
			return nil, err
		}
		return value, nil
	case "number":
		value, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return nil, errors.New("must be a number")
		}
		if err := checkBounds(schema, value); err != nil {
			return nil, err
		}
		return value, nil
	case "boolean":
		value, err := strconv.ParseBool(input)
		if err != nil {
			return nil, errors.New("must be true or false")
		}
		return value, nil
	default:
		return input, nil
	}
}

func checkBounds(schema *Schema, value float64) error {
	if schema.Minimum != nil && value < *schema.Minimum {
		return fmt.Errorf("must be at least %s", formatNumber(*schema.Minimum))
	}
	if schema.Maximum != nil && value > *schema.Maximum {
		return fmt.Errorf("must be at most %s", formatNumber(*schema.Maximum))
	}
	return nil
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// formatScalar renders a decoded JSON or YAML scalar as field text. Floats
// never use exponent notation so whole numbers stay parseable as integers.
func formatScalar(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return formatNumber(typed)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	default:
		return fmt.Sprint(typed)
	}
}

// enumOptions lists the enum values as choices, labelled from the overlay.
func enumOptions(schema *Schema, overlay FieldOverlay) []fields.Option {
	options := make([]fields.Option, 0, len(schema.Enum))
	for _, value := range schema.Enum {
		label := overlay.Options[value]
		if label == "" {
			label = value
		}
		options = append(options, fields.Option{Value: value, Label: label})
	}
	return options
}
