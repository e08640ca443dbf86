package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/form"
)

func ask[V any](ctx context.Context, cfg config, filled form.FilledField[fields.Field[V]], values V) (V, error) {
	help := ""
	if filled.Error != nil && !form.IsRequired(*filled.Error) {
		help = filled.Error.Error()
	}

	switch f := filled.State.(type) {
	case fields.TextField[V]:
		return askText(ctx, cfg, f, help)
	case fields.CheckboxField[V]:
		answer, err := cfg.driver.Confirm(ctx, ConfirmConfig{
			Message: f.Attributes.Text,
			Default: f.Value,
			Help:    firstNonEmpty(help, f.Attributes.Help),
		})
		if err != nil {
			return values, err
		}
		return f.Set(answer), nil
	case fields.RadioField[V]:
		return askChoice(ctx, cfg, f.State, help)
	case fields.SelectField[V]:
		return askChoice(ctx, cfg, f.State, help)
	case fields.SearchSelectField[V]:
		return askSearch(ctx, cfg, f, values, help)
	default:
		return values, nil
	}
}

func askText[V any](ctx context.Context, cfg config, f fields.TextField[V], help string) (V, error) {
	attrs := f.Attributes
	message := label(attrs.Label, attrs.Name)
	help = firstNonEmpty(help, attrs.Help)

	var (
		answer string
		err    error
	)
	switch f.Type {
	case fields.KindPassword:
		answer, err = cfg.driver.Password(ctx, InputConfig{Message: message, Help: help})
	case fields.KindTextArea:
		answer, err = cfg.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: f.Value, Help: help})
	default:
		answer, err = cfg.driver.Input(ctx, InputConfig{
			Message:     message,
			Default:     f.Value,
			Help:        help,
			Placeholder: attrs.Placeholder,
		})
	}
	if err != nil {
		var zero V
		return zero, err
	}
	return f.Set(answer), nil
}

func askChoice[V any](ctx context.Context, cfg config, state form.State[fields.ChoiceAttributes, string, V], help string) (V, error) {
	attrs := state.Attributes
	if len(attrs.Options) == 0 {
		if err := cfg.driver.Info(ctx, cfg.theme.InfoPrefix+label(attrs.Label, attrs.Name)+": no options available"); err != nil {
			var zero V
			return zero, err
		}
		return state.Set(state.Value), nil
	}

	labels := make([]string, len(attrs.Options))
	current := 0
	for i, option := range attrs.Options {
		labels[i] = optionLabel(option)
		if option.Value == state.Value {
			current = i
		}
	}
	idx, err := cfg.driver.Select(ctx, SelectConfig{
		Message:      label(attrs.Label, attrs.Name),
		Options:      labels,
		DefaultIndex: current,
		Help:         firstNonEmpty(help, attrs.Help),
	})
	if err != nil {
		var zero V
		return zero, err
	}
	if idx < 0 || idx >= len(attrs.Options) {
		return state.Set(""), nil
	}
	return state.Set(attrs.Options[idx].Value), nil
}

// askSearch reads a query, resolves it through the field's loader and lets
// the user pick one of the matches. Without a loader the query itself becomes
// the selection.
func askSearch[V any](ctx context.Context, cfg config, f fields.SearchSelectField[V], values V, help string) (V, error) {
	attrs := f.Attributes
	message := label(attrs.Label, attrs.Name)

	query, err := cfg.driver.Input(ctx, InputConfig{
		Message:     message,
		Default:     f.Value.Label,
		Help:        firstNonEmpty(help, attrs.Help),
		Placeholder: attrs.Placeholder,
	})
	if err != nil {
		return values, err
	}
	query = strings.TrimSpace(query)

	if attrs.Load == nil {
		if query == "" {
			return f.Set(fields.Option{}), nil
		}
		return f.Set(fields.Option{Value: query, Label: query}), nil
	}

	matches, err := attrs.Load(ctx, query)
	if err != nil {
		return values, err
	}
	if len(matches) == 0 {
		if err := cfg.driver.Info(ctx, cfg.theme.InfoPrefix+"no matches for "+strconv.Quote(query)); err != nil {
			return values, err
		}
		return f.Set(fields.Option{}), nil
	}

	labels := make([]string, len(matches))
	for i, option := range matches {
		labels[i] = optionLabel(option)
	}
	idx, err := cfg.driver.Select(ctx, SelectConfig{Message: message, Options: labels})
	if err != nil {
		return values, err
	}
	if idx < 0 || idx >= len(matches) {
		return f.Set(fields.Option{}), nil
	}
	return f.Set(matches[idx]), nil
}

func label(text, name string) string {
	if strings.TrimSpace(text) != "" {
		return text
	}
	return name
}

func optionLabel(option fields.Option) string {
	if option.Label != "" {
		return option.Label
	}
	return option.Value
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
