// Package tui hosts forms built from package fields in a terminal. The host
// prompts for every field in declaration order, re-filling the form after
// each answer so values-dependent fields appear as soon as they apply.
package tui

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/form"
)

// Run prompts until the form result is Ok and returns the output. After an
// invalid pass the errors are printed and the user is asked whether to retry.
func Run[V, O any](ctx context.Context, f form.Form[V, O, fields.Field[V]], values V, options ...Option) (O, error) {
	var zero O
	cfg := newConfig(options)
	log := cfg.logger

	var failure error
	for round := 1; round <= cfg.maxRounds; round++ {
		log.Debug("tui round started", zap.Int("round", round))

		var err error
		values, err = promptPass(ctx, cfg, f, values, round > 1)
		if err != nil {
			return zero, err
		}

		filled := form.Fill(f, values)
		out, err := filled.Result.Get()
		if err == nil {
			log.Info("tui form completed", zap.Int("round", round))
			return out, nil
		}
		failure = err
		log.Info("tui form invalid",
			zap.Int("round", round),
			zap.Int("errors", len(filled.Result.Errors())),
		)

		for _, fieldErr := range filled.Result.Errors() {
			if err := cfg.driver.Info(ctx, cfg.theme.ErrorPrefix+fieldErr.Error()); err != nil {
				return zero, err
			}
		}
		if round == cfg.maxRounds {
			break
		}
		retry, err := cfg.driver.Confirm(ctx, ConfirmConfig{Message: "Fix the errors and try again?", Default: true})
		if err != nil {
			return zero, err
		}
		if !retry {
			break
		}
	}
	return zero, fmt.Errorf("%w: %w", ErrInvalid, failure)
}

// promptPass asks every named leaf field once. On retries only fields that
// currently carry an error are asked again.
func promptPass[V, O any](ctx context.Context, cfg config, f form.Form[V, O, fields.Field[V]], values V, onlyInvalid bool) (V, error) {
	asked := make(map[string]struct{})
	for {
		if err := ctx.Err(); err != nil {
			return values, err
		}

		var (
			next  form.FilledField[fields.Field[V]]
			found bool
		)
		fields.Walk(form.Fill(f, values).Fields, func(field form.FilledField[fields.Field[V]]) bool {
			name := field.State.Name()
			if name == "" {
				return true
			}
			if _, done := asked[name]; done {
				return true
			}
			if onlyInvalid && field.Error == nil {
				return true
			}
			next, found = field, true
			return false
		})
		if !found {
			return values, nil
		}

		asked[next.State.Name()] = struct{}{}
		if next.IsDisabled {
			continue
		}
		updated, err := ask(ctx, cfg, next, values)
		if err != nil {
			return values, fmt.Errorf("tui: prompt %q: %w", next.State.Name(), err)
		}
		values = updated
	}
}
