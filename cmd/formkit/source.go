package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/components/timezones"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schemaform"
)

// sourceFlags locate the operation and the inputs shared by every command.
type sourceFlags struct {
	spec      string
	operation string
	values    string
	overlay   string
	errors    string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&s.spec, "spec", "", "OpenAPI document (YAML or JSON)")
	flags.StringVar(&s.operation, "operation", "", `operation id or "METHOD /path"`)
	flags.StringVar(&s.values, "values", "", "values file (YAML or JSON); schema defaults apply otherwise")
	flags.StringVar(&s.overlay, "overlay", "", "presentation overlay (YAML)")
	flags.StringVar(&s.errors, "errors", "", "server error payload (YAML or JSON map of path to messages)")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("operation")
}

// loaded is an operation ready to fill.
type loaded struct {
	op      schemaform.Operation
	overlay *schemaform.Overlay
	form    schemaform.Form
	values  schemaform.Values
	// formErrors are the form-level messages of the error payload.
	formErrors []string
}

func (s *sourceFlags) load(ctx context.Context, log *zap.Logger) (*loaded, error) {
	ops, err := schemaform.ParseFile(ctx, s.spec)
	if err != nil {
		return nil, err
	}
	op, err := schemaform.Lookup(ops, s.operation)
	if err != nil {
		return nil, err
	}

	var overlay *schemaform.Overlay
	if s.overlay != "" {
		data, err := os.ReadFile(s.overlay)
		if err != nil {
			return nil, fmt.Errorf("read overlay: %w", err)
		}
		if overlay, err = schemaform.LoadOverlay(data); err != nil {
			return nil, err
		}
	}

	f, err := schemaform.Build(op,
		schemaform.WithOverlay(overlay),
		schemaform.WithNamedLoader("timezones", timezones.Loader()),
	)
	if err != nil {
		return nil, err
	}

	values := schemaform.Defaults(op)
	if s.values != "" {
		var nested map[string]any
		if err := decodeFile(s.values, &nested); err != nil {
			return nil, fmt.Errorf("read values: %w", err)
		}
		for key, value := range schemaform.FlattenValues(nested) {
			values = values.With(key, value)
		}
	}

	result := &loaded{op: op, overlay: overlay, form: f, values: values}
	if s.errors != "" {
		var payload map[string][]string
		if err := decodeFile(s.errors, &payload); err != nil {
			return nil, fmt.Errorf("read errors: %w", err)
		}
		view := schemaform.Snapshot(f, values)
		mapping := render.MapErrorPayload(view, payload)
		result.values = values.WithErrors(mapping)
		result.formErrors = mapping.Form
	}

	log.Debug("operation loaded",
		zap.String("operation", op.ID),
		zap.String("method", op.Method),
		zap.String("path", op.Path),
		zap.Int("values", len(result.values.Keys())),
	)
	return result, nil
}

// decodeFile decodes YAML or JSON (a YAML subset) into out.
func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
