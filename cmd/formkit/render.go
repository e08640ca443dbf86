package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/jsonview"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/schemaform"
)

func newRenderers() (*render.Registry, error) {
	html, err := vanilla.New(vanilla.WithInlineStylesheet())
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(html, jsonview.New(jsonview.WithIndent("  ")))
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		source   sourceFlags
		renderer string
		output   string
		csrf     string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form of an operation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in, err := source.load(ctx, a.log)
			if err != nil {
				return err
			}
			registry, err := newRenderers()
			if err != nil {
				return err
			}

			view := schemaform.Snapshot(in.form, in.values)
			opts := schemaform.RenderOptions(in.op, in.overlay, in.values)
			opts.FormErrors = render.MergeFormErrors(opts.FormErrors, in.formErrors...)
			if csrf != "" {
				opts.Hidden = render.MergeHiddenFields(opts.Hidden, render.CSRFToken("_csrf", csrf))
			}

			data, contentType, err := registry.Render(ctx, renderer, view, opts)
			if err != nil {
				return err
			}
			a.log.Info("form rendered",
				zap.String("operation", in.op.ID),
				zap.String("renderer", renderer),
				zap.String("contentType", contentType),
				zap.Bool("valid", view.Valid),
				zap.Int("bytes", len(data)),
			)
			if err := writeOutput(cmd.OutOrStdout(), output, data); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}

	source.register(cmd)
	cmd.Flags().StringVar(&renderer, "renderer", "vanilla", "renderer name (vanilla, json)")
	cmd.Flags().StringVar(&output, "output", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&csrf, "csrf", "", "CSRF token emitted as the _csrf hidden input")
	return cmd
}
