package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/internal/logger"
)

// errInvalid signals a form that did not validate; the report was already
// printed.
var errInvalid = errors.New("form is invalid")

type app struct {
	logLevel  string
	logFormat string
	log       *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "formkit",
		Short:         "Render, validate and prompt forms built from OpenAPI operations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(a.logLevel, a.logFormat)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "console", "log format (console, json)")

	root.AddCommand(
		newRenderCmd(a),
		newValidateCmd(a),
		newPromptCmd(a),
	)
	return root
}
