package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/schemaform"
)

func newValidateCmd(a *app) *cobra.Command {
	var source sourceFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a values file against an operation's form",
		Long: `Validate fills the operation's form with the values file and prints the
resulting payload as JSON. When the form is invalid every error is printed,
the headline error first, and the command exits with status 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := source.load(cmd.Context(), a.log)
			if err != nil {
				return err
			}

			filled := form.Fill(in.form, in.values)
			a.log.Info("form validated",
				zap.String("operation", in.op.ID),
				zap.Bool("valid", filled.Result.IsOk()),
				zap.Int("errors", len(filled.Result.Errors())),
			)

			payload, err := filled.Result.Get()
			if err != nil {
				printFailures(cmd, filled.Fields)
				return errInvalid
			}
			return printJSON(cmd.OutOrStdout(), payload)
		},
	}
	source.register(cmd)
	return cmd
}

// printFailures lists each failing named field with its error, in form order.
func printFailures(cmd *cobra.Command, filled []form.FilledField[schemaform.Field]) {
	out := cmd.ErrOrStderr()
	fields.Walk(filled, func(field form.FilledField[schemaform.Field]) bool {
		if name := field.State.Name(); name != "" && field.Error != nil {
			fmt.Fprintf(out, "%s: %s\n", name, field.Error.Error())
		}
		return true
	})
}
