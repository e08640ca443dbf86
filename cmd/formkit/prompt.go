package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		source    sourceFlags
		maxRounds int
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill an operation's form interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := source.load(cmd.Context(), a.log)
			if err != nil {
				return err
			}
			payload, err := tui.Run(cmd.Context(), in.form, in.values,
				tui.WithLogger(a.log.Named("tui")),
				tui.WithMaxRounds(maxRounds),
			)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), payload)
		},
	}
	source.register(cmd)
	cmd.Flags().IntVar(&maxRounds, "max-rounds", tui.DefaultMaxRounds, "prompt rounds before giving up")
	return cmd
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
