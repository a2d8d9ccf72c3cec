package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"aircheck/internal/presenter"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "identify <transcript-file|->",
		Short: "Resolve the presenter of a single transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			transcript, err := readTranscript(cmd, args[0])
			if err != nil {
				return err
			}

			var result presenter.Result
			if cfg.Matching.Enabled {
				directory, err := ctx.loadDirectory()
				if err != nil {
					return err
				}
				resolver, err := ctx.newResolver(directory, nil)
				if err != nil {
					return err
				}
				result = resolver.Resolve(cmd.Context(), presenter.Input{Transcript: transcript})
			} else {
				result = presenter.Result{Type: presenter.MatchDisabled}
			}

			if jsonFlag {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatResult(result, cfg.Matching.UnknownLabel, shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the result as JSON")
	return cmd
}

func readTranscript(cmd *cobra.Command, arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read transcript from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}
