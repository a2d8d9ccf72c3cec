package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aircheck/internal/report"
	"aircheck/internal/voiceprint"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var (
		databaseFlag string
		jsonFlag     bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a voiceprint database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := strings.TrimSpace(databaseFlag)
			if path == "" {
				path = cfg.Paths.VoiceprintDB
			}
			if path == "" {
				return fmt.Errorf("no database path: set --database or paths.voiceprint_db")
			}

			db, err := voiceprint.LoadDatabase(path)
			if err != nil {
				return fmt.Errorf("load voiceprint database: %w", err)
			}
			stats := voiceprint.Validate(db)
			if jsonFlag {
				return writeJSON(cmd, stats)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.RenderValidation(stats))
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseFlag, "database", "", "Voiceprint database path (default from config)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit validation statistics as JSON")
	return cmd
}
