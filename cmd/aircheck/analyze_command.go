package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aircheck/internal/archive"
	"aircheck/internal/corpus"
	"aircheck/internal/presenter"
	"aircheck/internal/report"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		archiveFlag string
		yearFlag    int
		monthFlag   int
		limitFlag   int
		workersFlag int
		outputFlag  string
		jsonFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Scan the archive and resolve the presenter of every recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			base := strings.TrimSpace(archiveFlag)
			if base == "" {
				base = cfg.Paths.ArchiveDir
			}
			files, err := archive.Scan(base, archive.ScanOptions{
				Year:  yearFlag,
				Month: monthFlag,
				Limit: limitFlag,
			})
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recordings found")
				return nil
			}

			runID, recordings, err := analyzeFiles(ctx, cmd, files, workersFlag)
			if err != nil {
				return err
			}

			store, err := corpus.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			for _, rec := range recordings {
				if _, err := store.Record(cmd.Context(), rec); err != nil {
					return fmt.Errorf("persist analysis result: %w", err)
				}
			}

			summary := report.Summarize(recordings)
			if outputFlag != "" {
				if err := corpus.WriteLabels(outputFlag, base, runID, summary, recordings); err != nil {
					return err
				}
			}

			if jsonFlag {
				return writeJSON(cmd, summary)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.RenderSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&archiveFlag, "archive", "", "Archive base directory (default from config)")
	cmd.Flags().IntVar(&yearFlag, "year", 0, "Only recordings from this year")
	cmd.Flags().IntVar(&monthFlag, "month", 0, "Only recordings from this month (requires --year)")
	cmd.Flags().IntVar(&limitFlag, "limit", 0, "Process at most N recordings")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent recordings (default from config)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the labels JSON artifact to this path")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the summary as JSON")
	return cmd
}

func analyzeFiles(ctx *commandContext, cmd *cobra.Command, files []archive.File, workersFlag int) (string, []corpus.Recording, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", nil, err
	}

	// Detection can be switched off without editing the archive workflow;
	// every recording is then recorded as disabled.
	if !cfg.Matching.Enabled {
		recordings := make([]corpus.Recording, 0, len(files))
		for _, file := range files {
			recordings = append(recordings, corpus.NewRecording("", file.Path, file.Name,
				file.Year, file.Month, file.Timestamp(), presenter.Result{Type: presenter.MatchDisabled}))
		}
		return "", recordings, nil
	}

	log, err := ctx.logger()
	if err != nil {
		return "", nil, err
	}
	directory, err := ctx.loadDirectory()
	if err != nil {
		return "", nil, err
	}
	database, err := ctx.loadDatabase()
	if err != nil {
		return "", nil, err
	}
	resolver, err := ctx.newResolver(directory, database)
	if err != nil {
		return "", nil, err
	}
	transcriberSvc, err := ctx.newTranscriber()
	if err != nil {
		return "", nil, err
	}
	embedderSvc, err := ctx.newEmbedder()
	if err != nil {
		return "", nil, err
	}

	workers := workersFlag
	if workers <= 0 {
		workers = cfg.Analysis.Workers
	}
	analyzer := archive.NewAnalyzer(resolver, transcriberSvc, embedderSvc, workers, log)
	return analyzer.Run(cmd.Context(), files)
}
