package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"aircheck/internal/corpus"
	"aircheck/internal/report"
	"aircheck/internal/voiceprint"
)

// buildMetadata is the optional provenance artifact written next to a newly
// built voiceprint database.
type buildMetadata struct {
	CreatedAt              string                     `json:"created_at"`
	LabelsFile             string                     `json:"labels_file,omitempty"`
	MaxSamplesPerPresenter int                        `json:"max_samples_per_presenter"`
	RecordingsByPresenter  map[string][]string        `json:"recordings_by_presenter"`
	Validation             voiceprint.ValidationStats `json:"validation"`
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var (
		labelsFlag         string
		maxSamplesFlag     int
		outputFlag         string
		metadataOutputFlag string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the voiceprint database from curated training samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log, err := ctx.logger()
			if err != nil {
				return err
			}

			maxSamples := maxSamplesFlag
			if maxSamples <= 0 {
				maxSamples = cfg.Training.MaxSamples
			}
			output := strings.TrimSpace(outputFlag)
			if output == "" {
				output = cfg.Paths.VoiceprintDB
			}
			if output == "" {
				return fmt.Errorf("no database output path: set --output or paths.voiceprint_db")
			}

			recordings, err := loadCurationInput(ctx, cmd, labelsFlag)
			if err != nil {
				return err
			}
			selection := corpus.Curate(recordings, maxSamples, cfg.Training.MinConfidence)
			if len(selection) == 0 {
				return fmt.Errorf("no recordings suitable for training")
			}
			samples := corpus.SampleFiles(selection)

			embedderSvc, err := ctx.newEmbedder()
			if err != nil {
				return err
			}
			if !embedderSvc.Enabled() {
				return fmt.Errorf("embedder.ssh_host must be configured to extract voiceprints")
			}

			db, err := voiceprint.NewBuilder(embedderSvc, log).Build(cmd.Context(), samples)
			if err != nil {
				return err
			}
			stats := voiceprint.Validate(db)

			// Readers may open the database mid-publish; hold the lock across
			// the write.
			lock := flock.New(output + ".lock")
			if err := lock.Lock(); err != nil {
				return fmt.Errorf("acquire database lock: %w", err)
			}
			defer lock.Unlock()
			if err := db.Save(output); err != nil {
				return err
			}

			if metadataOutputFlag != "" {
				meta := buildMetadata{
					CreatedAt:              time.Now().UTC().Format(time.RFC3339),
					LabelsFile:             labelsFlag,
					MaxSamplesPerPresenter: maxSamples,
					RecordingsByPresenter:  samples,
					Validation:             stats,
				}
				if err := writeJSONFile(metadataOutputFlag, meta); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.RenderValidation(stats))
			fmt.Fprintf(out, "\nDatabase saved to %s (%d presenters, %d embeddings)\n",
				output, db.Len(), db.TotalEmbeddings())
			return nil
		},
	}

	cmd.Flags().StringVar(&labelsFlag, "labels", "", "Build from a labels JSON file instead of the corpus store")
	cmd.Flags().IntVar(&maxSamplesFlag, "max-samples", 0, "Maximum samples per presenter (default from config)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Database output path (default from config)")
	cmd.Flags().StringVar(&metadataOutputFlag, "metadata-output", "", "Write build provenance and validation stats to this path")
	return cmd
}
