package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"aircheck/internal/corpus"
)

func newCurateCommand(ctx *commandContext) *cobra.Command {
	var (
		maxSamplesFlag    int
		minConfidenceFlag float64
		labelsFlag        string
		outputFlag        string
		jsonFlag          bool
	)

	cmd := &cobra.Command{
		Use:   "curate",
		Short: "Select the voiceprint training set from analyzed recordings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			maxSamples := maxSamplesFlag
			if maxSamples <= 0 {
				maxSamples = cfg.Training.MaxSamples
			}
			minConfidence := minConfidenceFlag
			if minConfidence <= 0 {
				minConfidence = cfg.Training.MinConfidence
			}

			recordings, err := loadCurationInput(ctx, cmd, labelsFlag)
			if err != nil {
				return err
			}
			selection := corpus.Curate(recordings, maxSamples, minConfidence)
			if len(selection) == 0 {
				return fmt.Errorf("no recordings suitable for training (min confidence %.2f)", minConfidence)
			}

			if outputFlag != "" {
				if err := writeJSONFile(outputFlag, corpus.SampleFiles(selection)); err != nil {
					return err
				}
			}
			if jsonFlag {
				return writeJSON(cmd, corpus.SampleFiles(selection))
			}

			names := make([]string, 0, len(selection))
			for name := range selection {
				names = append(names, name)
			}
			sort.Strings(names)
			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintf(out, "%s (%d samples)\n", name, len(selection[name]))
				for _, rec := range selection[name] {
					fmt.Fprintf(out, "  %s\n", rec.File)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxSamplesFlag, "max-samples", 0, "Maximum samples per presenter (default from config)")
	cmd.Flags().Float64Var(&minConfidenceFlag, "min-confidence", 0, "Minimum confidence for training samples (default from config)")
	cmd.Flags().StringVar(&labelsFlag, "labels", "", "Curate from a labels JSON file instead of the corpus store")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the selection JSON to this path")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the selection as JSON")
	return cmd
}

// loadCurationInput reads analyzed recordings either from an exported labels
// file or from the corpus store.
func loadCurationInput(ctx *commandContext, cmd *cobra.Command, labelsPath string) ([]corpus.Recording, error) {
	if labelsPath != "" {
		labels, err := corpus.ReadLabels(labelsPath)
		if err != nil {
			return nil, err
		}
		return corpus.LabelsToRecordings(labels)
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := corpus.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.List(cmd.Context())
}
