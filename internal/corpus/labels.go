package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"aircheck/internal/presenter"
)

// LabeledRecording is the JSON artifact shape for one analyzed recording.
type LabeledRecording struct {
	File                string  `json:"file"`
	Filename            string  `json:"filename"`
	Year                string  `json:"year,omitempty"`
	Month               string  `json:"month,omitempty"`
	Timestamp           string  `json:"timestamp"`
	Presenter           string  `json:"presenter,omitempty"`
	RawMatch            string  `json:"raw_match,omitempty"`
	Confidence          float64 `json:"confidence"`
	MatchType           string  `json:"match_type"`
	Transcript          string  `json:"transcript,omitempty"`
	SuitableForTraining bool    `json:"suitable_for_training"`
}

// LabelsFile is the exported label corpus: the input contract for database
// building when driven from a file instead of the corpus store.
type LabelsFile struct {
	AnalyzedAt  string             `json:"analyzed_at"`
	ArchivePath string             `json:"archive_path,omitempty"`
	RunID       string             `json:"run_id,omitempty"`
	Summary     any                `json:"summary,omitempty"`
	Results     []LabeledRecording `json:"results"`
}

// ToLabeled converts a corpus row to its JSON artifact shape.
func ToLabeled(rec Recording) LabeledRecording {
	return LabeledRecording{
		File:                rec.File,
		Filename:            rec.Filename,
		Year:                rec.Year,
		Month:               rec.Month,
		Timestamp:           rec.Timestamp.UTC().Format(time.RFC3339),
		Presenter:           rec.Result.Presenter,
		RawMatch:            rec.Result.RawMatch,
		Confidence:          rec.Result.Confidence,
		MatchType:           string(rec.Result.Type),
		Transcript:          rec.Result.Transcript,
		SuitableForTraining: rec.SuitableForTraining,
	}
}

// ToRecording converts a JSON artifact entry back to a corpus row. A
// timestamp that does not parse is a hard error: curation is recency-biased,
// so a silently zeroed timestamp would quietly demote the sample.
func ToRecording(label LabeledRecording, runID string) (Recording, error) {
	timestamp, err := time.Parse(time.RFC3339, label.Timestamp)
	if err != nil {
		return Recording{}, fmt.Errorf("labels entry %s: invalid timestamp %q: %w", label.Filename, label.Timestamp, err)
	}
	return Recording{
		RunID:    runID,
		File:     label.File,
		Filename: label.Filename,
		Year:     label.Year,
		Month:    label.Month,
		Result: presenter.Result{
			Presenter:  label.Presenter,
			RawMatch:   label.RawMatch,
			Confidence: label.Confidence,
			Type:       presenter.MatchType(label.MatchType),
			Transcript: label.Transcript,
		},
		SuitableForTraining: label.SuitableForTraining,
		Timestamp:           timestamp,
	}, nil
}

// WriteLabels exports corpus rows as a labels JSON file. The summary is
// stored verbatim; readers treat it as derived data and recompute it.
func WriteLabels(path string, archivePath, runID string, summary any, recordings []Recording) error {
	labels := LabelsFile{
		AnalyzedAt:  time.Now().UTC().Format(time.RFC3339),
		ArchivePath: archivePath,
		RunID:       runID,
		Summary:     summary,
		Results:     make([]LabeledRecording, 0, len(recordings)),
	}
	for _, rec := range recordings {
		labels.Results = append(labels.Results, ToLabeled(rec))
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure labels dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(labels, "", "  ")
	if err != nil {
		return fmt.Errorf("encode labels: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write labels %s: %w", path, err)
	}
	return nil
}

// ReadLabels loads an exported labels file. A malformed file is a hard
// error; curation cannot proceed on corrupt label data.
func ReadLabels(path string) (LabelsFile, error) {
	var labels LabelsFile
	data, err := os.ReadFile(path)
	if err != nil {
		return labels, fmt.Errorf("read labels %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &labels); err != nil {
		return labels, fmt.Errorf("parse labels %s: %w", path, err)
	}
	return labels, nil
}

// LabelsToRecordings converts a labels file to corpus rows.
func LabelsToRecordings(labels LabelsFile) ([]Recording, error) {
	recordings := make([]Recording, 0, len(labels.Results))
	for _, label := range labels.Results {
		rec, err := ToRecording(label, labels.RunID)
		if err != nil {
			return nil, err
		}
		recordings = append(recordings, rec)
	}
	return recordings, nil
}
