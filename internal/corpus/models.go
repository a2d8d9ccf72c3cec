package corpus

import (
	"time"

	"aircheck/internal/presenter"
)

// Recording is one historical resolver output plus provenance.
type Recording struct {
	ID        int64
	RunID     string
	File      string
	Filename  string
	Year      string
	Month     string
	Timestamp time.Time
	Result    presenter.Result
	// SuitableForTraining is derived from Result at write time so curation
	// queries stay cheap. It always equals Result.SuitableForTraining().
	SuitableForTraining bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewRecording derives a corpus entry from a resolution result.
func NewRecording(runID, file, filename, year, month string, timestamp time.Time, result presenter.Result) Recording {
	return Recording{
		RunID:               runID,
		File:                file,
		Filename:            filename,
		Year:                year,
		Month:               month,
		Timestamp:           timestamp,
		Result:              result,
		SuitableForTraining: result.SuitableForTraining(),
	}
}
