package archive

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"aircheck/internal/corpus"
	"aircheck/internal/logging"
	"aircheck/internal/presenter"
	"aircheck/internal/services/transcriber"
	"aircheck/internal/voiceprint"
)

// Transcriber produces the sign-off transcript for a recording.
type Transcriber interface {
	TranscribeSignoff(ctx context.Context, audioPath string) (transcriber.Result, error)
	Enabled() bool
}

// Embedder produces a speaker embedding for a recording. Optional; when nil
// the analyzer resolves on transcript evidence alone.
type Embedder interface {
	Extract(ctx context.Context, audioPath string) (voiceprint.Embedding, error)
	Enabled() bool
}

// Analyzer resolves presenter identity for every recording in a scan. Each
// recording is independent; the pool size bounds concurrent external calls.
type Analyzer struct {
	resolver    *presenter.Resolver
	transcriber Transcriber
	embedder    Embedder
	workers     int
	logger      *slog.Logger
}

// NewAnalyzer builds a batch analyzer. workers below 1 is treated as 1;
// embedder may be nil.
func NewAnalyzer(resolver *presenter.Resolver, t Transcriber, e Embedder, workers int, logger *slog.Logger) *Analyzer {
	if workers < 1 {
		workers = 1
	}
	return &Analyzer{
		resolver:    resolver,
		transcriber: t,
		embedder:    e,
		workers:     workers,
		logger:      logging.NewComponentLogger(logger, "analyzer"),
	}
}

// Run analyzes every file and returns one corpus recording per input, newest
// first. A failed recording yields a failure-typed result, never an error;
// Run only stops early when ctx is cancelled.
func (a *Analyzer) Run(ctx context.Context, files []File) (string, []corpus.Recording, error) {
	runID := uuid.NewString()
	a.logger.Info("analysis run starting",
		logging.String(logging.FieldRunID, runID),
		logging.Int("recordings", len(files)),
		logging.Int("workers", a.workers))

	jobs := make(chan File)
	results := make(chan corpus.Recording)

	var wg sync.WaitGroup
	for i := 0; i < a.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				results <- a.analyzeOne(ctx, runID, file)
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, file := range files {
			select {
			case jobs <- file:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	recordings := make([]corpus.Recording, 0, len(files))
	for recording := range results {
		recordings = append(recordings, recording)
	}
	if err := ctx.Err(); err != nil {
		return runID, recordings, err
	}

	sort.Slice(recordings, func(i, j int) bool {
		return recordings[i].Timestamp.After(recordings[j].Timestamp)
	})
	a.logger.Info("analysis run complete",
		logging.String(logging.FieldRunID, runID),
		logging.Int("recordings", len(recordings)))
	return runID, recordings, nil
}

func (a *Analyzer) analyzeOne(ctx context.Context, runID string, file File) corpus.Recording {
	var input presenter.Input

	transcription, err := a.transcriber.TranscribeSignoff(ctx, file.Path)
	if err != nil {
		a.logger.Warn("transcription failed",
			logging.String(logging.FieldRecording, file.Name),
			logging.Error(err))
		result := presenter.FailureResult(presenter.ClassifyFailure(err))
		return corpus.NewRecording(runID, file.Path, file.Name, file.Year, file.Month, file.Timestamp(), result)
	}
	input.Transcript = transcription.Text

	if a.embedder != nil && a.embedder.Enabled() {
		embedding, err := a.embedder.Extract(ctx, file.Path)
		if err != nil {
			// Text evidence still stands; resolve without the embedding.
			a.logger.Warn("embedding extraction failed",
				logging.String(logging.FieldRecording, file.Name),
				logging.Error(err))
		} else {
			input.Embedding = embedding
		}
	}

	result := a.resolver.Resolve(ctx, input)
	if result.Presenter != "" {
		a.logger.Info("presenter resolved",
			logging.String(logging.FieldRecording, file.Name),
			logging.String(logging.FieldPresenter, result.Presenter),
			logging.String(logging.FieldMatchType, string(result.Type)),
			logging.Float64(logging.FieldConfidence, result.Confidence))
	} else {
		a.logger.Info("presenter unresolved",
			logging.String(logging.FieldRecording, file.Name),
			logging.String(logging.FieldMatchType, string(result.Type)))
	}
	return corpus.NewRecording(runID, file.Path, file.Name, file.Year, file.Month, file.Timestamp(), result)
}
