package voiceprint

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sort"

	"aircheck/internal/logging"
)

// Extractor produces a speaker embedding for an audio file. Extraction is
// idempotent per sample; retrying has no side effect on the recording.
type Extractor interface {
	Extract(ctx context.Context, audioPath string) (Embedding, error)
}

// Builder assembles a voiceprint database from curated training samples by
// requesting one embedding per sample from the external extractor.
type Builder struct {
	extractor Extractor
	logger    *slog.Logger
}

// NewBuilder constructs a database builder.
func NewBuilder(extractor Extractor, logger *slog.Logger) *Builder {
	return &Builder{
		extractor: extractor,
		logger:    logging.NewComponentLogger(logger, "voiceprint-builder"),
	}
}

// Build extracts embeddings for every selected sample, presenter by
// presenter. Individual extraction failures are logged and skipped; a
// presenter with no surviving embeddings is omitted from the database.
// Calls are serialized: the extractor's remote temp namespace is shared.
func (b *Builder) Build(ctx context.Context, selection map[string][]string) (*Database, error) {
	if b.extractor == nil {
		return nil, errors.New("voiceprint build: extractor required")
	}

	presenters := make([]string, 0, len(selection))
	total := 0
	for name, files := range selection {
		presenters = append(presenters, name)
		total += len(files)
	}
	sort.Strings(presenters)

	b.logger.Info("extracting embeddings",
		logging.Int("presenters", len(presenters)),
		logging.Int("samples", total))

	references := make(map[string][]Embedding, len(presenters))
	current := 0
	for _, name := range presenters {
		var embeddings []Embedding
		for _, file := range selection[name] {
			current++
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			b.logger.Info("extracting sample",
				logging.Int("current", current),
				logging.Int("total", total),
				logging.String(logging.FieldPresenter, name),
				logging.String(logging.FieldRecording, filepath.Base(file)))

			embedding, err := b.extractor.Extract(ctx, file)
			if err != nil {
				b.logger.Warn("skipping sample, extraction failed",
					logging.String(logging.FieldRecording, filepath.Base(file)),
					logging.Error(err))
				continue
			}
			embeddings = append(embeddings, embedding)
		}
		if len(embeddings) == 0 {
			b.logger.Warn("no embeddings collected",
				logging.String(logging.FieldPresenter, name))
			continue
		}
		references[name] = embeddings
		b.logger.Info("collected embeddings",
			logging.String(logging.FieldPresenter, name),
			logging.Int("embeddings", len(embeddings)))
	}

	if len(references) == 0 {
		return nil, errors.New("voiceprint build: no embeddings extracted")
	}
	return NewDatabase(references)
}
