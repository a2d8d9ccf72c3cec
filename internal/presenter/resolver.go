package presenter

import (
	"context"
	"log/slog"
	"strings"

	"aircheck/internal/logging"
	"aircheck/internal/voiceprint"
)

// llmConfidence is the confidence assigned to disambiguator-validated
// matches: corroborated, not certain.
const llmConfidence = 0.9

// transcriptContextChars bounds the transcript tail sent to the
// disambiguator.
const transcriptContextChars = 500

// Disambiguator resolves an uncertain extracted name to one of the supplied
// canonical names, or reports "" when it cannot. Implementations are external
// collaborators; the resolver independently re-verifies every reply.
type Disambiguator interface {
	Disambiguate(ctx context.Context, extractedName, transcriptContext string, knownNames []string) (string, error)
}

// Options carries the resolution policy thresholds.
type Options struct {
	// SimilarityThreshold is the minimum ratio for a fuzzy text match.
	SimilarityThreshold float64
	// EscalationThreshold: fuzzy matches below this confidence escalate to
	// the disambiguator.
	EscalationThreshold float64
	// BiometricMinimum is the minimum rank-1 cosine similarity for accepting
	// a biometric match.
	BiometricMinimum float64
}

// Resolver fuses text and biometric evidence into one identity decision per
// recording. It is stateless across recordings; the directory and database
// are shared read-only.
type Resolver struct {
	opts          Options
	directory     *Directory
	matcher       *Matcher
	database      *voiceprint.Database
	disambiguator Disambiguator
	logger        *slog.Logger
}

// NewResolver constructs a resolver. The database and disambiguator may be
// nil; the corresponding stages are then skipped.
func NewResolver(directory *Directory, database *voiceprint.Database, disambiguator Disambiguator, opts Options, logger *slog.Logger) *Resolver {
	return &Resolver{
		opts:          opts,
		directory:     directory,
		matcher:       NewMatcher(directory, opts.SimilarityThreshold),
		database:      database,
		disambiguator: disambiguator,
		logger:        logging.NewComponentLogger(logger, "resolver"),
	}
}

// Input is the per-recording evidence available to one resolution.
type Input struct {
	Transcript string
	Embedding  voiceprint.Embedding
}

// Resolve turns the available evidence into a Result. It always returns a
// well-formed Result; external disambiguator failures degrade to the text
// matcher's outcome instead of propagating.
func (r *Resolver) Resolve(ctx context.Context, input Input) Result {
	if strings.TrimSpace(input.Transcript) == "" {
		if result, ok := r.biometric(input.Embedding, Result{Type: MatchNone}); ok {
			return result
		}
		return Result{Type: MatchNone, Transcript: input.Transcript}
	}

	candidates := ExtractCandidates(input.Transcript)
	result := r.matcher.Match(candidates)
	result.Transcript = input.Transcript

	if r.needsValidation(result) {
		result = r.escalate(ctx, result)
	}

	if result.Presenter == "" {
		if biometric, ok := r.biometric(input.Embedding, result); ok {
			return biometric
		}
	}

	return result
}

// needsValidation reports whether the text result is uncertain enough to
// escalate: no directory hit at all, or a fuzzy hit below the escalation
// threshold. Escalation also requires a raw extracted name to ask about.
func (r *Resolver) needsValidation(result Result) bool {
	if result.RawMatch == "" {
		return false
	}
	if result.Type == MatchUnknown {
		return true
	}
	if result.Type == MatchFuzzy || result.Type == MatchFuzzyVariation {
		return result.Confidence < r.opts.EscalationThreshold
	}
	return false
}

func (r *Resolver) escalate(ctx context.Context, result Result) Result {
	if r.disambiguator == nil {
		return result
	}
	r.logger.Info("uncertain match, escalating to disambiguator",
		logging.String("raw_match", result.RawMatch),
		logging.String(logging.FieldMatchType, string(result.Type)),
		logging.Float64(logging.FieldConfidence, result.Confidence))

	reply, err := r.disambiguator.Disambiguate(ctx, result.RawMatch, transcriptTail(result.Transcript), r.directory.Names())
	if err != nil {
		r.logger.Warn("disambiguation failed", logging.Error(err))
		return result
	}
	if strings.TrimSpace(reply) == "" {
		return result
	}

	// The reply is only trusted after an independent directory check.
	verified := r.directory.Verify(reply)
	if verified == "" {
		r.logger.Warn("disambiguator returned name outside directory",
			logging.String("reply", reply))
		return result
	}

	result.Presenter = verified
	result.Type = MatchLLMValidated
	result.Confidence = llmConfidence
	return result
}

// biometric attempts the embedding fallback, carrying the transcript and raw
// match of the prior result forward. It reports false when evidence or the
// database is missing, or the best match is below the acceptance minimum.
func (r *Resolver) biometric(embedding voiceprint.Embedding, prior Result) (Result, bool) {
	if len(embedding) == 0 || r.database == nil || r.database.Len() == 0 {
		return Result{}, false
	}
	matches := voiceprint.Compare(embedding, r.database)
	if len(matches) == 0 {
		return Result{}, false
	}
	top := matches[0]
	if top.BestSimilarity < r.opts.BiometricMinimum {
		r.logger.Info("biometric match below minimum",
			logging.String(logging.FieldPresenter, top.Presenter),
			logging.Float64("similarity", top.BestSimilarity),
			logging.Float64("minimum", r.opts.BiometricMinimum))
		return Result{}, false
	}
	r.logger.Info("biometric match accepted",
		logging.String(logging.FieldPresenter, top.Presenter),
		logging.Float64("similarity", top.BestSimilarity),
		logging.Int("references", top.ReferenceCount))
	return Result{
		Presenter:  top.Presenter,
		RawMatch:   prior.RawMatch,
		Confidence: top.BestSimilarity,
		Type:       MatchBiometric,
		Transcript: prior.Transcript,
	}, true
}

func transcriptTail(transcript string) string {
	runes := []rune(transcript)
	if len(runes) <= transcriptContextChars {
		return transcript
	}
	return string(runes[len(runes)-transcriptContextChars:])
}
