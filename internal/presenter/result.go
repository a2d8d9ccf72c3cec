package presenter

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"

	"aircheck/internal/services"
)

// MatchType classifies how a Result was produced. It fixes the confidence
// semantics: exact and variation matches are certain, fuzzy confidence is
// the similarity ratio, llm_validated is pinned at 0.9, biometric carries the
// cosine similarity, and every remaining type has confidence zero.
type MatchType string

const (
	MatchExact          MatchType = "exact"
	MatchVariation      MatchType = "variation"
	MatchFuzzy          MatchType = "fuzzy"
	MatchFuzzyVariation MatchType = "fuzzy_variation"
	MatchUnknown        MatchType = "unknown"
	MatchNone           MatchType = "no_match"
	MatchLLMValidated   MatchType = "llm_validated"
	MatchBiometric      MatchType = "biometric"

	MatchTranscriptionError MatchType = "transcription_error"
	MatchTimeout            MatchType = "timeout"
	MatchCommandError       MatchType = "command_error"
	MatchParseError         MatchType = "parse_error"
	MatchError              MatchType = "error"
	MatchDisabled           MatchType = "disabled"
)

// Valid reports whether the match type is one of the defined values.
func (t MatchType) Valid() bool {
	switch t {
	case MatchExact, MatchVariation, MatchFuzzy, MatchFuzzyVariation,
		MatchUnknown, MatchNone, MatchLLMValidated, MatchBiometric,
		MatchTranscriptionError, MatchTimeout, MatchCommandError,
		MatchParseError, MatchError, MatchDisabled:
		return true
	}
	return false
}

// Identified reports whether this match type carries a resolved presenter.
func (t MatchType) Identified() bool {
	switch t {
	case MatchExact, MatchVariation, MatchFuzzy, MatchFuzzyVariation,
		MatchLLMValidated, MatchBiometric:
		return true
	}
	return false
}

// Failure reports whether this match type records an external-call failure.
func (t MatchType) Failure() bool {
	switch t {
	case MatchTranscriptionError, MatchTimeout, MatchCommandError,
		MatchParseError, MatchError:
		return true
	}
	return false
}

// Result is the outcome of one resolution attempt. Presenter is empty unless
// the match type identifies one; RawMatch preserves the extracted span even
// when it did not resolve.
type Result struct {
	Presenter  string    `json:"presenter,omitempty"`
	RawMatch   string    `json:"raw_match,omitempty"`
	Confidence float64   `json:"confidence"`
	Type       MatchType `json:"match_type"`
	Transcript string    `json:"transcript,omitempty"`
}

// SuitableForTraining reports whether the result is trustworthy enough to
// become a voiceprint training sample. Fuzzy and biometric matches are
// excluded so a fuzzy match never trains another fuzzy match.
func (r Result) SuitableForTraining() bool {
	if r.Presenter == "" || r.Confidence < 0.8 {
		return false
	}
	switch r.Type {
	case MatchExact, MatchVariation, MatchLLMValidated:
		return true
	}
	return false
}

// FailureResult builds the Result recorded when an external call failed.
func FailureResult(t MatchType) Result {
	return Result{Type: t}
}

// ClassifyFailure maps an external-call error to the match type recorded for
// the recording. Per-recording failures are encoded, never propagated.
func ClassifyFailure(err error) MatchType {
	switch {
	case err == nil:
		return MatchError
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, services.ErrTimeout):
		return MatchTimeout
	case isExitError(err):
		return MatchCommandError
	case isJSONError(err):
		return MatchParseError
	case errors.Is(err, services.ErrExternalTool):
		return MatchTranscriptionError
	default:
		return MatchError
	}
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

func isJSONError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
