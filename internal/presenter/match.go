package presenter

import "strings"

// Matcher scores extracted candidates against the presenter directory.
type Matcher struct {
	directory *Directory
	threshold float64
}

// NewMatcher builds a text matcher with the given fuzzy-similarity threshold.
func NewMatcher(directory *Directory, threshold float64) *Matcher {
	return &Matcher{directory: directory, threshold: threshold}
}

// directoryMatch is the outcome of matching one candidate string.
type directoryMatch struct {
	name       string
	confidence float64
	matchType  MatchType
}

// matchCandidate walks the directory in order and returns on the first
// success: exact canonical, exact variation, fuzzy canonical, then fuzzy
// variation, per presenter. First-match-wins is deliberate: candidate order
// encodes pattern specificity, and a later presenter scoring higher does not
// override an earlier acceptable match.
func (m *Matcher) matchCandidate(candidate string) (directoryMatch, bool) {
	folded := fold(strings.TrimSpace(candidate))
	for _, rec := range m.directory.Records() {
		if folded == fold(rec.Name) {
			return directoryMatch{name: rec.Name, confidence: 1.0, matchType: MatchExact}, true
		}
		for _, variation := range rec.Variations {
			if folded == fold(variation) {
				return directoryMatch{name: rec.Name, confidence: 1.0, matchType: MatchVariation}, true
			}
		}
		if ratio := Ratio(folded, fold(rec.Name)); ratio >= m.threshold {
			return directoryMatch{name: rec.Name, confidence: ratio, matchType: MatchFuzzy}, true
		}
		for _, variation := range rec.Variations {
			if ratio := Ratio(folded, fold(variation)); ratio >= m.threshold {
				return directoryMatch{name: rec.Name, confidence: ratio, matchType: MatchFuzzyVariation}, true
			}
		}
	}
	return directoryMatch{}, false
}

// Match resolves the first candidate that matches any directory entry.
// With no candidates the result is no_match; with candidates but no
// directory hit the first candidate is preserved as an unknown raw match.
func (m *Matcher) Match(candidates []Candidate) Result {
	if len(candidates) == 0 {
		return Result{Type: MatchNone}
	}
	for _, candidate := range candidates {
		if match, ok := m.matchCandidate(candidate.Text); ok {
			return Result{
				Presenter:  match.name,
				RawMatch:   candidate.Text,
				Confidence: match.confidence,
				Type:       match.matchType,
			}
		}
	}
	return Result{RawMatch: candidates[0].Text, Type: MatchUnknown}
}
