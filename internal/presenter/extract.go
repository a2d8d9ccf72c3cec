package presenter

import (
	"regexp"
	"strings"
)

// Candidate is a text span suspected to be a presenter name, tagged with the
// index of the sign-off pattern that produced it.
type Candidate struct {
	Text         string
	PatternIndex int
}

// signoffPatterns are the scripted closing phrases that cue a presenter name.
// Order matters: more specific phrasings come first, and downstream matching
// short-circuits on the first candidate that matches the directory.
var signoffPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:This is|This has been)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
	regexp.MustCompile(`(?i)\b(?:I'm|I am)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
	regexp.MustCompile(`(?i)\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+(?:for|on|from)\s+(?:BBC|Radio)`),
	regexp.MustCompile(`(?i)\bwith\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s*[.,]`),
}

// falsePositives are broadcast vocabulary words that the sign-off patterns
// routinely capture. A candidate is dropped only when every word in it is on
// this list.
var falsePositives = map[string]struct{}{
	"the": {}, "shipping": {}, "forecast": {}, "weather": {},
	"radio": {}, "bbc": {}, "good": {}, "night": {},
	"morning": {}, "evening": {}, "and": {}, "now": {}, "that": {},
}

// ExtractCandidates pulls plausible presenter names out of transcript text.
// All patterns are applied (non-exclusively) in order; within one pattern,
// matches keep text order. The returned order is significant.
func ExtractCandidates(transcript string) []Candidate {
	if strings.TrimSpace(transcript) == "" {
		return nil
	}
	var candidates []Candidate
	for idx, pattern := range signoffPatterns {
		for _, match := range pattern.FindAllStringSubmatch(transcript, -1) {
			name := match[1]
			if allFalsePositives(name) {
				continue
			}
			candidates = append(candidates, Candidate{Text: name, PatternIndex: idx})
		}
	}
	return candidates
}

func allFalsePositives(name string) bool {
	words := strings.Fields(strings.ToLower(name))
	if len(words) == 0 {
		return true
	}
	for _, word := range words {
		if _, ok := falsePositives[word]; !ok {
			return false
		}
	}
	return true
}
