package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// unknownSentinel is the literal reply meaning the model could not decide.
const unknownSentinel = "UNKNOWN"

const disambiguationSystemPrompt = `You are helping identify BBC Radio 4 announcers from Shipping Forecast transcripts. Reply with ONLY the correct presenter name from the known list, or "UNKNOWN" if you cannot determine who it is. Do not explain.`

// Disambiguate asks the model whether the extracted name is one of the known
// announcers, allowing for transcription errors such as a possessive 's or a
// slight misspelling. It returns the model's chosen name, or "" when the
// model replied with the unknown sentinel. The caller must verify the
// returned name against its own directory before trusting it.
func (c *Client) Disambiguate(ctx context.Context, extractedName, transcriptContext string, knownNames []string) (string, error) {
	extractedName = strings.TrimSpace(extractedName)
	if extractedName == "" {
		return "", errors.New("llm disambiguate: extracted name required")
	}
	if len(knownNames) == 0 {
		return "", errors.New("llm disambiguate: known names required")
	}

	prompt := fmt.Sprintf(`The speech-to-text system extracted the name %q from this transcript:
%q

Known BBC Radio 4 announcers: %s

Question: Is %q one of these known announcers (possibly with a transcription error like a possessive 's or slight misspelling)?`,
		extractedName,
		transcriptContext,
		strings.Join(knownNames, ", "),
		extractedName,
	)

	reply, err := c.Complete(ctx, disambiguationSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(strings.Trim(reply, `"'`))
	if strings.EqualFold(reply, unknownSentinel) {
		return "", nil
	}
	return reply, nil
}
