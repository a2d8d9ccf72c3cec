// Package llm talks to an OpenRouter-compatible chat completions endpoint to
// disambiguate uncertain presenter names.
//
// The client retries transient transport failures with exponential backoff
// and honors Retry-After on rate limits. Missing credentials are not an
// error at construction time; callers probe Enabled() and skip escalation
// when the disambiguator is unavailable.
package llm
