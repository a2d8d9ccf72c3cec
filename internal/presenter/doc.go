// Package presenter resolves the identity of an on-air presenter from weak
// evidence: sign-off phrases in a noisy speech transcript and, optionally, a
// speaker embedding matched against a voiceprint database.
//
// The pipeline runs candidate extraction, directory matching, optional LLM
// escalation for uncertain matches, and a biometric fallback. Every stage
// degrades to a well-formed Result; resolution never fails a batch because
// one recording's evidence was ambiguous or unavailable.
package presenter
