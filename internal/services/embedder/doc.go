// Package embedder extracts speaker voiceprint embeddings from audio files
// using a remote speaker-recognition host reached over SSH.
//
// The remote contract is a script that prints a JSON object to stdout:
// {"embedding": [...]} on success or {"error": "..."} on failure.
package embedder
