// Package services defines the shared error taxonomy for external
// collaborators (transcription, embedding extraction, disambiguation) and
// helpers for wrapping failures with operation context.
package services
