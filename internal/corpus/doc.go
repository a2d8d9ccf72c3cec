// Package corpus persists per-recording resolution results and selects the
// training set used to build voiceprint databases.
//
// The label corpus is an append-mostly SQLite database: each analyzed
// recording gets one row keyed by file path, updated in place when a
// recording is re-analyzed. The curator reads an immutable snapshot and
// produces a capped, recency-biased selection per presenter.
package corpus
