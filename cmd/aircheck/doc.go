// Command aircheck resolves presenter identity for archived broadcast
// recordings: batch archive analysis, single-transcript identification,
// training-set curation, and voiceprint database building and validation.
package main
