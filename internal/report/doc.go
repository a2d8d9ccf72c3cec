// Package report renders analysis summaries and voiceprint validation
// results for the terminal.
package report
