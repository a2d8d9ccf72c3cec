package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"aircheck/internal/presenter"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// formatResult renders a resolution outcome as a single status line.
func formatResult(result presenter.Result, unknownLabel string, colorize bool) string {
	paint := func(color, s string) string {
		if !colorize {
			return s
		}
		return color + s + ansiReset
	}

	switch {
	case result.Presenter != "":
		return fmt.Sprintf("%s %s (confidence %.2f, %s)",
			paint(ansiGreen, "✓"), result.Presenter, result.Confidence, result.Type)
	case result.RawMatch != "":
		return fmt.Sprintf("%s %s: extracted %q but no directory match",
			paint(ansiYellow, "✗"), unknownLabel, result.RawMatch)
	case result.Type.Failure():
		return fmt.Sprintf("%s analysis failed (%s)", paint(ansiRed, "✗"), result.Type)
	default:
		return fmt.Sprintf("%s %s (%s)", paint(ansiYellow, "✗"), unknownLabel, result.Type)
	}
}
