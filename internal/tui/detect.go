package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents how imdblab writes to the terminal.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and redirected output.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is watching the terminal.
	ModeInteractive
)

// DefaultWidth is the column count assumed when stdout is not a terminal.
const DefaultWidth = 80

// DetectMode determines whether imdblab should animate and color its output.
//
// Returns ModeNonInteractive if:
//   - IMDBLAB_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stdout is not a terminal (redirected to a file or pipe)
//
// Returns ModeInteractive otherwise.
func DetectMode() Mode {
	if os.Getenv("IMDBLAB_PLAIN") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// TerminalWidth returns the width of stdout in columns, or DefaultWidth
// when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}
