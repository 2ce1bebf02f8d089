package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how a command presents dashboard data.
type OutputMode int

const (
	// OutputModePlain prints static text.
	OutputModePlain OutputMode = iota
	// OutputModeInteractive runs a Bubble Tea program.
	OutputModeInteractive
)

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
}

// IsInputTTY reports whether stdin is a terminal.
func IsInputTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
}

// DetectOutputMode picks interactive output only when both ends are
// terminals, plain was not forced and TERM is not "dumb".
func DetectOutputMode(forcePlain bool) OutputMode {
	if forcePlain || os.Getenv("TERM") == "dumb" || !IsTTY() || !IsInputTTY() {
		return OutputModePlain
	}
	return OutputModeInteractive
}
