package output

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal can render.
type TerminalCapabilities struct {
	IsTTY         bool
	SupportsColor bool
}

// DetectTerminalCapabilities inspects f (normally os.Stdout).
// Colors need a terminal and an unset NO_COLOR.
func DetectTerminalCapabilities(f *os.File) TerminalCapabilities {
	isTTY := term.IsTerminal(int(f.Fd()))
	return TerminalCapabilities{
		IsTTY:         isTTY,
		SupportsColor: isTTY && os.Getenv("NO_COLOR") == "",
	}
}

// ColorEnabled resolves a color mode (auto, always, never) against the
// terminal capabilities. disable wins over everything, e.g. --no-color.
func ColorEnabled(mode string, caps TerminalCapabilities, disable bool) bool {
	if disable {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return caps.SupportsColor
	}
}
