// Package term provides color state, terminal detection, and the lipgloss
// styles shared by logging and display.
//
// Styles are package-level because several packages (logging, display)
// need them for output formatting. [Configure] sets the color profile once
// during startup; when colors are disabled [Paint] returns text unchanged.
package term

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/backmassage/audconvert/internal/config"
)

// Palette used for log levels and the summary.
var (
	Red     = lipgloss.Color("9")
	Green   = lipgloss.Color("10")
	Yellow  = lipgloss.Color("11")
	Orange  = lipgloss.Color("208")
	Blue    = lipgloss.Color("12")
	Cyan    = lipgloss.Color("14")
	Magenta = lipgloss.Color("13")
)

var enabled bool

// Configure resolves the color mode and sets the lipgloss color profile.
// Call once during startup (from [logging.NewLogger]).
func Configure(mode config.ColorMode) {
	enabled = resolve(mode)
	if enabled {
		if mode == config.ColorAlways {
			lipgloss.SetColorProfile(termenv.ANSI256)
		}
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Enabled reports whether colors are currently active.
func Enabled() bool { return enabled }

// Paint renders text bold in color c, or returns it unchanged when colors
// are disabled.
func Paint(c lipgloss.Color, text string) string {
	if !enabled {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(text)
}

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
