package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/audconvert/internal/term"
)

const bannerArt = `                 _                                _
  __ _ _   _  __| | ___ ___  _ ____   _____ _ __| |_
 / _` + "`" + ` | | | |/ _` + "`" + ` |/ __/ _ \| '_ \ \ / / _ \ '__| __|
| (_| | |_| | (_| | (_| (_) | | | \ V /  __/ |  | |_
 \__,_|\__,_|\__,_|\___\___/|_| |_|\_/ \___|_|   \__|`

// PrintBanner writes the ASCII art banner and version to w, in magenta when
// colors are enabled.
func PrintBanner(w io.Writer, version string) {
	art := bannerArt
	ver := "v" + version
	if term.Enabled() {
		art = lipgloss.NewStyle().Bold(true).Foreground(term.Magenta).Render(art)
		ver = lipgloss.NewStyle().Italic(true).Foreground(term.Cyan).Render(ver)
	}
	fmt.Fprintln(w, art)
	fmt.Fprintln(w, ver)
	fmt.Fprintln(w)
}
