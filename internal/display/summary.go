package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/audconvert/internal/term"
)

// Field is one key/value line of a summary box.
type Field struct {
	Key   string
	Value string
}

// SummaryBox renders title and fields as an aligned key/value block. When
// colors are enabled the block is framed with a rounded border.
func SummaryBox(title string, fields []Field) string {
	keyW := 0
	for _, f := range fields {
		if len(f.Key) > keyW {
			keyW = len(f.Key)
		}
	}

	keyStyle := lipgloss.NewStyle()
	valueStyle := lipgloss.NewStyle()
	titleStyle := lipgloss.NewStyle()
	if term.Enabled() {
		keyStyle = keyStyle.Foreground(lipgloss.Color("245"))
		valueStyle = valueStyle.Bold(true)
		titleStyle = titleStyle.Bold(true).Foreground(term.Green)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, f := range fields {
		b.WriteString("\n")
		b.WriteString(keyStyle.Render(f.Key + ":" + strings.Repeat(" ", keyW-len(f.Key)+1)))
		b.WriteString(valueStyle.Render(f.Value))
	}

	if !term.Enabled() {
		return b.String()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(term.Blue).
		Padding(0, 1).
		Render(b.String())
}
