package display

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/audconvert/internal/term"
)

var (
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(term.Orange)
	helpFlagStyle    = lipgloss.NewStyle().Bold(true).Foreground(term.Yellow)
	helpArgStyle     = lipgloss.NewStyle().Bold(true).Foreground(term.Cyan)
	helpDefaultStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
)

// StyledHelpPrinter returns a kong help printer that renders the argument
// and flag tables with lipgloss styles.
func StyledHelpPrinter() kong.HelpPrinter {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		fmt.Fprintf(&sb, "\n  %s [<input_dir>] [flags]\n", ctx.Model.Name)
		if ctx.Model.Help != "" {
			fmt.Fprintf(&sb, "\n%s\n", ctx.Model.Help)
		}

		if pos := ctx.Model.Node.Positional; len(pos) > 0 {
			sb.WriteString("\n" + helpSectionStyle.Render("Arguments:") + "\n")
			for _, arg := range pos {
				fmt.Fprintf(&sb, "  %s  %s\n", helpArgStyle.Render(arg.Summary()), arg.Help)
			}
		}

		sb.WriteString("\n" + helpSectionStyle.Render("Flags:") + "\n")
		fmt.Fprintf(&sb, "  %s  %s\n", helpFlagStyle.Render("-h, --help"), "Show context-sensitive help.")
		for _, f := range ctx.Model.Node.Flags {
			if f.Name == "help" {
				continue
			}
			sb.WriteString("  " + helpFlagStyle.Render(flagLabel(f)))
			if f.Help != "" {
				sb.WriteString("  " + f.Help)
			}
			if f.HasDefault && !f.IsBool() && f.Default != "" {
				sb.WriteString(" " + helpDefaultStyle.Render("(default: "+f.Default+")"))
			}
			sb.WriteString("\n")
		}

		_, err := fmt.Fprint(ctx.Stdout, sb.String())
		return err
	}
}

func flagLabel(f *kong.Flag) string {
	label := "--" + f.Name
	if f.Short != 0 {
		label = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
	}
	if !f.IsBool() {
		ph := f.PlaceHolder
		if ph == "" {
			ph = f.FormatPlaceHolder()
		}
		label += "=" + strings.ToUpper(ph)
	}
	return label
}
