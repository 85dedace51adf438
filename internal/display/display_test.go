package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/audconvert/internal/config"
	"github.com/backmassage/audconvert/internal/term"
)

func TestPrintBanner_Plain(t *testing.T) {
	term.Configure(config.ColorNever)
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), bannerArt)
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestSummaryBox_Plain(t *testing.T) {
	term.Configure(config.ColorNever)
	got := SummaryBox("Summary", []Field{
		{"Converted", "3"},
		{"Failed", "1"},
	})
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Summary", lines[0])
	assert.Equal(t, "Converted: 3", lines[1])
	assert.Equal(t, "Failed:    1", lines[2])
}

func TestSummaryBox_Colored(t *testing.T) {
	term.Configure(config.ColorAlways)
	defer term.Configure(config.ColorNever)
	got := SummaryBox("Summary", []Field{{"Converted", "3"}})
	assert.Contains(t, got, "╭")
	assert.Contains(t, got, "Converted")
}

func TestStyledHelpPrinter(t *testing.T) {
	term.Configure(config.ColorNever)
	var cli struct {
		Input string `arg:"" optional:"" help:"Input folder."`
		Jobs  int    `short:"j" default:"1" help:"Workers."`
		Dry   bool   `help:"Dry run."`
	}
	var out bytes.Buffer
	parser, err := kong.New(&cli,
		kong.Name("audconvert"),
		kong.Writers(&out, &out),
		kong.Help(StyledHelpPrinter()),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)
	_, _ = parser.Parse([]string{"--help"})

	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "audconvert [<input_dir>] [flags]")
	assert.Contains(t, help, "Input folder.")
	assert.Contains(t, help, "-j, --jobs=")
	assert.Contains(t, help, "(default: 1)")
	assert.Contains(t, help, "--dry")
	assert.NotContains(t, help, "--dry=")
}
