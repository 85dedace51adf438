package pipeline

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/backmassage/audconvert/internal/display"
	"github.com/backmassage/audconvert/internal/sniff"
	"github.com/backmassage/audconvert/internal/term"
)

// planRow is one line of the dry-run report.
type planRow struct {
	Name   string
	Family sniff.Family
	Size   int64
	Output string
}

// iqrBounds holds the IQR-based thresholds for outlier classification.
type iqrBounds struct {
	q1, q3    float64
	outlierLo float64 // Q1 - 1.5*IQR
	outlierHi float64 // Q3 + 1.5*IQR
	extremeLo float64 // Q1 - 3.0*IQR
	extremeHi float64 // Q3 + 3.0*IQR
	valid     bool
}

func computeStats(vals []float64) iqrBounds {
	if len(vals) < 4 {
		return iqrBounds{}
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1

	return iqrBounds{
		q1:        q1,
		q3:        q3,
		outlierLo: q1 - 1.5*iqr,
		outlierHi: q3 + 1.5*iqr,
		extremeLo: q1 - 3.0*iqr,
		extremeHi: q3 + 3.0*iqr,
		valid:     iqr > 0,
	}
}

// classify returns "" (normal), "outlier", or "extreme" for a value.
func (b *iqrBounds) classify(v float64) string {
	if !b.valid {
		return ""
	}
	if v < b.extremeLo || v > b.extremeHi {
		return "extreme"
	}
	if v < b.outlierLo || v > b.outlierHi {
		return "outlier"
	}
	return ""
}

// sizeStats computes size outlier bounds per family; AMR and SILK messages
// of the same length differ a lot in byte size.
func sizeStats(rows []planRow) map[sniff.Family]iqrBounds {
	vals := make(map[sniff.Family][]float64)
	for _, r := range rows {
		vals[r.Family] = append(vals[r.Family], float64(r.Size))
	}
	out := make(map[sniff.Family]iqrBounds, len(vals))
	for fam, v := range vals {
		out[fam] = computeStats(v)
	}
	return out
}

// printPlanTable writes the dry-run table. Sizes far outside the family's
// interquartile range are flagged: very small messages are often truncated.
func printPlanTable(w io.Writer, rows []planRow, stats map[sniff.Family]iqrBounds) {
	nameW := len("File")
	famW := len("Family")
	sizeW := len("Size")
	outW := len("Output")

	for _, r := range rows {
		nameW = max(nameW, len(r.Name))
		famW = max(famW, len(r.Family.String()))
		sizeW = max(sizeW, len(display.FormatBytes(r.Size)))
		outW = max(outW, len(r.Output))
	}
	nameW = min(nameW, 50)

	header := fmt.Sprintf("  %-*s  %-*s  %-*s  %-*s",
		nameW, "File",
		famW, "Family",
		sizeW, "Size",
		outW, "Output",
	)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, "  "+strings.Repeat("─", len(header)-2))

	for _, r := range rows {
		name := r.Name
		if len(name) > nameW {
			name = name[:nameW-1] + "…"
		}
		b := stats[r.Family]
		class := b.classify(float64(r.Size))

		// Pad the plain text first, then paint, so escape bytes never
		// count toward the column width.
		sizeCell := colorPad(display.FormatBytes(r.Size), sizeW, class)

		line := fmt.Sprintf("  %-*s  %-*s  %s  %-*s  %s",
			nameW, name,
			famW, r.Family,
			sizeCell,
			outW, r.Output,
			formatFlag(class),
		)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintln(w)
}

// logPlanSummary reports the family split and flagged sizes.
func logPlanSummary(log Logger, rows []planRow, stats map[sniff.Family]iqrBounds) {
	var amr, silk, outliers, extremes int
	for _, r := range rows {
		if r.Family == sniff.FamilySILK {
			silk++
		} else {
			amr++
		}
		b := stats[r.Family]
		switch b.classify(float64(r.Size)) {
		case "extreme":
			extremes++
		case "outlier":
			outliers++
		}
	}

	log.Info("Planned %d files (%d AMR, %d SILK)", len(rows), amr, silk)
	for _, fam := range []sniff.Family{sniff.FamilyAMR, sniff.FamilySILK} {
		b, ok := stats[fam]
		if !ok || !b.valid {
			continue
		}
		log.Info("  %s size IQR: %s – %s",
			strings.ToUpper(fam.String()),
			display.FormatBytes(int64(b.q1)),
			display.FormatBytes(int64(b.q3)))
	}
	if outliers > 0 {
		log.Warn("  %d size outlier(s) flagged [*]", outliers)
	}
	if extremes > 0 {
		log.Warn("  %d extreme size outlier(s) flagged [!]", extremes)
	}
}

func formatFlag(class string) string {
	switch class {
	case "extreme":
		return term.Paint(term.Red, "[!]")
	case "outlier":
		return term.Paint(term.Orange, "[*]")
	default:
		return ""
	}
}

// colorPad pads a plain string to width, then paints it by class.
func colorPad(s string, width int, class string) string {
	padded := fmt.Sprintf("%-*s", width, s)
	switch class {
	case "extreme":
		return term.Paint(term.Red, padded)
	case "outlier":
		return term.Paint(term.Orange, padded)
	default:
		return padded
	}
}

// percentile computes the p-th percentile using linear interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi || hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
