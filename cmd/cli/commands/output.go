package commands

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/jakechorley/festival-jury/pkg/core/allocator"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorDim    = "\033[2m"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func validateFormat(format string) error {
	if format != formatTable && format != formatJSON {
		return fmt.Errorf("format must be %q or %q, got %q", formatTable, formatJSON, format)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// loadColor picks a color for a jury member's load relative to the per-jury limit.
// At the limit is red, above half is yellow, otherwise green. A non-positive limit
// means there is nothing to compare against, so the load is shown dimmed.
func loadColor(load, limit int, green, yellow, red, dim string) string {
	if limit <= 0 {
		return dim
	}
	if load >= limit {
		return red
	}
	if load*2 > limit {
		return yellow
	}
	return green
}

// columnWidth returns the rune width that fits every value plus two spaces, at least minWidth.
// fmt pads %-*s by runes, so widths are counted the same way.
func columnWidth(minWidth int, values []string) int {
	width := minWidth
	for _, v := range values {
		width = max(width, utf8.RuneCountInString(v)+2)
	}
	return width
}

// printLoads prints one line per jury member with their load and a bar
func printLoads(w io.Writer, stats allocator.Stats, limit int) {
	names := make([]string, len(stats.Loads))
	for i, l := range stats.Loads {
		names[i] = l.Name
	}
	nameColWidth := columnWidth(20, names)

	fmt.Fprintf(w, "%-8s %-*s %s\n", "Jury", nameColWidth, "Name", "Load")
	fmt.Fprintln(w, strings.Repeat("-", 8+1+nameColWidth+1+12))

	for _, l := range stats.Loads {
		name := l.Name
		if name == "" {
			name = "(not on roster)"
		}
		color := loadColor(l.Count, limit, colorGreen, colorYellow, colorRed, colorDim)
		fmt.Fprintf(w, "%-8d %-*s %s%3d %s%s\n", l.JuryID, nameColWidth, name, color, l.Count, strings.Repeat("■", l.Count), colorReset)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %d   Min: %d   Max: %d   Avg: %.2f\n", stats.Total, stats.Min, stats.Max, stats.Avg)
}

// printFeasibility prints the capacity-vs-need summary
func printFeasibility(w io.Writer, f allocator.Feasibility) {
	fmt.Fprintf(w, "Films needing coverage: %d\n", f.FilmsNeedingCoverage)
	fmt.Fprintf(w, "Ratings needed:         %d\n", f.TotalNeeded)
	fmt.Fprintf(w, "Jury capacity:          %d (%d juries x %d films)\n", f.MaxCapacity, f.JuryCount, f.MaxFilmsPerJury)
}
