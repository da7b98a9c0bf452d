// Package layout reconstructs visual structure from positioned text
// fragments: grouping fragments into reading-order lines, and lines
// into labeled sections.
package layout

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/careerstack/resumegest/internal/fragment"
)

// Line is one visual row of text. Fragments are sorted left to right;
// Text is the space-joined, whitespace-collapsed content.
type Line struct {
	Fragments []fragment.TextFragment
	Text      string

	// Aggregate bounding box.
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// WordCount returns the number of whitespace-separated words in the line.
func (l Line) WordCount() int {
	return len(strings.Fields(l.Text))
}

// LineConfig controls line grouping.
type LineConfig struct {
	// BaselineTolerance is the maximum Y distance between a fragment
	// and the current line's running baseline, as a fraction of the
	// typical fragment height.
	BaselineTolerance float64

	// EOLEpsilon is the minimum Y movement required for a fragment's
	// HasEOL flag to force a line break. Readers that cannot compute
	// real breaks set HasEOL on every row they emit, so the flag only
	// wins when the geometry moved at all.
	EOLEpsilon float64
}

// DefaultLineConfig returns the tolerances used by the service.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BaselineTolerance: 0.5,
		EOLEpsilon:        0.1,
	}
}

// GroupLines merges an ordered fragment list into ordered lines.
// Input order is the reader's emission order (top-to-bottom, roughly
// left-to-right); output text order is always reading order, never
// input order. Whitespace-only rows are dropped.
func GroupLines(fragments []fragment.TextFragment, cfg LineConfig) []Line {
	if cfg.BaselineTolerance <= 0 {
		cfg.BaselineTolerance = 0.5
	}
	if cfg.EOLEpsilon <= 0 {
		cfg.EOLEpsilon = 0.1
	}
	if len(fragments) == 0 {
		return nil
	}

	tolerance := typicalHeight(fragments) * cfg.BaselineTolerance

	var lines []Line
	var current []fragment.TextFragment

	flush := func() {
		if line, ok := buildLine(current); ok {
			lines = append(lines, line)
		}
		current = nil
	}

	for _, frag := range fragments {
		if len(current) == 0 {
			current = append(current, frag)
			continue
		}

		prev := current[len(current)-1]
		baseline := averageY(current)
		moved := abs(frag.Y-baseline) > cfg.EOLEpsilon

		switch {
		case abs(frag.Y-baseline) > tolerance:
			flush()
			current = append(current, frag)
		case prev.HasEOL && moved:
			flush()
			current = append(current, frag)
		default:
			current = append(current, frag)
		}
	}
	flush()

	return lines
}

// buildLine sorts a row's fragments by X and assembles its text and
// bounding box. Returns false for rows with no visible text.
func buildLine(row []fragment.TextFragment) (Line, bool) {
	if len(row) == 0 {
		return Line{}, false
	}

	sorted := make([]fragment.TextFragment, len(row))
	copy(sorted, row)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var parts []string
	for _, f := range sorted {
		if t := strings.TrimSpace(f.Text); t != "" {
			parts = append(parts, t)
		}
	}
	text := collapseWhitespace(strings.Join(parts, " "))
	if text == "" {
		return Line{}, false
	}

	line := Line{
		Fragments: sorted,
		Text:      norm.NFC.String(text),
		X:         sorted[0].X,
		Y:         sorted[0].Y,
	}
	maxRight := line.X
	for _, f := range sorted {
		if f.X < line.X {
			line.X = f.X
		}
		if right := f.X + f.Width; right > maxRight {
			maxRight = right
		}
		if f.Height > line.Height {
			line.Height = f.Height
		}
	}
	line.Width = maxRight - line.X
	line.Y = averageY(sorted)
	return line, true
}

// typicalHeight returns the average height of fragments that have one.
func typicalHeight(fragments []fragment.TextFragment) float64 {
	var total float64
	var n int
	for _, f := range fragments {
		if f.Height > 0 {
			total += f.Height
			n++
		}
	}
	if n == 0 {
		return 12.0
	}
	return total / float64(n)
}

func averageY(fragments []fragment.TextFragment) float64 {
	if len(fragments) == 0 {
		return 0
	}
	var total float64
	for _, f := range fragments {
		total += f.Y
	}
	return total / float64(len(fragments))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
