package layout

import (
	"strings"
	"testing"

	"github.com/careerstack/resumegest/internal/fragment"
)

func frag(text string, x, y float64) fragment.TextFragment {
	return fragment.TextFragment{Text: text, X: x, Y: y, Width: float64(len(text)) * 6, Height: 12}
}

func TestGroupLines_SeparatesRowsByY(t *testing.T) {
	fragments := []fragment.TextFragment{
		frag("John Doe", 0, 700),
		frag("john@x.com", 0, 680),
		frag("EXPERIENCE", 0, 650),
		frag("Engineer at Acme, 2020-2022", 0, 620),
	}

	lines := GroupLines(fragments, DefaultLineConfig())

	want := []string{"John Doe", "john@x.com", "EXPERIENCE", "Engineer at Acme, 2020-2022"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line %d: expected %q, got %q", i, w, lines[i].Text)
		}
	}
}

func TestGroupLines_MergesSameRow(t *testing.T) {
	fragments := []fragment.TextFragment{
		frag("Senior", 0, 500),
		frag("Software", 50, 500),
		frag("Engineer", 110, 500),
		frag("Acme Corp", 0, 480),
	}

	lines := GroupLines(fragments, DefaultLineConfig())

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "Senior Software Engineer" {
		t.Errorf("expected merged row, got %q", lines[0].Text)
	}
	if lines[1].Text != "Acme Corp" {
		t.Errorf("expected %q, got %q", "Acme Corp", lines[1].Text)
	}
}

func TestGroupLines_ScrambledXOrderResorted(t *testing.T) {
	// Fragments on the same row supplied out of left-to-right order
	// must still join in reading order.
	fragments := []fragment.TextFragment{
		frag("Engineer", 110, 500),
		frag("Senior", 0, 500),
		frag("Software", 50, 500),
	}

	lines := GroupLines(fragments, DefaultLineConfig())

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "Senior Software Engineer" {
		t.Errorf("expected reading order, got %q", lines[0].Text)
	}
}

func TestGroupLines_EOLForcesBreakOnlyWhenYMoved(t *testing.T) {
	// Same-Y fragments stay on one line even when the reader set
	// HasEOL on each of them.
	sameRow := []fragment.TextFragment{
		{Text: "Hello", X: 0, Y: 100, Height: 12, HasEOL: true},
		{Text: "World", X: 40, Y: 100, Height: 12, HasEOL: true},
	}
	lines := GroupLines(sameRow, DefaultLineConfig())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line for same-Y EOL fragments, got %d", len(lines))
	}

	// A small Y shift within tolerance plus HasEOL is a real break.
	shifted := []fragment.TextFragment{
		{Text: "Hello", X: 0, Y: 100, Height: 12, HasEOL: true},
		{Text: "World", X: 40, Y: 97, Height: 12, HasEOL: true},
	}
	lines = GroupLines(shifted, DefaultLineConfig())
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines for shifted EOL fragments, got %d", len(lines))
	}
}

func TestGroupLines_DropsWhitespaceOnlyRows(t *testing.T) {
	fragments := []fragment.TextFragment{
		frag("Content", 0, 300),
		frag("   ", 0, 280),
		frag("More", 0, 260),
	}

	lines := GroupLines(fragments, DefaultLineConfig())

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "Content" || lines[1].Text != "More" {
		t.Errorf("unexpected lines: %q, %q", lines[0].Text, lines[1].Text)
	}
}

func TestGroupLines_EmptyInput(t *testing.T) {
	if lines := GroupLines(nil, DefaultLineConfig()); lines != nil {
		t.Errorf("expected nil lines for empty input, got %v", lines)
	}
}

func TestGroupLines_NoTextLostOrDuplicated(t *testing.T) {
	fragments := []fragment.TextFragment{
		frag("alpha", 0, 400),
		frag("beta", 40, 400),
		frag("gamma", 0, 380),
		frag("delta", 30, 380),
		frag("epsilon", 0, 360),
	}

	lines := GroupLines(fragments, DefaultLineConfig())

	var got []string
	for _, l := range lines {
		got = append(got, l.Text)
	}
	joined := strings.Join(got, " ")
	want := "alpha beta gamma delta epsilon"
	if joined != want {
		t.Errorf("expected %q, got %q", want, joined)
	}
}

func TestGroupLines_CollapsesInteriorWhitespace(t *testing.T) {
	fragments := []fragment.TextFragment{
		frag("Go,   Python,\tSQL", 0, 200),
	}

	lines := GroupLines(fragments, DefaultLineConfig())

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "Go, Python, SQL" {
		t.Errorf("expected collapsed whitespace, got %q", lines[0].Text)
	}
}
