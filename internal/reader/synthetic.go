package reader

import (
	"strings"

	"github.com/careerstack/resumegest/internal/fragment"
)

// Readers for formats without real geometry (DOCX, HTML, Markdown,
// plain text) emit synthetic fragments: one fragment per logical row,
// descending Y, with heading rows given a proportionally larger
// height so downstream heading detection sees the font signal.

const (
	syntheticLeft   = 72.0
	syntheticTop    = 760.0
	syntheticBody   = 12.0
	syntheticGap    = 6.0
	syntheticCharW  = 6.0
	syntheticFont   = "Synthetic"
	syntheticBoldFn = "Synthetic-Bold"
)

type syntheticBuilder struct {
	frags []fragment.TextFragment
	y     float64
}

func newSyntheticBuilder() *syntheticBuilder {
	return &syntheticBuilder{y: syntheticTop}
}

// addBody emits one body-text row.
func (b *syntheticBuilder) addBody(text string) {
	b.addRow(text, syntheticBody, syntheticFont)
}

// addHeading emits one heading row for the given level (1-6).
func (b *syntheticBuilder) addHeading(text string, level int) {
	b.addRow(text, headingHeight(level), syntheticBoldFn)
}

func (b *syntheticBuilder) addRow(text string, height float64, font string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.y -= height + syntheticGap
	b.frags = append(b.frags, fragment.TextFragment{
		Text:     text,
		X:        syntheticLeft,
		Y:        b.y,
		Width:    float64(len(text)) * syntheticCharW,
		Height:   height,
		FontName: font,
		HasEOL:   true,
	})
}

// addParagraph emits one row per physical line of the paragraph.
func (b *syntheticBuilder) addParagraph(text string) {
	for _, line := range strings.Split(text, "\n") {
		b.addBody(line)
	}
}

func (b *syntheticBuilder) fragments() []fragment.TextFragment {
	return b.frags
}

// headingHeight scales the body height per heading level, mirroring
// the usual print ratios (h1 largest).
func headingHeight(level int) float64 {
	switch level {
	case 1:
		return syntheticBody * 1.8
	case 2:
		return syntheticBody * 1.5
	case 3:
		return syntheticBody * 1.3
	default:
		return syntheticBody * 1.15
	}
}
