package layout

import (
	"regexp"
	"strings"
	"unicode"
)

// Section is a labeled run of lines. Heading is the text of the line
// that opened the section, or empty for the region before the first
// detected heading. Sections partition the line sequence exactly:
// concatenating all sections' lines reproduces the input order.
type Section struct {
	Heading string
	Lines   []Line
}

// Label returns the heading text, or "unknown" for the unlabeled
// leading section.
func (s Section) Label() string {
	if s.Heading == "" {
		return "unknown"
	}
	return s.Heading
}

// Body returns the section's lines excluding the heading line itself.
// The heading line stays in Lines so that sections remain an exact
// partition of the input.
func (s Section) Body() []Line {
	if s.Heading == "" || len(s.Lines) == 0 {
		return s.Lines
	}
	return s.Lines[1:]
}

// SectionConfig controls heading detection.
type SectionConfig struct {
	// MaxHeadingWords is the maximum word count for a heading line.
	MaxHeadingWords int

	// HeightRatio is the minimum line height relative to the body
	// height for size alone to mark a heading.
	HeightRatio float64

	// Keywords are lowercase substrings that mark a short line as a
	// section heading even without a visual signal.
	Keywords []string
}

// DefaultSectionConfig returns the thresholds used by the service.
func DefaultSectionConfig() SectionConfig {
	return SectionConfig{
		MaxHeadingWords: 5,
		HeightRatio:     1.15,
		Keywords: []string{
			"experience", "employment", "work history", "education",
			"skills", "summary", "objective", "profile", "projects",
			"certifications", "certificates", "licenses", "awards",
			"publications", "languages", "volunteer", "interests",
			"references", "contact",
		},
	}
}

var (
	emailLikeRe     = regexp.MustCompile(`\S+@\S+\.\S+`)
	urlLikeRe       = regexp.MustCompile(`(?i)(https?://|www\.)\S+`)
	sentencePunctRe = regexp.MustCompile(`[.;!?]\s|[.!?]$|,`)
)

// GroupSections partitions lines into sections by heading detection.
// Lines before the first heading form an initial section with an
// empty heading; if no heading is ever detected the whole document is
// that single section.
func GroupSections(lines []Line, cfg SectionConfig) []Section {
	if cfg.MaxHeadingWords <= 0 {
		cfg.MaxHeadingWords = 5
	}
	if cfg.HeightRatio <= 0 {
		cfg.HeightRatio = 1.15
	}

	bodyHeight := bodyLineHeight(lines)

	sections := []Section{{}}
	for _, line := range lines {
		if IsHeading(line, bodyHeight, cfg) {
			sections = append(sections, Section{Heading: line.Text, Lines: []Line{line}})
			continue
		}
		sections[len(sections)-1].Lines = append(sections[len(sections)-1].Lines, line)
	}

	// Drop an empty leading section when the document opens with a heading.
	if len(sections) > 1 && len(sections[0].Lines) == 0 {
		sections = sections[1:]
	}
	return sections
}

// IsHeading classifies a line as a section heading. The signals are
// independent predicates so individual rules can be tuned without
// touching the sectioning pass.
func IsHeading(line Line, bodyHeight float64, cfg SectionConfig) bool {
	text := strings.TrimSuffix(strings.TrimSpace(line.Text), ":")
	if text == "" || !hasLetter(text) {
		return false
	}
	if len(strings.Fields(text)) > cfg.MaxHeadingWords {
		return false
	}
	if looksLikeContact(text) {
		return false
	}
	if matchesKeyword(text, cfg.Keywords) {
		return true
	}
	if hasSentencePunctuation(text) {
		return false
	}
	return isAllCaps(text) || lineIsBold(line) || lineIsLarge(line, bodyHeight, cfg.HeightRatio)
}

// matchesKeyword reports whether the text contains a known section
// keyword, case-insensitively.
func matchesKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isAllCaps reports whether every cased letter in the text is upper
// case, with at least two letters total.
func isAllCaps(text string) bool {
	letters := 0
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= 2
}

// looksLikeContact reports whether the text is contact info (email,
// URL, phone-heavy). Contact lines are never headings.
func looksLikeContact(text string) bool {
	if emailLikeRe.MatchString(text) || urlLikeRe.MatchString(text) {
		return true
	}
	digits := 0
	for _, r := range text {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 7
}

// hasSentencePunctuation reports whether the text reads like body
// prose rather than a label.
func hasSentencePunctuation(text string) bool {
	return sentencePunctRe.MatchString(text)
}

func lineIsBold(line Line) bool {
	if len(line.Fragments) == 0 {
		return false
	}
	for _, f := range line.Fragments {
		if !f.IsBold() {
			return false
		}
	}
	return true
}

func lineIsLarge(line Line, bodyHeight, ratio float64) bool {
	return bodyHeight > 0 && line.Height >= bodyHeight*ratio
}

func hasLetter(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// bodyLineHeight returns the most common line height bucket, which
// approximates the body text size. Returns 0 when lines carry no
// height information.
func bodyLineHeight(lines []Line) float64 {
	const bucket = 0.5
	counts := make(map[int]int)
	for _, l := range lines {
		if l.Height > 0 {
			counts[int(l.Height/bucket)]++
		}
	}
	best, bestCount := 0, 0
	for b, c := range counts {
		if c > bestCount {
			best, bestCount = b, c
		}
	}
	if bestCount == 0 {
		return 0
	}
	return float64(best) * bucket
}
