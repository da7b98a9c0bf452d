package fragment

import "strings"

// TextFragment is a positioned run of text produced by a reader.
// Coordinates use a bottom-left origin and are consistent across the
// whole document: readers flatten multi-page input into a single
// descending Y range.
type TextFragment struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontName string  `json:"font_name,omitempty"`
	HasEOL   bool    `json:"has_eol"`
}

// IsBlank reports whether the fragment carries no visible text.
func (f TextFragment) IsBlank() bool {
	return strings.TrimSpace(f.Text) == ""
}

// IsBold reports whether the fragment's font name suggests a bold face.
func (f TextFragment) IsBold() bool {
	name := strings.ToLower(f.FontName)
	return strings.Contains(name, "bold") || strings.Contains(name, "black") || strings.Contains(name, "heavy")
}
