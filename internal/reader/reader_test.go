package reader

import (
	"context"
	"strings"
	"testing"
)

func TestForFile_Dispatch(t *testing.T) {
	tests := []struct {
		filename string
		wantType string
	}{
		{"resume.txt", "*reader.TextReader"},
		{"resume.md", "*reader.MarkdownReader"},
		{"resume.markdown", "*reader.MarkdownReader"},
		{"resume.html", "*reader.HTMLReader"},
		{"Resume.PDF", "*reader.PDFReader"},
		{"resume.docx", "*reader.DOCXReader"},
	}
	for _, tc := range tests {
		r, err := ForFile(tc.filename)
		if err != nil {
			t.Errorf("ForFile(%q): unexpected error: %v", tc.filename, err)
			continue
		}
		if got := typeName(r); got != tc.wantType {
			t.Errorf("ForFile(%q) = %s, want %s", tc.filename, got, tc.wantType)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextReader:
		return "*reader.TextReader"
	case *MarkdownReader:
		return "*reader.MarkdownReader"
	case *HTMLReader:
		return "*reader.HTMLReader"
	case *PDFReader:
		return "*reader.PDFReader"
	case *DOCXReader:
		return "*reader.DOCXReader"
	default:
		return "unknown"
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("resume.xlsx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("cv.pdf") {
		t.Error("expected .pdf to be supported")
	}
	if IsSupportedExtension("cv.exe") {
		t.Error("expected .exe to be unsupported")
	}
}

func TestTextReader_OneFragmentPerLine(t *testing.T) {
	input := "John Doe\njohn@x.com\n\nEXPERIENCE\nEngineer at Acme, 2020-2022\n"

	frags, err := (&TextReader{}).Read(context.Background(), strings.NewReader(input), "resume.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"John Doe", "john@x.com", "EXPERIENCE", "Engineer at Acme, 2020-2022"}
	if len(frags) != len(want) {
		t.Fatalf("expected %d fragments, got %d", len(want), len(frags))
	}
	for i, w := range want {
		if frags[i].Text != w {
			t.Errorf("fragment %d: expected %q, got %q", i, w, frags[i].Text)
		}
		if !frags[i].HasEOL {
			t.Errorf("fragment %d: expected HasEOL", i)
		}
	}

	// Y must strictly descend so line grouping sees distinct rows.
	for i := 1; i < len(frags); i++ {
		if frags[i].Y >= frags[i-1].Y {
			t.Errorf("fragment %d: Y %f not below previous %f", i, frags[i].Y, frags[i-1].Y)
		}
	}
}

func TestTextReader_EmptyInput(t *testing.T) {
	frags, err := (&TextReader{}).Read(context.Background(), strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 0 {
		t.Errorf("expected no fragments, got %d", len(frags))
	}
}

func TestMarkdownReader_HeadingsAreTaller(t *testing.T) {
	input := "# Jane Roe\n\njane@example.com\n\n## Experience\n\n- Built things\n- Shipped things\n"

	frags, err := (&MarkdownReader{}).Read(context.Background(), strings.NewReader(input), "resume.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byText := map[string]float64{}
	for _, f := range frags {
		byText[f.Text] = f.Height
	}
	if byText["Jane Roe"] <= byText["jane@example.com"] {
		t.Errorf("expected h1 taller than body: %v", byText)
	}
	if byText["Experience"] <= byText["jane@example.com"] {
		t.Errorf("expected h2 taller than body: %v", byText)
	}
	if _, ok := byText["• Built things"]; !ok {
		t.Errorf("expected bulleted list item, got %v", byText)
	}
}

func TestHTMLReader_Structure(t *testing.T) {
	input := `<html><head><title>cv</title><style>p{}</style></head><body>
<h1>Sam Smith</h1>
<p>sam@example.com</p>
<h2>Skills</h2>
<ul><li>Go</li><li>SQL</li></ul>
<script>ignore()</script>
</body></html>`

	frags, err := (&HTMLReader{}).Read(context.Background(), strings.NewReader(input), "resume.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var texts []string
	for _, f := range frags {
		texts = append(texts, f.Text)
	}
	want := []string{"Sam Smith", "sam@example.com", "Skills", "• Go", "• SQL"}
	if len(texts) != len(want) {
		t.Fatalf("expected %v, got %v", want, texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("fragment %d: expected %q, got %q", i, want[i], texts[i])
		}
	}
	if frags[0].Height <= frags[1].Height {
		t.Error("expected h1 taller than body text")
	}
}
