package reader

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/careerstack/resumegest/internal/fragment"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFReader extracts positioned text runs from PDF files. PDF
// coordinates are already bottom-left origin; multi-page documents
// are flattened by shifting each page's Y range below the previous
// page, with the page's last fragment marked as a hard line break.
type PDFReader struct{}

func (p *PDFReader) Read(ctx context.Context, r io.Reader, filename string) ([]fragment.TextFragment, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "resumegest-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, doc, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var frags []fragment.TextFragment
	var yOffset float64

	numPages := doc.NumPage()
	for i := 1; i <= numPages; i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageHeight := mediaBoxHeight(page)
		content := page.Content()
		if len(content.Text) == 0 {
			yOffset += pageHeight
			continue
		}

		for _, t := range content.Text {
			frags = append(frags, fragment.TextFragment{
				Text:     t.S,
				X:        t.X,
				Y:        t.Y - yOffset,
				Width:    t.W,
				Height:   t.FontSize,
				FontName: t.Font,
			})
		}
		// Page boundary is a synthetic hard line break.
		frags[len(frags)-1].HasEOL = true
		yOffset += pageHeight
	}

	return frags, nil
}

// mediaBoxHeight reads the page height from the MediaBox, defaulting
// to US Letter when absent.
func mediaBoxHeight(page pdflib.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.Len() == 4 {
		bottom := box.Index(1).Float64()
		top := box.Index(3).Float64()
		if top > bottom {
			return top - bottom
		}
	}
	return 792.0
}
