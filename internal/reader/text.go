package reader

import (
	"bufio"
	"context"
	"io"

	"github.com/careerstack/resumegest/internal/fragment"
)

// TextReader handles plain text files. Each non-blank physical line
// becomes one synthetic fragment row.
type TextReader struct{}

func (p *TextReader) Read(ctx context.Context, r io.Reader, filename string) ([]fragment.TextFragment, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	b := newSyntheticBuilder()
	for scanner.Scan() {
		b.addBody(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b.fragments(), nil
}
