package reader

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/careerstack/resumegest/internal/fragment"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownReader handles Markdown files using goldmark. Headings map
// to heading rows, list items keep their bullet marker, everything
// else becomes body rows.
type MarkdownReader struct{}

func (p *MarkdownReader) Read(ctx context.Context, r io.Reader, filename string) ([]fragment.TextFragment, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	b := newSyntheticBuilder()

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		emitNode(b, n, src)
	}

	return b.fragments(), nil
}

func emitNode(b *syntheticBuilder, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Heading:
		b.addHeading(string(node.Text(src)), node.Level)
	case *ast.List:
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			if t := extractText(item, src); t != "" {
				b.addBody("• " + t)
			}
		}
	default:
		if t := extractText(n, src); t != "" {
			b.addParagraph(t)
		}
	}
}

// extractText gets the text content of a goldmark AST node. Inline
// children and block lines reference the same source segments, so only
// one of them may be read or paragraph text doubles.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if !n.HasChildren() {
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
