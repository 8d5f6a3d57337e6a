package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
)

// Render parses text and renders it as HTML.
func Render(text string) string {
	return RenderHTML(Parse(text))
}

// RenderHTML renders blocks as escaped HTML, one element per line.
func RenderHTML(blocks []Block) string {
	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch block.Kind {
		case KindHeading:
			writeElement(&b, "h2", block.Spans)
		case KindSubheading:
			writeElement(&b, "h3", block.Spans)
		case KindList:
			b.WriteString("<ul>")
			for _, item := range block.Items {
				writeElement(&b, "li", item)
			}
			b.WriteString("</ul>")
		default:
			writeElement(&b, "p", block.Spans)
		}
	}
	return b.String()
}

func writeElement(b *strings.Builder, tag string, spans []Span) {
	b.WriteString("<" + tag + ">")
	for _, s := range spans {
		if s.Bold {
			b.WriteString("<strong>" + html.EscapeString(s.Text) + "</strong>")
			continue
		}
		b.WriteString(html.EscapeString(s.Text))
	}
	b.WriteString("</" + tag + ">")
}

var commonMark = goldmark.New()

// RenderCommonMark renders full CommonMark, for note content written outside
// the answer dialect. Raw HTML in the source is not passed through.
func RenderCommonMark(src string) (string, error) {
	var buf bytes.Buffer
	if err := commonMark.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
