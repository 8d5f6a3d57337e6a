// Package markdown implements the small markdown dialect used by verified
// search answers: blank-line paragraphs, "## "/"### " headings, "- " lists
// and **bold** spans. Anything else is rendered as plain text.
package markdown

import (
	"regexp"
	"strings"
)

// BlockKind identifies how a paragraph is rendered.
type BlockKind string

const (
	KindParagraph  BlockKind = "paragraph"
	KindHeading    BlockKind = "heading"
	KindSubheading BlockKind = "subheading"
	KindList       BlockKind = "list"
)

// Span is a run of inline text.
type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Block is one blank-line separated paragraph.
// Spans is set for headings and paragraphs, Items for lists.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Spans []Span    `json:"spans,omitempty"`
	Items [][]Span  `json:"items,omitempty"`
}

var (
	paragraphSep = regexp.MustCompile(`\n[ \t]*\n`)
	boldSpan     = regexp.MustCompile(`(?s)\*\*(.+?)\*\*`)
)

// Parse splits text into blocks. It never fails.
func Parse(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var blocks []Block
	for _, para := range paragraphSep.Split(text, -1) {
		para = strings.Trim(para, "\n")
		if strings.TrimSpace(para) == "" {
			continue
		}
		blocks = append(blocks, parseBlock(para))
	}
	return blocks
}

func parseBlock(para string) Block {
	switch {
	case strings.HasPrefix(para, "### "):
		return Block{Kind: KindSubheading, Spans: ParseInline(strings.TrimPrefix(para, "### "))}
	case strings.HasPrefix(para, "## "):
		return Block{Kind: KindHeading, Spans: ParseInline(strings.TrimPrefix(para, "## "))}
	case strings.HasPrefix(strings.TrimSpace(para), "- "):
		var items [][]Span
		for _, line := range strings.Split(para, "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "- ") {
				continue
			}
			items = append(items, ParseInline(strings.TrimPrefix(line, "- ")))
		}
		return Block{Kind: KindList, Items: items}
	default:
		return Block{Kind: KindParagraph, Spans: ParseInline(para)}
	}
}

// ParseInline splits text into plain and bold spans. An unmatched "**" is literal text.
func ParseInline(text string) []Span {
	var spans []Span
	last := 0
	for _, m := range boldSpan.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			spans = append(spans, Span{Text: text[last:m[0]]})
		}
		spans = append(spans, Span{Text: text[m[2]:m[3]], Bold: true})
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}
