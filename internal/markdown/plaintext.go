package markdown

import (
	"html"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	reScript     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	reStyle      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	reLineBreak  = regexp.MustCompile(`(?i)<br\s*/?>|</p>`)
	reHeadingEnd = regexp.MustCompile(`(?i)</h[1-6]>`)
	reListItem   = regexp.MustCompile(`(?i)<li[^>]*>`)
	reTag        = regexp.MustCompile(`<[^>]+>`)
	reBlankLines = regexp.MustCompile(`\n{3,}`)
)

// PlainText 将 markdown 转为纯文本，段落之间保留一个空行，列表项以 "- " 开头
func PlainText(src string) string {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.UseXHTML,
	})
	out := blackfriday.Run([]byte(src), blackfriday.WithRenderer(renderer))
	return htmlToPlainText(string(out))
}

func htmlToPlainText(s string) string {
	s = reScript.ReplaceAllString(s, "")
	s = reStyle.ReplaceAllString(s, "")

	s = reLineBreak.ReplaceAllString(s, "\n")
	s = reHeadingEnd.ReplaceAllString(s, "\n\n")
	s = reListItem.ReplaceAllString(s, "- ")

	s = reTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	return cleanWhitespace(s)
}

// cleanWhitespace 去掉行首尾空白，连续空行压缩为一个
func cleanWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = reBlankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
