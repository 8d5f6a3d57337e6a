package parser

import (
	"regexp"
	"strings"
)

// 代码围栏匹配：优先要求结束围栏位于行首，避免 JSON 字符串中的 ``` 提前截断
var (
	jsonFenceStrict = regexp.MustCompile("(?is)```json[ \\t]*\\r?\\n(.*?)\\r?\\n[ \\t]*```")
	jsonFenceLoose  = regexp.MustCompile("(?is)```json(.*?)```")
	anyFenceStrict  = regexp.MustCompile("(?s)```[A-Za-z0-9_+.-]*[ \\t]*\\r?\\n(.*?)\\r?\\n[ \\t]*```")
	anyFenceLoose   = regexp.MustCompile("(?s)```(?:[A-Za-z0-9_+.-]*\\r?\\n)?(.*?)```")
)

// ExtractJSON 从模型输出中截取最可能的顶层 JSON 对象
//
// 处理顺序：
//  1. 标注为 json 的代码围栏内容
//  2. 任意代码围栏内容（只接受以 '{' 开头的围栏）
//  3. 从第一个 '{' 起按字符扫描，忽略字符串内的括号，深度归零处即对象结尾
//  4. 括号不平衡时退回到最后一个 '}'
//  5. 仍失败则返回去除首尾空白的原文
//
// 该函数不会失败，合法性留给调用方解析时判断。
func ExtractJSON(text string) string {
	work := fencedBody(text)

	start := strings.IndexByte(work, '{')
	if start < 0 {
		return strings.TrimSpace(work)
	}

	if end := matchingBrace(work, start); end >= 0 {
		return work[start : end+1]
	}

	if end := strings.LastIndexByte(work, '}'); end > start {
		return work[start : end+1]
	}

	return strings.TrimSpace(text)
}

// fencedBody 返回第一个以 '{' 开头的代码围栏内部文本，没有时原样返回
// JSON 字符串值里的代码示例（```go ...）因此不会被误当作结果
func fencedBody(text string) string {
	for _, re := range []*regexp.Regexp{jsonFenceStrict, jsonFenceLoose, anyFenceStrict, anyFenceLoose} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if strings.HasPrefix(strings.TrimSpace(m[1]), "{") {
				return m[1]
			}
		}
	}
	return text
}

// matchingBrace 返回与 start 处 '{' 配对的 '}' 下标，不存在时返回 -1
// 只统计花括号；方括号不参与，因为顶层总是对象
func matchingBrace(s string, start int) int {
	depth := 0
	inString := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch c {
			case '\\':
				i++ // 跳过被转义的字符
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
