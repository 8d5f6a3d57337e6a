package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoteNotFound 笔记不存在
	ErrNoteNotFound = errors.New("note not found")

	// ErrEmptyNote 主题和内容都为空
	ErrEmptyNote = errors.New("note topic or content is required")

	// ErrInvalidFont 未知字体
	ErrInvalidFont = errors.New("invalid note font")
)

// Font 笔记显示字体
type Font string

const (
	FontSans  Font = "sans"
	FontSerif Font = "serif"
	FontMono  Font = "mono"
)

// DefaultFont 默认字体
const DefaultFont = FontSans

// ParseFont 解析字体，空字符串返回默认字体
func ParseFont(s string) (Font, error) {
	f := Font(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return DefaultFont, nil
	case FontSans, FontSerif, FontMono:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFont, s)
	}
}

// Note 笔记，Timestamp 为毫秒时间戳
type Note struct {
	ID        string `json:"id"`
	Topic     string `json:"topic"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Font      Font   `json:"font"`
}

// Clone 返回副本
func (n *Note) Clone() *Note {
	c := *n
	return &c
}

// NoteUpdate 部分更新，nil 字段保持不变
type NoteUpdate struct {
	Topic   *string `json:"topic,omitempty"`
	Content *string `json:"content,omitempty"`
	Font    *string `json:"font,omitempty"`
}
