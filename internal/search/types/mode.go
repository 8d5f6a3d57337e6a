package types

import (
	"fmt"
	"strings"
)

// SearchMode 搜索模式，决定 prompt 形态与结果归一化路径
type SearchMode string

const (
	ModeQuick SearchMode = "quick" // 单次验证
	ModeDeep  SearchMode = "deep"  // 四视角深度验证
)

// Valid 是否为已知模式
func (m SearchMode) Valid() bool {
	return m == ModeQuick || m == ModeDeep
}

func (m SearchMode) String() string {
	return string(m)
}

// ParseMode 解析模式字符串（大小写不敏感，空字符串视为 quick）
func ParseMode(s string) (SearchMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeQuick, nil
	}
	m := SearchMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}
