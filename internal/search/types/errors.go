package types

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential 未配置 API 凭证，请求发出前即失败
	ErrMissingCredential = errors.New("missing API credential")

	// ErrEmptyResponse Provider 未返回文本
	ErrEmptyResponse = errors.New("no response from provider")

	// ErrMalformedResponse 提取出的内容无法解析为结构化数据
	ErrMalformedResponse = errors.New("malformed AI response")

	// ErrEmptyTopic 搜索主题为空
	ErrEmptyTopic = errors.New("search topic is required")

	// ErrInvalidMode 未知的搜索模式
	ErrInvalidMode = errors.New("invalid search mode")
)

// MalformedResponseError 结构化解析失败，按模式给出不同的诊断信息
type MalformedResponseError struct {
	Mode   SearchMode
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	var msg string
	switch e.Mode {
	case ModeDeep:
		msg = "malformed AI response: deep analysis could not be parsed into the four-perspective schema"
	default:
		msg = "malformed AI response: verification result is not a valid JSON object"
	}
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrMalformedResponse) 对两种模式都成立
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}
