package types

import (
	"context"
	"errors"
	"time"
)

// Provider 一个可调用的大模型后端。请求与响应统一为 OpenAI 风格结构
type Provider interface {
	CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)

	// SupportsWebSearch 为 true 时响应会携带检索引用
	SupportsWebSearch() bool

	Name() string
	Close() error
}

// DefaultTimeout 单次请求超时
const DefaultTimeout = 60 * time.Second

var (
	ErrMissingAPIKey  = errors.New("API key is required")
	ErrMissingBaseURL = errors.New("base URL is required")
)

// Config 构造 Provider 所需的连接参数
type Config struct {
	APIKey  string
	BaseURL string
	Model   string // 请求未指定模型时使用
	Timeout time.Duration
	Headers map[string]string // 附加到每个请求
}

// Validate 检查必填项；Timeout 为零时改为 DefaultTimeout
func (c *Config) Validate() error {
	switch {
	case c.APIKey == "":
		return ErrMissingAPIKey
	case c.BaseURL == "":
		return ErrMissingBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}
