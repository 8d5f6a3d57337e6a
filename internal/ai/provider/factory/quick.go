package factory

import (
	"time"

	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
)

// 各 Provider 默认 BaseURL
const (
	GeminiBaseURL    = "https://generativelanguage.googleapis.com/"
	OpenAIBaseURL    = "https://api.openai.com/v1"
	AnthropicBaseURL = "https://api.anthropic.com"
)

// Option 配置选项函数
type Option func(*types.Config)

// WithModel 返回设置模型的 Option
func WithModel(model string) Option {
	return func(c *types.Config) {
		c.Model = model
	}
}

// WithBaseURL 返回覆盖 BaseURL 的 Option，空字符串不生效
func WithBaseURL(baseURL string) Option {
	return func(c *types.Config) {
		if baseURL != "" {
			c.BaseURL = baseURL
		}
	}
}

// WithTimeout 返回设置超时的 Option
func WithTimeout(timeout time.Duration) Option {
	return func(c *types.Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithHeader 返回添加单个 Header 的 Option
func WithHeader(key, value string) Option {
	return func(c *types.Config) {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		c.Headers[key] = value
	}
}

func quick(apiKey, baseURL, model string, opts []Option) *types.Config {
	config := &types.Config{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
		Timeout: types.DefaultTimeout,
		Headers: make(map[string]string),
	}

	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Gemini 快速创建 Gemini 配置
func Gemini(apiKey string, opts ...Option) *types.Config {
	return quick(apiKey, GeminiBaseURL, "gemini-2.5-flash", opts)
}

// OpenAI 快速创建 OpenAI 配置
func OpenAI(apiKey string, opts ...Option) *types.Config {
	return quick(apiKey, OpenAIBaseURL, "gpt-4o-mini", opts)
}

// Anthropic 快速创建 Anthropic 配置
func Anthropic(apiKey string, opts ...Option) *types.Config {
	return quick(apiKey, AnthropicBaseURL, "claude-sonnet-4-5", opts)
}

// OpenAICompatible 快速创建 OpenAI 兼容配置
func OpenAICompatible(apiKey, baseURL string, opts ...Option) *types.Config {
	return quick(apiKey, baseURL, "", opts)
}
