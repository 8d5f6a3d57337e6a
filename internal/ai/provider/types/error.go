package types

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType API 错误类型（基于 Anthropic 文档）
type ErrorType string

const (
	// 4xx 客户端错误
	ErrorTypeInvalidRequest  ErrorType = "invalid_request_error" // 400 - 请求格式或内容错误
	ErrorTypeAuthentication  ErrorType = "authentication_error"  // 401 - API Key 问题
	ErrorTypePermission      ErrorType = "permission_error"      // 403 - API Key 权限不足
	ErrorTypeNotFound        ErrorType = "not_found_error"       // 404 - 资源未找到
	ErrorTypeRequestTooLarge ErrorType = "request_too_large"     // 413 - 请求体过大
	ErrorTypeRateLimit       ErrorType = "rate_limit_error"      // 429 - 达到速率限制

	// 5xx 服务器错误
	ErrorTypeAPI        ErrorType = "api_error"        // 500 - 内部服务器错误
	ErrorTypeOverloaded ErrorType = "overloaded_error" // 529/503 - API 临时过载

	// 网络层错误（没有 HTTP 状态码）
	ErrorTypeTransport ErrorType = "transport_error"
)

// StatusOverloaded Anthropic 过载状态码
const StatusOverloaded = 529

// ProviderError Provider 错误
type ProviderError struct {
	Type       ErrorType // 错误类型
	Provider   string    // Provider 名称
	StatusCode int       // HTTP 状态码
	Message    string    // 错误消息
	RequestID  string    // 请求 ID（用于追踪）
	Err        error     // 原始错误

	// RetryAfter 服务端建议的重试等待秒数（仅限流时有效）
	RetryAfter int
}

func (e *ProviderError) Error() string {
	if e.RequestID != "" {
		if e.Err != nil {
			return fmt.Sprintf("[%s][%s][%s] %s: %v (request_id: %s)",
				e.Provider, e.Type, httpStatusText(e.StatusCode), e.Message, e.Err, e.RequestID)
		}
		return fmt.Sprintf("[%s][%s][%s] %s (request_id: %s)",
			e.Provider, e.Type, httpStatusText(e.StatusCode), e.Message, e.RequestID)
	}

	if e.Err != nil {
		return fmt.Sprintf("[%s][%s] %s: %v", e.Provider, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s] %s", e.Provider, e.Type, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsRateLimitError 判断是否为速率限制错误
func (e *ProviderError) IsRateLimitError() bool {
	return e.Type == ErrorTypeRateLimit
}

// IsRetryable 判断错误是否可重试（是否重试由调用方决定）
func (e *ProviderError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit, ErrorTypeAPI, ErrorTypeOverloaded, ErrorTypeTransport:
		return true
	default:
		return false
	}
}

// NewProviderError 创建 Provider 错误
func NewProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Type:     ErrorTypeAPI,
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}

// NewTransportError 网络层失败（连接、超时、读取响应）
func NewTransportError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Type:     ErrorTypeTransport,
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}

// NewStatusError 按 HTTP 状态码创建错误
func NewStatusError(provider string, statusCode int, message string) *ProviderError {
	return &ProviderError{
		Type:       ErrorTypeFromStatus(statusCode),
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ErrorTypeFromStatus HTTP 状态码映射为错误类型
func ErrorTypeFromStatus(code int) ErrorType {
	switch {
	case code == http.StatusBadRequest:
		return ErrorTypeInvalidRequest
	case code == http.StatusUnauthorized:
		return ErrorTypeAuthentication
	case code == http.StatusForbidden:
		return ErrorTypePermission
	case code == http.StatusNotFound:
		return ErrorTypeNotFound
	case code == http.StatusRequestEntityTooLarge:
		return ErrorTypeRequestTooLarge
	case code == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case code == StatusOverloaded || code == http.StatusServiceUnavailable:
		return ErrorTypeOverloaded
	case code >= 400 && code < 500:
		return ErrorTypeInvalidRequest
	default:
		return ErrorTypeAPI
	}
}

// httpStatusText 返回 HTTP 状态码文本
func httpStatusText(code int) string {
	if code == StatusOverloaded {
		return "Service Overloaded"
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return fmt.Sprintf("Status %d", code)
}

// 预定义错误
var (
	ErrInvalidModel = errors.New("invalid model")
)
