package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTypeFromStatus(t *testing.T) {
	tests := []struct {
		code     int
		expected ErrorType
	}{
		{400, ErrorTypeInvalidRequest},
		{401, ErrorTypeAuthentication},
		{403, ErrorTypePermission},
		{404, ErrorTypeNotFound},
		{413, ErrorTypeRequestTooLarge},
		{422, ErrorTypeInvalidRequest},
		{429, ErrorTypeRateLimit},
		{500, ErrorTypeAPI},
		{502, ErrorTypeAPI},
		{503, ErrorTypeOverloaded},
		{529, ErrorTypeOverloaded},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ErrorTypeFromStatus(tt.code), "status %d", tt.code)
	}
}

func TestProviderError(t *testing.T) {
	rateLimited := NewStatusError("anthropic", 429, "slow down")
	assert.True(t, rateLimited.IsRateLimitError())
	assert.True(t, rateLimited.IsRetryable())
	assert.Equal(t, "[anthropic][rate_limit_error] slow down", rateLimited.Error())

	invalid := NewStatusError("openai", 400, "bad")
	assert.False(t, invalid.IsRetryable())

	withID := &ProviderError{Type: ErrorTypeOverloaded, Provider: "anthropic", StatusCode: 529, Message: "busy", RequestID: "req_1"}
	assert.Equal(t, "[anthropic][overloaded_error][Service Overloaded] busy (request_id: req_1)", withID.Error())

	cause := errors.New("dial tcp: timeout")
	transport := NewTransportError("gemini", "request failed", cause)
	assert.True(t, transport.IsRetryable())
	assert.ErrorIs(t, transport, cause)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{APIKey: "k", BaseURL: "https://example.com"}
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultTimeout, cfg.Timeout)

	assert.ErrorIs(t, (&Config{BaseURL: "https://example.com"}).Validate(), ErrMissingAPIKey)
	assert.ErrorIs(t, (&Config{APIKey: "k"}).Validate(), ErrMissingBaseURL)
}

func TestChatCompletionRequest_Helpers(t *testing.T) {
	req := ChatCompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "rule one"},
			{Role: RoleUser, Content: "first"},
			{Role: RoleAssistant, Content: "reply"},
			{Role: RoleSystem, Content: "rule two"},
			{Role: RoleUser, Content: "second"},
		},
	}

	assert.Equal(t, "rule one\n\nrule two", req.SystemPrompt())
	assert.Equal(t, "second", req.LastUserMessage())
	assert.Equal(t, "", (&ChatCompletionRequest{}).LastUserMessage())
}

func TestChatCompletionResponse_Text(t *testing.T) {
	var nilResp *ChatCompletionResponse
	assert.Equal(t, "", nilResp.Text())
	assert.False(t, nilResp.Truncated())

	resp := &ChatCompletionResponse{Choices: []Choice{{Message: Message{Content: "hello"}, FinishReason: "max_tokens"}}}
	assert.Equal(t, "hello", resp.Text())
	assert.True(t, resp.Truncated())

	resp.Choices[0].FinishReason = "stop"
	assert.False(t, resp.Truncated())
}
