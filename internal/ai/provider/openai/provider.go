package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
	"github.com/sashabaranov/go-openai"
)

// Provider OpenAI 及兼容协议 Provider 实现
type Provider struct {
	name       string
	config     *types.Config
	client     *openai.Client
	httpClient *http.Client
}

// New 创建 OpenAI Provider
func New(config *types.Config) (*Provider, error) {
	return NewNamed("openai", config)
}

// NewNamed 创建 OpenAI 兼容 Provider，name 用于日志和错误信息
func NewNamed(name string, config *types.Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
		Transport: &headerTransport{
			headers: config.Headers,
			base:    http.DefaultTransport,
		},
	}

	clientCfg := openai.DefaultConfig(config.APIKey)
	clientCfg.BaseURL = config.BaseURL
	clientCfg.HTTPClient = httpClient

	return &Provider{
		name:       name,
		config:     config,
		client:     openai.NewClientWithConfig(clientCfg),
		httpClient: httpClient,
	}, nil
}

// Name 返回 Provider 名称
func (p *Provider) Name() string {
	return p.name
}

// SupportsWebSearch Chat Completions 接口没有通用的联网检索工具
func (p *Provider) SupportsWebSearch() bool {
	return false
}

// CreateChatCompletion 创建聊天补全（同步）
func (p *Provider) CreateChatCompletion(ctx context.Context, req types.ChatCompletionRequest) (*types.ChatCompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.config.Model
	}
	if model == "" {
		return nil, types.NewProviderError(p.Name(), "model is required", types.ErrInvalidModel)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
		TopP:        float32(req.TopP),
		Stop:        req.Stop,
	})
	if err != nil {
		return nil, p.convertError(err)
	}

	out := &types.ChatCompletionResponse{
		ID:      resp.ID,
		Object:  resp.Object,
		Created: resp.Created,
		Model:   resp.Model,
		Usage: types.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	for _, choice := range resp.Choices {
		out.Choices = append(out.Choices, types.Choice{
			Index: choice.Index,
			Message: types.Message{
				Role:    choice.Message.Role,
				Content: choice.Message.Content,
			},
			FinishReason: string(choice.FinishReason),
		})
	}

	return out, nil
}

// Close 关闭 Provider
func (p *Provider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

// convertError 将 go-openai 错误映射为 ProviderError
func (p *Provider) convertError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &types.ProviderError{
			Type:       types.ErrorTypeFromStatus(apiErr.HTTPStatusCode),
			Provider:   p.Name(),
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &types.ProviderError{
			Type:       types.ErrorTypeFromStatus(reqErr.HTTPStatusCode),
			Provider:   p.Name(),
			StatusCode: reqErr.HTTPStatusCode,
			Message:    "request failed",
			Err:        err,
		}
	}

	return types.NewTransportError(p.Name(), "request failed", err)
}

// headerTransport 为每个请求附加自定义 headers
type headerTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}
	return t.base.RoundTrip(req)
}
