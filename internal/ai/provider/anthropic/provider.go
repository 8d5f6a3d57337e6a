package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
	"github.com/tidwall/gjson"
)

const (
	apiVersion = "2023-06-01"

	// DefaultModel 未指定模型时使用
	DefaultModel = "claude-sonnet-4-5"

	defaultMaxTokens = 4096

	webSearchToolType = "web_search_20250305"
	webSearchMaxUses  = 5
)

// Provider Anthropic Provider 实现（直接处理协议转换）
type Provider struct {
	config *types.Config
	client *http.Client
}

// New 创建 Anthropic Provider
func New(config *types.Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Provider{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Name 返回 Provider 名称
func (p *Provider) Name() string {
	return "anthropic"
}

// SupportsWebSearch 通过 web_search 服务端工具支持检索增强
func (p *Provider) SupportsWebSearch() bool {
	return true
}

// setHeaders 设置请求 headers（包括默认 headers 和自定义 headers）
func (p *Provider) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.config.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	for key, value := range p.config.Headers {
		req.Header.Set(key, value)
	}
}

// Anthropic 内部请求结构
type anthropicRequest struct {
	Model         string             `json:"model"`
	Messages      []anthropicMessage `json:"messages"`
	System        string             `json:"system,omitempty"`
	MaxTokens     int                `json:"max_tokens"`
	Temperature   float64            `json:"temperature,omitempty"`
	TopP          float64            `json:"top_p,omitempty"`
	StopSequences []string           `json:"stop_sequences,omitempty"`
	Tools         []anthropicTool    `json:"tools,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicTool struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	MaxUses int    `json:"max_uses,omitempty"`
}

// CreateChatCompletion 创建聊天补全（同步）
// 处理 OpenAI 格式到 Anthropic 格式的转换
func (p *Provider) CreateChatCompletion(ctx context.Context, req types.ChatCompletionRequest) (*types.ChatCompletionResponse, error) {
	reqBody, err := json.Marshal(p.convertRequest(req))
	if err != nil {
		return nil, types.NewProviderError(p.Name(), "marshal request failed", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/v1/messages", bytes.NewReader(reqBody))
	if err != nil {
		return nil, types.NewProviderError(p.Name(), "create request failed", err)
	}
	p.setHeaders(httpReq)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, types.NewTransportError(p.Name(), "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NewTransportError(p.Name(), "read response failed", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, p.statusError(resp, body)
	}

	if !gjson.ValidBytes(body) {
		return nil, types.NewProviderError(p.Name(), "invalid response body", nil)
	}

	return p.convertResponse(gjson.ParseBytes(body)), nil
}

// Close 关闭 Provider
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// convertRequest 将 OpenAI 请求转换为 Anthropic 请求
func (p *Provider) convertRequest(req types.ChatCompletionRequest) *anthropicRequest {
	anthropicReq := &anthropicRequest{
		Model:         req.Model,
		System:        req.SystemPrompt(),
		MaxTokens:     req.MaxTokens,
		Temperature:   req.Temperature,
		TopP:          req.TopP,
		StopSequences: req.Stop,
	}

	if anthropicReq.Model == "" {
		anthropicReq.Model = p.config.Model
	}
	if anthropicReq.Model == "" {
		anthropicReq.Model = DefaultModel
	}
	if anthropicReq.MaxTokens == 0 {
		anthropicReq.MaxTokens = defaultMaxTokens
	}

	for _, msg := range req.Messages {
		if msg.Role == types.RoleSystem {
			continue
		}
		anthropicReq.Messages = append(anthropicReq.Messages, anthropicMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	if req.WebSearch {
		anthropicReq.Tools = []anthropicTool{{
			Type:    webSearchToolType,
			Name:    "web_search",
			MaxUses: webSearchMaxUses,
		}}
	}

	return anthropicReq
}

// convertResponse 拼接所有 text 块，收集 text 块上的引用
func (p *Provider) convertResponse(body gjson.Result) *types.ChatCompletionResponse {
	var text strings.Builder
	var citations []types.Citation

	body.Get("content").ForEach(func(_, block gjson.Result) bool {
		if block.Get("type").String() != "text" {
			return true
		}
		text.WriteString(block.Get("text").String())

		block.Get("citations").ForEach(func(_, c gjson.Result) bool {
			if url := c.Get("url").String(); url != "" {
				citations = append(citations, types.Citation{
					Title: c.Get("title").String(),
					URL:   url,
				})
			}
			return true
		})
		return true
	})

	inputTokens := int(body.Get("usage.input_tokens").Int())
	outputTokens := int(body.Get("usage.output_tokens").Int())

	return &types.ChatCompletionResponse{
		ID:     body.Get("id").String(),
		Object: "chat.completion",
		Model:  body.Get("model").String(),
		Choices: []types.Choice{
			{
				Index: 0,
				Message: types.Message{
					Role:    types.RoleAssistant,
					Content: text.String(),
				},
				FinishReason: body.Get("stop_reason").String(),
			},
		},
		Usage: types.Usage{
			PromptTokens:     inputTokens,
			CompletionTokens: outputTokens,
			TotalTokens:      inputTokens + outputTokens,
		},
		Citations: citations,
	}
}

// statusError 解析 {"type":"error","error":{"type":...,"message":...}}
func (p *Provider) statusError(resp *http.Response, body []byte) error {
	providerErr := types.NewStatusError(p.Name(), resp.StatusCode, strings.TrimSpace(string(body)))
	providerErr.RequestID = resp.Header.Get("request-id")

	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		if msg := parsed.Get("error.message").String(); msg != "" {
			providerErr.Message = msg
		}
		if errType := parsed.Get("error.type").String(); errType != "" {
			providerErr.Type = types.ErrorType(errType)
		}
	}

	if retryAfter, err := strconv.Atoi(resp.Header.Get("retry-after")); err == nil {
		providerErr.RetryAfter = retryAfter
	}

	return providerErr
}
