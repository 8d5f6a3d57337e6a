package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
	"google.golang.org/genai"
)

// DefaultModel 未指定模型时使用
const DefaultModel = "gemini-2.5-flash"

// Provider Google Gemini Provider 实现
type Provider struct {
	config     *types.Config
	client     *genai.Client
	httpClient *http.Client
}

// New 创建 Gemini Provider
func New(config *types.Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	headers := make(http.Header, len(config.Headers))
	for key, value := range config.Headers {
		headers.Set(key, value)
	}

	httpClient := &http.Client{Timeout: config.Timeout}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: config.BaseURL,
			Headers: headers,
		},
	})
	if err != nil {
		return nil, types.NewProviderError("gemini", "create client failed", err)
	}

	return &Provider{
		config:     config,
		client:     client,
		httpClient: httpClient,
	}, nil
}

// Name 返回 Provider 名称
func (p *Provider) Name() string {
	return "gemini"
}

// SupportsWebSearch Gemini 通过 Google Search 工具原生支持检索增强
func (p *Provider) SupportsWebSearch() bool {
	return true
}

// CreateChatCompletion 创建聊天补全（同步）
func (p *Provider) CreateChatCompletion(ctx context.Context, req types.ChatCompletionRequest) (*types.ChatCompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.config.Model
	}
	if model == "" {
		model = DefaultModel
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, convertMessages(req.Messages), p.buildConfig(req))
	if err != nil {
		return nil, p.convertError(err)
	}

	return convertResponse(model, resp), nil
}

// Close 关闭 Provider
func (p *Provider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

// buildConfig 转换生成参数；开启 WebSearch 时挂载 GoogleSearch 工具
func (p *Provider) buildConfig(req types.ChatCompletionRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}

	if system := req.SystemPrompt(); system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if req.Temperature > 0 {
		temperature := float32(req.Temperature)
		cfg.Temperature = &temperature
	}
	if req.TopP > 0 {
		topP := float32(req.TopP)
		cfg.TopP = &topP
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if len(req.Stop) > 0 {
		cfg.StopSequences = req.Stop
	}
	if req.WebSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	return cfg
}

// convertMessages system 消息走 SystemInstruction，assistant 映射为 model
func convertMessages(messages []types.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case types.RoleSystem:
			continue
		case types.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	return contents
}

// convertResponse 转换为 OpenAI 格式，grounding chunk 转为引用
func convertResponse(model string, resp *genai.GenerateContentResponse) *types.ChatCompletionResponse {
	out := &types.ChatCompletionResponse{
		ID:     resp.ResponseID,
		Object: "chat.completion",
		Model:  model,
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}

	if usage := resp.UsageMetadata; usage != nil {
		out.Usage = types.Usage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}

	for i, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		out.Choices = append(out.Choices, types.Choice{
			Index: i,
			Message: types.Message{
				Role:    types.RoleAssistant,
				Content: candidateText(cand),
			},
			FinishReason: strings.ToLower(string(cand.FinishReason)),
		})
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		out.Citations = groundingCitations(resp.Candidates[0].GroundingMetadata)
	}

	return out
}

// candidateText 拼接文本 part，跳过思考内容
func candidateText(cand *genai.Candidate) string {
	if cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

func groundingCitations(meta *genai.GroundingMetadata) []types.Citation {
	if meta == nil {
		return nil
	}
	citations := make([]types.Citation, 0, len(meta.GroundingChunks))
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		citations = append(citations, types.Citation{
			Title: chunk.Web.Title,
			URL:   chunk.Web.URI,
		})
	}
	return citations
}

// convertError genai.APIError 按状态码映射，其余视为网络错误
func (p *Provider) convertError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &types.ProviderError{
			Type:       types.ErrorTypeFromStatus(apiErr.Code),
			Provider:   p.Name(),
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &types.ProviderError{
			Type:       types.ErrorTypeFromStatus(apiErrPtr.Code),
			Provider:   p.Name(),
			StatusCode: apiErrPtr.Code,
			Message:    apiErrPtr.Message,
			Err:        err,
		}
	}

	return types.NewTransportError(p.Name(), "request failed", err)
}
