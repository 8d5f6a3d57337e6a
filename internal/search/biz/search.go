package biz

import (
	"context"
	"fmt"
	"strings"
	"time"

	aitypes "github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-study-backend/internal/search/parser"
	"github.com/lk2023060901/ai-study-backend/internal/search/prompt"
	"github.com/lk2023060901/ai-study-backend/internal/search/types"

	"go.uber.org/zap"
)

// SearchUseCase 验证搜索流水线：prompt -> Provider -> 提取 -> 归一化
type SearchUseCase struct {
	provider aitypes.Provider
	model    string
	logger   *logger.Logger
}

// NewSearchUseCase 创建搜索用例，provider 为 nil 表示未配置凭证
func NewSearchUseCase(provider aitypes.Provider, model string, log *logger.Logger) *SearchUseCase {
	if log == nil {
		log = logger.L()
	}
	return &SearchUseCase{
		provider: provider,
		model:    model,
		logger:   log.Named("search"),
	}
}

// Configured 是否配置了可用的 Provider
func (uc *SearchUseCase) Configured() bool {
	return uc.provider != nil
}

// ProviderName 当前 Provider 名称
func (uc *SearchUseCase) ProviderName() string {
	if uc.provider == nil {
		return ""
	}
	return uc.provider.Name()
}

// Search 执行一次验证搜索，每次调用只向 Provider 发出一个请求，不重试、不缓存
func (uc *SearchUseCase) Search(ctx context.Context, mode types.SearchMode, topic string) (result *types.VerifiedResult, err error) {
	start := time.Now()
	defer func() {
		searchTotal.WithLabelValues(mode.String(), outcomeOf(err)).Inc()
		searchDuration.WithLabelValues(mode.String()).Observe(time.Since(start).Seconds())
		if result != nil {
			searchSources.WithLabelValues(mode.String()).Observe(float64(len(result.Sources)))
		}
	}()

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, types.ErrEmptyTopic
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidMode, mode)
	}
	if uc.provider == nil {
		return nil, types.ErrMissingCredential
	}

	log := uc.logger.WithContext(logger.WithSearchMode(ctx, mode.String()))

	text, err := prompt.Build(mode, topic)
	if err != nil {
		return nil, err
	}

	req := aitypes.ChatCompletionRequest{
		Model: uc.model,
		Messages: []aitypes.Message{
			{Role: aitypes.RoleUser, Content: text},
		},
	}
	if mode == types.ModeQuick {
		req.WebSearch = true
		req.SearchQuery = topic
	}

	resp, err := uc.provider.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Error("completion failed",
			zap.String("provider", uc.provider.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	raw := toRawCompletion(resp)
	if strings.TrimSpace(raw.Text) == "" {
		return nil, types.ErrEmptyResponse
	}
	if resp.Truncated() {
		log.Warn("completion truncated by token limit",
			zap.String("provider", uc.provider.Name()),
			zap.Int("text_len", len(raw.Text)),
		)
	}

	switch mode {
	case types.ModeDeep:
		result, err = parser.NormalizeDeep(raw)
	default:
		result, err = parser.NormalizeQuick(raw)
	}
	if err != nil {
		log.Warn("failed to normalize completion", zap.Error(err))
		return nil, err
	}

	log.Info("verified search completed",
		zap.Int("reliability_score", result.ReliabilityScore),
		zap.Int("sources", len(result.Sources)),
		zap.Int("citations", len(raw.Citations)),
		zap.Duration("latency", time.Since(start)),
	)
	return result, nil
}

func toRawCompletion(resp *aitypes.ChatCompletionResponse) types.RawCompletion {
	if resp == nil {
		return types.RawCompletion{}
	}
	raw := types.RawCompletion{Text: resp.Text()}
	if len(resp.Citations) > 0 {
		raw.Citations = make([]types.Citation, 0, len(resp.Citations))
		for _, c := range resp.Citations {
			raw.Citations = append(raw.Citations, types.Citation{Title: c.Title, URL: c.URL})
		}
	}
	return raw
}
