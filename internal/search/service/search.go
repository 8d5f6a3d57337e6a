package service

import (
	"context"
	"errors"

	aitypes "github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
	apperrors "github.com/lk2023060901/ai-study-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/response"
	"github.com/lk2023060901/ai-study-backend/internal/search/types"

	"github.com/gin-gonic/gin"
)

// Searcher 验证搜索能力（由 biz.SearchUseCase 实现）
type Searcher interface {
	Search(ctx context.Context, mode types.SearchMode, topic string) (*types.VerifiedResult, error)
	Configured() bool
	ProviderName() string
}

// SearchService handles HTTP requests for verified search
type SearchService struct {
	searcher Searcher
}

// NewSearchService creates a new search service
func NewSearchService(searcher Searcher) *SearchService {
	return &SearchService{searcher: searcher}
}

// RegisterRoutes registers search routes
func (s *SearchService) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/search", s.Search)
	r.GET("/search/status", s.Status)
}

// SearchRequest 搜索请求
type SearchRequest struct {
	Topic string `json:"topic" binding:"required"`
	Mode  string `json:"mode"` // quick（默认）或 deep
}

// Search runs one verified search
// @Summary Verified search
// @Tags search
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Topic and mode"
// @Success 200 {object} types.VerifiedResult
// @Router /api/v1/search [post]
func (s *SearchService) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrSearchEmptyTopic, err.Error())
		return
	}

	mode, err := types.ParseMode(req.Mode)
	if err != nil {
		response.HandleError(c, classify(err))
		return
	}

	result, err := s.searcher.Search(c.Request.Context(), mode, req.Topic)
	if err != nil {
		response.HandleError(c, classify(err))
		return
	}

	response.Success(c, result)
}

// Status reports whether an AI provider is configured
// @Summary Search provider status
// @Tags search
// @Produce json
// @Router /api/v1/search/status [get]
func (s *SearchService) Status(c *gin.Context) {
	response.Success(c, gin.H{
		"configured": s.searcher.Configured(),
		"provider":   s.searcher.ProviderName(),
	})
}

var searchRules = []apperrors.Rule{
	{Target: types.ErrEmptyTopic, Code: apperrors.ErrSearchEmptyTopic},
	{Target: types.ErrInvalidMode, Code: apperrors.ErrSearchInvalidMode},
	{Target: types.ErrMissingCredential, Code: apperrors.ErrSearchMissingCredential},
	{Target: types.ErrEmptyResponse, Code: apperrors.ErrSearchEmptyResponse},
	{Target: aitypes.ErrMissingAPIKey, Code: apperrors.ErrSearchMissingCredential},
}

// classify 将流水线错误映射为业务错误码
func classify(err error) *apperrors.AppError {
	var malformed *types.MalformedResponseError
	if errors.As(err, &malformed) {
		if malformed.Mode == types.ModeDeep {
			return apperrors.Wrap(err, apperrors.ErrSearchMalformedDeep)
		}
		return apperrors.Wrap(err, apperrors.ErrSearchMalformed)
	}

	var providerErr *aitypes.ProviderError
	if errors.As(err, &providerErr) && providerErr.IsRateLimitError() {
		return apperrors.Wrap(err, apperrors.ErrSearchRateLimited)
	}

	return apperrors.Classify(err, apperrors.ErrSearchProviderFailed, searchRules...)
}
