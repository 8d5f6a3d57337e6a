package service

import (
	"strings"

	"github.com/lk2023060901/ai-study-backend/internal/markdown"
	apperrors "github.com/lk2023060901/ai-study-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Markdown dialects accepted by the render endpoint
const (
	DialectStudy      = "study"
	DialectCommonMark = "commonmark"
)

// RenderService exposes the markdown renderers over HTTP
type RenderService struct{}

// NewRenderService creates a new render service
func NewRenderService() *RenderService {
	return &RenderService{}
}

// RegisterRoutes registers markdown routes
func (s *RenderService) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/markdown/render", s.Render)
}

// RenderRequest is the render payload; Dialect defaults to study
type RenderRequest struct {
	Text    string `json:"text"`
	Dialect string `json:"dialect"`
}

// RenderResponse carries the rendered HTML and the plain-text form
type RenderResponse struct {
	HTML      string           `json:"html"`
	PlainText string           `json:"plainText"`
	Blocks    []markdown.Block `json:"blocks,omitempty"`
}

// Render converts markdown to HTML
// @Summary Render markdown
// @Tags markdown
// @Accept json
// @Produce json
// @Param request body RenderRequest true "Markdown text"
// @Success 200 {object} RenderResponse
// @Router /api/v1/markdown/render [post]
func (s *RenderService) Render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrInvalidParams, err.Error())
		return
	}

	resp := RenderResponse{PlainText: markdown.PlainText(req.Text)}

	switch strings.ToLower(req.Dialect) {
	case "", DialectStudy:
		resp.Blocks = markdown.Parse(req.Text)
		resp.HTML = markdown.RenderHTML(resp.Blocks)
	case DialectCommonMark:
		html, err := markdown.RenderCommonMark(req.Text)
		if err != nil {
			response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer))
			return
		}
		resp.HTML = html
	default:
		response.ErrorWithCode(c, apperrors.ErrMarkdownInvalidDialect, req.Dialect)
		return
	}

	response.Success(c, resp)
}
