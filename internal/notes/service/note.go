package service

import (
	"github.com/lk2023060901/ai-study-backend/internal/notes/biz"
	"github.com/lk2023060901/ai-study-backend/internal/notes/types"
	apperrors "github.com/lk2023060901/ai-study-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/response"
	searchtypes "github.com/lk2023060901/ai-study-backend/internal/search/types"

	"github.com/gin-gonic/gin"
)

// NoteService handles HTTP requests for notes
type NoteService struct {
	useCase *biz.NoteUseCase
}

// NewNoteService creates a new note service
func NewNoteService(useCase *biz.NoteUseCase) *NoteService {
	return &NoteService{useCase: useCase}
}

// RegisterRoutes registers note routes
func (s *NoteService) RegisterRoutes(r *gin.RouterGroup) {
	notes := r.Group("/notes")
	notes.GET("", s.ListNotes)
	notes.POST("", s.CreateNote)
	notes.POST("/from-result", s.CreateFromResult)
	notes.GET("/:id", s.GetNote)
	notes.PUT("/:id", s.UpdateNote)
	notes.DELETE("/:id", s.DeleteNote)
}

// CreateNoteRequest 创建笔记请求
type CreateNoteRequest struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
	Font    string `json:"font"`
}

// FromResultRequest 从搜索结果创建笔记
type FromResultRequest struct {
	Topic  string                      `json:"topic" binding:"required"`
	Result *searchtypes.VerifiedResult `json:"result" binding:"required"`
}

// ListNotes lists all notes, newest first
// @Summary List notes
// @Tags notes
// @Produce json
// @Success 200 {array} types.Note
// @Router /api/v1/notes [get]
func (s *NoteService) ListNotes(c *gin.Context) {
	response.Success(c, s.useCase.List(c.Request.Context()))
}

// CreateNote creates a new note
// @Summary Create note
// @Tags notes
// @Accept json
// @Produce json
// @Param request body CreateNoteRequest true "Note"
// @Success 201 {object} types.Note
// @Router /api/v1/notes [post]
func (s *NoteService) CreateNote(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrNoteInvalidInput, err.Error())
		return
	}

	note, err := s.useCase.Create(c.Request.Context(), req.Topic, req.Content, req.Font)
	if err != nil {
		response.HandleError(c, classify(err))
		return
	}
	response.Created(c, note)
}

// CreateFromResult saves a verified search result as a note
// @Summary Create note from search result
// @Tags notes
// @Accept json
// @Produce json
// @Param request body FromResultRequest true "Topic and result"
// @Success 201 {object} types.Note
// @Router /api/v1/notes/from-result [post]
func (s *NoteService) CreateFromResult(c *gin.Context) {
	var req FromResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrNoteInvalidInput, err.Error())
		return
	}

	note, err := s.useCase.CreateFromResult(c.Request.Context(), req.Topic, req.Result)
	if err != nil {
		response.HandleError(c, classify(err))
		return
	}
	response.Created(c, note)
}

// GetNote retrieves a note by ID
// @Summary Get note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} types.Note
// @Router /api/v1/notes/{id} [get]
func (s *NoteService) GetNote(c *gin.Context) {
	note, err := s.useCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, classify(err))
		return
	}
	response.Success(c, note)
}

// UpdateNote partially updates a note
// @Summary Update note
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param request body types.NoteUpdate true "Fields to change"
// @Success 200 {object} types.Note
// @Router /api/v1/notes/{id} [put]
func (s *NoteService) UpdateNote(c *gin.Context) {
	var req types.NoteUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrNoteInvalidInput, err.Error())
		return
	}

	note, err := s.useCase.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.HandleError(c, classify(err))
		return
	}
	response.Success(c, note)
}

// DeleteNote deletes a note
// @Summary Delete note
// @Tags notes
// @Param id path string true "Note ID"
// @Router /api/v1/notes/{id} [delete]
func (s *NoteService) DeleteNote(c *gin.Context) {
	if err := s.useCase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.HandleError(c, classify(err))
		return
	}
	response.SuccessWithMessage(c, "Note deleted successfully", nil)
}

func classify(err error) *apperrors.AppError {
	return apperrors.Classify(err, apperrors.ErrNoteStoreFailed,
		apperrors.Rule{Target: types.ErrNoteNotFound, Code: apperrors.ErrNoteNotFound},
		apperrors.Rule{Target: types.ErrEmptyNote, Code: apperrors.ErrNoteInvalidInput},
		apperrors.Rule{Target: types.ErrInvalidFont, Code: apperrors.ErrNoteInvalidInput},
	)
}
