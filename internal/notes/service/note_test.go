package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lk2023060901/ai-study-backend/internal/notes/biz"
	"github.com/lk2023060901/ai-study-backend/internal/notes/types"
	apperrors "github.com/lk2023060901/ai-study-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	notes   []*types.Note
	saveErr error
}

func (m *memStore) Load(context.Context) ([]*types.Note, error) { return m.notes, nil }

func (m *memStore) Save(_ context.Context, notes []*types.Note) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.notes = notes
	return nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := &memStore{}
	uc, err := biz.NewNoteUseCase(context.Background(), store, biz.WithLogger(logger.NewNop()))
	require.NoError(t, err)

	r := gin.New()
	NewNoteService(uc).RegisterRoutes(r.Group("/api/v1"))
	return r, store
}

func do(t *testing.T, r http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestNotesCRUD(t *testing.T) {
	r, store := setup(t)

	status, env := do(t, r, http.MethodPost, "/api/v1/notes", `{"topic":"Gravity","content":"9.8 m/s2","font":"serif"}`)
	require.Equal(t, http.StatusCreated, status)
	var created types.Note
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, types.FontSerif, created.Font)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, store.notes, 1)

	status, env = do(t, r, http.MethodGet, "/api/v1/notes/"+created.ID, "")
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, r, http.MethodPut, "/api/v1/notes/"+created.ID, `{"content":"changed"}`)
	require.Equal(t, http.StatusOK, status)
	var updated types.Note
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "changed", updated.Content)
	assert.Equal(t, "Gravity", updated.Topic)

	status, env = do(t, r, http.MethodGet, "/api/v1/notes", "")
	require.Equal(t, http.StatusOK, status)
	var list []types.Note
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	status, _ = do(t, r, http.MethodDelete, "/api/v1/notes/"+created.ID, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, store.notes)

	status, env = do(t, r, http.MethodGet, "/api/v1/notes/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apperrors.ErrNoteNotFound, env.Code)
}

func TestNotesFromResult(t *testing.T) {
	r, _ := setup(t)

	body := `{"topic":"Boiling","result":{"summary":"100C","detailedExplanation":"At **sea level**","reliabilityScore":90,"sources":[],"recommendedVideos":[],"consensusNote":"","mode":"quick"}}`
	status, env := do(t, r, http.MethodPost, "/api/v1/notes/from-result", body)
	require.Equal(t, http.StatusCreated, status)

	var note types.Note
	require.NoError(t, json.Unmarshal(env.Data, &note))
	assert.Equal(t, "Boiling", note.Topic)
	assert.Contains(t, note.Content, "At sea level")

	status, env = do(t, r, http.MethodPost, "/api/v1/notes/from-result", `{"topic":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperrors.ErrNoteInvalidInput, env.Code)
}

func TestNotesErrors(t *testing.T) {
	r, store := setup(t)

	status, env := do(t, r, http.MethodPost, "/api/v1/notes", `{"topic":"","content":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperrors.ErrNoteInvalidInput, env.Code)

	status, env = do(t, r, http.MethodPost, "/api/v1/notes", `{"topic":"x","font":"comic"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperrors.ErrNoteInvalidInput, env.Code)

	status, env = do(t, r, http.MethodPut, "/api/v1/notes/missing", `{"topic":"x"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apperrors.ErrNoteNotFound, env.Code)

	store.saveErr = errors.New("disk full")
	status, env = do(t, r, http.MethodPost, "/api/v1/notes", `{"topic":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, apperrors.ErrNoteStoreFailed, env.Code)
}
