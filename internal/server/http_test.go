package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/ai-study-backend/internal/conf"
	mdservice "github.com/lk2023060901/ai-study-backend/internal/markdown/service"
	notesbiz "github.com/lk2023060901/ai-study-backend/internal/notes/biz"
	notesdata "github.com/lk2023060901/ai-study-backend/internal/notes/data"
	noteservice "github.com/lk2023060901/ai-study-backend/internal/notes/service"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"
	searchbiz "github.com/lk2023060901/ai-study-backend/internal/search/biz"
	searchservice "github.com/lk2023060901/ai-study-backend/internal/search/service"
)

type healthFunc func(ctx context.Context) error

func (f healthFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestServer(t *testing.T, health HealthChecker) http.Handler {
	t.Helper()

	cfg := &conf.Config{Server: conf.ServerConfig{Host: "127.0.0.1", Port: 8080, Mode: gin.TestMode}}
	log := logger.NewNop()

	notes, err := notesbiz.NewNoteUseCase(context.Background(),
		notesdata.NewFileStore(filepath.Join(t.TempDir(), "notes.json")))
	require.NoError(t, err)

	srv := NewHTTPServer(cfg, log, health,
		searchservice.NewSearchService(searchbiz.NewSearchUseCase(nil, "", log)),
		mdservice.NewRenderService(),
		noteservice.NewNoteService(notes),
	)
	return srv.Handler()
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHTTPServer_Health(t *testing.T) {
	h := newTestServer(t, nil)
	w := serve(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	h = newTestServer(t, healthFunc(func(context.Context) error { return errors.New("redis down") }))
	w = serve(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}

func TestHTTPServer_Routes(t *testing.T) {
	h := newTestServer(t, nil)

	w := serve(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(h, http.MethodGet, "/api/v1/search/status", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(h, http.MethodPost, "/api/v1/search", `{"topic":"go","mode":"quick"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = serve(h, http.MethodPost, "/api/v1/markdown/render", `{"text":"**hi**"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "strong")

	w = serve(h, http.MethodGet, "/api/v1/notes", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(h, http.MethodGet, "/api/v1/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
