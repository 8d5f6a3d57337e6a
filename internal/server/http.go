package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lk2023060901/ai-study-backend/internal/conf"
	mdservice "github.com/lk2023060901/ai-study-backend/internal/markdown/service"
	noteservice "github.com/lk2023060901/ai-study-backend/internal/notes/service"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"
	searchservice "github.com/lk2023060901/ai-study-backend/internal/search/service"
)

// HealthChecker 报告外部依赖是否可用
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type HTTPServer struct {
	server *http.Server
	router *gin.Engine
	logger *logger.Logger
}

func NewHTTPServer(
	config *conf.Config,
	log *logger.Logger,
	health HealthChecker,
	searchService *searchservice.SearchService,
	renderService *mdservice.RenderService,
	noteService *noteservice.NoteService,
) *HTTPServer {
	if config.Server.Mode != "" {
		gin.SetMode(config.Server.Mode)
	}

	router := gin.New()
	router.Use(logger.GinRecovery(log))
	router.Use(logger.GinLoggerWithConfig(log, logger.MiddlewareOptions{
		SkipPaths: []string{"/health", "/metrics"},
	}))

	router.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if health != nil {
			if err := health.Ping(c.Request.Context()); err != nil {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	searchService.RegisterRoutes(api)
	renderService.RegisterRoutes(api)
	noteService.RegisterRoutes(api)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)

	return &HTTPServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		router: router,
		logger: log,
	}
}

// Handler 返回路由，供测试直接调用
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}
