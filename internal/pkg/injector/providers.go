package injector

import (
	"context"

	"github.com/google/wire"

	"github.com/lk2023060901/ai-study-backend/internal/conf"
	"github.com/lk2023060901/ai-study-backend/internal/data"
	mdservice "github.com/lk2023060901/ai-study-backend/internal/markdown/service"
	notesbiz "github.com/lk2023060901/ai-study-backend/internal/notes/biz"
	noteservice "github.com/lk2023060901/ai-study-backend/internal/notes/service"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"
	searchbiz "github.com/lk2023060901/ai-study-backend/internal/search/biz"
	searchservice "github.com/lk2023060901/ai-study-backend/internal/search/service"
	"github.com/lk2023060901/ai-study-backend/internal/server"
)

// ProviderSet is the Wire provider set for all dependencies
var ProviderSet = wire.NewSet(
	// Data layer
	dataProviderSet,

	// Use cases
	useCaseProviderSet,

	// HTTP services
	httpServiceProviderSet,

	// Servers
	serverProviderSet,
)

// Data layer providers
var dataProviderSet = wire.NewSet(
	data.NewData,
	wire.Bind(new(server.HealthChecker), new(*data.Data)),
)

// Use case providers
var useCaseProviderSet = wire.NewSet(
	provideSearchUseCase,
	provideNoteUseCase,
	wire.Bind(new(searchservice.Searcher), new(*searchbiz.SearchUseCase)),
)

// HTTP service providers
var httpServiceProviderSet = wire.NewSet(
	searchservice.NewSearchService,
	mdservice.NewRenderService,
	noteservice.NewNoteService,
)

// Server providers
var serverProviderSet = wire.NewSet(
	server.NewHTTPServer,
)

// Provider functions for dependencies that need config or context

// 模型由各 Provider 的配置决定
func provideSearchUseCase(d *data.Data, log *logger.Logger) *searchbiz.SearchUseCase {
	return searchbiz.NewSearchUseCase(d.DefaultProvider(), "", log)
}

func provideNoteUseCase(d *data.Data, log *logger.Logger) (*notesbiz.NoteUseCase, error) {
	return notesbiz.NewNoteUseCase(context.Background(), d.NoteStore, notesbiz.WithLogger(log))
}

func newApp(
	config *conf.Config,
	log *logger.Logger,
	httpServer *server.HTTPServer,
) *App {
	return &App{
		Config:     config,
		Logger:     log,
		HTTPServer: httpServer,
	}
}
