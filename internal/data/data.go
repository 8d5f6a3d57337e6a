package data

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/factory"
	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/grounded"
	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/registry"
	aitypes "github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
	"github.com/lk2023060901/ai-study-backend/internal/conf"
	notesbiz "github.com/lk2023060901/ai-study-backend/internal/notes/biz"
	notesdata "github.com/lk2023060901/ai-study-backend/internal/notes/data"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/database"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/redis"
	wsprovider "github.com/lk2023060901/ai-study-backend/internal/websearch/provider"
)

// Data 进程级资源：AI Provider 注册表、笔记存储以及按需创建的数据库和 Redis 连接
type Data struct {
	Registry  *registry.Registry
	NoteStore notesbiz.NoteStore
	DB        *database.DB  // 仅 db 后端
	Redis     *redis.Client // 仅 redis 后端
	Logger    *logger.Logger
}

func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	d := &Data{Logger: log}

	reg, err := newRegistry(config, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init ai providers: %w", err)
	}
	d.Registry = reg

	if err := d.initNoteStore(config, log); err != nil {
		_ = reg.Close()
		return nil, nil, fmt.Errorf("failed to init notes store: %w", err)
	}

	cleanup := func() {
		log.Info("cleaning up data resources")

		if err := d.Registry.Close(); err != nil {
			log.Warn("failed to close ai providers", zap.Error(err))
		}
		if d.Redis != nil {
			if err := d.Redis.Close(); err != nil {
				log.Warn("failed to close redis", zap.Error(err))
			}
		}
		if d.DB != nil {
			if err := d.DB.Close(); err != nil {
				log.Warn("failed to close database", zap.Error(err))
			}
		}
	}

	return d, cleanup, nil
}

// DefaultProvider 返回默认 Provider，未配置任何凭证时返回 nil
func (d *Data) DefaultProvider() aitypes.Provider {
	p, err := d.Registry.Default()
	if err != nil {
		return nil
	}
	return p
}

func (d *Data) initNoteStore(config *conf.Config, log *logger.Logger) error {
	switch config.Notes.Backend {
	case conf.NotesBackendRedis:
		client, err := redis.New(&config.Redis, log)
		if err != nil {
			return err
		}
		d.Redis = client
		d.NoteStore = notesdata.NewRedisStore(client)

	case conf.NotesBackendDB:
		db, err := database.New(&config.Database, log)
		if err != nil {
			return err
		}
		store, err := notesdata.NewDBStore(db)
		if err != nil {
			_ = db.Close()
			return err
		}
		d.DB = db
		d.NoteStore = store

	default:
		d.NoteStore = notesdata.NewFileStore(config.Notes.Path)
	}

	log.Info("notes store initialized", zap.String("backend", config.Notes.Backend))
	return nil
}

// newRegistry 注册所有带凭证的 Provider；缺少凭证的跳过，由搜索时报告 MissingCredential
func newRegistry(config *conf.Config, log *logger.Logger) (*registry.Registry, error) {
	reg := registry.New()

	searcher, err := newSearcher(config)
	if err != nil {
		return nil, err
	}

	var configs []conf.ProviderConfig
	defaultName := ""
	if def, ok := config.AI.Default(); ok {
		configs = append(configs, def)
		defaultName = factory.Canonical(def.Name)
	}
	configs = append(configs, config.AI.Providers...)

	for _, pc := range configs {
		name := factory.Canonical(pc.Name)
		if pc.APIKey == "" {
			log.Warn("ai provider has no api key, skipped", zap.String("provider", name))
			continue
		}
		if _, err := reg.Get(name); err == nil {
			continue
		}

		p, err := newProvider(name, pc)
		if err != nil {
			_ = reg.Close()
			return nil, fmt.Errorf("provider %s: %w", name, err)
		}
		p = grounded.Wrap(p, searcher,
			grounded.WithMaxResults(config.WebSearch.MaxResults),
			grounded.WithLogger(log),
		)

		reg.Register(name, p, factory.AliasesOf(name)...)
		log.Info("ai provider registered",
			zap.String("provider", name),
			zap.String("impl", p.Name()),
			zap.Bool("web_search", p.SupportsWebSearch()),
		)
	}

	if defaultName != "" {
		if err := reg.SetDefault(defaultName); err != nil && !errors.Is(err, registry.ErrProviderNotFound) {
			return nil, err
		}
	}
	return reg, nil
}

func newProvider(name string, pc conf.ProviderConfig) (aitypes.Provider, error) {
	opts := []factory.Option{factory.WithBaseURL(pc.BaseURL)}
	if pc.Model != "" {
		opts = append(opts, factory.WithModel(pc.Model))
	}
	if pc.Timeout > 0 {
		opts = append(opts, factory.WithTimeout(pc.Timeout))
	}
	for k, v := range pc.Headers {
		opts = append(opts, factory.WithHeader(k, v))
	}

	cfg, err := factory.DefaultConfig(name, pc.APIKey, opts...)
	if err != nil {
		return nil, err
	}
	return factory.New(name, cfg)
}

func newSearcher(config *conf.Config) (wsprovider.Provider, error) {
	if !config.WebSearch.Enabled {
		return nil, nil
	}
	return wsprovider.New(&config.WebSearch.Provider)
}

// Ping 检查已创建的外部连接
func (d *Data) Ping(ctx context.Context) error {
	if d.DB != nil {
		if err := d.DB.Ping(ctx); err != nil {
			return err
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}
