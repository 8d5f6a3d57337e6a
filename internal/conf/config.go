package conf

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lk2023060901/ai-study-backend/internal/focus"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/database"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/redis"
	wstypes "github.com/lk2023060901/ai-study-backend/internal/websearch/types"
)

// 笔记存储后端
const (
	NotesBackendFile  = "file"
	NotesBackendRedis = "redis"
	NotesBackendDB    = "db"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       logger.Config   `mapstructure:"log"`
	Database  database.Config `mapstructure:"database"`
	Redis     redis.Config    `mapstructure:"redis"`
	AI        AIConfig        `mapstructure:"ai"`
	WebSearch WebSearchConfig `mapstructure:"websearch"`
	Notes     NotesConfig     `mapstructure:"notes"`
	Focus     focus.Config    `mapstructure:"focus"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin 模式: debug, release, test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AIConfig 默认 Provider 写在顶层，Providers 为额外注册的 Provider
type AIConfig struct {
	Provider  string           `mapstructure:"provider"`
	APIKey    string           `mapstructure:"api_key"`
	Model     string           `mapstructure:"model"`
	BaseURL   string           `mapstructure:"base_url"`
	Timeout   time.Duration    `mapstructure:"timeout"`
	Providers []ProviderConfig `mapstructure:"providers"`
}

type ProviderConfig struct {
	Name    string            `mapstructure:"name"`
	APIKey  string            `mapstructure:"api_key"`
	Model   string            `mapstructure:"model"`
	BaseURL string            `mapstructure:"base_url"`
	Timeout time.Duration     `mapstructure:"timeout"`
	Headers map[string]string `mapstructure:"headers"`
}

// Default 顶层配置对应的 Provider，没有配置 provider 时返回 false
func (c *AIConfig) Default() (ProviderConfig, bool) {
	if c.Provider == "" {
		return ProviderConfig{}, false
	}
	return ProviderConfig{
		Name:    c.Provider,
		APIKey:  c.APIKey,
		Model:   c.Model,
		BaseURL: c.BaseURL,
		Timeout: c.Timeout,
	}, true
}

// WebSearchConfig 为不支持原生联网检索的 Provider 提供检索结果
type WebSearchConfig struct {
	Enabled    bool                   `mapstructure:"enabled"`
	MaxResults int                    `mapstructure:"max_results"`
	Provider   wstypes.ProviderConfig `mapstructure:"provider"`
}

type NotesConfig struct {
	Backend string `mapstructure:"backend"` // file, redis, db
	Path    string `mapstructure:"path"`    // file 后端的 JSON 文件路径
}

// LoadConfig 读取 .env 与配置文件，环境变量优先。path 为空时按默认位置查找 config.yaml，找不到则只用默认值和环境变量。
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ai.api_key", "AI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 列表里的 Provider 无法通过 AutomaticEnv 覆盖，按 <NAME>_API_KEY 补齐
	for i := range config.AI.Providers {
		p := &config.AI.Providers[i]
		if p.APIKey == "" {
			p.APIKey = os.Getenv(apiKeyEnv(p.Name))
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate 只校验本进程一定会用到的部分；数据库和 Redis 配置在对应后端被选中时才校验
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Focus.Validate(); err != nil {
		return err
	}

	backends := []string{NotesBackendFile, NotesBackendRedis, NotesBackendDB}
	if !slices.Contains(backends, c.Notes.Backend) {
		return fmt.Errorf("notes.backend must be one of %v, got %q", backends, c.Notes.Backend)
	}
	switch c.Notes.Backend {
	case NotesBackendFile:
		if c.Notes.Path == "" {
			return errors.New("notes.path is required for the file backend")
		}
	case NotesBackendRedis:
		if err := c.Redis.Validate(); err != nil {
			return err
		}
	case NotesBackendDB:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}

	if c.WebSearch.Enabled {
		if err := c.WebSearch.Provider.Validate(); err != nil {
			return fmt.Errorf("websearch: %w", err)
		}
	}
	return nil
}

func apiKeyEnv(provider string) string {
	return strings.ToUpper(strings.ReplaceAll(provider, "-", "_")) + "_API_KEY"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	logCfg := logger.DefaultConfig()
	v.SetDefault("log.level", logCfg.Level)
	v.SetDefault("log.format", logCfg.Format)
	v.SetDefault("log.output", logCfg.Output)
	v.SetDefault("log.enablecaller", logCfg.EnableCaller)
	v.SetDefault("log.enablestacktrace", logCfg.EnableStacktrace)
	v.SetDefault("log.file.filename", logCfg.File.Filename)
	v.SetDefault("log.file.maxsize", logCfg.File.MaxSize)
	v.SetDefault("log.file.maxage", logCfg.File.MaxAge)
	v.SetDefault("log.file.maxbackups", logCfg.File.MaxBackups)
	v.SetDefault("log.file.compress", logCfg.File.Compress)

	dbCfg := database.DefaultConfig()
	v.SetDefault("database.host", dbCfg.Host)
	v.SetDefault("database.port", dbCfg.Port)
	v.SetDefault("database.user", dbCfg.User)
	v.SetDefault("database.password", dbCfg.Password)
	v.SetDefault("database.dbname", dbCfg.DBName)
	v.SetDefault("database.sslmode", dbCfg.SSLMode)
	v.SetDefault("database.timezone", dbCfg.Timezone)
	v.SetDefault("database.maxidleconns", dbCfg.MaxIdleConns)
	v.SetDefault("database.maxopenconns", dbCfg.MaxOpenConns)
	v.SetDefault("database.connmaxlifetime", dbCfg.ConnMaxLifetime)
	v.SetDefault("database.loglevel", dbCfg.LogLevel)
	v.SetDefault("database.slowthreshold", dbCfg.SlowThreshold)
	v.SetDefault("database.automigrate", dbCfg.AutoMigrate)

	redisCfg := redis.DefaultConfig()
	v.SetDefault("redis.mode", string(redisCfg.Mode))
	v.SetDefault("redis.addrs", redisCfg.Addrs)
	v.SetDefault("redis.key_prefix", redisCfg.KeyPrefix)
	v.SetDefault("redis.pool_size", redisCfg.PoolSize)
	v.SetDefault("redis.min_idle_conns", redisCfg.MinIdleConns)
	v.SetDefault("redis.dial_timeout", redisCfg.DialTimeout)
	v.SetDefault("redis.read_timeout", redisCfg.ReadTimeout)
	v.SetDefault("redis.write_timeout", redisCfg.WriteTimeout)
	v.SetDefault("redis.max_retries", redisCfg.MaxRetries)

	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.timeout", 120*time.Second)

	v.SetDefault("websearch.enabled", false)
	v.SetDefault("websearch.max_results", 5)

	v.SetDefault("notes.backend", NotesBackendFile)
	v.SetDefault("notes.path", "data/notes.json")

	focusCfg := focus.DefaultConfig()
	v.SetDefault("focus.focus", focusCfg.Focus)
	v.SetDefault("focus.short_break", focusCfg.ShortBreak)
	v.SetDefault("focus.long_break", focusCfg.LongBreak)
	v.SetDefault("focus.long_break_every", focusCfg.LongBreakEvery)
	v.SetDefault("focus.auto_start", focusCfg.AutoStart)
}
