package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "default config", mutate: func(c *Config) {}},
		{name: "missing host", mutate: func(c *Config) { c.Host = "" }, wantErr: "host"},
		{name: "invalid port", mutate: func(c *Config) { c.Port = 0 }, wantErr: "port"},
		{name: "missing user", mutate: func(c *Config) { c.User = "" }, wantErr: "user"},
		{name: "missing db name", mutate: func(c *Config) { c.DBName = "" }, wantErr: "name"},
		{name: "invalid SSL mode", mutate: func(c *Config) { c.SSLMode = "invalid" }, wantErr: "SSL"},
		{name: "invalid log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: "log level"},
		{name: "negative pool", mutate: func(c *Config) { c.MaxIdleConns = -1 }, wantErr: "pool"},
		{name: "idle exceeds open", mutate: func(c *Config) { c.MaxIdleConns = 20; c.MaxOpenConns = 10 }, wantErr: "idle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfigDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "db"
	cfg.Password = "secret"

	dsn := cfg.DSN()
	for _, part := range []string{"host=db", "port=5432", "password=secret", "dbname=ai_study", "sslmode=disable", "TimeZone=UTC"} {
		assert.True(t, strings.Contains(dsn, part), "missing %q in %q", part, dsn)
	}

	cfg.Timezone = ""
	assert.Contains(t, cfg.DSN(), "TimeZone=UTC")
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = ""
	_, err := New(cfg, logger.NewNop())
	assert.ErrorContains(t, err, "invalid database configuration")
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(gorm.ErrRecordNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("other")))
	assert.False(t, IsNotFound(nil))
}

func TestQueryLogger_Trace(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	cfg := DefaultConfig()
	cfg.SlowThreshold = 10 * time.Millisecond
	l := newQueryLogger(logger.FromZap(zap.New(core)), cfg.LogLevel, cfg.SlowThreshold)
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(ctx, time.Now(), query, errors.New("boom"))
	l.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
	l.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	l.Trace(ctx, time.Now(), query, nil)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "query failed", entries[0].Message)
		assert.Equal(t, "slow query", entries[1].Message)
	}

	logs.TakeAll()
	l.LogMode(gormlogger.Info).Trace(ctx, time.Now(), query, nil)
	assert.Equal(t, 1, logs.Len())

	l.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), query, errors.New("boom"))
	assert.Equal(t, 1, logs.Len())
}
