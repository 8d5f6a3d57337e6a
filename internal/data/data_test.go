package data

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/ai-study-backend/internal/conf"
	"github.com/lk2023060901/ai-study-backend/internal/notes/types"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/redis"
	wstypes "github.com/lk2023060901/ai-study-backend/internal/websearch/types"
)

func baseConfig(t *testing.T) *conf.Config {
	t.Helper()
	return &conf.Config{
		Notes: conf.NotesConfig{
			Backend: conf.NotesBackendFile,
			Path:    filepath.Join(t.TempDir(), "notes.json"),
		},
	}
}

func TestNewData_NoCredential(t *testing.T) {
	cfg := baseConfig(t)
	cfg.AI.Provider = "gemini"

	d, cleanup, err := NewData(cfg, logger.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.Nil(t, d.DefaultProvider())
	assert.Empty(t, d.Registry.List())

	notes, err := d.NoteStore.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNewData_Providers(t *testing.T) {
	cfg := baseConfig(t)
	cfg.AI = conf.AIConfig{
		Provider: "google",
		APIKey:   "gemini-key",
		Providers: []conf.ProviderConfig{
			{Name: "gpt", APIKey: "sk-test", Model: "gpt-4o-mini"},
			{Name: "claude"},
		},
	}
	cfg.WebSearch = conf.WebSearchConfig{
		Enabled:    true,
		MaxResults: 3,
		Provider: wstypes.ProviderConfig{
			ID:      wstypes.ProviderSearXNG,
			Name:    "SearXNG",
			APIHost: "http://localhost:8888",
		},
	}

	d, cleanup, err := NewData(cfg, logger.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, []string{"gemini", "openai"}, d.Registry.List())

	def := d.DefaultProvider()
	require.NotNil(t, def)
	assert.Equal(t, "gemini", def.Name())

	p, err := d.Registry.Get("gpt")
	require.NoError(t, err)
	assert.True(t, p.SupportsWebSearch())
	assert.Equal(t, "openai+searxng", p.Name())
}

func TestNewData_UnknownProvider(t *testing.T) {
	cfg := baseConfig(t)
	cfg.AI = conf.AIConfig{Provider: "mistral", APIKey: "k"}

	_, _, err := NewData(cfg, logger.NewNop())
	assert.ErrorContains(t, err, "mistral")
}

func TestNewData_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := baseConfig(t)
	cfg.Notes.Backend = conf.NotesBackendRedis
	redisCfg := redis.DefaultConfig()
	redisCfg.Addrs = []string{mr.Addr()}
	cfg.Redis = *redisCfg

	d, cleanup, err := NewData(cfg, logger.NewNop())
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, d.Redis)
	require.NoError(t, d.Ping(context.Background()))

	ctx := context.Background()
	require.NoError(t, d.NoteStore.Save(ctx, []*types.Note{{ID: "n1", Topic: "t", Content: "c", Font: types.DefaultFont}}))
	assert.True(t, mr.Exists("ai-study:notes"))
}
