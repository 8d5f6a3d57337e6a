package factory

import (
	"testing"
	"time"

	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	assert.Equal(t, NameGemini, Canonical("Google"))
	assert.Equal(t, NameAnthropic, Canonical(" claude "))
	assert.Equal(t, NameOpenAI, Canonical("openai"))
	assert.Equal(t, "other", Canonical("other"))
	assert.ElementsMatch(t, []string{"google"}, AliasesOf(NameGemini))
}

func TestQuickConfigs(t *testing.T) {
	cfg := Gemini("key", WithModel("gemini-pro"), WithTimeout(10*time.Second), WithHeader("X-A", "1"))
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, GeminiBaseURL, cfg.BaseURL)
	assert.Equal(t, "gemini-pro", cfg.Model)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "1", cfg.Headers["X-A"])

	cfg = Anthropic("key", WithBaseURL(""))
	assert.Equal(t, AnthropicBaseURL, cfg.BaseURL)
	assert.Equal(t, types.DefaultTimeout, cfg.Timeout)

	cfg = OpenAICompatible("key", "https://api.deepseek.com/v1", WithModel("deepseek-chat"))
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.BaseURL)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		config   *types.Config
		wantName string
		wantErr  error
	}{
		{name: "gemini", provider: "gemini", config: Gemini("k"), wantName: "gemini"},
		{name: "alias google", provider: "google", config: Gemini("k"), wantName: "gemini"},
		{name: "openai", provider: "openai", config: OpenAI("k"), wantName: "openai"},
		{name: "claude alias", provider: "claude", config: Anthropic("k"), wantName: "anthropic"},
		{name: "compatible", provider: "openai-compatible", config: OpenAICompatible("k", "http://localhost:1"), wantName: "openai-compatible"},
		{name: "missing key", provider: "anthropic", config: Anthropic(""), wantErr: types.ErrMissingAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.provider, tt.config)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
			assert.NoError(t, p.Close())
		})
	}

	_, err := New("unknown", OpenAI("k"))
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig("claude", "k", WithModel("m"))
	require.NoError(t, err)
	assert.Equal(t, AnthropicBaseURL, cfg.BaseURL)
	assert.Equal(t, "m", cfg.Model)

	_, err = DefaultConfig("nope", "k")
	assert.Error(t, err)
}
