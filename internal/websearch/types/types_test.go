package types

import (
	"context"
	"errors"
	"testing"

	aitypes "github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
	"github.com/stretchr/testify/assert"
)

func TestSearchResponse_Citations(t *testing.T) {
	resp := &SearchResponse{
		Results: []*SearchResult{
			{Title: "A", URL: "https://a.example"},
			nil,
			{Title: "No URL"},
			{Title: "B", URL: "https://b.example"},
		},
	}

	assert.Equal(t, []aitypes.Citation{
		{Title: "A", URL: "https://a.example"},
		{Title: "B", URL: "https://b.example"},
	}, resp.Citations())

	var empty *SearchResponse
	assert.Nil(t, empty.Citations())
}

func TestProviderConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *ProviderConfig
		wantErr error
	}{
		{
			name:   "valid tavily config",
			config: &ProviderConfig{ID: ProviderTavily, Name: "Tavily", APIHost: "https://api.tavily.com", APIKey: "test-key"},
		},
		{
			name:   "valid searxng config",
			config: &ProviderConfig{ID: ProviderSearXNG, Name: "SearXNG", APIHost: "https://search.example.com"},
		},
		{
			name:    "missing provider ID",
			config:  &ProviderConfig{Name: "Test", APIHost: "https://api.test.com", APIKey: "test-key"},
			wantErr: ErrInvalidProviderID,
		},
		{
			name:   "name is optional",
			config: &ProviderConfig{ID: ProviderSearXNG, APIHost: "https://search.example.com"},
		},
		{
			name:    "missing API host",
			config:  &ProviderConfig{ID: ProviderTavily, Name: "Tavily", APIKey: "test-key"},
			wantErr: ErrInvalidAPIHost,
		},
		{
			name:    "missing API key for tavily",
			config:  &ProviderConfig{ID: ProviderTavily, Name: "Tavily", APIHost: "https://api.tavily.com"},
			wantErr: ErrMissingAPIKey,
		},
		{
			name:    "searxng basic auth without password",
			config:  &ProviderConfig{ID: ProviderSearXNG, Name: "SearXNG", APIHost: "https://s.example", BasicAuthUsername: "u"},
			wantErr: ErrMissingBasicAuthPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProviderConfig_DisplayName(t *testing.T) {
	assert.Equal(t, "searxng", (&ProviderConfig{ID: ProviderSearXNG}).DisplayName())
	assert.Equal(t, "Tavily", (&ProviderConfig{ID: ProviderTavily, Name: "Tavily"}).DisplayName())
	assert.True(t, ProviderTavily.KeyRequired())
	assert.False(t, ProviderSearXNG.KeyRequired())
}

func TestProviderError(t *testing.T) {
	status := NewStatusError(ProviderTavily, 429, "slow down")
	assert.Equal(t, "websearch tavily: HTTP_429: slow down", status.Error())
	assert.Equal(t, 429, status.StatusCode)

	reqErr := NewRequestError(ProviderSearXNG, context.DeadlineExceeded)
	assert.True(t, errors.Is(reqErr, context.DeadlineExceeded))
	assert.Zero(t, reqErr.StatusCode)
	assert.Contains(t, reqErr.Error(), "REQUEST_FAILED")
}
