package types

import (
	aitypes "github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
)

// SearchResponse represents a search response
type SearchResponse struct {
	Query      string          `json:"query"`
	Answer     string          `json:"answer,omitempty"` // provider-generated short answer, if any
	Results    []*SearchResult `json:"results"`
	TotalCount int             `json:"total_count,omitempty"`
	Took       int64           `json:"took"` // milliseconds
	Provider   ProviderID      `json:"provider"`
}

// SearchResult represents a single search result
type SearchResult struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Content     string  `json:"content"` // Snippet or full content
	Score       float32 `json:"score,omitempty"`
	PublishedAt string  `json:"published_at,omitempty"`
}

// Citations converts results to completion citations, in result order.
// Results without a URL are skipped.
func (r *SearchResponse) Citations() []aitypes.Citation {
	if r == nil {
		return nil
	}
	citations := make([]aitypes.Citation, 0, len(r.Results))
	for _, res := range r.Results {
		if res == nil || res.URL == "" {
			continue
		}
		citations = append(citations, aitypes.Citation{Title: res.Title, URL: res.URL})
	}
	return citations
}
