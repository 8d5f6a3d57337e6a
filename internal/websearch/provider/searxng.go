package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lk2023060901/ai-study-backend/internal/websearch/types"
)

// SearXNGProvider implements the SearXNG search API
type SearXNGProvider struct {
	*BaseProvider
}

// NewSearXNGProvider creates a new SearXNG provider
func NewSearXNGProvider(config *types.ProviderConfig) (Provider, error) {
	return &SearXNGProvider{BaseProvider: NewBaseProvider(config)}, nil
}

// searxngResponse represents a SearXNG API response
type searxngResponse struct {
	Answers []string `json:"answers"`
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		Score         float32 `json:"score"`
		PublishedDate string  `json:"publishedDate,omitempty"`
	} `json:"results"`
}

// Search executes a search query using the SearXNG API.
// SearXNG has no result limit parameter, so results are truncated locally.
func (p *SearXNGProvider) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, types.ErrEmptyQuery
	}
	startTime := time.Now()

	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("format", "json")
	params.Set("pageno", "1")

	apiURL := fmt.Sprintf("%s/search?%s", strings.TrimRight(p.config.APIHost, "/"), params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range p.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}
	if p.config.BasicAuthUsername != "" && p.config.BasicAuthPassword != "" {
		httpReq.SetBasicAuth(p.config.BasicAuthUsername, p.config.BasicAuthPassword)
	}

	resp, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, types.NewRequestError(p.GetID(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, p.statusError(resp)
	}

	var searxngResp searxngResponse
	if err := json.NewDecoder(resp.Body).Decode(&searxngResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	limit := p.maxResults(req)
	results := make([]*types.SearchResult, 0, limit)
	for _, r := range searxngResp.Results {
		if len(results) == limit {
			break
		}
		if !domainAllowed(r.URL, req.IncludeDomains, req.ExcludeDomains) {
			continue
		}
		results = append(results, &types.SearchResult{
			Title:       r.Title,
			URL:         r.URL,
			Content:     r.Content,
			Score:       r.Score,
			PublishedAt: r.PublishedDate,
		})
	}

	var answer string
	if len(searxngResp.Answers) > 0 {
		answer = searxngResp.Answers[0]
	}

	return &types.SearchResponse{
		Query:      req.Query,
		Answer:     answer,
		Results:    results,
		TotalCount: len(results),
		Took:       time.Since(startTime).Milliseconds(),
		Provider:   p.GetID(),
	}, nil
}

// domainAllowed applies include/exclude filters on the result host (suffix match)
func domainAllowed(rawURL string, include, exclude []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())

	matches := func(domains []string) bool {
		for _, d := range domains {
			d = strings.ToLower(strings.TrimSpace(d))
			if d != "" && (host == d || strings.HasSuffix(host, "."+d)) {
				return true
			}
		}
		return false
	}

	if matches(exclude) {
		return false
	}
	return len(include) == 0 || matches(include)
}
