package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lk2023060901/ai-study-backend/internal/websearch/types"

	"github.com/tidwall/gjson"
)

// TavilyProvider talks to the Tavily REST API (POST /search, bearer key).
type TavilyProvider struct {
	*BaseProvider
}

func NewTavilyProvider(config *types.ProviderConfig) (Provider, error) {
	return &TavilyProvider{BaseProvider: NewBaseProvider(config)}, nil
}

type tavilyQuery struct {
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeAnswer  bool     `json:"include_answer"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
}

func (p *TavilyProvider) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, types.ErrEmptyQuery
	}
	began := time.Now()

	depth := req.SearchDepth
	if depth == "" {
		depth = "basic"
	}
	payload, err := json.Marshal(tavilyQuery{
		Query:          req.Query,
		SearchDepth:    depth,
		MaxResults:     p.maxResults(req),
		IncludeAnswer:  true,
		IncludeDomains: req.IncludeDomains,
		ExcludeDomains: req.ExcludeDomains,
	})
	if err != nil {
		return nil, fmt.Errorf("encode tavily query: %w", err)
	}

	endpoint := strings.TrimRight(p.config.APIHost, "/") + "/search"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build tavily request: %w", err)
	}
	for k, v := range p.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.GetAPIKey())

	resp, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, types.NewRequestError(p.GetID(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, p.statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NewRequestError(p.GetID(), err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("tavily returned invalid JSON")
	}

	doc := gjson.ParseBytes(body)
	var results []*types.SearchResult
	doc.Get("results").ForEach(func(_, r gjson.Result) bool {
		results = append(results, &types.SearchResult{
			Title:       r.Get("title").String(),
			URL:         r.Get("url").String(),
			Content:     r.Get("content").String(),
			Score:       float32(r.Get("score").Float()),
			PublishedAt: r.Get("published_date").String(),
		})
		return true
	})

	return &types.SearchResponse{
		Query:      req.Query,
		Answer:     doc.Get("answer").String(),
		Results:    results,
		TotalCount: len(results),
		Took:       time.Since(began).Milliseconds(),
		Provider:   p.GetID(),
	}, nil
}
