// Package grounded adds web-search augmentation to completion providers
// that have no native search tool, using a websearch provider.
package grounded

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
	"github.com/lk2023060901/ai-study-backend/internal/pkg/logger"
	wsprovider "github.com/lk2023060901/ai-study-backend/internal/websearch/provider"
	wstypes "github.com/lk2023060901/ai-study-backend/internal/websearch/types"
	"go.uber.org/zap"
)

const (
	defaultMaxResults = 5
	maxQueryRunes     = 300
	maxSnippetRunes   = 500
)

// Provider wraps a completion provider with a search provider.
type Provider struct {
	inner      types.Provider
	searcher   wsprovider.Provider
	maxResults int
	logger     *logger.Logger
}

// Option configures a grounded Provider.
type Option func(*Provider)

// WithMaxResults sets how many search results are injected.
func WithMaxResults(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.maxResults = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// Wrap returns inner unchanged when it already searches natively or when
// searcher is nil; otherwise it returns a grounded Provider.
func Wrap(inner types.Provider, searcher wsprovider.Provider, opts ...Option) types.Provider {
	if inner == nil || searcher == nil || inner.SupportsWebSearch() {
		return inner
	}
	return New(inner, searcher, opts...)
}

// New creates a grounded Provider.
func New(inner types.Provider, searcher wsprovider.Provider, opts ...Option) *Provider {
	p := &Provider{
		inner:      inner,
		searcher:   searcher,
		maxResults: defaultMaxResults,
		logger:     logger.L(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns "<inner>+<searcher>".
func (p *Provider) Name() string {
	return p.inner.Name() + "+" + string(p.searcher.GetID())
}

// SupportsWebSearch is always true.
func (p *Provider) SupportsWebSearch() bool {
	return true
}

// Close closes the inner provider.
func (p *Provider) Close() error {
	return p.inner.Close()
}

// CreateChatCompletion searches first when req.WebSearch is set, injects the
// numbered results as a system message and returns them as citations.
// A failed search degrades to an ungrounded completion.
func (p *Provider) CreateChatCompletion(ctx context.Context, req types.ChatCompletionRequest) (*types.ChatCompletionResponse, error) {
	if !req.WebSearch || p.inner.SupportsWebSearch() {
		return p.inner.CreateChatCompletion(ctx, req)
	}

	query := searchQuery(req)
	req.WebSearch = false

	results, err := p.searcher.Search(ctx, &wstypes.SearchRequest{
		Query:      query,
		MaxResults: p.maxResults,
	})
	if err != nil {
		p.logger.Warn("web search failed, continuing without grounding",
			zap.String("searcher", string(p.searcher.GetID())),
			zap.Error(err))
		return p.inner.CreateChatCompletion(ctx, req)
	}

	if len(results.Results) > 0 {
		req.Messages = append([]types.Message{{
			Role:    types.RoleSystem,
			Content: FormatResults(results),
		}}, req.Messages...)
	}

	resp, err := p.inner.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	resp.Citations = append(resp.Citations, results.Citations()...)
	return resp, nil
}

// FormatResults renders search results as numbered context for the model.
func FormatResults(resp *wstypes.SearchResponse) string {
	var b strings.Builder
	b.WriteString("Web search results for \"" + resp.Query + "\". Use them to verify facts; prefer them over prior knowledge when they conflict.\n")
	if resp.Answer != "" {
		b.WriteString("\nSearch engine answer: " + resp.Answer + "\n")
	}
	for i, r := range resp.Results {
		if r == nil {
			continue
		}
		fmt.Fprintf(&b, "\n[%d] %s\nURL: %s\n%s\n", i+1, r.Title, r.URL, truncate(r.Content, maxSnippetRunes))
	}
	return b.String()
}

// searchQuery prefers the explicit query, else the last user message.
func searchQuery(req types.ChatCompletionRequest) string {
	query := strings.TrimSpace(req.SearchQuery)
	if query == "" {
		query = strings.TrimSpace(req.LastUserMessage())
	}
	return truncate(query, maxQueryRunes)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
