package grounded

import (
	"context"
	"errors"
	"testing"

	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
	wsprovider "github.com/lk2023060901/ai-study-backend/internal/websearch/provider"
	wstypes "github.com/lk2023060901/ai-study-backend/internal/websearch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompletion struct {
	native   bool
	requests []types.ChatCompletionRequest
	err      error
}

func (f *fakeCompletion) CreateChatCompletion(ctx context.Context, req types.ChatCompletionRequest) (*types.ChatCompletionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &types.ChatCompletionResponse{
		Choices: []types.Choice{{Message: types.Message{Role: types.RoleAssistant, Content: "answer"}}},
	}, nil
}

func (f *fakeCompletion) SupportsWebSearch() bool { return f.native }
func (f *fakeCompletion) Name() string            { return "fake" }
func (f *fakeCompletion) Close() error            { return nil }

type fakeSearcher struct {
	*wsprovider.BaseProvider
	queries []string
	resp    *wstypes.SearchResponse
	err     error
}

func newFakeSearcher(resp *wstypes.SearchResponse, err error) *fakeSearcher {
	return &fakeSearcher{
		BaseProvider: wsprovider.NewBaseProvider(&wstypes.ProviderConfig{ID: wstypes.ProviderSearXNG, Name: "SearXNG"}),
		resp:         resp,
		err:          err,
	}
}

func (f *fakeSearcher) Search(ctx context.Context, req *wstypes.SearchRequest) (*wstypes.SearchResponse, error) {
	f.queries = append(f.queries, req.Query)
	return f.resp, f.err
}

var searchResults = &wstypes.SearchResponse{
	Query: "photosynthesis",
	Results: []*wstypes.SearchResult{
		{Title: "Wiki", URL: "https://en.wikipedia.org/wiki/Photosynthesis", Content: "Plants..."},
		{Title: "Khan", URL: "https://khanacademy.org/p", Content: "Light reactions"},
	},
}

func TestWrap(t *testing.T) {
	native := &fakeCompletion{native: true}
	assert.Same(t, native, Wrap(native, newFakeSearcher(nil, nil)))

	plain := &fakeCompletion{}
	assert.Same(t, plain, Wrap(plain, nil))

	wrapped := Wrap(plain, newFakeSearcher(nil, nil))
	assert.True(t, wrapped.SupportsWebSearch())
	assert.Equal(t, "fake+searxng", wrapped.Name())
}

func TestProvider_CreateChatCompletion_Grounds(t *testing.T) {
	inner := &fakeCompletion{}
	searcher := newFakeSearcher(searchResults, nil)
	p := New(inner, searcher)

	resp, err := p.CreateChatCompletion(context.Background(), types.ChatCompletionRequest{
		Messages:    []types.Message{{Role: types.RoleUser, Content: "long prompt about photosynthesis"}},
		WebSearch:   true,
		SearchQuery: "photosynthesis",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"photosynthesis"}, searcher.queries)
	require.Len(t, inner.requests, 1)
	sent := inner.requests[0]
	assert.False(t, sent.WebSearch)
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, types.RoleSystem, sent.Messages[0].Role)
	assert.Contains(t, sent.Messages[0].Content, "[1] Wiki")
	assert.Contains(t, sent.Messages[0].Content, "URL: https://khanacademy.org/p")

	assert.Equal(t, "answer", resp.Text())
	assert.Equal(t, []types.Citation{
		{Title: "Wiki", URL: "https://en.wikipedia.org/wiki/Photosynthesis"},
		{Title: "Khan", URL: "https://khanacademy.org/p"},
	}, resp.Citations)
}

func TestProvider_CreateChatCompletion_FallsBackToUserMessage(t *testing.T) {
	searcher := newFakeSearcher(&wstypes.SearchResponse{}, nil)
	p := New(&fakeCompletion{}, searcher)

	_, err := p.CreateChatCompletion(context.Background(), types.ChatCompletionRequest{
		Messages:  []types.Message{{Role: types.RoleUser, Content: "  what is gravity  "}},
		WebSearch: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"what is gravity"}, searcher.queries)
}

func TestProvider_CreateChatCompletion_SearchFailureDegrades(t *testing.T) {
	inner := &fakeCompletion{}
	p := New(inner, newFakeSearcher(nil, errors.New("search down")))

	resp, err := p.CreateChatCompletion(context.Background(), types.ChatCompletionRequest{
		Messages:  []types.Message{{Role: types.RoleUser, Content: "q"}},
		WebSearch: true,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Citations)
	assert.Len(t, inner.requests[0].Messages, 1)
}

func TestProvider_CreateChatCompletion_NoSearchRequested(t *testing.T) {
	searcher := newFakeSearcher(searchResults, nil)
	p := New(&fakeCompletion{}, searcher)

	_, err := p.CreateChatCompletion(context.Background(), types.ChatCompletionRequest{
		Messages: []types.Message{{Role: types.RoleUser, Content: "q"}},
	})
	require.NoError(t, err)
	assert.Empty(t, searcher.queries)
}

func TestProvider_CreateChatCompletion_InnerErrorPassesThrough(t *testing.T) {
	innerErr := types.NewStatusError("fake", 429, "slow down")
	p := New(&fakeCompletion{err: innerErr}, newFakeSearcher(searchResults, nil))

	_, err := p.CreateChatCompletion(context.Background(), types.ChatCompletionRequest{WebSearch: true, SearchQuery: "x"})
	assert.Same(t, innerErr, err)
}

func TestFormatResults_TruncatesSnippets(t *testing.T) {
	long := make([]rune, maxSnippetRunes+50)
	for i := range long {
		long[i] = '好'
	}
	out := FormatResults(&wstypes.SearchResponse{
		Query:   "q",
		Answer:  "short answer",
		Results: []*wstypes.SearchResult{{Title: "T", URL: "https://t.example", Content: string(long)}},
	})

	assert.Contains(t, out, "Search engine answer: short answer")
	assert.NotContains(t, out, string(long))
	assert.Contains(t, out, string(long[:maxSnippetRunes]))
}
