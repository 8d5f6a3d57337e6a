package parser

import (
	"errors"
	"math"
	"testing"

	"github.com/lk2023060901/ai-study-backend/internal/search/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quickBody = `{"summary":"S","detailedExplanation":"Body","reliabilityScore":80,"consensusNote":"ok"}`

func TestNormalizeQuick_EndToEndFixture(t *testing.T) {
	text := "Here is the result:\n```json\n{\"summary\":\"S\",\"detailedExplanation\":\"### Title\\n\\nBody **bold**\",\"reliabilityScore\":91,\"consensusNote\":\"agree\",\"recommendedVideos\":[{\"title\":\"V\",\"query\":\"q\"}]}\n```\nThanks!"

	result, err := NormalizeQuick(types.RawCompletion{Text: text})
	require.NoError(t, err)

	assert.Equal(t, "S", result.Summary)
	assert.Equal(t, "### Title\n\nBody **bold**", result.DetailedExplanation)
	assert.Equal(t, 91, result.ReliabilityScore)
	assert.Equal(t, "agree", result.ConsensusNote)
	assert.Equal(t, types.ModeQuick, result.Mode)
	assert.NotNil(t, result.Sources)
	assert.Empty(t, result.Sources)
	assert.Equal(t, []types.VideoResource{{Title: "V", Query: "q"}}, result.RecommendedVideos)
}

func TestNormalizeQuick_Sources(t *testing.T) {
	tests := []struct {
		name      string
		citations []types.Citation
		expected  []types.WebResource
	}{
		{
			name: "duplicate URL keeps first title",
			citations: []types.Citation{
				{Title: "First", URL: "https://example.com/a"},
				{Title: "Second", URL: "https://example.com/a"},
			},
			expected: []types.WebResource{
				{Title: "First", URL: "https://example.com/a", Source: "example.com"},
			},
		},
		{
			name: "www prefix stripped and host lower-cased",
			citations: []types.Citation{
				{Title: "Docs", URL: "https://WWW.Go.dev:443/doc"},
			},
			expected: []types.WebResource{
				{Title: "Docs", URL: "https://WWW.Go.dev:443/doc", Source: "go.dev"},
			},
		},
		{
			name: "unusable URLs dropped",
			citations: []types.Citation{
				{Title: "Empty", URL: ""},
				{Title: "Relative", URL: "/just/a/path"},
				{Title: "Bad", URL: "http://[::1"},
				{Title: "Good", URL: "https://blog.example.org/post"},
			},
			expected: []types.WebResource{
				{Title: "Good", URL: "https://blog.example.org/post", Source: "blog.example.org"},
			},
		},
		{
			name: "missing title falls back to host",
			citations: []types.Citation{
				{URL: "https://www.wikipedia.org/wiki/Go"},
			},
			expected: []types.WebResource{
				{Title: "wikipedia.org", URL: "https://www.wikipedia.org/wiki/Go", Source: "wikipedia.org"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizeQuick(types.RawCompletion{Text: quickBody, Citations: tt.citations})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Sources)
		})
	}
}

func TestNormalizeQuick_SourceCap(t *testing.T) {
	citations := []types.Citation{
		{Title: "1", URL: "https://a.com/1"},
		{Title: "2", URL: "https://b.com/2"},
		{Title: "3", URL: "https://c.com/3"},
		{Title: "4", URL: "https://d.com/4"},
		{Title: "5", URL: "https://e.com/5"},
		{Title: "6", URL: "https://f.com/6"},
	}

	result, err := NormalizeQuick(types.RawCompletion{Text: quickBody, Citations: citations})
	require.NoError(t, err)
	require.Len(t, result.Sources, MaxQuickSources)

	for i, src := range result.Sources {
		assert.Equal(t, citations[i].URL, src.URL)
	}
}

func TestNormalizeQuick_PassThrough(t *testing.T) {
	t.Run("missing videos default to empty", func(t *testing.T) {
		result, err := NormalizeQuick(types.RawCompletion{Text: quickBody})
		require.NoError(t, err)
		assert.NotNil(t, result.RecommendedVideos)
		assert.Empty(t, result.RecommendedVideos)
	})

	t.Run("null videos default to empty", func(t *testing.T) {
		result, err := NormalizeQuick(types.RawCompletion{Text: `{"summary":"S","recommendedVideos":null}`})
		require.NoError(t, err)
		assert.NotNil(t, result.RecommendedVideos)
	})

	t.Run("out of range score is not clamped", func(t *testing.T) {
		result, err := NormalizeQuick(types.RawCompletion{Text: `{"summary":"S","reliabilityScore":150}`})
		require.NoError(t, err)
		assert.Equal(t, 150, result.ReliabilityScore)
	})

	t.Run("fractional score rounds", func(t *testing.T) {
		result, err := NormalizeQuick(types.RawCompletion{Text: `{"reliabilityScore":87.6}`})
		require.NoError(t, err)
		assert.Equal(t, 88, result.ReliabilityScore)
	})

	t.Run("huge score saturates", func(t *testing.T) {
		result, err := NormalizeQuick(types.RawCompletion{Text: `{"reliabilityScore":1e300}`})
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt32, result.ReliabilityScore)

		result, err = NormalizeQuick(types.RawCompletion{Text: `{"reliabilityScore":-1e300}`})
		require.NoError(t, err)
		assert.Equal(t, math.MinInt32, result.ReliabilityScore)
	})

	t.Run("missing fields stay empty", func(t *testing.T) {
		result, err := NormalizeQuick(types.RawCompletion{Text: `{}`})
		require.NoError(t, err)
		assert.Equal(t, "", result.Summary)
		assert.Equal(t, 0, result.ReliabilityScore)
	})
}

func TestNormalizeQuick_CodeFenceInsideExplanation(t *testing.T) {
	text := "{\"summary\":\"Printing\",\"detailedExplanation\":\"Example:\\n```go\\nfmt.Println(1)\\n```\",\"reliabilityScore\":90}"

	result, err := NormalizeQuick(types.RawCompletion{Text: text})
	require.NoError(t, err)
	assert.Equal(t, "Example:\n```go\nfmt.Println(1)\n```", result.DetailedExplanation)
	assert.Equal(t, 90, result.ReliabilityScore)
}

func TestNormalizeQuick_Malformed(t *testing.T) {
	inputs := []string{
		"Sure! Here's the answer: {not valid json",
		"I could not find anything.",
		`["not", "an", "object"]`,
		`{"summary":"S","reliabilityScore":"very high"}`,
		`{"recommendedVideos":{"title":"V"}}`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			result, err := NormalizeQuick(types.RawCompletion{Text: in})
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrMalformedResponse))

			var malformed *types.MalformedResponseError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, types.ModeQuick, malformed.Mode)
		})
	}
}
