package parser

import (
	"errors"
	"math"
	"testing"

	"github.com/lk2023060901/ai-study-backend/internal/search/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deepFixture = "Analysis complete.\n```json\n" + `{
  "topic": "Photosynthesis",
  "rawResponses": {
    "beginner": "Plants make food from light.",
    "technical": "Light reactions produce ATP and NADPH.",
    "keypoints": "- Chlorophyll\n- Calvin cycle",
    "stepbystep": "1. Absorb light 2. Split water"
  },
  "analysis": {
    "common": ["Occurs in chloroplasts", "Produces oxygen", "Uses CO2"],
    "conflicts": [],
    "consistencyScore": 0.83
  },
  "verifiedAnswer": "## Photosynthesis\n\nPlants convert **light** into chemical energy.",
  "webLinks": [
    {"title": "Wiki", "url": "https://www.wikipedia.org/wiki/Photosynthesis"},
    {"title": "Wiki again", "url": "https://www.wikipedia.org/wiki/Photosynthesis"}
  ],
  "youtubeLinks": [
    {"title": "Photosynthesis explained", "url": "https://www.youtube.com/watch?v=abc"}
  ]
}` + "\n```"

func TestParseDeep(t *testing.T) {
	deep, err := ParseDeep(deepFixture)
	require.NoError(t, err)

	assert.Equal(t, "Photosynthesis", deep.Topic)
	assert.Equal(t, "Plants make food from light.", deep.RawResponses.Beginner)
	assert.Equal(t, "- Chlorophyll\n- Calvin cycle", deep.RawResponses.KeyPoints)
	assert.InDelta(t, 0.83, deep.Analysis.ConsistencyScore, 1e-9)
	assert.Len(t, deep.WebLinks, 2)
}

func TestNormalizeDeep(t *testing.T) {
	result, err := NormalizeDeep(types.RawCompletion{Text: deepFixture})
	require.NoError(t, err)

	assert.Equal(t, types.ModeDeep, result.Mode)
	assert.Equal(t, 83, result.ReliabilityScore)
	assert.Equal(t, "## Photosynthesis\n\nPlants convert **light** into chemical energy.", result.DetailedExplanation)

	assert.Contains(t, result.Summary, "83%")
	assert.Contains(t, result.Summary, "Occurs in chloroplasts, Produces oxygen")
	assert.NotContains(t, result.Summary, "Uses CO2")
	assert.Contains(t, result.ConsensusNote, "four independent reasoning paths")
	assert.Contains(t, result.ConsensusNote, "high consensus")

	// 深度模式不去重
	require.Len(t, result.Sources, 2)
	assert.Equal(t, "wikipedia.org", result.Sources[0].Source)
	assert.Equal(t, result.Sources[0].URL, result.Sources[1].URL)

	require.Len(t, result.RecommendedVideos, 1)
	assert.Equal(t, types.VideoResource{
		Title: "Photosynthesis explained",
		Query: "Photosynthesis explained",
		URL:   "https://www.youtube.com/watch?v=abc",
	}, result.RecommendedVideos[0])
}

func TestAdaptDeep(t *testing.T) {
	tests := []struct {
		name          string
		analysis      types.Analysis
		wantScore     int
		wantNote      []string
		wantNotInNote []string
		wantSummary   []string
	}{
		{
			name:        "score derivation",
			analysis:    types.Analysis{ConsistencyScore: 0.83},
			wantScore:   83,
			wantNote:    []string{"high consensus"},
			wantSummary: []string{"83%"},
		},
		{
			name:        "half rounds up",
			analysis:    types.Analysis{ConsistencyScore: 0.125},
			wantScore:   13,
			wantSummary: []string{"13%"},
		},
		{
			name: "conflicts enumerated",
			analysis: types.Analysis{
				Conflicts:        []string{"Beginner omits ATP", "Step order differs"},
				ConsistencyScore: 0.5,
			},
			wantScore:     50,
			wantNote:      []string{"Beginner omits ATP", "Step order differs"},
			wantNotInNote: []string{"high consensus"},
		},
		{
			name:        "huge consistency saturates",
			analysis:    types.Analysis{ConsistencyScore: 1e300},
			wantScore:   math.MaxInt32,
			wantSummary: []string{"2147483647%"},
		},
		{
			name:        "single common fact",
			analysis:    types.Analysis{Common: []string{"Only fact"}, ConsistencyScore: 1},
			wantScore:   100,
			wantSummary: []string{"Key facts: Only fact."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AdaptDeep(&types.DeepAnalysisResult{Analysis: tt.analysis})

			assert.Equal(t, tt.wantScore, result.ReliabilityScore)
			for _, s := range tt.wantNote {
				assert.Contains(t, result.ConsensusNote, s)
			}
			for _, s := range tt.wantNotInNote {
				assert.NotContains(t, result.ConsensusNote, s)
			}
			for _, s := range tt.wantSummary {
				assert.Contains(t, result.Summary, s)
			}
			assert.NotNil(t, result.Sources)
			assert.NotNil(t, result.RecommendedVideos)
		})
	}
}

func TestAdaptDeep_InvalidLinkKeepsEntry(t *testing.T) {
	result := AdaptDeep(&types.DeepAnalysisResult{
		WebLinks: []types.Link{{Title: "Broken", URL: "not a url"}},
	})

	require.Len(t, result.Sources, 1)
	assert.Equal(t, "Broken", result.Sources[0].Title)
	assert.Equal(t, "", result.Sources[0].Source)
}

func TestNormalizeDeep_Malformed(t *testing.T) {
	_, deepErr := NormalizeDeep(types.RawCompletion{Text: "Sure! Here's the answer: {not valid json"})
	require.Error(t, deepErr)
	assert.True(t, errors.Is(deepErr, types.ErrMalformedResponse))

	var malformed *types.MalformedResponseError
	require.True(t, errors.As(deepErr, &malformed))
	assert.Equal(t, types.ModeDeep, malformed.Mode)

	_, quickErr := NormalizeQuick(types.RawCompletion{Text: "Sure! Here's the answer: {not valid json"})
	require.Error(t, quickErr)
	assert.NotEqual(t, quickErr.Error(), deepErr.Error())

	_, err := NormalizeDeep(types.RawCompletion{Text: `{"analysis":{"consistencyScore":"high"}}`})
	assert.True(t, errors.Is(err, types.ErrMalformedResponse))
}
