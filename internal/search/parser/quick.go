package parser

import (
	"math"

	"github.com/lk2023060901/ai-study-backend/internal/search/types"
)

// quickPayload 快速模式约定的 JSON 结构
type quickPayload struct {
	Summary             string                `json:"summary"`
	DetailedExplanation string                `json:"detailedExplanation"`
	ReliabilityScore    float64               `json:"reliabilityScore"`
	ConsensusNote       string                `json:"consensusNote"`
	RecommendedVideos   []types.VideoResource `json:"recommendedVideos"`
}

// NormalizeQuick 将快速模式的原始输出转换为 VerifiedResult
//
// 引用映射为来源并按 URL 去重、最多保留 MaxQuickSources 条；
// 其余字段原样透传，分数不做区间校验（小数四舍五入为整数）。
func NormalizeQuick(raw types.RawCompletion) (*types.VerifiedResult, error) {
	var payload quickPayload
	if err := decode(types.ModeQuick, raw.Text, quickSchema, &payload); err != nil {
		return nil, err
	}

	videos := payload.RecommendedVideos
	if videos == nil {
		videos = []types.VideoResource{}
	}

	return &types.VerifiedResult{
		Summary:             payload.Summary,
		DetailedExplanation: payload.DetailedExplanation,
		ReliabilityScore:    roundScore(payload.ReliabilityScore),
		Sources:             citationsToSources(raw.Citations, MaxQuickSources),
		RecommendedVideos:   videos,
		ConsensusNote:       payload.ConsensusNote,
		Mode:                types.ModeQuick,
	}, nil
}

// roundScore 四舍五入为整数，超出 int32 范围时饱和到边界
func roundScore(v float64) int {
	r := math.Round(v)
	switch {
	case r > math.MaxInt32:
		return math.MaxInt32
	case r < math.MinInt32:
		return math.MinInt32
	}
	return int(r)
}
