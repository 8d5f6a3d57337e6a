package parser

import (
	"fmt"
	"strings"

	"github.com/lk2023060901/ai-study-backend/internal/search/types"
)

// 摘要中最多引用的共同事实条数
const maxSummaryFacts = 2

// ParseDeep 解析深度模式输出为 DeepAnalysisResult
func ParseDeep(text string) (*types.DeepAnalysisResult, error) {
	var result types.DeepAnalysisResult
	if err := decode(types.ModeDeep, text, deepSchema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AdaptDeep 将深度分析结果转换为通用 VerifiedResult，摘要和共识说明由分析数据合成
func AdaptDeep(deep *types.DeepAnalysisResult) *types.VerifiedResult {
	score := roundScore(deep.Analysis.ConsistencyScore * 100)

	return &types.VerifiedResult{
		Summary:             deepSummary(score, deep.Analysis.Common),
		DetailedExplanation: deep.VerifiedAnswer,
		ReliabilityScore:    score,
		Sources:             linksToSources(deep.WebLinks),
		RecommendedVideos:   linksToVideos(deep.YoutubeLinks),
		ConsensusNote:       deepConsensusNote(deep.Analysis.Conflicts),
		Mode:                types.ModeDeep,
	}
}

// NormalizeDeep ParseDeep + AdaptDeep
func NormalizeDeep(raw types.RawCompletion) (*types.VerifiedResult, error) {
	deep, err := ParseDeep(raw.Text)
	if err != nil {
		return nil, err
	}
	return AdaptDeep(deep), nil
}

func deepSummary(score int, common []string) string {
	summary := fmt.Sprintf(
		"Verified across four reasoning perspectives (beginner, technical, key points, step-by-step) with %d%% consistency.",
		score)

	if len(common) > maxSummaryFacts {
		common = common[:maxSummaryFacts]
	}
	if len(common) > 0 {
		summary += " Key facts: " + strings.Join(common, ", ") + "."
	}
	return summary
}

func deepConsensusNote(conflicts []string) string {
	note := "This answer was synthesized from four independent reasoning paths."
	if len(conflicts) > 0 {
		return note + " Conflicts noted: " + strings.Join(conflicts, "; ")
	}
	return note + " All perspectives reached high consensus."
}
