package prompt

import (
	"fmt"
	"strings"

	"github.com/lk2023060901/ai-study-backend/internal/search/types"
)

// QuickSchema 快速模式要求模型输出的 JSON 结构
const QuickSchema = `{
  "summary": string,
  "detailedExplanation": string,
  "reliabilityScore": number,
  "consensusNote": string,
  "recommendedVideos": [{ "title": string, "query": string }]
}`

// DeepSchema 深度模式要求模型输出的 JSON 结构
const DeepSchema = `{
  "topic": string,
  "rawResponses": {
    "beginner": string,
    "technical": string,
    "keypoints": string,
    "stepbystep": string
  },
  "analysis": {
    "common": [string],
    "conflicts": [string],
    "consistencyScore": number
  },
  "verifiedAnswer": string,
  "webLinks": [{ "title": string, "url": string }],
  "youtubeLinks": [{ "title": string, "url": string }]
}`

// markdownRules 详细解释字段使用的 markdown 子集，与 internal/markdown 的解析规则一致
const markdownRules = `Formatting rules for %s:
- Separate paragraphs with a blank line.
- Start a paragraph with "## " for a heading or "### " for a sub-heading.
- Write a bulleted list as its own paragraph, one item per line starting with "- ".
- Use **double asterisks** for emphasis. No other markup (no links, tables, code fences or italics).`

const quickTemplate = `You are a meticulous fact-checker helping a student study.

Topic: %s

Search the web, verify the facts about this topic against multiple independent sources, and explain it clearly.
Rate how reliable the verified information is with an integer reliabilityScore from 0 to 100.
In consensusNote, state whether the sources agree and mention any notable disagreement.
Recommend up to 3 YouTube videos; for each give a title and a YouTube search query that would find it.

%s

Respond with a single JSON object only, with no prose before or after it, matching this schema:
%s`

const deepTemplate = `You are a meticulous fact-checker helping a student study.

Topic: %s

Answer the topic independently from four reasoning perspectives:
1. beginner: a simple explanation for someone new to the subject.
2. technical: a precise, technical explanation.
3. keypoints: the essential key points as a short list.
4. stepbystep: a step-by-step walkthrough.

Then compare the four answers:
- common: the facts all four perspectives agree on.
- conflicts: any contradictions between perspectives, described literally. Use an empty array when there are none.
- consistencyScore: a number between 0 and 1 measuring how consistent the perspectives are.

Finally write verifiedAnswer, a single explanation built only from the facts that survived the comparison,
and list relevant webLinks and youtubeLinks with real URLs.

%s

Respond with a single JSON object only, with no prose before or after it, matching this schema:
%s`

// Build 按模式构建 prompt
func Build(mode types.SearchMode, topic string) (string, error) {
	switch mode {
	case types.ModeQuick:
		return Quick(topic), nil
	case types.ModeDeep:
		return Deep(topic), nil
	default:
		return "", fmt.Errorf("%w: %q", types.ErrInvalidMode, string(mode))
	}
}

// Quick 快速模式 prompt
func Quick(topic string) string {
	return fmt.Sprintf(quickTemplate,
		strings.TrimSpace(topic),
		fmt.Sprintf(markdownRules, "detailedExplanation"),
		QuickSchema)
}

// Deep 深度模式 prompt
func Deep(topic string) string {
	return fmt.Sprintf(deepTemplate,
		strings.TrimSpace(topic),
		fmt.Sprintf(markdownRules, "verifiedAnswer"),
		DeepSchema)
}
