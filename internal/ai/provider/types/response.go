package types

// StopReason 停止原因
type StopReason string

const (
	StopReasonEndTurn   StopReason = "end_turn"   // 自然停止
	StopReasonMaxTokens StopReason = "max_tokens" // 达到 token 限制
	StopReasonPauseTurn StopReason = "pause_turn" // 暂停，可继续
	StopReasonStop      StopReason = "stop"       // 遇到停止序列
	StopReasonLength    StopReason = "length"     // OpenAI 的长度截断
)

// ChatCompletionResponse 聊天补全响应（OpenAI 标准格式）
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`

	// Citations 联网检索返回的引用（未校验、可能重复）
	Citations []Citation `json:"citations,omitempty"`
}

// Choice 选择项
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage Token 使用统计
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Citation 引用来源
type Citation struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url"`
}

// Text 第一个选择项的文本，没有时返回空字符串
func (r *ChatCompletionResponse) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// Truncated 判断响应是否因 token 限制被截断
func (r *ChatCompletionResponse) Truncated() bool {
	if r == nil || len(r.Choices) == 0 {
		return false
	}
	switch StopReason(r.Choices[0].FinishReason) {
	case StopReasonMaxTokens, StopReasonPauseTurn, StopReasonLength:
		return true
	default:
		return false
	}
}
