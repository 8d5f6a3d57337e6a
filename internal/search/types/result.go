package types

// Citation 检索增强返回的引用来源（未校验）
type Citation struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url"`
}

// RawCompletion Provider 返回的原始文本及引用
type RawCompletion struct {
	Text      string
	Citations []Citation
}

// WebResource 网页来源
type WebResource struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"` // 去掉 www. 的主机名
}

// VideoResource 推荐视频，URL 缺失时前端使用 Query 搜索
type VideoResource struct {
	Title string `json:"title"`
	Query string `json:"query"`
	URL   string `json:"url,omitempty"`
}

// VerifiedResult 两种模式共用的输出结构
type VerifiedResult struct {
	Summary             string          `json:"summary"`
	DetailedExplanation string          `json:"detailedExplanation"`
	ReliabilityScore    int             `json:"reliabilityScore"`
	Sources             []WebResource   `json:"sources"`
	RecommendedVideos   []VideoResource `json:"recommendedVideos"`
	ConsensusNote       string          `json:"consensusNote"`
	Mode                SearchMode      `json:"mode"`
}

// DeepAnalysisResult 深度模式的中间结构，仅用于转换为 VerifiedResult
type DeepAnalysisResult struct {
	Topic          string               `json:"topic"`
	RawResponses   PerspectiveResponses `json:"rawResponses"`
	Analysis       Analysis             `json:"analysis"`
	VerifiedAnswer string               `json:"verifiedAnswer"`
	WebLinks       []Link               `json:"webLinks"`
	YoutubeLinks   []Link               `json:"youtubeLinks"`
}

// PerspectiveResponses 四个推理视角的原始回答
type PerspectiveResponses struct {
	Beginner   string `json:"beginner"`
	Technical  string `json:"technical"`
	KeyPoints  string `json:"keypoints"`
	StepByStep string `json:"stepbystep"`
}

// Analysis 多视角一致性分析
type Analysis struct {
	Common           []string `json:"common"`
	Conflicts        []string `json:"conflicts"`
	ConsistencyScore float64  `json:"consistencyScore"` // [0,1]
}

// Link 深度模式中的链接
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
