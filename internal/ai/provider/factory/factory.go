package factory

import (
	"fmt"
	"strings"

	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/anthropic"
	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/gemini"
	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/openai"
	"github.com/lk2023060901/ai-study-backend/internal/ai/provider/types"
)

// Provider 名称
const (
	NameGemini           = "gemini"
	NameOpenAI           = "openai"
	NameAnthropic        = "anthropic"
	NameOpenAICompatible = "openai-compatible"
)

// Aliases 别名 -> Provider 名称
var Aliases = map[string]string{
	"google": NameGemini,
	"claude": NameAnthropic,
	"gpt":    NameOpenAI,
}

// Canonical 解析别名，名称统一小写
func Canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if real, ok := Aliases[name]; ok {
		return real
	}
	return name
}

// AliasesOf 返回指向 name 的所有别名
func AliasesOf(name string) []string {
	var result []string
	for alias, real := range Aliases {
		if real == name {
			result = append(result, alias)
		}
	}
	return result
}

// New 按名称创建 Provider
func New(name string, config *types.Config) (types.Provider, error) {
	switch Canonical(name) {
	case NameGemini:
		return gemini.New(config)
	case NameOpenAI:
		return openai.New(config)
	case NameAnthropic:
		return anthropic.New(config)
	case NameOpenAICompatible:
		return openai.NewNamed(NameOpenAICompatible, config)
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}

// DefaultConfig 返回指定 Provider 的快速配置
func DefaultConfig(name, apiKey string, opts ...Option) (*types.Config, error) {
	switch Canonical(name) {
	case NameGemini:
		return Gemini(apiKey, opts...), nil
	case NameOpenAI:
		return OpenAI(apiKey, opts...), nil
	case NameAnthropic:
		return Anthropic(apiKey, opts...), nil
	case NameOpenAICompatible:
		return OpenAICompatible(apiKey, "", opts...), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
