package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lk2023060901/ai-study-backend/internal/search/types"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// 只约束字段类型，不要求必填；缺失字段按零值透传
const quickSchemaJSON = `{
  "type": "object",
  "properties": {
    "summary":             {"type": ["string", "null"]},
    "detailedExplanation": {"type": ["string", "null"]},
    "reliabilityScore":    {"type": ["number", "null"]},
    "consensusNote":       {"type": ["string", "null"]},
    "recommendedVideos": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": ["string", "null"]},
          "query": {"type": ["string", "null"]},
          "url":   {"type": ["string", "null"]}
        }
      }
    }
  }
}`

const deepSchemaJSON = `{
  "type": "object",
  "definitions": {
    "link": {
      "type": "object",
      "properties": {
        "title": {"type": ["string", "null"]},
        "url":   {"type": ["string", "null"]}
      }
    },
    "strings": {"type": ["array", "null"], "items": {"type": "string"}}
  },
  "properties": {
    "topic": {"type": ["string", "null"]},
    "rawResponses": {
      "type": ["object", "null"],
      "properties": {
        "beginner":   {"type": ["string", "null"]},
        "technical":  {"type": ["string", "null"]},
        "keypoints":  {"type": ["string", "null"]},
        "stepbystep": {"type": ["string", "null"]}
      }
    },
    "analysis": {
      "type": ["object", "null"],
      "properties": {
        "common":           {"$ref": "#/definitions/strings"},
        "conflicts":        {"$ref": "#/definitions/strings"},
        "consistencyScore": {"type": ["number", "null"]}
      }
    },
    "verifiedAnswer": {"type": ["string", "null"]},
    "webLinks":     {"type": ["array", "null"], "items": {"$ref": "#/definitions/link"}},
    "youtubeLinks": {"type": ["array", "null"], "items": {"$ref": "#/definitions/link"}}
  }
}`

// 最多在诊断信息里列出的 schema 错误条数
const maxSchemaErrors = 3

var (
	quickSchema = mustSchema(quickSchemaJSON)
	deepSchema  = mustSchema(deepSchemaJSON)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("parser: invalid embedded schema: %v", err))
	}
	return schema
}

// decode 提取 -> 合法性检查 -> schema 类型检查 -> 解码，任一步失败都返回 MalformedResponseError
func decode(mode types.SearchMode, text string, schema *gojsonschema.Schema, v interface{}) error {
	candidate := ExtractJSON(text)

	if !gjson.Valid(candidate) {
		return &types.MalformedResponseError{Mode: mode, Reason: "extracted text is not valid JSON"}
	}
	if !gjson.Parse(candidate).IsObject() {
		return &types.MalformedResponseError{Mode: mode, Reason: "top-level value is not an object"}
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(candidate))
	if err != nil {
		return &types.MalformedResponseError{Mode: mode, Reason: "schema validation failed", Err: err}
	}
	if !result.Valid() {
		return &types.MalformedResponseError{Mode: mode, Reason: describeSchemaErrors(result.Errors())}
	}

	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return &types.MalformedResponseError{Mode: mode, Reason: "decode failed", Err: err}
	}
	return nil
}

func describeSchemaErrors(errs []gojsonschema.ResultError) string {
	parts := make([]string, 0, maxSchemaErrors)
	for i, e := range errs {
		if i == maxSchemaErrors {
			parts = append(parts, fmt.Sprintf("and %d more", len(errs)-maxSchemaErrors))
			break
		}
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "; ")
}
