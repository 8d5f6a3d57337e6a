package biz

import (
	"errors"

	"github.com/lk2023060901/ai-study-backend/internal/search/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 搜索结果分类（metrics label）
const (
	outcomeOK                = "ok"
	outcomeEmptyTopic        = "empty_topic"
	outcomeMissingCredential = "missing_credential"
	outcomeProviderError     = "provider_error"
	outcomeEmptyResponse     = "empty_response"
	outcomeMalformed         = "malformed"
)

var (
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ai_study_search_total",
		Help: "Verified searches by mode and outcome",
	}, []string{"mode", "outcome"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ai_study_search_duration_seconds",
		Help:    "End-to-end latency of a verified search",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	}, []string{"mode"})

	searchSources = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ai_study_search_sources",
		Help:    "Number of web sources in a verified result",
		Buckets: []float64{0, 1, 2, 3, 4, 6, 8, 12},
	}, []string{"mode"})
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, types.ErrEmptyTopic):
		return outcomeEmptyTopic
	case errors.Is(err, types.ErrMissingCredential):
		return outcomeMissingCredential
	case errors.Is(err, types.ErrEmptyResponse):
		return outcomeEmptyResponse
	case errors.Is(err, types.ErrMalformedResponse):
		return outcomeMalformed
	default:
		return outcomeProviderError
	}
}
