// Package metrics 定义 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 关键词提取结果
const (
	OutcomeDisabled = "disabled"
	OutcomeSuccess  = "success"
	OutcomeEmpty    = "empty"
	OutcomeFailed   = "failed"
	OutcomeCanceled = "canceled"
)

// Metrics 服务指标
type Metrics struct {
	// KeywordExtractions 按结果统计关键词提取次数
	KeywordExtractions *prometheus.CounterVec

	// KeywordsReturned 每次提取返回的关键词数量
	KeywordsReturned prometheus.Histogram

	// HTTPRequests 按方法、路由、状态码统计请求
	HTTPRequests *prometheus.CounterVec

	// HTTPDuration 请求耗时（秒）
	HTTPDuration *prometheus.HistogramVec

	// CacheLookups 目录缓存命中统计，result 为 hit 或 miss
	CacheLookups *prometheus.CounterVec
}

// New 在指定 registerer 上注册指标，reg 为 nil 时使用默认 registry
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		KeywordExtractions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thesis_hub",
			Name:      "keyword_extractions_total",
			Help:      "Keyword extraction calls by outcome.",
		}, []string{"outcome"}),
		KeywordsReturned: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "thesis_hub",
			Name:      "keywords_returned",
			Help:      "Number of keywords returned per extraction.",
			Buckets:   []float64{0, 1, 3, 5, 10, 20, 40},
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thesis_hub",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "thesis_hub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thesis_hub",
			Name:      "cache_lookups_total",
			Help:      "Catalog cache lookups by result.",
		}, []string{"result"}),
	}
}

// ObserveExtraction 记录一次关键词提取
func (m *Metrics) ObserveExtraction(outcome string, count int) {
	if m == nil {
		return
	}
	m.KeywordExtractions.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess || outcome == OutcomeEmpty {
		m.KeywordsReturned.Observe(float64(count))
	}
}

// ObserveCache 记录缓存命中情况
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}
