// Package keyword 通过 Gemini 从论文题目和描述中提取关键词
//
// 关键词提取是增强功能：未配置 API Key、调用失败或模型输出无法解析时
// 都返回空列表而不是错误。唯一返回的错误是调用方 context 被取消或超时。
package keyword

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ashwinyue/thesis-hub/internal/config"
	"github.com/ashwinyue/thesis-hub/internal/logger"
	"github.com/ashwinyue/thesis-hub/internal/metrics"
)

// Extractor 关键词提取器，可并发使用
type Extractor struct {
	cfg     config.GeminiConfig
	client  *http.Client
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

// Option 提取器选项
type Option func(*Extractor)

// WithHTTPClient 指定 HTTP 客户端（连接池由调用方管理）
func WithHTTPClient(c *http.Client) Option {
	return func(e *Extractor) {
		if c != nil {
			e.client = c
		}
	}
}

// WithLogger 指定 logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMetrics 指定指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Extractor) {
		e.metrics = m
	}
}

// NewExtractor 创建提取器
// 配置在这里解析一次，之后的调用不再读取环境变量
func NewExtractor(cfg config.GeminiConfig, opts ...Option) *Extractor {
	e := &Extractor{
		cfg:    cfg.Resolve(),
		client: http.DefaultClient,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enabled 是否配置了 API Key
func (e *Extractor) Enabled() bool {
	return e.cfg.Enabled()
}

// Model 使用的模型
func (e *Extractor) Model() string {
	return e.cfg.Model
}

// ExtractKeywords 提取关键词
//
// 返回值始终是非 nil 的切片（可能为空）；只有 ctx 被取消或超时时返回 ctx.Err()。
// maxKeywords 只写入提示词，结果不做截断。
func (e *Extractor) ExtractKeywords(ctx context.Context, title, description string, maxKeywords int) ([]string, error) {
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}

	if !e.Enabled() {
		e.metrics.ObserveExtraction(metrics.OutcomeDisabled, 0)
		return []string{}, nil
	}

	text, err := e.generate(ctx, BuildPrompt(title, description, maxKeywords))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			e.metrics.ObserveExtraction(metrics.OutcomeCanceled, 0)
			return nil, ctxErr
		}
		e.log.WithError(err).WithField("model", e.cfg.Model).Warn("keyword extraction failed")
		e.metrics.ObserveExtraction(metrics.OutcomeFailed, 0)
		return []string{}, nil
	}

	keywords := ParseKeywords(text)
	if len(keywords) == 0 {
		e.log.WithField("model", e.cfg.Model).Debug("keyword extraction returned no usable keywords")
		e.metrics.ObserveExtraction(metrics.OutcomeEmpty, 0)
		return keywords, nil
	}

	e.metrics.ObserveExtraction(metrics.OutcomeSuccess, len(keywords))
	return keywords, nil
}
