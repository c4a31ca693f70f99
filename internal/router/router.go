package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ashwinyue/thesis-hub/internal/handler"
	"github.com/ashwinyue/thesis-hub/internal/metrics"
	"github.com/ashwinyue/thesis-hub/internal/middleware"
)

// Options 路由依赖
type Options struct {
	Logger   logrus.FieldLogger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer // /metrics 的数据源，nil 时使用默认 registry
	Tokens   middleware.TokenParser
}

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware(log))
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.MetricsMiddleware(opts.Metrics))
	r.Use(middleware.AuthMiddleware(opts.Tokens))

	// 健康检查与指标
	r.GET("/health", h.System.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Account.Login)
		v1.GET("/roles", h.Account.ListRoles)

		// 账号
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", h.Account.Create)
			accounts.GET("", h.Account.List)
			accounts.GET("/:id", h.Account.Get)
			accounts.PUT("/:id", h.Account.Update)
			accounts.PUT("/:id/status", h.Account.SetActive)
			accounts.PUT("/:id/password", h.Account.ChangePassword)
			accounts.GET("/:id/roles", h.Account.GetRoles)
			accounts.POST("/:id/roles", h.Account.AssignRole)
			accounts.DELETE("/:id/roles/:role", h.Account.RemoveRole)
		}

		// 文件
		files := v1.Group("/files")
		{
			files.POST("", h.File.Upload)
			files.GET("", h.File.ListByEntity)
			files.GET("/:id", h.File.Get)
			files.GET("/:id/content", h.File.Download)
			files.GET("/:id/url", h.File.URL)
			files.DELETE("/:id", h.File.Delete)
			files.POST("/:id/links", h.File.Link)
			files.DELETE("/:id/links/:entity_type/:entity_id", h.File.Unlink)
		}

		// 学期
		semesters := v1.Group("/semesters")
		{
			semesters.POST("", h.Semester.Create)
			semesters.GET("", h.Semester.List)
			semesters.GET("/:id", h.Semester.Get)
			semesters.PUT("/:id", h.Semester.Update)
			semesters.DELETE("/:id", h.Semester.Delete)
		}

		// 阶段类型
		phaseTypes := v1.Group("/phase-types")
		{
			phaseTypes.POST("", h.PhaseType.Create)
			phaseTypes.GET("", h.PhaseType.List)
			phaseTypes.GET("/:id", h.PhaseType.Get)
			phaseTypes.PUT("/:id", h.PhaseType.Update)
			phaseTypes.DELETE("/:id", h.PhaseType.Delete)
		}

		// 选题分类
		categories := v1.Group("/topic-categories")
		{
			categories.POST("", h.TopicCategory.Create)
			categories.GET("", h.TopicCategory.List)
			categories.GET("/:id", h.TopicCategory.Get)
			categories.PUT("/:id", h.TopicCategory.Update)
			categories.DELETE("/:id", h.TopicCategory.Delete)
		}

		// 关键词
		v1.POST("/keywords/extract", h.Keyword.Extract)
	}

	return r
}
