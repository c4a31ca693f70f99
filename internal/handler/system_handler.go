package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger 数据库连通性检查
type Pinger interface {
	Ping(ctx context.Context) error
}

// FeatureFlag 可选功能是否启用
type FeatureFlag interface {
	Enabled() bool
}

// SystemHandler 系统处理器
type SystemHandler struct {
	db       Pinger
	version  string
	keywords FeatureFlag
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(db Pinger, version string, keywords FeatureFlag) *SystemHandler {
	return &SystemHandler{db: db, version: version, keywords: keywords}
}

// Health 健康检查
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "ok"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "unavailable"
		}
	}

	keywordStatus := "disabled"
	if h.keywords != nil && h.keywords.Enabled() {
		keywordStatus = "enabled"
	}

	c.JSON(status, Response{
		Success: status == http.StatusOK,
		Code:    status,
		Message: http.StatusText(status),
		Data: gin.H{
			"version":            h.version,
			"database":           dbStatus,
			"keyword_extraction": keywordStatus,
		},
	})
}
