package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/thesis-hub/internal/errs"
	"github.com/ashwinyue/thesis-hub/internal/validation"
)

// Response 统一响应，Code 与 HTTP 状态码一致
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// success 成功响应 (200)
func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Code: http.StatusOK, Message: "success", Data: data})
}

// created 创建成功响应 (201)
func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Code: http.StatusCreated, Message: "created", Data: data})
}

// errorResponse 根据错误类型返回相应的错误响应
// 5xx 错误记录到 gin 上下文，由日志中间件输出
func errorResponse(c *gin.Context, err error) {
	code := errs.CodeOf(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(code, Response{Success: false, Code: code, Message: errs.MessageOf(err)})
}

// badRequest 400 错误响应
func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{Success: false, Code: http.StatusBadRequest, Message: msg})
}

// bindError 请求绑定失败
func bindError(c *gin.Context, err error) {
	badRequest(c, validation.Describe(err))
}
