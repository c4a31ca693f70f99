// Package errs 定义业务错误，Code 与 HTTP 状态码保持一致
package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// StatusClientClosedRequest 调用方取消请求
const StatusClientClosedRequest = 499

// Error 业务错误
type Error struct {
	Code    int
	Message string
	Err     error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 支持 errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// New 创建业务错误
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap 包装底层错误
func Wrap(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// BadRequest 400
func BadRequest(message string) *Error { return New(http.StatusBadRequest, message) }

// Unauthorized 401
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }

// Forbidden 403
func Forbidden(message string) *Error { return New(http.StatusForbidden, message) }

// NotFound 404
func NotFound(message string) *Error { return New(http.StatusNotFound, message) }

// Conflict 409
func Conflict(message string) *Error { return New(http.StatusConflict, message) }

// Internal 500
func Internal(message string, err error) *Error {
	return Wrap(http.StatusInternalServerError, message, err)
}

// CodeOf 返回错误对应的状态码
func CodeOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	if errors.Is(err, context.Canceled) {
		return StatusClientClosedRequest
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// MessageOf 返回可以展示给调用方的信息
// 非业务错误不暴露内部细节
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	switch CodeOf(err) {
	case StatusClientClosedRequest:
		return "request canceled"
	case http.StatusGatewayTimeout:
		return "request timed out"
	}
	return "internal server error"
}
