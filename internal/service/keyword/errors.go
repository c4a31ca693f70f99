package keyword

import (
	"errors"
	"fmt"
)

var (
	errNoCandidates = errors.New("response has no candidates")
	errNoContent    = errors.New("candidate has no content")
	errNoParts      = errors.New("content has no parts")
	errEmptyText    = errors.New("generated text is empty")
)

// APIError Gemini 返回非 2xx 状态
type APIError struct {
	StatusCode int
	Body       string
}

// Error 实现 error 接口
func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API error (status %d): %s", e.StatusCode, e.Body)
}
