package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/thesis-hub/internal/errs"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// doJSON 发送 JSON 请求并解析统一响应
func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"business", errs.Conflict("semester still has phases"), http.StatusConflict, "semester still has phases"},
		{"canceled", context.Canceled, errs.StatusClientClosedRequest, "request canceled"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "request timed out"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { errorResponse(c, tt.err) })

			w, resp := doJSON(t, r, http.MethodGet, "/", nil)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.status, resp.Code)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type flag bool

func (f flag) Enabled() bool { return bool(f) }

func TestHealth(t *testing.T) {
	r := gin.New()
	h := NewSystemHandler(pingFunc(func(context.Context) error { return nil }), "1.2.3", flag(false))
	r.GET("/health", h.Health)

	w, resp := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "1.2.3", data["version"])
	assert.Equal(t, "disabled", data["keyword_extraction"])
}

func TestHealth_DatabaseDown(t *testing.T) {
	r := gin.New()
	h := NewSystemHandler(pingFunc(func(context.Context) error { return errors.New("down") }), "", flag(true))
	r.GET("/health", h.Health)

	w, resp := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "unavailable", data["database"])
	assert.Equal(t, "enabled", data["keyword_extraction"])
}
