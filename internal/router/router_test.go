package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/thesis-hub/internal/config"
	"github.com/ashwinyue/thesis-hub/internal/handler"
	"github.com/ashwinyue/thesis-hub/internal/logger"
	"github.com/ashwinyue/thesis-hub/internal/metrics"
	"github.com/ashwinyue/thesis-hub/internal/repository"
	"github.com/ashwinyue/thesis-hub/internal/service"
	"github.com/ashwinyue/thesis-hub/internal/service/file"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *prometheus.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv(config.GeminiAPIKeyEnv, "")

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.App.Version = "test"

	storage, err := file.NewLocalStorage(t.TempDir(), "/files")
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	// 仓库只在请求到达服务层时才会访问数据库，这里不发起这类请求
	svc, err := service.NewServices(context.Background(), repository.NewRepositories(nil), cfg, service.Deps{
		Storage: storage,
		Logger:  logger.Discard(),
		Metrics: m,
	})
	require.NoError(t, err)

	h := handler.NewHandlers(svc, okPinger{})
	return SetupRouter(h, Options{Logger: logger.Discard(), Metrics: m, Gatherer: reg, Tokens: svc.Account.Tokens()}), reg
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"test"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `thesis_hub_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestKeywordRouteWithoutKey(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/keywords/extract", bytes.NewBufferString(`{"title":"Hệ thống gợi ý"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r.ServeHTTP(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"keywords":[]`))
}

func TestValidationBeforeRepository(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/api/v1/semesters", "/api/v1/phase-types", "/api/v1/topic-categories", "/api/v1/accounts"} {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
