package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLoggerWithZap(zap.New(core)), logs
}

func TestWithFields_DoesNotShareBackingArray(t *testing.T) {
	t.Parallel()

	base := WithFields(context.Background(), Field{"a", 1}, Field{"b", 2})
	left := WithFields(base, Field{"c", 3})
	right := WithFields(base, Field{"d", 4})

	assert.Equal(t, []Field{{"a", 1}, {"b", 2}, {"c", 3}}, getObservabilityFields(left))
	assert.Equal(t, []Field{{"a", 1}, {"b", 2}, {"d", 4}}, getObservabilityFields(right))
}

func TestLogger_ContextFields(t *testing.T) {
	t.Parallel()

	logger, logs := observedLogger()
	ctx := WithFields(context.Background(), Field{"campaign_id", "c-1"})

	logger.Error(ctx, "vendor call failed", errors.New("timeout"))
	logger.Warn(ctx, "lock expired before release")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "c-1", entries[0].ContextMap()["campaign_id"])
	assert.Equal(t, "timeout", entries[0].ContextMap()["error"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestLogger_MetricsOverridesContextKeys(t *testing.T) {
	t.Parallel()

	logger, logs := observedLogger()
	ctx := WithFields(context.Background(), Field{"status", "pending"}, Field{"path", "/x"})

	logger.Metrics(ctx, MetricField{"status", 200})

	entries := logs.FilterMessage("Metrics").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(200), fields["status"])
	assert.Equal(t, "/x", fields["path"])
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	logger, logs := observedLogger()
	r := gin.New()
	r.Use(Middleware(logger))
	r.GET("/api/campaigns", func(c *gin.Context) {
		logger.Info(c.Request.Context(), "inside handler")
		c.Status(http.StatusNoContent)
	})
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/api/campaigns", nil)
	req.Header.Set("X-Request-ID", "req-fixed")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-fixed", w.Header().Get("X-Request-ID"))
	inside := logs.FilterMessage("inside handler").All()
	require.Len(t, inside, 1)
	assert.Equal(t, "req-fixed", inside[0].ContextMap()["request_id"])
	assert.Equal(t, "/api/campaigns", inside[0].ContextMap()["path"])

	summary := logs.FilterMessage("Metrics").All()
	require.Len(t, summary, 1)
	assert.Equal(t, int64(http.StatusNoContent), summary[0].ContextMap()["status"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Len(t, logs.FilterMessage("Recovered from panic").All(), 1)
}

func TestHTTPMetrics(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/campaigns/:campaign_id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/campaigns/a", "/api/campaigns/b", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/campaigns/:campaign_id", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")))
}
