package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveQueryCountsOutcome(t *testing.T) {
	InitMetrics()
	InitMetrics()

	before := testutil.ToFloat64(CatalogQueriesTotal.WithLabelValues("search", "error"))
	ObserveQuery("search", time.Now(), errors.New("boom"))
	after := testutil.ToFloat64(CatalogQueriesTotal.WithLabelValues("search", "error"))

	assert.Equal(t, before+1, after)
}

func TestPrometheusMiddlewareLabelsUnmatchedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/list", func(c *gin.Context) { c.Status(http.StatusOK) })

	unmatched := HttpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	listed := HttpRequestsTotal.WithLabelValues(http.MethodGet, "/list", "200")
	beforeUnmatched, beforeListed := testutil.ToFloat64(unmatched), testutil.ToFloat64(listed)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random/path", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/list", nil))

	assert.Equal(t, beforeUnmatched+1, testutil.ToFloat64(unmatched))
	assert.Equal(t, beforeListed+1, testutil.ToFloat64(listed))
	assert.Zero(t, testutil.ToFloat64(ActiveConnections))
}
