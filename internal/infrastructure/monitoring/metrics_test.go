package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIndependentRegistries(t *testing.T) {
	// Two collectors must not collide on registration
	a := NewMetrics()
	b := NewMetrics()

	a.RecordRequest("keyboard", "raised")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Requests.WithLabelValues("keyboard", "raised")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Requests.WithLabelValues("keyboard", "raised")))
}

func TestRecordPhase(t *testing.T) {
	m := NewMetrics()

	m.RecordPhase("GREEN", 0, false)
	m.RecordPhase("YELLOW_TO_RED", 1, true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PhaseTransitions.WithLabelValues("GREEN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PhaseTransitions.WithLabelValues("YELLOW_TO_RED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VehiclePhase))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CrossingActive))

	// Only the closed-out GREEN phase has a duration sample
	assert.Equal(t, 1, testutil.CollectAndCount(m.PhaseDuration))

	m.RecordPhase("RED", 2, false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CrossingActive))
	assert.Equal(t, 2, testutil.CollectAndCount(m.PhaseDuration))
}

func TestRecordAccepted(t *testing.T) {
	m := NewMetrics()

	m.RecordAccepted(time.Second)
	m.RecordAccepted(3 * time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CrossingsTotal))

	summary := m.WaitSummary()
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 2.0, summary.Mean, 1e-9)
	assert.InDelta(t, 3.0, summary.Max, 1e-9)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordPhase("GREEN", 0, false)
		m.RecordRequest("random", "raised")
		m.RecordAccepted(time.Second)
		m.RecordHTTPRequest("GET", "/health", "200", time.Millisecond)
		m.RecordWSMessage("out", "phase")
		m.IncWSConnections()
		m.DecWSConnections()
	})
	assert.Equal(t, WaitSummary{}, m.WaitSummary())
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("remote", "duplicate")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `crosswalk_requests_total{result="duplicate",source="remote"} 1`))
	assert.True(t, strings.Contains(body, "crosswalk_uptime_seconds"))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}
