package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	if m.Counter != nil {
		return m.Counter.GetValue()
	}
	return m.Gauge.GetValue()
}

func TestRecordTriggerAndFrame(t *testing.T) {
	r := NewRegistry()

	r.RecordTrigger("api", 9)
	r.RecordTrigger("spontaneous", 0)
	r.RecordFrame(2*time.Millisecond, 9, 0)
	r.RecordFrame(time.Millisecond, 0, 9)

	api, err := r.TriggersTotal.GetMetricWithLabelValues("api")
	require.NoError(t, err)
	assert.Equal(t, 1.0, counterValue(t, api))
	assert.Equal(t, 9.0, counterValue(t, r.PulsesCreatedTotal))
	assert.Equal(t, 9.0, counterValue(t, r.PulsesExpiredTotal))
	assert.Equal(t, 0.0, counterValue(t, r.ActivePulses))
	assert.Equal(t, 2.0, counterValue(t, r.FramesTotal))
}

func TestRecordHTTPAndContact(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("POST", "/api/contact", "200", 10*time.Millisecond)
	r.RecordContact("sent")
	r.RecordContact("invalid")
	r.SetScene(100, 480)

	c, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("POST", "/api/contact", "200")
	require.NoError(t, err)
	assert.Equal(t, 1.0, counterValue(t, c))
	sent, err := r.ContactSubmissionsTotal.GetMetricWithLabelValues("sent")
	require.NoError(t, err)
	assert.Equal(t, 1.0, counterValue(t, sent))
	assert.Equal(t, 480.0, counterValue(t, r.SceneEdges))
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordTrigger("api", 3)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(body, `nexus_triggers_total{source="api"} 1`))
	assert.Contains(t, body, "nexus_pulses_created_total 3")
	assert.Contains(t, body, "go_goroutines")
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	a.RecordContact("sent")
	sent, err := b.ContactSubmissionsTotal.GetMetricWithLabelValues("sent")
	require.NoError(t, err)
	assert.Equal(t, 0.0, counterValue(t, sent))
}
