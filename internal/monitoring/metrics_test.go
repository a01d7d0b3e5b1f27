package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCounting(t *testing.T) {
	m := NewMetrics()

	m.RecordEnqueue("ok", true)
	m.RecordEnqueue("ok", true)
	m.RecordEnqueue("resource-exhausted", false)
	m.RecordDequeue("v1")
	m.RecordCommand("ping", "0", time.Millisecond)
	m.RecordTransportFailure("open")
	m.RecordDrop()

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap.Accepted)
	assert.Equal(t, int64(1), snap.Rejected)
	assert.Equal(t, int64(1), snap.Serviced)
	assert.Equal(t, int64(2), snap.Dropped)
	assert.Equal(t, int64(1), snap.TransportFailures)
}

func TestIndependentRegistries(t *testing.T) {
	// Two instances must not collide on collector registration.
	m1 := NewMetrics()
	m2 := NewMetrics()
	m1.RecordEnqueue("ok", true)
	m2.RecordEnqueue("ok", true)

	assert.Equal(t, int64(1), m1.GetSnapshot().Accepted)
	assert.Equal(t, int64(1), m2.GetSnapshot().Accepted)
}

func TestScrapeHandler(t *testing.T) {
	m := NewMetrics()
	m.RecordEnqueue("ok", true)
	m.SetQueueState(1, 3)
	m.UpdateUptime()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "attach_enqueues_total")
	assert.Contains(t, body, "attach_queue_depth")
}
