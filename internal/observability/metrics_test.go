package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountsRequestsAndErrors(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/cases", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/api/cases", "GET", 200, 7*time.Millisecond)
	m.RecordError("/api/cases", "PUT", "FORBIDDEN")

	assert.EqualValues(t, 2, m.RequestCount("/api/cases", "GET", 200))
	assert.EqualValues(t, 0, m.RequestCount("/api/cases", "GET", 500))
	assert.EqualValues(t, 1, m.ErrorCount("/api/cases", "PUT", "FORBIDDEN"))
}

func TestMetrics_NilReceiverSafe(t *testing.T) {
	var m *Metrics

	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "INTERNAL_ERROR")
	assert.EqualValues(t, 0, m.RequestCount("/", "GET", 200))
	assert.EqualValues(t, 0, m.ErrorCount("/", "GET", "INTERNAL_ERROR"))
}
