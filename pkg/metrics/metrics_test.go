package metrics

import (
	"database/sql"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveHTTP(t *testing.T) {
	m := NewWithRegisterer("salon-test", prometheus.NewRegistry())

	m.ObserveHTTP("POST", "/api/appointments", 201, 15*time.Millisecond)
	m.ObserveHTTP("POST", "/api/appointments", 201, 20*time.Millisecond)
	m.ObserveHTTP("POST", "/api/appointments", 409, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/appointments", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/appointments", "409")))
}

func TestMetrics_AppointmentOutcome(t *testing.T) {
	m := NewWithRegisterer("salon-test", prometheus.NewRegistry())

	m.AppointmentOutcome("created")
	m.AppointmentOutcome("conflict")
	m.AppointmentOutcome("conflict")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AppointmentsTotal.WithLabelValues("conflict")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.AppointmentOutcome("created") })
}

func TestMetrics_RecordDBStats(t *testing.T) {
	m := NewWithRegisterer("salon-test", prometheus.NewRegistry())

	m.recordDBStats(sql.DBStats{OpenConnections: 7, InUse: 3})

	assert.Equal(t, 7.0, testutil.ToFloat64(m.DBOpenConnections))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DBInUseConnections))
}
