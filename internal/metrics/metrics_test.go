package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordCajaAbierta()
		m.RecordMovimiento("pago", "Efectivo")
		m.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
		m.RecordReporte("ok")
	})
}

func TestCounters(t *testing.T) {
	m := New()
	m.RecordCajaAbierta()
	m.RecordCajaAbierta()
	m.RecordMovimiento("pago", "Efectivo")
	m.RecordMovimiento("retiro", "Efectivo")
	m.RecordMovimiento("pago", "Efectivo")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CajasAbiertas))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.MovimientosTotal.WithLabelValues("pago", "Efectivo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MovimientosTotal.WithLabelValues("retiro", "Efectivo")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.RecordCajaCerrada()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hotel_cajas_cerradas_total 1")
}
