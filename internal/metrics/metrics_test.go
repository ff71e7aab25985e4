package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.TabOp("add", true)
	m.TabOp("add", false)
	m.TabOp("add", false)
	m.Export()
	m.PersistWrite(nil)
	m.PersistWrite(errors.New("disk full"))
	m.SetTabs(4)

	require.Equal(t, 1.0, testutil.ToFloat64(m.tabOps.WithLabelValues("add", "applied")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.tabOps.WithLabelValues("add", "noop")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.exports))
	require.Equal(t, 1.0, testutil.ToFloat64(m.writes.WithLabelValues("error")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.tabs))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.TabOp("add", true)
		m.Export()
		m.PersistWrite(nil)
		m.SetTabs(1)
	})
	require.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Export()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "tabsmith_exports_total 1")
}
