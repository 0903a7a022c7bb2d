package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewFeedbackMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFeedbackMetrics(reg)

	m.CreatedTotal.WithLabelValues("product").Inc()
	m.CreatedTotal.WithLabelValues("product").Inc()
	m.StoreErrors.WithLabelValues("insert").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CreatedTotal.WithLabelValues("product")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreErrors.WithLabelValues("insert")))
	assert.Panics(t, func() { NewFeedbackMetrics(reg) }, "double registration must fail")
}

func TestHTTPMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/feedback/category/{category}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/api/feedback/category/product", "/api/feedback/category/support", "/health"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	counter := m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/feedback/category/{category}", "200")
	assert.Equal(t, 2.0, testutil.ToFloat64(counter))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestsTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlightGauge))
}
