package prometheus

import (
	"strconv"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusAdapter struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	availableBikes  prometheus.Gauge
	externalCalls   *prometheus.HistogramVec
}

func NewPrometheusAdapter() *PrometheusAdapter {
	return NewPrometheusAdapterWith(prometheus.DefaultRegisterer)
}

func NewPrometheusAdapterWith(reg prometheus.Registerer) *PrometheusAdapter {
	factory := promauto.With(reg)
	return &PrometheusAdapter{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bikeshare_requests_total",
			Help: "Requests handled, by method, path and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bikeshare_request_duration_seconds",
			Help:    "Request handling latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		availableBikes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bikeshare_available_bikes",
			Help: "Bikes currently available for reservation.",
		}),
		externalCalls: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bikeshare_external_call_duration_seconds",
			Help:    "Latency of simulated downstream calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"name", "outcome"}),
	}
}

func (p *PrometheusAdapter) RecordRequest(method, path string, status int, elapsed time.Duration) {
	p.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (p *PrometheusAdapter) SetAvailableBikes(count int) {
	p.availableBikes.Set(float64(count))
}

func (p *PrometheusAdapter) RecordExternalCall(name string, elapsed time.Duration, failed bool) {
	outcome := "success"
	if failed {
		outcome = "failure"
	}
	p.externalCalls.WithLabelValues(name, outcome).Observe(elapsed.Seconds())
}

var _ ports.MetricsPort = (*PrometheusAdapter)(nil)
