package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/resourcehub/resourcehub/pkg/metrics"
)

type Metrics struct {
	apiResponseTime   *prometheus.HistogramVec
	apiErrorCounter   *prometheus.CounterVec
	githubRequestTime *prometheus.HistogramVec
	githubError       *prometheus.CounterVec
	starSyncTotal     *prometheus.CounterVec
	resourceTotal     *prometheus.GaugeVec
}

func NewMetrics(ns, system string, registry *prometheus.Registry) *Metrics {
	metrics.SetupMetricsManager(ns, system, registry)

	return &Metrics{
		apiResponseTime:   metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter:   metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		githubRequestTime: metrics.NewHistogramVec("github_request_time", nil),
		githubError:       metrics.NewCounterVec("github_error", nil),
		starSyncTotal:     metrics.NewCounterVec("star_sync", []string{"result"}),
		resourceTotal:     metrics.NewGaugeVec("resource_total", nil),
	}
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) GithubRequestObserve(seconds float64, failed bool) {
	m.githubRequestTime.WithLabelValues().Observe(seconds)
	if failed {
		m.githubError.WithLabelValues().Inc()
	}
}

func (m *Metrics) SetResourceTotal(total int64) {
	m.resourceTotal.WithLabelValues().Set(float64(total))
}

func (m *Metrics) StarSyncInc(result string) {
	m.starSyncTotal.WithLabelValues(result).Inc()
}
