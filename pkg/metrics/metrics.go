package metrics

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type manager struct {
	namespace string
	system    string
	registry  *prometheus.Registry
}

var (
	locker         sync.RWMutex
	defaultManager = &manager{
		namespace: "default",
		system:    "default",
		registry:  prometheus.NewRegistry(),
	}
)

func SetupMetricsManager(ns, system string, registry *prometheus.Registry) {
	locker.Lock()
	defer locker.Unlock()

	defaultManager = &manager{
		namespace: ns,
		system:    system,
		registry:  registry,
	}
	registry.Register(collectors.NewGoCollector())
	registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

func MustGetDefaultManager() (string, string, *prometheus.Registry) {
	locker.RLock()
	defer locker.RUnlock()
	return defaultManager.namespace, defaultManager.system, defaultManager.registry
}

func emptyLabels(labels []string) []string {
	return make([]string, len(labels))
}

func NewCounterVec(name string, labels []string) *prometheus.CounterVec {
	ns, system, registerer := MustGetDefaultManager()

	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: FmtFixer(ns),
			Subsystem: FmtFixer(system),
			Name:      FmtFixer(name),
			Help:      fmt.Sprintf("%s count of /%s/%s", name, ns, system),
		},
		labels,
	)
	vec.WithLabelValues(emptyLabels(labels)...).Add(0)

	registerer.Register(vec)
	return vec
}

func NewHistogramVec(name string, labels []string) *prometheus.HistogramVec {
	ns, system, registerer := MustGetDefaultManager()
	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: FmtFixer(ns),
			Subsystem: FmtFixer(system),
			Name:      FmtFixer(name),
			Help:      fmt.Sprintf("%s duration of /%s/%s", name, ns, system),
		},
		labels,
	)
	vec.WithLabelValues(emptyLabels(labels)...).Observe(0)

	registerer.Register(vec)
	return vec
}

func NewGaugeVec(name string, labels []string) *prometheus.GaugeVec {
	ns, system, registerer := MustGetDefaultManager()

	vec := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: FmtFixer(ns),
			Subsystem: FmtFixer(system),
			Name:      FmtFixer(name),
			Help:      fmt.Sprintf("%s gauge of /%s/%s", name, ns, system),
		},
		labels,
	)
	vec.WithLabelValues(emptyLabels(labels)...).Set(0)

	registerer.Register(vec)
	return vec
}

func DefaultExportHandler() gin.HandlerFunc {
	_, _, registry := MustGetDefaultManager()
	h := promhttp.InstrumentMetricHandler(
		registry, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func FmtFixer(in string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_").Replace(in)
}
