// Package metrics exposes ingestion counters for long-running feed scans.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gtfscsv"

// Collector groups the ingestion metrics on a private registry so several
// collectors can coexist in tests.
type Collector struct {
	registry *prometheus.Registry

	Lines        *prometheus.CounterVec
	Records      *prometheus.CounterVec
	Failures     *prometheus.CounterVec
	FileDuration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Lines pulled from feed files.",
		}, []string{"file"}),
		Records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Lines successfully split into records.",
		}, []string{"file"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_failures_total",
			Help:      "Lines rejected by the splitter, by reason.",
		}, []string{"file", "reason"}),
		FileDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_scan_seconds",
			Help:      "Time spent scanning one feed file.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"file"}),
	}
	c.registry.MustRegister(c.Lines, c.Records, c.Failures, c.FileDuration)
	return c
}

// ObserveFile records how long a file scan took.
func (c *Collector) ObserveFile(file string, d time.Duration) {
	if c == nil {
		return
	}
	c.FileDuration.WithLabelValues(file).Observe(d.Seconds())
}

// Line counts one pulled line and whether it parsed. reason is empty on success.
func (c *Collector) Line(file, reason string) {
	if c == nil {
		return
	}
	c.Lines.WithLabelValues(file).Inc()
	if reason == "" {
		c.Records.WithLabelValues(file).Inc()
		return
	}
	c.Failures.WithLabelValues(file, reason).Inc()
}

// Registry returns the registry backing c.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
