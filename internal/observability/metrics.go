package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "sample_dashboard"

// Collector holds the service metrics on a registry owned by the collector,
// so several servers in one process never collide.
type Collector struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	generated       *prometheus.CounterVec
	liveStreams     prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "synth",
			Name:      "records_generated_total",
			Help:      "Synthetic records generated by kind and period",
		}, []string{"kind", "period"}),
		liveStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "sse",
			Name:      "live_streams",
			Help:      "Number of open live SSE streams",
		}),
	}

	c.registry.MustRegister(
		c.requests,
		c.requestDuration,
		c.generated,
		c.liveStreams,
		collectors.NewGoCollector(),
	)
	return c
}

func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) RecordGenerated(kind, period string, n int) {
	c.generated.WithLabelValues(kind, period).Add(float64(n))
}

func (c *Collector) LiveStreamOpened() { c.liveStreams.Inc() }

func (c *Collector) LiveStreamClosed() { c.liveStreams.Dec() }

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
