// Package metrics holds the Prometheus instruments of the scene driver, the
// renderers and the HTTP server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application.
type Registry struct {
	// Scene metrics
	TriggersTotal        *prometheus.CounterVec
	PulsesCreatedTotal   prometheus.Counter
	PulsesExpiredTotal   prometheus.Counter
	ActivePulses         prometheus.Gauge
	FramesTotal          prometheus.Counter
	FrameDuration        prometheus.Histogram
	SceneNodes           prometheus.Gauge
	SceneEdges           prometheus.Gauge
	FrameSubscribers     prometheus.Gauge
	RenderFallbacksTotal prometheus.Counter

	// Contact metrics
	ContactSubmissionsTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric initialised plus the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initSceneMetrics()
	r.initContactMetrics()
	r.initHTTPMetrics()
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) initSceneMetrics() {
	f := promauto.With(r.registry)

	r.TriggersTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_triggers_total",
		Help: "Pulse cascades started, by trigger source",
	}, []string{"source"})
	r.PulsesCreatedTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "nexus_pulses_created_total",
		Help: "Pulses created by cascades",
	})
	r.PulsesExpiredTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "nexus_pulses_expired_total",
		Help: "Pulses removed by batch cleanup",
	})
	r.ActivePulses = f.NewGauge(prometheus.GaugeOpts{
		Name: "nexus_active_pulses",
		Help: "Pulses currently in the active set",
	})
	r.FramesTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "nexus_frames_total",
		Help: "Frames produced by the scene driver",
	})
	r.FrameDuration = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "nexus_frame_duration_seconds",
		Help:    "Time spent computing one frame",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
	})
	r.SceneNodes = f.NewGauge(prometheus.GaugeOpts{
		Name: "nexus_scene_nodes",
		Help: "Nodes in the current scene graph",
	})
	r.SceneEdges = f.NewGauge(prometheus.GaugeOpts{
		Name: "nexus_scene_edges",
		Help: "Directed edges in the current scene graph",
	})
	r.FrameSubscribers = f.NewGauge(prometheus.GaugeOpts{
		Name: "nexus_frame_subscribers",
		Help: "Open frame subscriptions",
	})
	r.RenderFallbacksTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "nexus_render_fallbacks_total",
		Help: "Times a renderer switched to its fallback surface",
	})
}

func (r *Registry) initContactMetrics() {
	r.ContactSubmissionsTotal = promauto.With(r.registry).NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_contact_submissions_total",
		Help: "Contact form submissions by outcome",
	}, []string{"status"})
}

func (r *Registry) initHTTPMetrics() {
	f := promauto.With(r.registry)

	r.HTTPRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "nexus_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	r.HTTPRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nexus_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
	r.HTTPRequestsInFlight = f.NewGauge(prometheus.GaugeOpts{
		Name: "nexus_http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	})
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, d time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

// RecordTrigger counts one cascade from source and the pulses it created.
func (r *Registry) RecordTrigger(source string, pulses int) {
	r.TriggersTotal.WithLabelValues(source).Inc()
	r.PulsesCreatedTotal.Add(float64(pulses))
}

// RecordFrame records one driver tick.
func (r *Registry) RecordFrame(d time.Duration, active, expired int) {
	r.FramesTotal.Inc()
	r.FrameDuration.Observe(d.Seconds())
	r.ActivePulses.Set(float64(active))
	if expired > 0 {
		r.PulsesExpiredTotal.Add(float64(expired))
	}
}

// RecordContact counts one contact submission outcome.
func (r *Registry) RecordContact(status string) {
	r.ContactSubmissionsTotal.WithLabelValues(status).Inc()
}

// SetScene publishes the size of the scene graph.
func (r *Registry) SetScene(nodes, edges int) {
	r.SceneNodes.Set(float64(nodes))
	r.SceneEdges.Set(float64(edges))
}

// Prometheus returns the underlying Prometheus registry.
func (r *Registry) Prometheus() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
