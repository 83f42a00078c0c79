package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "annotext"

// AppMetrics is the Prometheus-backed Collector.
type AppMetrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	renderSeconds prometheus.Histogram
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	droppedAnns   prometheus.Counter
	crossSentence prometheus.Counter
	synthSeconds  *prometheus.HistogramVec
	synthFailures *prometheus.CounterVec
}

// NewAppMetrics registers all application metrics on the given registerer.
// Pass prometheus.DefaultRegisterer in production.
func NewAppMetrics(reg prometheus.Registerer) *AppMetrics {
	factory := promauto.With(reg)
	return &AppMetrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		renderSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time to build and serialize one document's render tree.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_cache_hits_total",
			Help:      "Render results served from cache.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_cache_misses_total",
			Help:      "Render results computed because the cache missed.",
		}),
		droppedAnns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "annotations_dropped_total",
			Help:      "Annotations dropped at normalization for bad offsets or unknown roles.",
		}),
		crossSentence: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "annotations_cross_sentence_total",
			Help:      "Annotations excluded because no single sentence contains them.",
		}),
		synthSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "synthesis_duration_seconds",
			Help:      "Speech synthesis latency by voice.",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"voice"}),
		synthFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "synthesis_failures_total",
			Help:      "Failed speech synthesis attempts by voice.",
		}, []string{"voice"}),
	}
}

func (m *AppMetrics) IncHTTPRequest(method, path, status string) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
}

func (m *AppMetrics) ObserveHTTPDuration(method, path string, d time.Duration) {
	m.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *AppMetrics) ObserveRenderDuration(d time.Duration) {
	m.renderSeconds.Observe(d.Seconds())
}

func (m *AppMetrics) IncRenderCacheHit()  { m.cacheHits.Inc() }
func (m *AppMetrics) IncRenderCacheMiss() { m.cacheMisses.Inc() }

func (m *AppMetrics) AddAnnotationsDropped(n int) {
	if n > 0 {
		m.droppedAnns.Add(float64(n))
	}
}

func (m *AppMetrics) AddCrossSentenceExcluded(n int) {
	if n > 0 {
		m.crossSentence.Add(float64(n))
	}
}

func (m *AppMetrics) ObserveSynthesisDuration(voice string, d time.Duration) {
	m.synthSeconds.WithLabelValues(voice).Observe(d.Seconds())
}

func (m *AppMetrics) IncSynthesisFailure(voice string) {
	m.synthFailures.WithLabelValues(voice).Inc()
}
