package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAppMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAppMetrics(reg)

	m.IncHTTPRequest("GET", "/api/v1/articles/:id", "200")
	m.IncHTTPRequest("GET", "/api/v1/articles/:id", "200")
	m.IncRenderCacheHit()
	m.IncRenderCacheMiss()
	m.AddAnnotationsDropped(3)
	m.AddAnnotationsDropped(0)
	m.AddCrossSentenceExcluded(1)
	m.IncSynthesisFailure("en-US-GuyNeural")

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.httpRequests.WithLabelValues("GET", "/api/v1/articles/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheMisses))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.droppedAnns))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.crossSentence))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.synthFailures.WithLabelValues("en-US-GuyNeural")))
}

func TestAppMetrics_HistogramsRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAppMetrics(reg)

	m.ObserveRenderDuration(12 * time.Millisecond)
	m.ObserveHTTPDuration("POST", "/api/v1/render", 40*time.Millisecond)
	m.ObserveSynthesisDuration("en-US-GuyNeural", 900*time.Millisecond)

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNopCollector_Safe(t *testing.T) {
	c := NewNopCollector()
	c.IncHTTPRequest("GET", "/", "200")
	c.ObserveRenderDuration(time.Second)
	c.IncSynthesisFailure("v")
}
