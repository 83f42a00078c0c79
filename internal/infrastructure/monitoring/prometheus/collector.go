// Package prometheus exposes application metrics through the Prometheus
// client.  Services depend on the Collector interface so tests and tools
// can run without a registry.
package prometheus

import "time"

// Collector is the metrics surface the application layers record against.
type Collector interface {
	// HTTP server metrics.
	IncHTTPRequest(method, path, status string)
	ObserveHTTPDuration(method, path string, d time.Duration)

	// Render pipeline metrics.
	ObserveRenderDuration(d time.Duration)
	IncRenderCacheHit()
	IncRenderCacheMiss()
	AddAnnotationsDropped(n int)
	AddCrossSentenceExcluded(n int)

	// Synthesis metrics.
	ObserveSynthesisDuration(voice string, d time.Duration)
	IncSynthesisFailure(voice string)
}

// nopCollector discards everything.
type nopCollector struct{}

// NewNopCollector returns a Collector that records nothing.
func NewNopCollector() Collector { return nopCollector{} }

func (nopCollector) IncHTTPRequest(string, string, string)             {}
func (nopCollector) ObserveHTTPDuration(string, string, time.Duration) {}
func (nopCollector) ObserveRenderDuration(time.Duration)               {}
func (nopCollector) IncRenderCacheHit()                                {}
func (nopCollector) IncRenderCacheMiss()                               {}
func (nopCollector) AddAnnotationsDropped(int)                         {}
func (nopCollector) AddCrossSentenceExcluded(int)                      {}
func (nopCollector) ObserveSynthesisDuration(string, time.Duration)    {}
func (nopCollector) IncSynthesisFailure(string)                        {}
