package tts

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/annotext/annotext/internal/domain/playback"
)

// FakeProvider is an in-memory Provider for tests and local development.
// It fabricates deterministic audio and word timing from the request text,
// with optional per-call latency and scripted failures.
type FakeProvider struct {
	// Delay, when set, makes Synthesize wait before responding, honoring
	// context cancellation.  Used to exercise stale-response guards.
	Delay func(ctx context.Context) error
	// Err, when set, is returned for every request.
	Err error
	// WordDurationMs is the fabricated per-word duration (default 250).
	WordDurationMs int64

	mu    sync.Mutex
	calls []SynthesisRequest
	count atomic.Int64
}

func (f *FakeProvider) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	f.count.Add(1)
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.Delay != nil {
		if err := f.Delay(ctx); err != nil {
			return nil, err
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}

	per := f.WordDurationMs
	if per <= 0 {
		per = 250
	}

	var boundaries []playback.WordBoundary
	var at int64
	offset := 0
	for _, word := range strings.Fields(req.Text) {
		idx := strings.Index(req.Text[offset:], word)
		boundaries = append(boundaries, playback.WordBoundary{
			AudioOffsetMs: at,
			DurationMs:    per,
			TextOffset:    utf16Len(req.Text[:offset+idx]),
			LengthChars:   utf16Len(word),
			Word:          word,
		})
		offset += idx + len(word)
		at += per
	}

	return &SynthesisResult{
		Audio:      []byte("fake-audio:" + req.Text),
		MimeType:   "audio/mpeg",
		Boundaries: boundaries,
	}, nil
}

// Calls returns a copy of the requests seen so far.
func (f *FakeProvider) Calls() []SynthesisRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]SynthesisRequest, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns the number of Synthesize invocations.
func (f *FakeProvider) CallCount() int64 { return f.count.Load() }
