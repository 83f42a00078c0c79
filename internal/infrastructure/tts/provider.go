// Package tts provides speech synthesis for narration.  The production
// provider shells out to an edge-tts bridge process that streams synthesized
// audio plus per-word timing; the package converts that timing into the
// playback domain's word boundaries, with text offsets resolved against the
// source text in UTF-16 code units.
package tts

import (
	"context"

	"github.com/annotext/annotext/internal/domain/playback"
)

// SynthesisRequest describes one clip to synthesize.
type SynthesisRequest struct {
	// Text is the plain sentence text to speak.
	Text string
	// Voice is the engine voice name, e.g. "en-US-GuyNeural".  Empty
	// selects the provider default.
	Voice string
	// Rate is the speed multiplier; 1.0 is normal speed.  Zero means
	// unset and is treated as 1.0.
	Rate float64
}

// SynthesisResult is a finished clip: encoded audio plus word timing with
// offsets already mapped into the request text.
type SynthesisResult struct {
	Audio      []byte
	MimeType   string
	Boundaries []playback.WordBoundary
}

// DurationMs returns the clip length implied by the last word boundary.
func (r *SynthesisResult) DurationMs() int64 {
	if len(r.Boundaries) == 0 {
		return 0
	}
	last := r.Boundaries[len(r.Boundaries)-1]
	return last.AudioOffsetMs + last.DurationMs
}

// Provider synthesizes speech.  Implementations must honor context
// cancellation; callers cancel superseded requests aggressively.
type Provider interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error)
}
