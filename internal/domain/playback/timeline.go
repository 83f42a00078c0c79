package playback

import (
	"fmt"
	"sort"

	apperrors "github.com/annotext/annotext/pkg/errors"
)

// Timeline maps each sentence to the audio-clock millisecond at which its
// narration starts.  Start times are strictly increasing; index lookups are
// binary searches, so position tracking stays O(log n) in sentence count.
type Timeline struct {
	starts []int64
}

// NewTimeline builds a timeline from explicit per-sentence start times.
func NewTimeline(starts []int64) (*Timeline, error) {
	if len(starts) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeTimelineEmpty, "timeline requires at least one sentence start time")
	}
	for i := 1; i < len(starts); i++ {
		if starts[i] <= starts[i-1] {
			return nil, apperrors.New(apperrors.ErrCodeTimelineEmpty,
				fmt.Sprintf("start times must be strictly increasing, got %dms after %dms at index %d", starts[i], starts[i-1], i))
		}
	}
	owned := make([]int64, len(starts))
	copy(owned, starts)
	return &Timeline{starts: owned}, nil
}

// TimelineFromDurations builds a timeline by accumulating per-sentence audio
// durations: sentence k starts at the sum of durations 0..k-1.
func TimelineFromDurations(durationsMs []int64) (*Timeline, error) {
	starts := make([]int64, len(durationsMs))
	var at int64
	for i, d := range durationsMs {
		starts[i] = at
		at += d
	}
	return NewTimeline(starts)
}

// Len returns the number of sentences on the timeline.
func (t *Timeline) Len() int { return len(t.starts) }

// StartOf returns the start time of sentence i.
func (t *Timeline) StartOf(i int) (int64, error) {
	if i < 0 || i >= len(t.starts) {
		return 0, apperrors.New(apperrors.ErrCodeSentenceIndexRange,
			fmt.Sprintf("sentence index %d out of range [0,%d)", i, len(t.starts)))
	}
	return t.starts[i], nil
}

// SentenceIndexAt returns the greatest index i with starts[i] <= ms.
// Probes before the first start clamp to 0.
func (t *Timeline) SentenceIndexAt(ms int64) int {
	// sort.Search finds the first start strictly greater than ms; the
	// active sentence is the one just before it.
	i := sort.Search(len(t.starts), func(i int) bool { return t.starts[i] > ms })
	if i == 0 {
		return 0
	}
	return i - 1
}
