package playback

import (
	"testing"

	apperrors "github.com/annotext/annotext/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock records seeks and rate changes without producing audio.
type fakeClock struct {
	position int64
	rate     float64
	seeks    []int64
}

func (c *fakeClock) CurrentTimeMs() int64 { return c.position }
func (c *fakeClock) SeekMs(ms int64) {
	c.position = ms
	c.seeks = append(c.seeks, ms)
}
func (c *fakeClock) PlaybackRate() float64        { return c.rate }
func (c *fakeClock) SetPlaybackRate(rate float64) { c.rate = rate }

func newTestSync(t *testing.T) (*Synchronizer, *fakeClock) {
	t.Helper()
	tl, err := NewTimeline([]int64{0, 5000, 12000})
	require.NoError(t, err)
	clock := &fakeClock{rate: 1.0}
	return NewSynchronizer(tl, clock, nil), clock
}

func TestSynchronizer_InitialState(t *testing.T) {
	s, _ := newTestSync(t)
	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 0, snap.SentenceIndex)
	assert.Equal(t, -1, snap.CharIndex)
	assert.False(t, snap.Playing)
}

func TestSynchronizer_ClockDrivenTracking(t *testing.T) {
	s, _ := newTestSync(t)
	s.Play()

	var changes []int
	sub := s.Subscribe(func(e Event) {
		if e.Kind == EventSentenceChanged {
			changes = append(changes, e.Snapshot.SentenceIndex)
		}
	})
	defer sub.Cancel()

	s.TimeAdvance(100)
	s.TimeAdvance(4999)
	s.TimeAdvance(5000)
	s.TimeAdvance(8000)
	s.TimeAdvance(12500)

	assert.Equal(t, []int{1, 2}, changes)
	assert.Equal(t, 2, s.Snapshot().SentenceIndex)
}

func TestSynchronizer_JumpToSentence(t *testing.T) {
	s, clock := newTestSync(t)

	require.NoError(t, s.JumpToSentence(2))

	snap := s.Snapshot()
	assert.Equal(t, StateSeeking, snap.State)
	assert.Equal(t, 2, snap.SentenceIndex)
	assert.True(t, snap.Playing)
	assert.Equal(t, []int64{12000}, clock.seeks)
}

func TestSynchronizer_JumpOutOfRange(t *testing.T) {
	s, clock := newTestSync(t)
	err := s.JumpToSentence(7)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSentenceIndexRange))
	assert.Empty(t, clock.seeks)
	assert.Equal(t, StateIdle, s.Snapshot().State)
}

func TestSynchronizer_SeekRace_StaleTickIgnored(t *testing.T) {
	s, _ := newTestSync(t)
	s.Play()
	s.TimeAdvance(100) // index 0

	require.NoError(t, s.JumpToSentence(2))

	// The tick computed for the pre-seek position arrives after the seek.
	// It must not drag the index back to 0.
	s.TimeAdvance(100)
	snap := s.Snapshot()
	assert.Equal(t, 2, snap.SentenceIndex)
	assert.Equal(t, StatePlaying, snap.State)

	// Subsequent ticks reflect the post-seek position and track normally.
	s.TimeAdvance(12600)
	assert.Equal(t, 2, s.Snapshot().SentenceIndex)
}

func TestSynchronizer_OnlyOneTickSuppressed(t *testing.T) {
	s, _ := newTestSync(t)
	require.NoError(t, s.JumpToSentence(2))

	s.TimeAdvance(100)  // stale, swallowed
	s.TimeAdvance(6000) // genuine: audio really is in sentence 1 now
	assert.Equal(t, 1, s.Snapshot().SentenceIndex)
}

func TestSynchronizer_IdleIgnoresTicks(t *testing.T) {
	s, _ := newTestSync(t)
	s.TimeAdvance(8000)
	assert.Equal(t, 0, s.Snapshot().SentenceIndex)
}

func TestSynchronizer_WordTracking(t *testing.T) {
	s, _ := newTestSync(t)
	s.SetWordBoundaries(sampleBoundaries())
	s.Play()

	var words []int
	sub := s.Subscribe(func(e Event) {
		if e.Kind == EventWordChanged {
			words = append(words, e.Snapshot.CharIndex)
		}
	})
	defer sub.Cancel()

	s.TimeAdvance(10)
	s.TimeAdvance(200)
	s.TimeAdvance(400)
	s.TimeAdvance(800)

	assert.Equal(t, []int{0, 4, 8}, words)
	assert.Equal(t, 8, s.Snapshot().CharIndex)
}

func TestSynchronizer_EndedResets(t *testing.T) {
	s, _ := newTestSync(t)
	require.NoError(t, s.JumpToSentence(2))

	var ended bool
	sub := s.Subscribe(func(e Event) {
		if e.Kind == EventEnded {
			ended = true
		}
	})
	defer sub.Cancel()

	s.Ended()
	snap := s.Snapshot()
	assert.True(t, ended)
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 0, snap.SentenceIndex)
	assert.Equal(t, -1, snap.CharIndex)
	assert.False(t, snap.Playing)
}

func TestSynchronizer_PausePreservesPosition(t *testing.T) {
	s, _ := newTestSync(t)
	s.Play()
	s.TimeAdvance(6000)
	s.Pause()

	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 1, snap.SentenceIndex)
	assert.False(t, snap.Playing)
}

func TestSynchronizer_SetRate(t *testing.T) {
	s, clock := newTestSync(t)
	require.NoError(t, s.SetRate(1.5))
	assert.Equal(t, 1.5, clock.rate)

	err := s.SetRate(0)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeBadRequest))
}

func TestSubscription_CancelStopsDelivery(t *testing.T) {
	s, _ := newTestSync(t)
	count := 0
	sub := s.Subscribe(func(Event) { count++ })
	s.Play()
	sub.Cancel()
	s.Pause()
	assert.Equal(t, 1, count)
}
