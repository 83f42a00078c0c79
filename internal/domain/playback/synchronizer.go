package playback

import (
	"sync"

	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

// AudioClock is the playback collaborator the synchronizer reads and
// drives.  Implementations wrap whatever actually produces sound; the
// synchronizer only moves the position and adjusts the rate.
type AudioClock interface {
	// CurrentTimeMs returns the clock's playback position.
	CurrentTimeMs() int64
	// SeekMs moves the playback position.
	SeekMs(ms int64)
	// PlaybackRate returns the current speed multiplier.
	PlaybackRate() float64
	// SetPlaybackRate adjusts the speed multiplier.
	SetPlaybackRate(rate float64)
}

// Synchronizer is the single owner of playback state.  Two independent
// event sources drive it, clock ticks and explicit user commands, and all
// mutation goes through its transition methods.  Readers take Snapshot
// copies; nothing hands out interior pointers.
type Synchronizer struct {
	mu       sync.Mutex
	timeline *Timeline
	clock    AudioClock
	events   *bus
	logger   logging.Logger

	state         State
	sentenceIndex int
	charIndex     int
	playing       bool

	// Word-boundary timing for the currently narrated sentence, audio
	// offsets relative to that sentence's own clip.
	boundaries []WordBoundary
}

// NewSynchronizer builds an idle synchronizer over the given timeline.
func NewSynchronizer(timeline *Timeline, clock AudioClock, logger logging.Logger) *Synchronizer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Synchronizer{
		timeline:  timeline,
		clock:     clock,
		events:    newBus(),
		logger:    logger.Named("playback"),
		state:     StateIdle,
		charIndex: -1,
	}
}

// Subscribe registers a handler for synchronizer events.  Handlers run on
// the goroutine that triggered the transition and must return quickly.
func (s *Synchronizer) Subscribe(fn func(Event)) *Subscription {
	return s.events.subscribe(fn)
}

// Snapshot returns a copy of the current state.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Synchronizer) snapshotLocked() Snapshot {
	return Snapshot{
		State:         s.state,
		SentenceIndex: s.sentenceIndex,
		CharIndex:     s.charIndex,
		Playing:       s.playing,
	}
}

// Play starts clock-driven tracking from the current position.
func (s *Synchronizer) Play() {
	s.mu.Lock()
	s.playing = true
	s.state = StatePlaying
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.events.publish(Event{Kind: EventStateChanged, Snapshot: snap})
}

// Pause stops tracking without resetting position.
func (s *Synchronizer) Pause() {
	s.mu.Lock()
	s.playing = false
	s.state = StateIdle
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.events.publish(Event{Kind: EventStateChanged, Snapshot: snap})
}

// JumpToSentence is the user-driven seek.  It moves the audio clock to the
// sentence's start, enters Seeking, and marks playback active.  The Seeking
// state makes the next clock tick a no-op: that tick carries a position
// computed before the seek physically completed, and applying it would
// snap the index straight back to the pre-seek sentence.
func (s *Synchronizer) JumpToSentence(k int) error {
	s.mu.Lock()
	start, err := s.timeline.StartOf(k)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.sentenceIndex = k
	s.charIndex = -1
	s.state = StateSeeking
	s.playing = true
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.clock.SeekMs(start)
	s.logger.Debug("seek to sentence",
		logging.Int("sentence", k),
		logging.Int64("offset_ms", start),
	)
	s.events.publish(Event{Kind: EventSentenceChanged, Snapshot: snap})
	return nil
}

// TimeAdvance handles one clock tick at audio position ms.
func (s *Synchronizer) TimeAdvance(ms int64) {
	s.mu.Lock()
	switch s.state {
	case StateSeeking:
		// Swallow exactly one post-seek tick, then resume tracking.
		s.state = StatePlaying
		s.mu.Unlock()
		return
	case StatePlaying:
	default:
		s.mu.Unlock()
		return
	}

	var out []Event
	if i := s.timeline.SentenceIndexAt(ms); i != s.sentenceIndex {
		s.sentenceIndex = i
		s.charIndex = -1
		out = append(out, Event{Kind: EventSentenceChanged, Snapshot: s.snapshotLocked()})
	}
	if len(s.boundaries) > 0 {
		if off, _, ok := ActiveWordSpan(s.boundaries, ms); ok && off != s.charIndex {
			s.charIndex = off
			out = append(out, Event{Kind: EventWordChanged, Snapshot: s.snapshotLocked()})
		}
	}
	s.mu.Unlock()

	for _, e := range out {
		s.events.publish(e)
	}
}

// SetWordBoundaries installs per-word timing for the current sentence's
// clip, replacing any previous set.
func (s *Synchronizer) SetWordBoundaries(boundaries []WordBoundary) {
	s.mu.Lock()
	s.boundaries = boundaries
	s.charIndex = -1
	s.mu.Unlock()
}

// Ended handles the clock's end-of-audio event: full reset to Idle.
func (s *Synchronizer) Ended() {
	s.mu.Lock()
	s.state = StateIdle
	s.sentenceIndex = 0
	s.charIndex = -1
	s.playing = false
	s.boundaries = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.events.publish(Event{Kind: EventEnded, Snapshot: snap})
}

// SetRate forwards a speed change to the clock.
func (s *Synchronizer) SetRate(rate float64) error {
	if rate <= 0 {
		return apperrors.InvalidParam("playback rate must be positive")
	}
	s.clock.SetPlaybackRate(rate)
	return nil
}
