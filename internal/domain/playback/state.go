// Package playback owns the audio-text synchronization state machine: the
// mapping from an advancing audio clock to the sentence (and word) currently
// being spoken, and the transitions driven by user seeks and clock ticks.
// The package holds no audio itself; it reads and writes an AudioClock
// collaborator and publishes changes through typed subscriptions.
package playback

// State is the synchronizer's logical playback state.
type State uint8

const (
	// StateIdle means no playback is active.
	StateIdle State = iota
	// StatePlaying means position tracking is driven by clock ticks.
	StatePlaying
	// StateSeeking means a user-driven jump is in flight; the next clock
	// tick still reflects the pre-seek position and must be swallowed.
	StateSeeking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateSeeking:
		return "seeking"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the synchronizer's state, handed to UI
// layers that must never mutate it directly.
type Snapshot struct {
	State         State `json:"state"`
	SentenceIndex int   `json:"sentence_index"`
	CharIndex     int   `json:"char_index"`
	Playing       bool  `json:"playing"`
}
