package playback

import "sync"

// EventKind discriminates synchronizer notifications.
type EventKind uint8

const (
	// EventSentenceChanged fires when the active sentence index moves,
	// whether clock-driven or by an explicit jump.
	EventSentenceChanged EventKind = iota + 1
	// EventWordChanged fires when word-boundary tracking moves to a new
	// word within the current sentence.
	EventWordChanged
	// EventStateChanged fires on every state-machine transition.
	EventStateChanged
	// EventEnded fires when playback finishes and the machine resets.
	EventEnded
)

func (k EventKind) String() string {
	switch k {
	case EventSentenceChanged:
		return "sentence_changed"
	case EventWordChanged:
		return "word_changed"
	case EventStateChanged:
		return "state_changed"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Event is one synchronizer notification together with the snapshot taken
// at publish time.
type Event struct {
	Kind     EventKind
	Snapshot Snapshot
}

// Subscription is a typed handle to a bus registration.  Holders cancel it
// when done; there are no ambient global listeners to leak.
type Subscription struct {
	bus *bus
	id  uint64
}

// Cancel removes the subscription.  Safe to call more than once.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.remove(s.id)
	s.bus = nil
}

// bus is the synchronizer-owned publish/subscribe registry.  Handlers run
// synchronously on the publishing goroutine and must not block.
type bus struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[uint64]func(Event)
}

func newBus() *bus {
	return &bus{handlers: make(map[uint64]func(Event))}
}

func (b *bus) subscribe(fn func(Event)) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers[id] = fn
	return &Subscription{bus: b, id: id}
}

func (b *bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, id)
}

func (b *bus) publish(e Event) {
	b.mu.Lock()
	fns := make([]func(Event), 0, len(b.handlers))
	for _, fn := range b.handlers {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(e)
	}
}
