package narration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/annotext/annotext/internal/domain/playback"
	"github.com/annotext/annotext/internal/infrastructure/tts"
	apperrors "github.com/annotext/annotext/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (m *memoryStore) SaveAudio(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

type applied struct {
	mu      sync.Mutex
	results []*tts.SynthesisResult
	errs    []error
}

func (a *applied) fn(r *tts.SynthesisResult, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.errs = append(a.errs, err)
		return
	}
	a.results = append(a.results, r)
}

func (a *applied) counts() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.results), len(a.errs)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestRequest_DebouncesBursts(t *testing.T) {
	provider := &tts.FakeProvider{}
	svc := NewService(provider, nil, nil, WithDebounce(30*time.Millisecond))

	var out applied
	svc.Request(tts.SynthesisRequest{Text: "one"}, out.fn)
	svc.Request(tts.SynthesisRequest{Text: "two"}, out.fn)
	svc.Request(tts.SynthesisRequest{Text: "three"}, out.fn)

	waitFor(t, func() bool { ok, _ := out.counts(); return ok == 1 })
	assert.Equal(t, int64(1), provider.CallCount())
	assert.Equal(t, "three", provider.Calls()[0].Text)
}

func TestRequest_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	provider := &tts.FakeProvider{
		Delay: func(ctx context.Context) error {
			var ctxErr error
			once.Do(func() {
				// Only the first synthesis blocks, simulating a slow
				// response that arrives after it was superseded.
				select {
				case <-release:
				case <-ctx.Done():
					ctxErr = ctx.Err()
				}
			})
			return ctxErr
		},
	}
	svc := NewService(provider, nil, nil, WithDebounce(time.Millisecond))

	var out applied
	svc.Request(tts.SynthesisRequest{Text: "slow"}, out.fn)
	waitFor(t, func() bool { return provider.CallCount() == 1 })

	svc.Request(tts.SynthesisRequest{Text: "fresh"}, out.fn)
	close(release)

	waitFor(t, func() bool {
		ok, _ := out.counts()
		return ok == 1
	})
	time.Sleep(50 * time.Millisecond)

	ok, errs := out.counts()
	assert.Equal(t, 1, ok)
	assert.Zero(t, errs)
	assert.Equal(t, "fresh", out.results[0].Boundaries[0].Word)
}

func TestRequest_SurfacesSynthesisErrors(t *testing.T) {
	provider := &tts.FakeProvider{
		Err: apperrors.New(apperrors.ErrCodeSynthesisFailed, "bridge exploded"),
	}
	svc := NewService(provider, nil, nil, WithDebounce(time.Millisecond))

	var out applied
	svc.Request(tts.SynthesisRequest{Text: "doomed"}, out.fn)

	waitFor(t, func() bool { _, errs := out.counts(); return errs == 1 })
	assert.True(t, apperrors.IsCode(out.errs[0], apperrors.ErrCodeSynthesisFailed))
}

func TestCancelPending_DropsScheduledWork(t *testing.T) {
	provider := &tts.FakeProvider{}
	svc := NewService(provider, nil, nil, WithDebounce(20*time.Millisecond))

	var out applied
	svc.Request(tts.SynthesisRequest{Text: "never"}, out.fn)
	svc.CancelPending()

	time.Sleep(80 * time.Millisecond)
	ok, errs := out.counts()
	assert.Zero(t, ok)
	assert.Zero(t, errs)
	assert.Zero(t, provider.CallCount())
}

func TestSynthesizeArticle_BuildsTimeline(t *testing.T) {
	provider := &tts.FakeProvider{WordDurationMs: 500}
	store := newMemoryStore()
	svc := NewService(provider, store, nil)

	segments := []playback.AudioSegment{
		{SentenceID: 1, Text: "one two"},
		{SentenceID: 2, Text: "three"},
		{SentenceID: 3, Text: "four five six", IsNewParagraph: true},
	}
	narration, err := svc.SynthesizeArticle(context.Background(), "a1", segments, "", 1.0)
	require.NoError(t, err)
	require.Len(t, narration.Clips, 3)

	// Clip durations: 1000, 500, 1500; the paragraph pause precedes the
	// third sentence.
	require.Equal(t, 3, narration.Timeline.Len())
	for i, want := range []int64{0, 1000, 2100} {
		got, err := narration.Timeline.StartOf(i)
		require.NoError(t, err)
		assert.Equal(t, want, got, "sentence %d", i)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.objects, 3)
	assert.Contains(t, store.objects, "articles/a1/sentences/0.mp3")
}

func TestSynthesizeArticle_EmptyInput(t *testing.T) {
	svc := NewService(&tts.FakeProvider{}, nil, nil)
	_, err := svc.SynthesizeArticle(context.Background(), "a1", nil, "", 1.0)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeBadRequest))
}

func TestSynthesizeArticle_PropagatesFailure(t *testing.T) {
	provider := &tts.FakeProvider{Err: apperrors.New(apperrors.ErrCodeSynthesisFailed, "no engine")}
	svc := NewService(provider, nil, nil)
	_, err := svc.SynthesizeArticle(context.Background(), "a1",
		[]playback.AudioSegment{{SentenceID: 1, Text: "hi"}}, "", 1.0)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSynthesisFailed))
}
