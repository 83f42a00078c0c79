// Package narration coordinates speech synthesis for playback: debouncing
// rapid re-synthesis requests, cancelling superseded work, guarding against
// stale responses, and persisting finished clips.
package narration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/annotext/annotext/internal/domain/playback"
	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	"github.com/annotext/annotext/internal/infrastructure/tts"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

const (
	// debounceDefault absorbs bursts of user-driven changes (sentence
	// navigation, voice or rate switches) into a single synthesis.
	debounceDefault = 300 * time.Millisecond

	// paragraphPauseMs is the silent gap inserted before a sentence that
	// opens a new paragraph.
	paragraphPauseMs int64 = 600

	// synthesisParallelism bounds concurrent bridge processes during
	// whole-article synthesis.
	synthesisParallelism = 4
)

// AudioStore persists finished clips.  The object store implementation
// lives in infrastructure; tests use in-memory fakes.
type AudioStore interface {
	SaveAudio(ctx context.Context, key string, data []byte, contentType string) error
}

// Service owns the synthesis lifecycle.  A monotonically increasing
// generation counter marks each request; a response is applied only if its
// generation is still current, so a slow superseded synthesis can never
// overwrite fresher state.  That discard is expected behavior, not an error.
type Service struct {
	provider tts.Provider
	store    AudioStore
	logger   logging.Logger
	debounce time.Duration

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
	cancel     context.CancelFunc
}

// Option adjusts Service construction.
type Option func(*Service)

// WithDebounce overrides the debounce window.  Tests shrink it.
func WithDebounce(d time.Duration) Option {
	return func(s *Service) { s.debounce = d }
}

// NewService builds a narration service.  store may be nil when clips are
// only streamed, never persisted.
func NewService(provider tts.Provider, store AudioStore, logger logging.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Service{
		provider: provider,
		store:    store,
		logger:   logger.Named("narration"),
		debounce: debounceDefault,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request schedules a debounced synthesis.  Any pending or in-flight
// request is superseded immediately: its timer stops, its context is
// cancelled, and its eventual response is discarded by the generation
// guard.  apply runs on the synthesis goroutine with either a result or an
// error; it is never called for superseded requests.
func (s *Service) Request(req tts.SynthesisRequest, apply func(*tts.SynthesisResult, error)) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.fire(gen, req, apply)
	})
	s.mu.Unlock()
}

// CancelPending drops any scheduled or in-flight request without issuing a
// new one.
func (s *Service) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Service) fire(gen uint64, req tts.SynthesisRequest, apply func(*tts.SynthesisResult, error)) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	result, err := s.provider.Synthesize(ctx, req)

	s.mu.Lock()
	current := gen == s.generation
	if current && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	if !current {
		s.logger.Debug("discarding superseded synthesis response",
			logging.Any("generation", gen),
		)
		return
	}
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeSynthesisCancelled) {
			return
		}
		s.logger.Error("synthesis failed", logging.Err(err))
		apply(nil, err)
		return
	}
	apply(result, nil)
}

// SynthesizeClip renders one clip synchronously, outside the debounce
// path.  Interactive playback calls this for the sentence under the cursor.
func (s *Service) SynthesizeClip(ctx context.Context, req tts.SynthesisRequest) (*tts.SynthesisResult, error) {
	result, err := s.provider.Synthesize(ctx, req)
	if err != nil {
		s.logger.Error("clip synthesis failed", logging.Err(err))
		return nil, err
	}
	return result, nil
}

// ArticleNarration is a fully synthesized article: per-sentence clips plus
// the timeline that positions each sentence on the combined audio clock.
type ArticleNarration struct {
	Clips    []*tts.SynthesisResult
	Timeline *playback.Timeline
}

// SynthesizeArticle renders every segment of an article, bounded-parallel,
// and derives the sentence timeline from the resulting clip durations.  A
// paragraph-opening sentence gets a leading pause on the timeline.  When a
// store is configured each clip is persisted under
// "articles/<id>/sentences/<n>.mp3".
func (s *Service) SynthesizeArticle(ctx context.Context, articleID string, segments []playback.AudioSegment, voice string, rate float64) (*ArticleNarration, error) {
	if len(segments) == 0 {
		return nil, apperrors.InvalidParam("article has no narratable sentences")
	}

	clips := make([]*tts.SynthesisResult, len(segments))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(synthesisParallelism)
	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			result, err := s.provider.Synthesize(ctx, tts.SynthesisRequest{Text: seg.Text, Voice: voice, Rate: rate})
			if err != nil {
				return err
			}
			if s.store != nil {
				key := fmt.Sprintf("articles/%s/sentences/%d.mp3", articleID, i)
				if err := s.store.SaveAudio(ctx, key, result.Audio, result.MimeType); err != nil {
					return err
				}
			}
			clips[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	starts := make([]int64, len(clips))
	var at int64
	for i, clip := range clips {
		d := clip.DurationMs()
		if d <= 0 {
			// A clip with no word timing still occupies time; estimate
			// from text length so the timeline stays strictly increasing.
			d = int64(len(segments[i].Text)) * 60
			if d <= 0 {
				d = 1
			}
		}
		if segments[i].IsNewParagraph {
			at += paragraphPauseMs
		}
		starts[i] = at
		at += d
	}
	timeline, err := playback.NewTimeline(starts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeTimelineEmpty, "building article timeline")
	}

	s.logger.Info("article synthesized",
		logging.String("article_id", articleID),
		logging.Int("segments", len(segments)),
		logging.Int64("total_ms", at),
	)
	return &ArticleNarration{Clips: clips, Timeline: timeline}, nil
}
