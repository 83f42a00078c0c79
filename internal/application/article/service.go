// Package article implements the application-level article workflows:
// ingesting documents from the generation pipeline, rendering them to
// annotated trees, and serving cached render results.
package article

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/annotext/annotext/internal/domain/annotation"
	domarticle "github.com/annotext/annotext/internal/domain/article"
	"github.com/annotext/annotext/internal/domain/playback"
	"github.com/annotext/annotext/internal/domain/render"
	"github.com/annotext/annotext/internal/infrastructure/messaging/kafka"
	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	"github.com/annotext/annotext/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

// Repository is the article persistence surface.
type Repository interface {
	Create(ctx context.Context, a *domarticle.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*domarticle.Article, error)
	List(ctx context.Context, limit, offset int) ([]*domarticle.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Cache collapses and stores render results by fingerprint.
type Cache interface {
	GetOrCompute(ctx context.Context, fingerprint string, compute func(context.Context) ([]byte, error)) ([]byte, bool, error)
	Invalidate(ctx context.Context, fingerprint string) error
}

// RenderedArticle is the full render output served to clients.
type RenderedArticle struct {
	ArticleID   uuid.UUID               `json:"article_id,omitempty"`
	Fingerprint string                  `json:"fingerprint"`
	Paragraphs  []render.Paragraph      `json:"paragraphs"`
	HTML        string                  `json:"html"`
	Segments    []playback.AudioSegment `json:"segments"`
}

// Service wires the render pipeline to storage, cache and events.
type Service struct {
	repo      Repository
	cache     Cache
	publisher kafka.Publisher
	registry  *annotation.Registry
	metrics   prometheus.Collector
	logger    logging.Logger
}

// NewService builds the article service.  cache and publisher may be nil;
// rendering then always computes and no events are emitted.
func NewService(repo Repository, cache Cache, publisher kafka.Publisher, metrics prometheus.Collector, logger logging.Logger) *Service {
	if metrics == nil {
		metrics = prometheus.NewNopCollector()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		registry:  annotation.DefaultRegistry(),
		metrics:   metrics,
		logger:    logger.Named("article"),
	}
}

// Ingest validates and stores a new article, then announces it.
func (s *Service) Ingest(ctx context.Context, title string, doc render.Document) (*domarticle.Article, error) {
	a := domarticle.New(title, doc)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.TopicArticleIngested, kafka.ArticleIngested{
		ArticleID: a.ID,
		Title:     a.Title,
	})
	s.logger.Info("article ingested",
		logging.String("article_id", a.ID.String()),
		logging.Int("sentences", len(doc.Sentences)),
	)
	return a, nil
}

// Get loads a stored article.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domarticle.Article, error) {
	return s.repo.GetByID(ctx, id)
}

// List pages through stored articles.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*domarticle.Article, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Delete removes an article and drops its cached render.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, a.Fingerprint()); err != nil {
			s.logger.Warn("render cache invalidation failed", logging.Err(err))
		}
	}
	return nil
}

// RenderDocument runs the render pipeline on a bare document, bypassing
// storage.  This is the stateless entry point used by the render endpoint
// and the CLI.
func (s *Service) RenderDocument(ctx context.Context, doc render.Document) (*RenderedArticle, error) {
	return s.renderCached(ctx, uuid.Nil, doc)
}

// RenderArticle loads a stored article and renders it, announcing the
// result for downstream narration.
func (s *Service) RenderArticle(ctx context.Context, id uuid.UUID) (*RenderedArticle, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rendered, err := s.renderCached(ctx, a.ID, a.Document)
	if err != nil {
		return nil, err
	}
	return rendered, nil
}

func (s *Service) renderCached(ctx context.Context, id uuid.UUID, doc render.Document) (*RenderedArticle, error) {
	fingerprint := doc.Fingerprint()
	compute := func(ctx context.Context) ([]byte, error) {
		rendered, err := s.renderDirect(ctx, id, doc, fingerprint)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(rendered)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeSerializeFailed, "render result marshal failed").WithCause(err)
		}
		return raw, nil
	}

	if s.cache == nil {
		rendered, err := s.renderDirect(ctx, id, doc, fingerprint)
		if err != nil {
			return nil, err
		}
		return rendered, nil
	}

	raw, hit, err := s.cache.GetOrCompute(ctx, fingerprint, compute)
	if err != nil {
		return nil, err
	}
	if hit {
		s.metrics.IncRenderCacheHit()
	} else {
		s.metrics.IncRenderCacheMiss()
	}
	var rendered RenderedArticle
	if err := json.Unmarshal(raw, &rendered); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeSerializeFailed, "cached render result unmarshal failed").WithCause(err)
	}
	return &rendered, nil
}

func (s *Service) renderDirect(ctx context.Context, id uuid.UUID, doc render.Document, fingerprint string) (*RenderedArticle, error) {
	started := time.Now()
	paragraphs, stats, err := render.BuildDocument(doc, s.registry)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveRenderDuration(time.Since(started))
	s.metrics.AddAnnotationsDropped(stats.Normalize.Dropped())
	s.metrics.AddCrossSentenceExcluded(stats.CrossSentence)

	if stats.Normalize.Dropped() > 0 {
		s.logger.Warn("annotations dropped at normalization",
			logging.Int("bad_offsets", stats.Normalize.BadOffsets),
			logging.Int("unknown_roles", stats.Normalize.UnknownRoles),
		)
	}
	if stats.CrossSentence > 0 {
		s.logger.Warn("cross-sentence annotations excluded",
			logging.Int("count", stats.CrossSentence),
		)
	}

	s.publish(ctx, kafka.TopicArticleRendered, kafka.ArticleRendered{
		ArticleID:          id,
		Fingerprint:        fingerprint,
		Sentences:          len(doc.Sentences),
		AnnotationsKept:    stats.Normalize.Kept,
		AnnotationsDropped: stats.Normalize.Dropped(),
		CrossSentence:      stats.CrossSentence,
	})

	return &RenderedArticle{
		ArticleID:   id,
		Fingerprint: fingerprint,
		Paragraphs:  paragraphs,
		HTML:        render.Markup(paragraphs),
		Segments:    playback.SegmentsFromParagraphs(paragraphs),
	}, nil
}

func (s *Service) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	envelope, err := kafka.NewEnvelope(topic, payload)
	if err != nil {
		s.logger.Error("event envelope build failed", logging.Err(err))
		return
	}
	if err := s.publisher.Publish(ctx, topic, envelope); err != nil {
		s.logger.Error("event publish failed",
			logging.String("topic", topic),
			logging.Err(err),
		)
	}
}
