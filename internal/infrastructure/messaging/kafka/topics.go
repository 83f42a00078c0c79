// Package kafka carries the asynchronous event flow between the API
// surface and the narration worker: article lifecycle events go onto
// topics, the worker consumes them and synthesizes audio out of band.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/annotext/annotext/pkg/errors"
)

// Topic names.
const (
	// TopicArticleIngested fires when a new article document is stored.
	TopicArticleIngested = "annotext.article.ingested"
	// TopicArticleRendered fires when a render tree has been built and
	// cached for an article.
	TopicArticleRendered = "annotext.article.rendered"
	// TopicNarrationRequested asks the worker to synthesize an article.
	TopicNarrationRequested = "annotext.narration.requested"
	// TopicNarrationCompleted reports stored narration audio.
	TopicNarrationCompleted = "annotext.narration.completed"
)

// Envelope is the wire frame around every event payload.
type Envelope struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a payload.
func NewEnvelope(eventType string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, apperrors.New(apperrors.ErrCodeSerialization, "event payload marshal failed").WithCause(err)
	}
	return Envelope{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}

// Decode unmarshals the payload into dst.
func (e Envelope) Decode(dst any) error {
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return apperrors.New(apperrors.ErrCodeSerialization, "event payload unmarshal failed").
			WithDetail(e.Type).WithCause(err)
	}
	return nil
}

// ArticleIngested is the payload of TopicArticleIngested.
type ArticleIngested struct {
	ArticleID uuid.UUID `json:"article_id"`
	Title     string    `json:"title"`
}

// ArticleRendered is the payload of TopicArticleRendered.
type ArticleRendered struct {
	ArticleID          uuid.UUID `json:"article_id"`
	Fingerprint        string    `json:"fingerprint"`
	Sentences          int       `json:"sentences"`
	AnnotationsKept    int       `json:"annotations_kept"`
	AnnotationsDropped int       `json:"annotations_dropped"`
	CrossSentence      int       `json:"cross_sentence"`
}

// NarrationRequested is the payload of TopicNarrationRequested.
type NarrationRequested struct {
	ArticleID uuid.UUID `json:"article_id"`
	Voice     string    `json:"voice"`
	Rate      float64   `json:"rate"`
}

// NarrationCompleted is the payload of TopicNarrationCompleted.
type NarrationCompleted struct {
	ArticleID uuid.UUID `json:"article_id"`
	Segments  int       `json:"segments"`
	TotalMs   int64     `json:"total_ms"`
}
