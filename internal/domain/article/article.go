// Package article defines the stored article aggregate: a document handed
// over by the generation pipeline, addressed by ID and carried through
// storage, rendering and narration.
package article

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/google/uuid"

	"github.com/annotext/annotext/internal/domain/render"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

// MaxTextCodeUnits bounds accepted document size.  Offsets are UTF-16 code
// units, so the limit is too.
const MaxTextCodeUnits = 500_000

// Article is one generated article plus its annotation payload.
type Article struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Document  render.Document `json:"document"`
	Voice     string          `json:"voice,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// New builds an article with a fresh ID and timestamps.
func New(title string, doc render.Document) *Article {
	now := time.Now().UTC()
	return &Article{
		ID:        uuid.New(),
		Title:     title,
		Document:  doc,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the invariants the rest of the system assumes.  Sentence
// span validity is checked again at render time; this is the ingestion
// boundary where invalid documents are rejected outright rather than
// degraded.
func (a *Article) Validate() error {
	if a.ID == uuid.Nil {
		return apperrors.New(apperrors.ErrCodeDocumentInvalid, "article id must be set")
	}
	if strings.TrimSpace(a.Title) == "" {
		return apperrors.New(apperrors.ErrCodeDocumentInvalid, "article title must not be empty")
	}
	if strings.TrimSpace(a.Document.Text) == "" {
		return apperrors.New(apperrors.ErrCodeDocumentInvalid, "article text must not be empty")
	}
	if n := len(utf16.Encode([]rune(a.Document.Text))); n > MaxTextCodeUnits {
		return apperrors.New(apperrors.ErrCodeDocumentTooLarge, "article text exceeds size limit").
			WithDetail("code_units=" + strconv.Itoa(n))
	}
	if len(a.Document.Sentences) == 0 {
		return apperrors.New(apperrors.ErrCodeDocumentInvalid, "article must contain at least one sentence span")
	}
	return nil
}

// Fingerprint returns the document's content hash, the render-cache key.
func (a *Article) Fingerprint() string {
	return a.Document.Fingerprint()
}

// Touch updates the modification timestamp.
func (a *Article) Touch() {
	a.UpdatedAt = time.Now().UTC()
}
