package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/annotext/annotext/internal/application/narration"
	"github.com/annotext/annotext/internal/infrastructure/messaging/kafka"
	"github.com/annotext/annotext/internal/infrastructure/tts"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

// NarrationHandler serves synthesis endpoints: direct single-clip synthesis
// for interactive playback, asynchronous whole-article narration through
// the worker, and clip links.
type NarrationHandler struct {
	narration *narration.Service
	publisher kafka.Publisher
	linker    LinkFunc
}

// LinkFunc adapts an audio store's presigned-URL method.
type LinkFunc func(c *gin.Context, key string, expiry time.Duration) (string, error)

// NewNarrationHandler builds the handler.  publisher and linker may be nil
// when the deployment has no worker or object store.
func NewNarrationHandler(svc *narration.Service, publisher kafka.Publisher, linker LinkFunc) *NarrationHandler {
	return &NarrationHandler{narration: svc, publisher: publisher, linker: linker}
}

type synthesizeRequest struct {
	Text  string  `json:"text" binding:"required"`
	Voice string  `json:"voice"`
	Rate  float64 `json:"rate"`
}

// Synthesize handles POST /api/v1/synthesize: one clip, synchronous, with
// word timing for character-level highlighting.
func (h *NarrationHandler) Synthesize(c *gin.Context) {
	var req synthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}
	result, err := h.narration.SynthesizeClip(c.Request.Context(), tts.SynthesisRequest{
		Text:  req.Text,
		Voice: req.Voice,
		Rate:  req.Rate,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{
		"audio":      result.Audio,
		"mime_type":  result.MimeType,
		"boundaries": result.Boundaries,
	})
}

type narrateArticleRequest struct {
	Voice string  `json:"voice"`
	Rate  float64 `json:"rate"`
}

// RequestNarration handles POST /api/v1/articles/:id/narration by handing
// the work to the narration worker.
func (h *NarrationHandler) RequestNarration(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if h.publisher == nil {
		Fail(c, apperrors.New(apperrors.ErrCodeServiceUnavailable, "narration worker not configured"))
		return
	}
	var req narrateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		BadRequest(c, err)
		return
	}
	envelope, err := kafka.NewEnvelope(kafka.TopicNarrationRequested, kafka.NarrationRequested{
		ArticleID: id,
		Voice:     req.Voice,
		Rate:      req.Rate,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.publisher.Publish(c.Request.Context(), kafka.TopicNarrationRequested, envelope); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, Response{
		Code: string(apperrors.CodeOK),
		Data: gin.H{"article_id": id, "event_id": envelope.ID},
	})
}

// ClipURL handles GET /api/v1/articles/:id/audio/:index, returning a
// time-limited link to the stored clip.
func (h *NarrationHandler) ClipURL(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if h.linker == nil {
		Fail(c, apperrors.New(apperrors.ErrCodeServiceUnavailable, "audio store not configured"))
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		Fail(c, apperrors.InvalidParam("audio index must be a non-negative integer"))
		return
	}
	key := "articles/" + id.String() + "/sentences/" + strconv.Itoa(index) + ".mp3"
	u, err := h.linker(c, key, time.Hour)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"url": u})
}
