package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	articleapp "github.com/annotext/annotext/internal/application/article"
	"github.com/annotext/annotext/internal/domain/render"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

// ArticleHandler serves stored-article CRUD plus the cached render view.
type ArticleHandler struct {
	articles *articleapp.Service
}

// NewArticleHandler builds the handler.
func NewArticleHandler(articles *articleapp.Service) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

type createArticleRequest struct {
	Title    string          `json:"title" binding:"required"`
	Document render.Document `json:"document" binding:"required"`
}

// Create handles POST /api/v1/articles.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}
	a, err := h.articles.Ingest(c.Request.Context(), req.Title, req.Document)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, a)
}

// Get handles GET /api/v1/articles/:id.
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.articles.Get(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, a)
}

// List handles GET /api/v1/articles.
func (h *ArticleHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	articles, err := h.articles.List(c.Request.Context(), limit, offset)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, articles)
}

// Delete handles DELETE /api/v1/articles/:id.
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.articles.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"deleted": id})
}

// Render handles GET /api/v1/articles/:id/render.
func (h *ArticleHandler) Render(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rendered, err := h.articles.RenderArticle(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, rendered)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Fail(c, apperrors.InvalidParam("article id must be a UUID").WithCause(err))
		return uuid.Nil, false
	}
	return id, true
}
