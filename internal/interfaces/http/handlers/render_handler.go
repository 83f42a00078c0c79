package handlers

import (
	"github.com/gin-gonic/gin"

	articleapp "github.com/annotext/annotext/internal/application/article"
	"github.com/annotext/annotext/internal/domain/render"
)

// RenderHandler serves the stateless render endpoint: document in, render
// tree out, no storage involved.
type RenderHandler struct {
	articles *articleapp.Service
}

// NewRenderHandler builds the handler.
func NewRenderHandler(articles *articleapp.Service) *RenderHandler {
	return &RenderHandler{articles: articles}
}

// Render handles POST /api/v1/render.
func (h *RenderHandler) Render(c *gin.Context) {
	var doc render.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		BadRequest(c, err)
		return
	}
	rendered, err := h.articles.RenderDocument(c.Request.Context(), doc)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, rendered)
}
