// Package http assembles the gin router and the server lifecycle.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annotext/annotext/internal/config"
	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	"github.com/annotext/annotext/internal/infrastructure/monitoring/prometheus"
	"github.com/annotext/annotext/internal/interfaces/http/handlers"
	"github.com/annotext/annotext/internal/interfaces/http/middleware"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Articles  *handlers.ArticleHandler
	Render    *handlers.RenderHandler
	Narration *handlers.NarrationHandler
	Health    *handlers.HealthHandler
	Logger    logging.Logger
	Metrics   prometheus.Collector
	CORS      []string
}

// NewRouter builds the gin engine with the full middleware chain and all
// routes mounted.
func NewRouter(cfg config.ServerConfig, deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogging(deps.Logger, deps.Metrics),
		middleware.CORS(deps.CORS),
	)

	engine.GET("/healthz", deps.Health.Live)
	engine.GET("/readyz", deps.Health.Ready)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/render", deps.Render.Render)
		v1.POST("/synthesize", deps.Narration.Synthesize)

		articles := v1.Group("/articles")
		{
			articles.POST("", deps.Articles.Create)
			articles.GET("", deps.Articles.List)
			articles.GET("/:id", deps.Articles.Get)
			articles.DELETE("/:id", deps.Articles.Delete)
			articles.GET("/:id/render", deps.Articles.Render)
			articles.POST("/:id/narration", deps.Narration.RequestNarration)
			articles.GET("/:id/audio/:index", deps.Narration.ClipURL)
		}
	}
	return engine
}
