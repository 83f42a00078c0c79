// API server entry point for annotext.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"

	"github.com/annotext/annotext/internal/application/article"
	"github.com/annotext/annotext/internal/application/narration"
	"github.com/annotext/annotext/internal/config"
	"github.com/annotext/annotext/internal/infrastructure/database/postgres"
	"github.com/annotext/annotext/internal/infrastructure/database/redis"
	"github.com/annotext/annotext/internal/infrastructure/messaging/kafka"
	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	"github.com/annotext/annotext/internal/infrastructure/monitoring/prometheus"
	"github.com/annotext/annotext/internal/infrastructure/storage/minio"
	"github.com/annotext/annotext/internal/infrastructure/tts"
	httpserver "github.com/annotext/annotext/internal/interfaces/http"
	"github.com/annotext/annotext/internal/interfaces/http/handlers"

	"github.com/gin-gonic/gin"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "apiserver:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, v, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	logger.Info("starting annotext API server",
		logging.String("version", version),
		logging.String("addr", cfg.Server.Addr()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config.Watch(v, func(next *config.Config) {
		logger.Info("configuration reloaded", logging.String("log_level", next.Log.Level))
	}, func(err error) {
		logger.Warn("configuration reload rejected", logging.Err(err))
	})

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.RunMigrations(cfg.Database, logger); err != nil {
		return err
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	mc, err := minio.NewClient(ctx, cfg.MinIO)
	if err != nil {
		return err
	}

	producer := kafka.NewProducer(cfg.Kafka, logger)
	defer producer.Close()

	metrics := prometheus.NewAppMetrics(promclient.DefaultRegisterer)

	repo := postgres.NewArticleRepository(pool)
	renderCache := redis.NewRenderCache(redis.NewByteStore(rdb), cfg.Cache.RenderTTL, logger)
	audioStore := minio.NewAudioStore(minio.Wrap(mc), cfg.MinIO.Bucket, logger)

	articleSvc := article.NewService(repo, renderCache, producer, metrics, logger)
	narrationSvc := narration.NewService(tts.NewEdgeProvider(cfg.TTS, logger), audioStore, logger)

	health := handlers.NewHealthHandler(version, map[string]handlers.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return pool.Ping(ctx) },
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	})

	linker := func(c *gin.Context, key string, expiry time.Duration) (string, error) {
		return audioStore.PresignedURL(c.Request.Context(), key, expiry)
	}

	router := httpserver.NewRouter(cfg.Server, httpserver.RouterDeps{
		Articles:  handlers.NewArticleHandler(articleSvc),
		Render:    handlers.NewRenderHandler(articleSvc),
		Narration: handlers.NewNarrationHandler(narrationSvc, producer, linker),
		Health:    health,
		Logger:    logger,
		Metrics:   metrics,
		CORS:      cfg.Server.CORSOrigins,
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)
	if err := srv.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
