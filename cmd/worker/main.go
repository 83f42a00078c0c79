// Narration worker entry point: consumes narration requests from Kafka,
// renders the article, synthesizes every sentence, and reports completion.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

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
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "worker:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, _, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	logger = logger.Named("worker")

	logger.Info("starting annotext narration worker", logging.String("version", version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

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

	worker := &narrationWorker{
		articles:  articleSvc,
		narration: narrationSvc,
		producer:  producer,
		defaults:  cfg.Worker,
		logger:    logger,
	}

	consumer := kafka.NewConsumer(cfg.Kafka, kafka.TopicNarrationRequested, logger)
	defer consumer.Close()

	logger.Info("consuming", logging.String("topic", kafka.TopicNarrationRequested))
	if err := consumer.Run(ctx, worker.handle); err != nil {
		return err
	}

	logger.Info("worker stopped")
	return nil
}

type narrationWorker struct {
	articles  *article.Service
	narration *narration.Service
	producer  kafka.Publisher
	defaults  config.WorkerConfig
	logger    logging.Logger
}

// handle processes one narration request end to end.  A returned error
// leaves the message uncommitted so the broker redelivers it.
func (w *narrationWorker) handle(ctx context.Context, envelope kafka.Envelope) error {
	var req kafka.NarrationRequested
	if err := envelope.Decode(&req); err != nil {
		return err
	}

	voice := req.Voice
	if voice == "" {
		voice = w.defaults.DefaultVoice
	}
	rate := req.Rate
	if rate <= 0 {
		rate = w.defaults.DefaultRate
	}

	rendered, err := w.articles.RenderArticle(ctx, req.ArticleID)
	if err != nil {
		return err
	}

	narrated, err := w.narration.SynthesizeArticle(ctx, req.ArticleID.String(), rendered.Segments, voice, rate)
	if err != nil {
		return err
	}

	totalMs, err := narrated.Timeline.StartOf(len(narrated.Clips) - 1)
	if err == nil {
		totalMs += narrated.Clips[len(narrated.Clips)-1].DurationMs()
	}

	done, err := kafka.NewEnvelope(kafka.TopicNarrationCompleted, kafka.NarrationCompleted{
		ArticleID: req.ArticleID,
		Segments:  len(narrated.Clips),
		TotalMs:   totalMs,
	})
	if err != nil {
		return err
	}
	if err := w.producer.Publish(ctx, kafka.TopicNarrationCompleted, done); err != nil {
		w.logger.Warn("completion event publish failed",
			logging.String("article_id", req.ArticleID.String()),
			logging.Err(err),
		)
	}

	w.logger.Info("narration complete",
		logging.String("article_id", req.ArticleID.String()),
		logging.Int("segments", len(narrated.Clips)),
		logging.Int64("total_ms", totalMs),
	)
	return nil
}
