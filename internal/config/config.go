// Package config loads and validates runtime configuration from file and
// environment, with live reload for long-running processes.
package config

import (
	"fmt"
	"time"

	"github.com/annotext/annotext/internal/infrastructure/database/postgres"
	"github.com/annotext/annotext/internal/infrastructure/database/redis"
	"github.com/annotext/annotext/internal/infrastructure/messaging/kafka"
	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	"github.com/annotext/annotext/internal/infrastructure/storage/minio"
	"github.com/annotext/annotext/internal/infrastructure/tts"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WorkerConfig holds narration worker settings.
type WorkerConfig struct {
	DefaultVoice string  `mapstructure:"default_voice"`
	DefaultRate  float64 `mapstructure:"default_rate"`
}

// CacheConfig holds render-cache tuning.
type CacheConfig struct {
	RenderTTL time.Duration `mapstructure:"render_ttl"`
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig      `mapstructure:"server"`
	Database postgres.Config   `mapstructure:"database"`
	Redis    redis.Config      `mapstructure:"redis"`
	Kafka    kafka.Config      `mapstructure:"kafka"`
	MinIO    minio.Config      `mapstructure:"minio"`
	TTS      tts.EdgeConfig    `mapstructure:"tts"`
	Worker   WorkerConfig      `mapstructure:"worker"`
	Cache    CacheConfig       `mapstructure:"cache"`
	Log      logging.LogConfig `mapstructure:"log"`
}

// Validate rejects configurations the process cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.InvalidParam(fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Database.Host == "" {
		return apperrors.InvalidParam("database.host must be set")
	}
	if c.Database.Database == "" {
		return apperrors.InvalidParam("database.database must be set")
	}
	if c.Redis.Host == "" {
		return apperrors.InvalidParam("redis.host must be set")
	}
	if len(c.Kafka.Brokers) == 0 {
		return apperrors.InvalidParam("kafka.brokers must not be empty")
	}
	if c.MinIO.Endpoint == "" {
		return apperrors.InvalidParam("minio.endpoint must be set")
	}
	if c.MinIO.Bucket == "" {
		return apperrors.InvalidParam("minio.bucket must be set")
	}
	if c.TTS.ScriptPath == "" {
		return apperrors.InvalidParam("tts.script_path must be set")
	}
	if c.Worker.DefaultRate < 0 {
		return apperrors.InvalidParam("worker.default_rate must not be negative")
	}
	return nil
}
