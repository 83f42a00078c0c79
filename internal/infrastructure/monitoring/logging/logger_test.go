package logging

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewLoggerFromCore(core), logs
}

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "n", Value: 7}, Int("n", 7))
	assert.Equal(t, Field{Key: "n", Value: int64(7)}, Int64("n", 7))
	assert.Equal(t, Field{Key: "f", Value: 1.5}, Float64("f", 1.5))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "d", Value: time.Second}, Duration("d", time.Second))
}

func TestErrField(t *testing.T) {
	assert.Equal(t, "<nil>", Err(nil).Value)
	assert.Equal(t, "boom", Err(fmt.Errorf("boom")).Value)
	assert.Equal(t, "error", Err(nil).Key)
}

func TestLogger_EmitsAtLevels(t *testing.T) {
	log, logs := newObservedLogger(zapcore.DebugLevel)

	log.Debug("d", String("k", "v"))
	log.Info("i", Int("count", 3))
	log.Warn("w")
	log.Error("e", Err(fmt.Errorf("bad")))

	require.Equal(t, 4, logs.Len())
	entries := logs.All()
	assert.Equal(t, "d", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "v", entries[0].ContextMap()["k"])
	assert.Equal(t, int64(3), entries[1].ContextMap()["count"])
	assert.Equal(t, "bad", entries[3].ContextMap()["error"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	log, logs := newObservedLogger(zapcore.WarnLevel)

	log.Debug("d")
	log.Info("i")
	log.Warn("w")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "w", logs.All()[0].Message)
}

func TestLogger_WithAttachesFields(t *testing.T) {
	log, logs := newObservedLogger(zapcore.InfoLevel)

	child := log.With(String("article_id", "a7f3"))
	child.Info("rendered")
	log.Info("parent untouched")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "a7f3", logs.All()[0].ContextMap()["article_id"])
	_, ok := logs.All()[1].ContextMap()["article_id"]
	assert.False(t, ok)
}

func TestLogger_Named(t *testing.T) {
	log, logs := newObservedLogger(zapcore.InfoLevel)
	log.Named("render").Info("x")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "render", logs.All()[0].LoggerName)
}

func TestNewLogger_Defaults(t *testing.T) {
	log, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewLogger_InvalidOutputPath(t *testing.T) {
	_, err := NewLogger(LogConfig{OutputPaths: []string{"/nonexistent-dir-xyz/file.log"}})
	assert.Error(t, err)
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	// Must not panic and must support chaining.
	log.With(String("k", "v")).Named("n").Info("ignored")
}

func TestDefaultLogger(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	log, logs := newObservedLogger(zapcore.InfoLevel)
	SetDefault(log)
	Default().Info("via default")
	require.Equal(t, 1, logs.Len())

	// nil is ignored.
	SetDefault(nil)
	assert.Equal(t, log, Default())
}
