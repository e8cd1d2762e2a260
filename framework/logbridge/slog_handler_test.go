package logbridge

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelName(t *testing.T) {
	assert.Equal(t, "TRACE", LevelName(LevelTrace))
	assert.Equal(t, "DEBUG", LevelName(slog.LevelDebug))
	assert.Equal(t, "INFO", LevelName(slog.LevelInfo))
	assert.Equal(t, "INFO", LevelName(slog.LevelInfo+2))
	assert.Equal(t, "WARN", LevelName(slog.LevelWarn))
	assert.Equal(t, "ERROR", LevelName(slog.LevelError))
	assert.Equal(t, "ERROR", LevelName(slog.LevelError+4))
}

func TestParseLevel(t *testing.T) {
	for _, level := range []slog.Level{LevelTrace, slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		parsed, err := ParseLevel(LevelName(level))
		require.NoError(t, err)
		assert.Equal(t, level, parsed)
	}
	parsed, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, parsed)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestHandlerUsesDefaultSource(t *testing.T) {
	sink := &fakeSink{}
	logger := slog.New(NewHandler(New(sink), HandlerSource("org.example.Steps")))
	logger.Info("Приложение закрыто.")
	assert.Equal(t, []string{"[INFO] org.example.Steps - Приложение закрыто."}, sink.contents())
}

func TestHandlerSourceFromWith(t *testing.T) {
	sink := &fakeSink{}
	logger := slog.New(NewHandler(New(sink), HandlerSource("default"))).With(SourceKey, "bound")
	logger.Warn("w")
	assert.Equal(t, []string{"[WARN] bound - w"}, sink.contents())
}

func TestHandlerSourceFromRecordAttribute(t *testing.T) {
	sink := &fakeSink{}
	logger := slog.New(NewHandler(New(sink)))
	logger.Error("e", SourceKey, "per-call", "other", 1)
	assert.Equal(t, []string{"[ERROR] per-call - e"}, sink.contents())
}

func TestHandlerIgnoresSourceInsideGroup(t *testing.T) {
	sink := &fakeSink{}
	logger := slog.New(NewHandler(New(sink), HandlerSource("outer"))).WithGroup("g").With(SourceKey, "inner")
	logger.Info("m")
	assert.Equal(t, []string{"[INFO] outer - m"}, sink.contents())
}

func TestHandlerForwardsTraceByDefault(t *testing.T) {
	sink := &fakeSink{}
	logger := slog.New(NewHandler(New(sink), HandlerSource("s")))
	logger.Log(context.Background(), LevelTrace, "t")
	assert.Equal(t, []string{"[TRACE] s - t"}, sink.contents())
}

func TestHandlerMinLevel(t *testing.T) {
	sink := &fakeSink{}
	logger := slog.New(NewHandler(New(sink), HandlerSource("s"), HandlerMinLevel(slog.LevelInfo)))
	logger.Debug("dropped")
	logger.Info("kept")
	assert.Equal(t, []string{"[INFO] s - kept"}, sink.contents())
}

func TestHandlerConvertsSinkPanicToError(t *testing.T) {
	h := NewHandler(New(panickingSink{}), HandlerSource("s"))
	err := h.Handle(context.Background(), slog.NewRecord(timeZero, slog.LevelInfo, "m", 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active test")

	assert.NotPanics(t, func() {
		slog.New(h).Info("does not reach the caller")
	})
}

func TestNewLogger(t *testing.T) {
	sink := &fakeSink{}
	NewLogger(sink, "org.example.Steps").Info("Выполнен выход из приложения.")
	assert.Equal(t, []string{"[INFO] org.example.Steps - Выполнен выход из приложения."}, sink.contents())
}
