package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetAndWarn(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := L()
	Set(zap.New(core))
	t.Cleanup(func() { Set(prev) })

	Warn("queue full", zap.String("post", "p1"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "queue full", entry.Message)
	assert.Equal(t, "p1", entry.ContextMap()["post"])
}

func TestInit_BadLevelFallsBackToInfo(t *testing.T) {
	prev := L()
	t.Cleanup(func() { Set(prev) })

	require.NoError(t, Init("nope", "console"))
	assert.True(t, L().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, L().Core().Enabled(zapcore.DebugLevel))
}
