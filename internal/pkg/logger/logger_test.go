package logger_test

import (
	"testing"

	"forwarding/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("should honour the requested level", func(t *testing.T) {
		l := logger.New("warn")

		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
		assert.Same(t, l, zap.L())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		l := logger.New("chatty")

		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})
}
