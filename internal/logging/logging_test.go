package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/demonstra-dev/demonstra/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		cfg      config.LoggingConfig
		enabled  zapcore.Level
		disabled zapcore.Level
	}{
		{config.LoggingConfig{Level: "info"}, zapcore.InfoLevel, zapcore.DebugLevel},
		{config.LoggingConfig{Level: "warn", Development: true}, zapcore.WarnLevel, zapcore.InfoLevel},
		{config.LoggingConfig{Level: "error"}, zapcore.ErrorLevel, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.cfg.Level, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.disabled))
		})
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging level")
}
