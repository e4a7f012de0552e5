package logging_test

import (
	"testing"

	"tracker/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name  string
		cfg   logging.Config
		level zapcore.Level
	}{
		{name: "json debug", cfg: logging.Config{Level: "DEBUG", Encoding: "json"}, level: zapcore.DebugLevel},
		{name: "console warn", cfg: logging.Config{Level: "warn", Encoding: "console"}, level: zapcore.WarnLevel},
		{name: "unknown level", cfg: logging.Config{Level: "loud"}, level: zapcore.InfoLevel},
		{name: "empty", cfg: logging.Config{}, level: zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := logging.New(tc.cfg)

			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tc.level))
			assert.False(t, logger.Core().Enabled(tc.level-1))
		})
	}
}
