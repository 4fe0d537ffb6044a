package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"", "development", "production"} {
		log, err := New(Config{Environment: env, LogLevel: "debug", ServiceName: "profile-api"})
		require.NoError(t, err)
		assert.NotNil(t, log)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug").Level())
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn").Level())
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error").Level())
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info").Level())
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose").Level())
}
