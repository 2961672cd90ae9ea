package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromEnv(t *testing.T) {
	tests := map[string]zerolog.Level{
		LOG_LEVEL_DEBUG: zerolog.DebugLevel,
		LOG_LEVEL_WARN:  zerolog.WarnLevel,
		LOG_LEVEL_ERROR: zerolog.ErrorLevel,
		"verbose":       zerolog.InfoLevel,
	}
	for value, want := range tests {
		t.Run(value, func(t *testing.T) {
			t.Setenv(levelEnv, value)
			assert.Equal(t, want, LevelFromEnv())
		})
	}
}

func TestForRequest(t *testing.T) {
	t.Setenv(levelEnv, LOG_LEVEL_DEBUG)
	var buf bytes.Buffer
	l := ForRequest(newLogger(&buf, "Decoder"), "tid-1")
	l.Debug().Int("round", 2).Msg("Decoding round")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Decoder", entry["component"])
	assert.Equal(t, "tid-1", entry["tid"])
	assert.Equal(t, float64(2), entry["round"])
}
