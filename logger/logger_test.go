package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"empty defaults to info", "", zerolog.InfoLevel},
		{"unknown defaults to info", "verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(Config{Level: tt.level, Output: &bytes.Buffer{}})
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Output: &buf})

	l.Debug().Msg("hidden")
	l.Info().Int("qualifying", 2).Msg("done")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"qualifying":2`)
	assert.Contains(t, out, `"message":"done"`)
}
