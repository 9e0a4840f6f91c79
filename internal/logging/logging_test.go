package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("trace"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", false)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestVerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "error", true)
	log.Debug().Str("mode", "seq").Msg("pick")
	assert.Contains(t, buf.String(), "pick")
	assert.Contains(t, buf.String(), "mode=")

	buf.Reset()
	log = New(&buf, "trace", true)
	assert.Equal(t, zerolog.TraceLevel, log.GetLevel())
}

func TestNewPaneForwardsLines(t *testing.T) {
	var buf bytes.Buffer
	var lines []string
	log := NewPane(&buf, func(s string) { lines = append(lines, s) }, "info", false)

	log.Info().Msg("training started")
	log.Debug().Msg("not shown")

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "training started")
	assert.Contains(t, buf.String(), "training started")
}
