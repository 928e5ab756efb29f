package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNew_WritesJSONWithService(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug", Service: "storefront", Output: &buf})

	l.Debug().Str("listing_id", "1").Msg("listing added")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "storefront", entry["service"])
	assert.Equal(t, "1", entry["listing_id"])
	assert.Equal(t, "listing added", entry["message"])
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "warn", Output: &buf})

	l.Info().Msg("ignored")
	assert.Zero(t, buf.Len())
}

func TestInitOnlyOnce(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	c := Component("session")
	c.Info().Msg("hello")
	assert.Contains(t, first.String(), `"component":"session"`)
	assert.Zero(t, second.Len())
}

func TestGetBeforeInitIsSilent(t *testing.T) {
	Reset()
	assert.NotPanics(t, func() {
		l := Get()
		l.Info().Msg("dropped")
	})
}
