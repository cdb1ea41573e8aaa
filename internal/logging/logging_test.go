package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func jsonOutput() *bool {
	b := false
	return &b
}

func TestNewWritesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Console: jsonOutput(), Writer: buf})
	require.NoError(t, err)

	log.Info().Str("creation", "abc").Msg("stored creation")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "stored creation", entry["message"])
	require.Equal(t, "abc", entry["creation"])
	require.Equal(t, "info", entry["level"])
}

func TestNewRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "WARN", Console: jsonOutput(), Writer: buf})
	require.NoError(t, err)

	log.Info().Msg("hidden")
	require.Empty(t, strings.TrimSpace(buf.String()))

	log.Warn().Msg("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "loud", Writer: &bytes.Buffer{}})
	require.Error(t, err)
}
