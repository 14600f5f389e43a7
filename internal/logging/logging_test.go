package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"enrolladmin/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobal(t *testing.T) {
	prev, level := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(level)
	})
}

func TestSetupTo_JSONStdout(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	closer, err := SetupTo(config.LogCfg{Level: "warn", Format: "json", Output: "stdout"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	log.Info().Msg("hidden")
	component := Component("listing")
	component.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"component":"listing"`)
	assert.Contains(t, out, `"message":"shown"`)
}

func TestSetupTo_FileOnly(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "nested", "admin.log")

	closer, err := SetupTo(config.LogCfg{Level: "info", Format: "json", Output: "file", File: path}, &buf)
	require.NoError(t, err)

	log.Info().Str("screen", "courses").Msg("opened")
	require.NoError(t, closer.Close())

	assert.Empty(t, buf.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"screen":"courses"`)
}

func TestSetupTo_UnknownLevelFallsBackToInfo(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	_, err := SetupTo(config.LogCfg{Level: "chatty", Format: "json", Output: "stdout"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
