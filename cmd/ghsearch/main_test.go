package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghsearch/internal/config"
)

func TestWriteConfigSavesEffectiveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghsearch", "config.toml")
	svc := config.NewConfigServiceAt(path)

	var stderr bytes.Buffer
	opts, err := parseFlags([]string{"--write-config", "--api-url", "http://127.0.0.1:9999"}, &stderr)
	require.NoError(t, err)
	require.True(t, opts.writeConfig)

	cfg, err := svc.Load()
	require.NoError(t, err)
	opts.apply(cfg)

	var out bytes.Buffer
	require.NoError(t, writeConfig(svc, cfg, &out))
	assert.Equal(t, "Wrote "+path+"\n", out.String())

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", loaded.API.BaseURL)
	assert.Equal(t, config.DefaultConfig().Search.Debounce, loaded.Search.Debounce)
}

func TestWriteConfigReportsUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// A regular file where the config directory should be
	svc := config.NewConfigServiceAt(filepath.Join(blocker, "config.toml"))

	var out bytes.Buffer
	require.Error(t, writeConfig(svc, config.DefaultConfig(), &out))
	assert.Empty(t, out.String())
}
