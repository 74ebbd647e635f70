package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadterm/internal/api"
)

func TestLoad(t *testing.T) {
	t.Run("creates defaults on first run", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("LEADTERM_CONFIG_DIR", dir)
		t.Setenv("LEADTERM_API_URL", "")

		store, err := Load()
		require.NoError(t, err)
		assert.NotEmpty(t, store.Config.Name)
		assert.NotEmpty(t, store.Config.Timezone)
		assert.Equal(t, api.DefaultBaseURL, store.Config.APIBaseURL)
		assert.FileExists(t, filepath.Join(dir, "config.json"))
	})

	t.Run("env url overrides persisted value", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("LEADTERM_CONFIG_DIR", dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
			[]byte(`{"name":"ops","timezone":"UTC","api_base_url":"http://crm.internal/api"}`), 0o644))
		t.Setenv("LEADTERM_API_URL", "http://staging:5000/api")

		store, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "http://staging:5000/api", store.Config.APIBaseURL)
		assert.Equal(t, "ops", store.Config.Name)
	})

	t.Run("save round trips", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("LEADTERM_CONFIG_DIR", dir)
		t.Setenv("LEADTERM_API_URL", "")

		store, err := Load()
		require.NoError(t, err)
		store.Config.Name = "Dana"
		store.Config.Timezone = "Europe/Berlin"
		require.NoError(t, store.Save())

		again, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "Dana", again.Config.Name)
		assert.Equal(t, "Europe/Berlin", again.Config.Timezone)
	})
}

func TestLocation(t *testing.T) {
	s := &Store{Config: Data{Timezone: "not-a-zone"}}
	assert.Equal(t, "UTC", s.Location().String())
}
