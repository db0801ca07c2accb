package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleYAML = `
idgen:
  mode: v0
  v0:
    machine_id: test-machine
log:
  level: info
`

func TestNew(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		loader, err := New(nil)
		require.NoError(t, err)
		require.NotNil(t, loader)
	})

	t.Run("env prefix is upper-cased", func(t *testing.T) {
		cfg := &Config{EnvPrefix: "squid"}
		cfg.setDefaults()
		assert.Equal(t, "SQUID", cfg.EnvPrefix)
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads yaml file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "squid.yaml", sampleYAML)

		loader, err := New(&Config{Name: "squid", Paths: []string{dir}})
		require.NoError(t, err)
		require.NoError(t, loader.Load(context.Background()))

		assert.Equal(t, "v0", loader.Get("idgen.mode"))
		assert.Equal(t, "test-machine", loader.Get("idgen.v0.machine_id"))
	})

	t.Run("missing file is tolerated", func(t *testing.T) {
		loader, err := New(&Config{Name: "nope", Paths: []string{t.TempDir()}})
		require.NoError(t, err)
		assert.NoError(t, loader.Load(context.Background()))
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "squid.yaml", sampleYAML)
		t.Setenv("SQUID_IDGEN_MODE", "uuid")

		loader, err := New(&Config{Name: "squid", Paths: []string{dir}, EnvPrefix: "SQUID"})
		require.NoError(t, err)
		require.NoError(t, loader.Load(context.Background()))

		assert.Equal(t, "uuid", loader.Get("idgen.mode"))
	})
}

func TestUnmarshalKey(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "squid.yaml", sampleYAML)

	loader, err := New(&Config{Name: "squid", Paths: []string{dir}})
	require.NoError(t, err)
	require.NoError(t, loader.Load(context.Background()))

	var sub struct {
		MachineID string `mapstructure:"machine_id"`
	}
	require.NoError(t, loader.UnmarshalKey("idgen.v0", &sub))
	assert.Equal(t, "test-machine", sub.MachineID)
}

func TestWatch(t *testing.T) {
	t.Run("channel closes on context cancel", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "squid.yaml", sampleYAML)

		loader, err := New(&Config{Name: "squid", Paths: []string{dir}})
		require.NoError(t, err)
		require.NoError(t, loader.Load(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		ch, err := loader.Watch(ctx, "idgen.mode")
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-ch:
			assert.False(t, ok, "channel should be closed after cancel")
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for watch channel to close")
		}
	})
}
