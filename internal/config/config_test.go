package config_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/memedir/internal/config"
	"github.com/aretw0/memedir/pkg/adapters/rest"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	t.Run("Defaults When Missing", func(t *testing.T) {
		c, err := config.Load(filepath.Join(t.TempDir(), "memedir.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "rest", c.Gateway.Adapter)
		assert.Equal(t, rest.DefaultEndpoint, c.Gateway.Endpoint)
		assert.Equal(t, rest.DefaultTimeout, c.Gateway.Timeout)
		assert.Equal(t, "127.0.0.1:8080", c.Server.Address)
		assert.Equal(t, "info", c.Log.Level)
	})

	t.Run("Empty Path", func(t *testing.T) {
		c, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default().Gateway.Endpoint, c.Gateway.Endpoint)
	})

	t.Run("File Values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "memedir.yaml")
		writeFile(t, path, `
gateway:
  adapter: memory
  endpoint: http://localhost:9999/items
  timeout: 3s
  rate_limit: 2.5
  read_only: true
  fixture: memes.yaml
server:
  address: ":9090"
log:
  level: debug
  format: json
`)
		c, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, path, c.File)
		assert.Equal(t, "memory", c.Gateway.Adapter)
		assert.Equal(t, "http://localhost:9999/items", c.Gateway.Endpoint)
		assert.Equal(t, 3*time.Second, c.Gateway.Timeout)
		assert.InDelta(t, 2.5, c.Gateway.RateLimit, 0.0001)
		assert.True(t, c.Gateway.ReadOnly)
		assert.Equal(t, "memes.yaml", c.Gateway.Fixture)
		assert.Equal(t, ":9090", c.Server.Address)
		assert.Equal(t, "debug", c.Log.Level)
		assert.Equal(t, "json", c.Log.Format)
	})

	t.Run("Partial File Keeps Defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "memedir.yaml")
		writeFile(t, path, "server:\n  address: \":7000\"\n")
		c, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":7000", c.Server.Address)
		assert.Equal(t, rest.DefaultEndpoint, c.Gateway.Endpoint)
	})

	t.Run("Environment Overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "memedir.yaml")
		writeFile(t, path, "gateway:\n  endpoint: http://file/items\n")
		t.Setenv(config.EnvEndpoint, "http://env/items")
		t.Setenv(config.EnvAdapter, "memory")
		t.Setenv(config.EnvAddr, ":1234")
		t.Setenv(config.EnvLogLevel, "warn")

		c, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://env/items", c.Gateway.Endpoint)
		assert.Equal(t, "memory", c.Gateway.Adapter)
		assert.Equal(t, ":1234", c.Server.Address)
		assert.Equal(t, "warn", c.Log.Level)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "memedir.yaml")
		writeFile(t, path, "gateway: [unclosed\n")
		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("Unknown Adapter", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "memedir.yaml")
		writeFile(t, path, "gateway:\n  adapter: ftp\n")
		_, err := config.Load(path)
		assert.ErrorContains(t, err, "unknown adapter")
	})
}

func TestValidate(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())

	bad := c
	bad.Log.Level = "loud"
	assert.Error(t, bad.Validate())

	bad = c
	bad.Log.Format = "xml"
	assert.Error(t, bad.Validate())

	bad = c
	bad.Gateway.RateLimit = -1
	assert.Error(t, bad.Validate())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := config.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := config.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Reloads On Write", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "memedir.yaml")
		writeFile(t, path, "log:\n  level: info\n")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes := make(chan config.Config, 4)
		require.NoError(t, config.Watch(ctx, path, logger, func(c config.Config) {
			changes <- c
		}))

		writeFile(t, path, "log:\n  level: debug\n")

		select {
		case c := <-changes:
			assert.Equal(t, "debug", c.Log.Level)
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for reload")
		}
	})

	t.Run("Invalid Edit Is Skipped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "memedir.yaml")
		writeFile(t, path, "log:\n  level: info\n")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes := make(chan config.Config, 4)
		require.NoError(t, config.Watch(ctx, path, logger, func(c config.Config) {
			changes <- c
		}))

		writeFile(t, path, "log:\n  level: loud\n")

		select {
		case c := <-changes:
			t.Fatalf("unexpected reload: %+v", c)
		case <-time.After(500 * time.Millisecond):
		}
	})

	t.Run("Empty Path", func(t *testing.T) {
		err := config.Watch(context.Background(), "", logger, func(config.Config) {})
		assert.Error(t, err)
	})
}
