package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http": "www.example:9000",
		"database_driver":    "postgres",
		"database_dsn":       "postgres://localhost/teambot",
		"digest_recipients":  []string{"u1", "u2"},
		"notify_interval":    "30m",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres", cfg.DatabaseDriver)
		assert.Equal(t, "postgres://localhost/teambot", cfg.DatabaseDSN)
		assert.Equal(t, []string{"u1", "u2"}, cfg.DigestRecipients)
		assert.Equal(t, 30*time.Minute, cfg.NotifyInterval)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddrHTTP: "defaults:1234",
			DatabaseDriver:   "sqlite",
			DatabaseDSN:      "file:teambot.db",
			DigestRecipients: []string{"u9"},
			NotifyInterval:   2 * time.Hour,
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "sqlite", cfg.DatabaseDriver)
		assert.Equal(t, "file:teambot.db", cfg.DatabaseDSN)
		assert.Equal(t, []string{"u9"}, cfg.DigestRecipients)
		assert.Equal(t, 2*time.Hour, cfg.NotifyInterval)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
