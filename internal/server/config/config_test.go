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

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"server"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, 1*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 20, cfg.PageSize)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestLoadConfig_Flags(t *testing.T) {
	resetArgs(t, "-a", ":9090", "-s", "flag-secret", "-t", "30", "-n", "5")

	cfg := LoadConfig()

	assert.Equal(t, ":9090", cfg.EndpointAddrHTTP)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.TokenValidityDuration)
	assert.Equal(t, 5, cfg.PageSize)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	payload, err := json.Marshal(map[string]any{
		"endpoint_addr_http":      ":7070",
		"secret_key":              "json-secret",
		"token_validity_duration": "45m",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, payload, 0o600))

	resetArgs(t, "-c", file)

	cfg := LoadConfig()

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 45*time.Minute, cfg.TokenValidityDuration)
	// untouched values keep their defaults
	assert.Equal(t, 20, cfg.PageSize)
}

func TestLoadConfig_FlagsWinOverJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"endpoint_addr_http": ":7070"}`), 0o600))

	resetArgs(t, "-c", file, "-a", ":6060")

	cfg := LoadConfig()
	assert.Equal(t, ":6060", cfg.EndpointAddrHTTP)
}
