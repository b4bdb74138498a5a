package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "/tmp/insights-result", cfg.Paths.Result)
	assert.Equal(t, "/etc/insights-client/.registered", cfg.Paths.Registered)
	assert.Equal(t, "/etc/insights-client/.lastupload", cfg.Paths.LastUpload)
	assert.Equal(t, time.Duration(0), cfg.Client.Timeout)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `client:
  timeout: 90s
paths:
  result: /var/tmp/result.json
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("GETINSIGHTS_PATHS_LAST_UPLOAD", "/run/lastupload")
	t.Setenv("GETINSIGHTS_METRICS_TEXTFILE", "/var/lib/node_exporter/insights.prom")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "/var/tmp/result.json", cfg.Paths.Result)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/run/lastupload", cfg.Paths.LastUpload)
	assert.Equal(t, "/var/lib/node_exporter/insights.prom", cfg.Metrics.Textfile)
	// untouched keys keep defaults
	assert.Equal(t, "insights-client", cfg.Client.Binary)
	assert.Equal(t, "/etc/insights-client/.registered", cfg.Paths.Registered)
}

func TestLoadConfigHomeFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".getinsights"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".getinsights", "config.yaml"), []byte("client:\n  binary: /opt/insights/bin/insights-client\n"), 0644))

	if _, err := os.Stat("/etc/getinsights/config.yaml"); err == nil {
		t.Skip("system config present")
	}

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/opt/insights/bin/insights-client", cfg.Client.Binary)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client:\n  binary: \"\"\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client.binary")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "etc", "config.yaml")

	cfg := DefaultConfig()
	cfg.Client.Timeout = 5 * time.Minute
	cfg.Metrics.Textfile = "/tmp/insights.prom"
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
