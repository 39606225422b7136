package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/fleettop/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.User = "ops"
	cfg.SampleInterval = 2 * time.Second

	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, cfg, "/etc/fleettop.yaml"))

	out := buf.String()
	assert.Contains(t, out, "# loaded from /etc/fleettop.yaml\n")
	assert.Contains(t, out, "sample_interval: 2s")
	assert.Contains(t, out, "user: ops")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded), "output is valid YAML")
	assert.Equal(t, "cat /proc/loadavg", decoded["command"])
	assert.Equal(t, 60, decoded["history_size"])
}

func TestWriteConfig_NoFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, config.DefaultConfig(), ""))
	assert.Contains(t, buf.String(), "# no config file found\n")
}

// The printed config is a valid config file: loading it back gives the
// same settings.
func TestWriteConfig_RoundTrips(t *testing.T) {
	dir := isolate(t)
	cfg := config.DefaultConfig()
	cfg.Port = 2200
	cfg.TickRate = 100 * time.Millisecond
	cfg.StrictHostKeyChecking = false

	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, cfg, ""))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), buf.Bytes(), 0o644))

	loaded, _, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigCmd(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName),
		[]byte("command: uptime\n"), 0o644))

	out, err := execute(t, "config", "--retry", "3s")
	require.NoError(t, err)

	assert.Contains(t, out, "# loaded from "+filepath.Join(dir, config.ConfigFileName))
	assert.Contains(t, out, "command: uptime")
	assert.Contains(t, out, "retry_interval: 3s")
	assert.Contains(t, out, "sample_interval: 1s")
}
