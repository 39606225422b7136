package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/.ssh/id_ed25519", filepath.Join(home, ".ssh", "id_ed25519")},
		{"/abs/path", "/abs/path"},
		{"relative/~", "relative/~"},
		{"~other/key", "~other/key"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandTilde(tt.in))
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USER", "ops")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, filepath.Join(home, "fleettop.log"), ExpandPath("${HOME}/fleettop.log"))
	assert.Equal(t, "/var/log/ops.log", ExpandPath("/var/log/${USER}.log"))
	assert.Equal(t, filepath.Join(home, "keys", "ops"), ExpandPath("~/keys/${USER}"))
}

func TestGetUser_Fallbacks(t *testing.T) {
	t.Setenv("USER", "")
	t.Setenv("LOGNAME", "logname")
	assert.Equal(t, "logname", getUser())

	t.Setenv("LOGNAME", "")
	t.Setenv("USERNAME", "")
	assert.Equal(t, "user", getUser())
}
