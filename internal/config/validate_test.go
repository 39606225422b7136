package config

import (
	"testing"
	"time"

	"github.com/rileyhilliard/fleettop/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"custom command", func(c *Config) { c.Command = "sysctl -n vm.loadavg" }, ""},
		{"port from ssh config", func(c *Config) { c.Port = 0 }, ""},
		{"inactivity disabled", func(c *Config) { c.InactivityTimeout = 0 }, ""},
		{"empty command", func(c *Config) { c.Command = "  " }, "command is empty"},
		{"negative port", func(c *Config) { c.Port = -1 }, "out of range"},
		{"port too big", func(c *Config) { c.Port = 70000 }, "out of range"},
		{"zero interval", func(c *Config) { c.SampleInterval = 0 }, "sample_interval must be positive"},
		{"tiny interval", func(c *Config) { c.SampleInterval = 10 * time.Millisecond }, "sample_interval of 10ms is too short"},
		{"negative retry", func(c *Config) { c.RetryInterval = -time.Second }, "retry_interval must be positive"},
		{"zero tick", func(c *Config) { c.TickRate = 0 }, "tick_rate must be positive"},
		{"zero connect timeout", func(c *Config) { c.ConnectTimeout = 0 }, "connect_timeout must be positive"},
		{"negative inactivity", func(c *Config) { c.InactivityTimeout = -1 }, "can't be negative"},
		{"inactivity not above interval", func(c *Config) {
			c.SampleInterval = 5 * time.Second
			c.InactivityTimeout = 5 * time.Second
		}, "must be longer than sample_interval"},
		{"no history", func(c *Config) { c.HistorySize = 0 }, "history_size must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
