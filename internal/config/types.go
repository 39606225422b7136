package config

import (
	"time"

	"github.com/rileyhilliard/fleettop/internal/monitor"
	"github.com/rileyhilliard/fleettop/pkg/sshutil"
)

// Config is the effective fleettop configuration after defaults, config
// file, environment and flags have been merged.
type Config struct {
	// SSH settings applied to every host. Values in ~/.ssh/config fill in
	// whatever is left empty here; user@ and :port in a host name win over both.
	User                  string        `mapstructure:"user"`
	Port                  int           `mapstructure:"port"`
	IdentityFile          string        `mapstructure:"identity_file"`
	ConnectTimeout        time.Duration `mapstructure:"connect_timeout"`
	InactivityTimeout     time.Duration `mapstructure:"inactivity_timeout"`
	StrictHostKeyChecking bool          `mapstructure:"strict_host_key_checking"`

	// Command is run on every host each sample interval.
	Command        string        `mapstructure:"command"`
	SampleInterval time.Duration `mapstructure:"sample_interval"`
	RetryInterval  time.Duration `mapstructure:"retry_interval"`
	TickRate       time.Duration `mapstructure:"tick_rate"`

	// HistorySize is how many samples the per-host trend keeps.
	HistorySize int `mapstructure:"history_size"`

	// LogFile receives log output while the dashboard owns the terminal.
	// Empty discards it.
	LogFile string `mapstructure:"log_file"`

	// MetricsAddr serves Prometheus metrics when set (e.g. ":9100").
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// Defaults
const (
	DefaultCommand           = monitor.DefaultCommand
	DefaultSampleInterval    = monitor.DefaultSampleInterval
	DefaultRetryInterval     = monitor.DefaultRetryInterval
	DefaultTickRate          = monitor.DefaultTickRate
	DefaultConnectTimeout    = 10 * time.Second
	DefaultInactivityTimeout = 5 * time.Second
	DefaultHistorySize       = monitor.DefaultHistorySize
)

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	return &Config{
		Command:               DefaultCommand,
		SampleInterval:        DefaultSampleInterval,
		RetryInterval:         DefaultRetryInterval,
		TickRate:              DefaultTickRate,
		ConnectTimeout:        DefaultConnectTimeout,
		InactivityTimeout:     DefaultInactivityTimeout,
		StrictHostKeyChecking: true,
		HistorySize:           DefaultHistorySize,
	}
}

// SSHOptions returns the connection settings for sshutil.
func (c *Config) SSHOptions() sshutil.Options {
	return sshutil.Options{
		User:                  c.User,
		Port:                  c.Port,
		IdentityFile:          c.IdentityFile,
		ConnectTimeout:        c.ConnectTimeout,
		InactivityTimeout:     c.InactivityTimeout,
		StrictHostKeyChecking: c.StrictHostKeyChecking,
	}
}

// MonitorOptions returns the per-host monitor settings. The logger is left
// for the caller to set per host.
func (c *Config) MonitorOptions() monitor.MonitorOptions {
	return monitor.MonitorOptions{
		Command:        c.Command,
		SampleInterval: c.SampleInterval,
		RetryInterval:  c.RetryInterval,
	}
}

// Display returns the configuration as plain values for printing, with
// durations in their string form.
func (c *Config) Display() map[string]any {
	return map[string]any{
		"user":                     c.User,
		"port":                     c.Port,
		"identity_file":            c.IdentityFile,
		"connect_timeout":          c.ConnectTimeout.String(),
		"inactivity_timeout":       c.InactivityTimeout.String(),
		"strict_host_key_checking": c.StrictHostKeyChecking,
		"command":                  c.Command,
		"sample_interval":          c.SampleInterval.String(),
		"retry_interval":           c.RetryInterval.String(),
		"tick_rate":                c.TickRate.String(),
		"history_size":             c.HistorySize,
		"log_file":                 c.LogFile,
		"metrics_addr":             c.MetricsAddr,
	}
}
