package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/fleettop/internal/errors"
)

// MinInterval is the shortest sample or retry interval accepted. Anything
// faster just hammers the hosts.
const MinInterval = 100 * time.Millisecond

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Command) == "" {
		return errors.New(errors.ErrConfig,
			"Sample command is empty",
			"Set 'command' or pass --command, e.g. --command 'cat /proc/loadavg'")
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Port %d is out of range", cfg.Port),
			"Use a port between 1 and 65535, or 0 to take it from ~/.ssh/config")
	}

	durations := []struct {
		name string
		val  time.Duration
		min  time.Duration
	}{
		{"sample_interval", cfg.SampleInterval, MinInterval},
		{"retry_interval", cfg.RetryInterval, MinInterval},
		{"tick_rate", cfg.TickRate, time.Millisecond},
		{"connect_timeout", cfg.ConnectTimeout, time.Millisecond},
	}
	for _, d := range durations {
		if err := validateDuration(d.name, d.val, d.min); err != nil {
			return err
		}
	}

	if cfg.InactivityTimeout < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("inactivity_timeout can't be negative (got %s)", cfg.InactivityTimeout),
			"Use 0 to disable it, or a duration like 5s")
	}
	if cfg.InactivityTimeout > 0 && cfg.InactivityTimeout <= cfg.SampleInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("inactivity_timeout (%s) must be longer than sample_interval (%s)",
				cfg.InactivityTimeout, cfg.SampleInterval),
			"Healthy connections would be dropped between samples. Raise inactivity_timeout or lower sample_interval.")
	}

	if cfg.HistorySize < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("history_size must be at least 1 (got %d)", cfg.HistorySize),
			fmt.Sprintf("The default is %d samples", DefaultHistorySize))
	}

	return nil
}

func validateDuration(name string, val, minVal time.Duration) error {
	if val <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s must be positive (got %s)", name, val),
			"Use a duration like 500ms or 2s")
	}
	if val < minVal {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s of %s is too short", name, val),
			fmt.Sprintf("Use at least %s", minVal))
	}
	return nil
}
