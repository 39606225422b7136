package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/fleettop/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the config file looked up in the current directory.
	ConfigFileName = ".fleettop.yaml"
	// GlobalConfigDir is the directory for global config, relative to home.
	GlobalConfigDir = ".config/fleettop"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. FLEETTOP_SAMPLE_INTERVAL.
	EnvPrefix = "FLEETTOP"
)

// Command-line flags and the config keys they set. Flags only override
// when given explicitly.
var FlagKeys = map[string]string{
	"user":               "user",
	"port":               "port",
	"identity":           "identity_file",
	"command":            "command",
	"interval":           "sample_interval",
	"retry":              "retry_interval",
	"tick":               "tick_rate",
	"connect-timeout":    "connect_timeout",
	"inactivity-timeout": "inactivity_timeout",
	"log-file":           "log_file",
	"metrics-addr":       "metrics_addr",
	"history":            "history_size",
}

// InsecureFlag turns strict host key checking off when set.
const InsecureFlag = "insecure"

// Load builds the effective config. Precedence, lowest first: defaults,
// config file, FLEETTOP_* environment, explicitly set flags.
//
// explicit is the --config value; flags may be nil. Returns the config and
// the path of the file that was read, empty when none was found.
func Load(explicit string, flags *pflag.FlagSet) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file "+path,
				"Check the file exists and is valid YAML")
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, "", err
		}
	}

	cfg, err := parseConfig(v, path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .fleettop.yaml in the current directory
// 3. ~/.config/fleettop/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		explicit = ExpandPath(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Global config
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "your environment and flags"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+where+" (durations look like 500ms or 2s)")
	}

	cfg.IdentityFile = ExpandPath(cfg.IdentityFile)
	cfg.LogFile = ExpandPath(cfg.LogFile)

	return cfg, nil
}

// setDefaults registers every key so environment overrides are picked up
// by Unmarshal even when the config file doesn't mention them.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("user", d.User)
	v.SetDefault("port", d.Port)
	v.SetDefault("identity_file", d.IdentityFile)
	v.SetDefault("connect_timeout", d.ConnectTimeout.String())
	v.SetDefault("inactivity_timeout", d.InactivityTimeout.String())
	v.SetDefault("strict_host_key_checking", d.StrictHostKeyChecking)
	v.SetDefault("command", d.Command)
	v.SetDefault("sample_interval", d.SampleInterval.String())
	v.SetDefault("retry_interval", d.RetryInterval.String())
	v.SetDefault("tick_rate", d.TickRate.String())
	v.SetDefault("history_size", d.HistorySize)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("metrics_addr", d.MetricsAddr)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range FlagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to bind flag --"+name, "")
		}
	}

	// --insecure is the inverse of strict_host_key_checking, so it can't be
	// bound directly.
	if f := flags.Lookup(InsecureFlag); f != nil && f.Changed {
		insecure, err := flags.GetBool(InsecureFlag)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Invalid value for --"+InsecureFlag, "")
		}
		v.Set("strict_host_key_checking", !insecure)
	}
	return nil
}
