package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rileyhilliard/fleettop/internal/config"
	rrerrors "github.com/rileyhilliard/fleettop/internal/errors"
	"github.com/spf13/cobra"
)

// Global flags
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fleettop [flags] <host-range>",
	Short: "Live load averages for a fleet of hosts over SSH",
	Long: `fleettop keeps one SSH connection per host and shows every host's load
average in a single terminal dashboard. Unreachable hosts are retried
in the background and shown with the reason they are down.

The host range is a comma-separated list of names with optional numeric
ranges in brackets. Names containing * or ? are matched against the
aliases in ~/.ssh/config.

Keyboard shortcuts:
  q / Esc / Ctrl+C  Quit
  s                 Cycle sort order (name/load/status)
  ?                 Toggle help

Examples:
  fleettop 'node[01-16]'
  fleettop 'web[1-4],db1' --interval 2s
  fleettop 'gpu-*' --user ops --insecure`,
	Args:          cobra.ArbitraryArgs,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		expr, err := hostExpr(args)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		return runDashboard(cmd.Context(), expr, cfg)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	d := config.DefaultConfig()

	flags.StringVar(&cfgFile, "config", "", "config file (default ./"+config.ConfigFileName+", then ~/"+config.GlobalConfigDir+"/"+config.GlobalConfigFile+")")
	flags.StringP("user", "u", "", "SSH user (default from ~/.ssh/config, then $USER)")
	flags.IntP("port", "p", 0, "SSH port (default from ~/.ssh/config, then 22)")
	flags.StringP("identity", "i", "", "private key file")
	flags.String("command", d.Command, "command that prints the load average")
	flags.Duration("interval", d.SampleInterval, "time between samples")
	flags.Duration("retry", d.RetryInterval, "time between connection attempts")
	flags.Duration("tick", d.TickRate, "redraw interval")
	flags.Duration("connect-timeout", d.ConnectTimeout, "TCP connect plus SSH handshake timeout")
	flags.Duration("inactivity-timeout", d.InactivityTimeout, "drop a connection idle for this long (0 disables)")
	flags.Bool(config.InsecureFlag, false, "skip host key verification")
	flags.String("log-file", "", "write logs to this file (default: discard)")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9100")
	flags.Int("history", d.HistorySize, "samples kept for the load trend")

	rootCmd.SetVersionTemplate("fleettop {{.Version}}\n")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError renders err for stderr. Structured errors already carry
// their own layout; cobra's usage errors get a hint.
func formatError(err error) string {
	var rrErr *rrerrors.Error
	if errors.As(err, &rrErr) {
		return err.Error()
	}
	msg := err.Error()
	if isUsageError(msg) {
		return fmt.Sprintf("✗ %s\n\n  Run 'fleettop --help' for usage.\n", msg)
	}
	return fmt.Sprintf("✗ %s\n", msg)
}

func isUsageError(msg string) bool {
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.HasPrefix(msg, "invalid argument") ||
		strings.Contains(msg, "flag needs an argument")
}

// hostExpr joins the positional arguments into one host-range expression,
// so "fleettop web1 'db[1-2]'" works like "fleettop 'web1,db[1-2]'".
func hostExpr(args []string) (string, error) {
	var terms []string
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			terms = append(terms, a)
		}
	}
	if len(terms) == 0 {
		return "", rrerrors.New(rrerrors.ErrRange,
			"No host range given",
			"Usage: fleettop [flags] <host-range>, e.g. fleettop 'node[1-4]'")
	}
	return strings.Join(terms, ","), nil
}

// loadConfig merges defaults, config file, environment and flags, then
// validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, _, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
