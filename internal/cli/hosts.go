package cli

import (
	"fmt"
	"io"

	"github.com/rileyhilliard/fleettop/internal/errors"
	"github.com/rileyhilliard/fleettop/internal/ui"
	"github.com/rileyhilliard/fleettop/pkg/sshutil"
	"github.com/spf13/cobra"
)

var hostsCmd = &cobra.Command{
	Use:   "hosts [pattern]",
	Short: "List ~/.ssh/config hosts a pattern would select",
	Long: `List the concrete host aliases in ~/.ssh/config, optionally filtered by a
glob pattern. Patterns work the same way in a host range.

Examples:
  fleettop hosts
  fleettop hosts 'gpu-*'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := sshutil.ParseSSHConfig()
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't read ~/.ssh/config",
				"Check the file is readable and well-formed.")
		}

		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}
		return listHosts(cmd.OutOrStdout(), entries, pattern)
	},
}

func init() {
	rootCmd.AddCommand(hostsCmd)
}

// listHosts writes the entries matching pattern (all of them when empty)
// as a table.
func listHosts(w io.Writer, entries []sshutil.SSHHostEntry, pattern string) error {
	if pattern != "" {
		matched, err := sshutil.MatchHosts(entries, pattern)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrRange,
				"Invalid host pattern '"+pattern+"'",
				"Use * and ? as wildcards, e.g. 'web-*'")
		}
		entries = matched
	}

	if len(entries) == 0 {
		if pattern != "" {
			fmt.Fprintf(w, "No hosts in ~/.ssh/config match '%s'\n", pattern)
		} else {
			fmt.Fprintln(w, "No hosts in ~/.ssh/config")
		}
		return nil
	}

	columns := []ui.TableColumn{
		{Title: "ALIAS"},
		{Title: "HOSTNAME"},
		{Title: "USER"},
		{Title: "PORT"},
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Alias, orDash(e.Hostname), orDash(e.User), orDash(e.Port)})
	}

	fmt.Fprintln(w, ui.RenderSimpleTable(columns, rows))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
