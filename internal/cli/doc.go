// Package cli implements the fleettop command-line interface.
//
// The root command takes a host range and runs the dashboard:
//
//	fleettop [flags] <host-range>
//	fleettop config          - print the effective configuration
//	fleettop hosts [pattern] - list ~/.ssh/config aliases a glob selects
//	fleettop version         - print build information
//
// # Startup
//
// runDashboard expands the range (nodeset, then ~/.ssh/config globs),
// checks stdout is a terminal, routes logging away from the screen, and
// wires the pieces from internal/monitor together: one HostMonitor per
// host and an InputSource feed an Aggregator, a Loop drains it into a
// StatusStore and renders through ui.Program.
//
// # Shutdown
//
// A quit key makes the Loop return, which quits the program. Whichever side
// ends first, the aggregator is closed, every producer stops, and each SSH
// session is closed before Execute returns.
//
// # Flag Handling
//
// Configuration flags live on the root command as persistent flags so
// "fleettop config" sees the same values the dashboard would. They are
// bound into viper by config.Load and only override the config file and
// environment when given explicitly.
package cli
