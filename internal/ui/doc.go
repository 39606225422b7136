// Package ui draws the fleettop dashboard.
//
// The terminal is run by a bubbletea Program. The program never holds host
// state of its own: key, mouse and resize messages are forwarded to the main
// loop through a Feeder, and the main loop pushes back a monitor.Snapshot
// whenever something changes (Program implements monitor.Renderer).
//
// # Components Overview
//
//	Render        - Pure function from a snapshot and view state to a frame
//	Model         - bubbletea model: forwards input, keeps sort/help state
//	Program       - Runs the model; coalesces frames from the main loop
//	KeyMap        - bubbles/key bindings, also used to detect quit keys
//	Sparkline     - Load history next to each host
//	RenderSimpleTable - Plain table output for CLI subcommands
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Hosts up, low load
//	ColorError     (red)    - Hosts down, high load
//	ColorWarning   (yellow) - Elevated load
//	ColorSecondary (blue)   - Connecting
//	ColorMuted     (gray)   - Secondary text
package ui
