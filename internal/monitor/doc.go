// Package monitor is the connection-and-polling engine behind the dashboard.
//
// # Architecture
//
// Every source of change is a producer writing events into one Aggregator:
//
//	HostMonitor  - one per host; connects, retries, samples the load command
//	InputSource  - terminal notifications fed by the UI, plus a fixed tick
//
// A single Loop reads the Aggregator, folds each event into the StatusStore
// and hands a Snapshot to the Renderer. Nothing else touches the store.
//
// # Host lifecycle
//
//	Connecting ──dial ok──▶ (connected) ──sample ok──▶ Up(load)
//	    │                        │
//	  dial err              sample err ──▶ Down(reason)
//	    ▼                        │
//	Down(reason) ◀───────────────┘
//
// A connection-level failure while sampling drops the session; the next retry
// reports Connecting again and dials a fresh one. Retries never stop.
//
// # Shutdown
//
// Closing the Aggregator is the only shutdown signal. Producers see ErrClosed
// from Send (or Done() firing) and return quietly; HostMonitors close their
// sessions on the way out.
package monitor
