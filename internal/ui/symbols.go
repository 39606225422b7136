package ui

// Unicode symbols for host status indicators.
const (
	SymbolUp         = "●" // Last sample succeeded
	SymbolDown       = "✗" // Last connect or sample failed
	SymbolConnecting = "◐" // Static fallback for the connecting spinner
)
