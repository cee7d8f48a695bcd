package cmd

import "errors"

// Error classes reported by a backup run. Only ErrMissingSource is non-fatal:
// the orchestrator logs it and moves on to the next directory.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrConnectivity  = errors.New("connectivity error")
	ErrMissingSource = errors.New("source directory not found")
	ErrTransfer      = errors.New("transfer failed")
)
