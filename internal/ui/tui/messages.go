// Package tui provides a Bubble Tea-based terminal UI for apply progress.
package tui

// PhaseMsg reports progress of an apply phase.
type PhaseMsg struct {
	Phase string
	Done  bool
	Err   error
}

// DocumentMsg reports a document submitted during the apply phase.
type DocumentMsg struct {
	Kind    string
	Name    string
	Applied int
	Total   int
}

// RolloutMsg carries the latest Deployment replica counts.
type RolloutMsg struct {
	Ready   int32
	Desired int32
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete.
type DoneMsg struct{}
