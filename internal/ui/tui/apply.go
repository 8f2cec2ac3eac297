package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// RunApplyTUI wraps the apply flow with a Bubble Tea TUI.
// runFn performs the actual work, sending progress updates on the channel;
// its error, if any, ends the program and is returned to the caller.
func RunApplyTUI(ctx context.Context, release, namespace string, runFn func(ch chan<- tea.Msg) error) error {
	m := NewModel(release, namespace)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Run the apply flow in a background goroutine
	go func() {
		ch := make(chan tea.Msg, 16)
		go func() {
			defer close(ch)
			if err := runFn(ch); err != nil {
				p.Send(ErrMsg{Err: err})
			}
		}()

		for msg := range ch {
			p.Send(msg)
		}

		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}
