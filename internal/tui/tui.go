// Package tui is the interactive timeline viewer: a Gantt chart of one work's
// schedule with zoom, horizontal scrolling, a phase rollup tab and live
// catalog reloads.
package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program showing the timeline of one work.
// The program uses the alternate screen buffer for a clean TUI experience.
func NewProgram(ctx context.Context, src Source, opts Options, extra ...tea.ProgramOption) *Program {
	model := NewAppModel(ctx, src, opts)

	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}
	allOpts = append(allOpts, extra...)

	return tea.NewProgram(model, allOpts...)
}

// Run creates and runs a viewer, blocking until it exits.
func Run(ctx context.Context, src Source, opts Options) error {
	p := NewProgram(ctx, src, opts)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs TUI output to the given writer.
// Useful for testing or redirecting output.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}
