package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/golive/internal/catalog"
	"github.com/papapumpkin/golive/internal/planner"
)

// MsgReport carries a freshly built report, or the error that prevented it.
type MsgReport struct {
	Report planner.Report
	Err    error
}

// MsgCatalogReload is sent when the catalog file changed on disk.
type MsgCatalogReload struct {
	Reload catalog.Reload
}

// MsgRecomputed is sent after a forced schedule recompute finished.
type MsgRecomputed struct {
	Err error
}

// loadReport builds the report of workID in the background.
func loadReport(ctx context.Context, src Source, workID string, opts planner.ReportOptions) tea.Cmd {
	return func() tea.Msg {
		rep, err := src.Report(ctx, workID, opts)
		return MsgReport{Report: rep, Err: err}
	}
}

// recompute forces a schedule recompute of workID with the current catalog.
func recompute(ctx context.Context, src Source, workID string) tea.Cmd {
	return func() tea.Msg {
		_, err := src.Recompute(ctx, workID)
		return MsgRecomputed{Err: err}
	}
}

// waitForReload blocks until the watcher delivers the next catalog reload. It
// returns nil once the channel is closed.
func waitForReload(ch <-chan catalog.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return MsgCatalogReload{Reload: r}
	}
}
