package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/golive/internal/catalog"
	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/config"
	"github.com/papapumpkin/golive/internal/planner"
	"github.com/papapumpkin/golive/internal/store"
	"github.com/papapumpkin/golive/internal/telemetry"
	"github.com/papapumpkin/golive/internal/ui"
)

// env bundles the services a command needs, built from the loaded config.
type env struct {
	cfg     config.Config
	store   *store.Store
	events  *telemetry.Emitter
	planner *planner.Planner
	printer *ui.Printer
	noColor bool
}

// openEnv loads the config, the catalog, the database and the telemetry
// stream. Callers must Close the returned env.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	noColor, _ := cmd.Flags().GetBool("no-color")
	printer := ui.New(noColor)

	cat, phases, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	if cfg.DBDriver == store.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	st, err := store.Open(cmd.Context(), cfg.DBDriver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	events, err := telemetry.NewEmitter(cfg.TelemetryPath)
	if err != nil {
		// The audit stream is optional; keep working without it.
		printer.Warn(fmt.Sprintf("telemetry disabled: %v", err))
		events = nil
	}

	if cfg.Verbose {
		printer.Info(fmt.Sprintf("db=%s:%s catalog=%s (%d stages)", cfg.DBDriver, cfg.DSN, cfg.CatalogPath, cat.Len()))
	}

	return &env{
		cfg:     cfg,
		store:   st,
		events:  events,
		planner: planner.New(st, cat, phases, events),
		printer: printer,
		noColor: noColor,
	}, nil
}

// Close releases the database and the telemetry file.
func (e *env) Close() {
	_ = e.events.Close()
	_ = e.store.Close()
}

// renderer returns a report renderer on the command's stdout.
func (e *env) renderer(cmd *cobra.Command) *ui.Renderer {
	return ui.NewRenderer(cmd.OutOrStdout(), e.noColor)
}

// dateFlag reads a YYYY-MM-DD flag. set is false when the flag was not given;
// an empty value yields the zero date, which clears a stored date.
func dateFlag(cmd *cobra.Command, name string) (d civil.Date, set bool, err error) {
	if !cmd.Flags().Changed(name) {
		return civil.Date{}, false, nil
	}
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return civil.Date{}, true, nil
	}
	d, err = civil.ParseStrict(raw)
	if err != nil {
		return civil.Date{}, true, fmt.Errorf("--%s: %w", name, err)
	}
	return d, true, nil
}

// todayFlag returns the --today override, or the local date.
func todayFlag(cmd *cobra.Command) (civil.Date, error) {
	d, set, err := dateFlag(cmd, "today")
	if err != nil {
		return civil.Date{}, err
	}
	if !set || d.IsZero() {
		return civil.Today(), nil
	}
	return d, nil
}
