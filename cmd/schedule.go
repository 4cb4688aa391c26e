package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/golive/internal/catalog"
	"github.com/papapumpkin/golive/internal/config"
	"github.com/papapumpkin/golive/internal/schedule"
	"github.com/papapumpkin/golive/internal/ui"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [WORK]",
	Short: "Show the backward schedule of a work",
	Long: `Show the planned calendar of a work, computed backward from its go-live
date, together with any recorded actual dates.

With --go-live and no WORK, computes a schedule for that date from the
catalog alone without touching the database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().String("go-live", "", "compute a throwaway schedule for this go-live date")
	scheduleCmd.Flags().Bool("recompute", false, "rebuild the stored schedule with the current catalog")
	scheduleCmd.Flags().String("today", "", "reference date for running durations (default: today)")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	today, err := todayFlag(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		goLive, set, err := dateFlag(cmd, "go-live")
		if err != nil {
			return err
		}
		if !set || goLive.IsZero() {
			return errors.New("schedule: give a WORK or --go-live")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cat, _, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return err
		}
		noColor, _ := cmd.Flags().GetBool("no-color")
		ui.NewRenderer(cmd.OutOrStdout(), noColor).Schedule(schedule.Compute(goLive, nil, cat), today)
		return nil
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	w, pl, err := e.planner.Open(cmd.Context(), args[0])
	if err != nil {
		e.printer.Error(err.Error())
		return err
	}
	if recompute, _ := cmd.Flags().GetBool("recompute"); recompute {
		if pl, err = e.planner.Recompute(cmd.Context(), args[0]); err != nil {
			e.printer.Error(err.Error())
			return err
		}
	}

	e.printer.ScheduleReady(w, pl)
	e.renderer(cmd).Schedule(pl.Data.Schedule, today)
	return nil
}
