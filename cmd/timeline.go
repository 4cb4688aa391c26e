package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/golive/internal/catalog"
	"github.com/papapumpkin/golive/internal/planner"
	"github.com/papapumpkin/golive/internal/timeline"
	"github.com/papapumpkin/golive/internal/tui"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline WORK",
	Short: "Draw the Gantt timeline of a work",
	Long: `Draw planned bars and actual bars of every stage on a day, week or month
scale. Actual bars are coloured by how they compare with the plan; with
--construction the construction schedule is drawn and stages carrying an SLA
limit are coloured by how much of it has elapsed.

With --interactive the chart opens in a full-screen viewer that scrolls,
zooms and picks up edits to the catalog file as they are saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runTimeline,
}

func init() {
	timelineCmd.Flags().StringP("zoom", "z", "", "granularity: day, week or month (default from config)")
	timelineCmd.Flags().Bool("construction", false, "draw the construction schedule")
	timelineCmd.Flags().String("today", "", "reference date for open bars (default: today)")
	timelineCmd.Flags().BoolP("interactive", "i", false, "open the interactive viewer")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	opts := planner.ReportOptions{}
	if zoom, _ := cmd.Flags().GetString("zoom"); zoom != "" {
		g, err := timeline.ParseGranularity(zoom)
		if err != nil {
			return err
		}
		opts.Granularity = g
	}
	if construction, _ := cmd.Flags().GetBool("construction"); construction {
		opts.Kind = timeline.KindConstruction
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		return runTimelineInteractive(cmd, args[0], opts)
	}

	e, rep, err := loadReport(cmd, args[0], opts)
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) go-live %s\n\n", rep.Work.Name, rep.Work.ID, orDash(rep.Work.GoLive.String()))
	e.renderer(cmd).Gantt(rep.Timeline, rep.Today)
	return nil
}

func runTimelineInteractive(cmd *cobra.Command, workID string, opts planner.ReportOptions) error {
	today, err := todayFlag(cmd)
	if err != nil {
		return err
	}
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if opts.Granularity == "" {
		if opts.Granularity, err = timeline.ParseGranularity(e.cfg.DefaultZoom); err != nil {
			opts.Granularity = timeline.Week
		}
	}

	viewerOpts := tui.Options{
		WorkID:      workID,
		Granularity: opts.Granularity,
		Kind:        opts.Kind,
		Today:       today,
	}

	w, err := catalog.NewWatcher(e.cfg.CatalogPath)
	if err == nil {
		defer w.Stop()
		err = w.Start()
	}
	if err != nil {
		e.printer.Warn(fmt.Sprintf("catalog hot reload disabled: %v", err))
	} else {
		viewerOpts.Reloads = w.Reloads
	}

	return tui.Run(cmd.Context(), e.planner, viewerOpts)
}
