package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/golive/internal/planner"
	"github.com/papapumpkin/golive/internal/timeline"
)

var statusCmd = &cobra.Command{
	Use:   "status WORK",
	Short: "Show progress metrics and the go-live countdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

var phasesCmd = &cobra.Command{
	Use:   "phases WORK",
	Short: "Show the macro-phase rollup",
	Args:  cobra.ExactArgs(1),
	RunE:  runPhases,
}

var varianceCmd = &cobra.Command{
	Use:   "variance WORK",
	Short: "Show start and end variance of stages with actual dates",
	Args:  cobra.ExactArgs(1),
	RunE:  runVariance,
}

func init() {
	for _, c := range []*cobra.Command{statusCmd, phasesCmd, varianceCmd} {
		c.Flags().String("today", "", "reference date (default: today)")
		rootCmd.AddCommand(c)
	}
}

// loadReport opens the env and builds the report of the work named by args.
func loadReport(cmd *cobra.Command, workID string, opts planner.ReportOptions) (*env, planner.Report, error) {
	today, err := todayFlag(cmd)
	if err != nil {
		return nil, planner.Report{}, err
	}
	opts.Today = today

	e, err := openEnv(cmd)
	if err != nil {
		return nil, planner.Report{}, err
	}
	if opts.Granularity == "" {
		if opts.Granularity, err = timeline.ParseGranularity(e.cfg.DefaultZoom); err != nil {
			e.printer.Warn(fmt.Sprintf("default_zoom: %v; using week", err))
			opts.Granularity = timeline.Week
		}
	}

	rep, err := e.planner.Report(cmd.Context(), workID, opts)
	if err != nil {
		e.printer.Error(err.Error())
		e.Close()
		return nil, planner.Report{}, err
	}
	return e, rep, nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, rep, err := loadReport(cmd, args[0], planner.ReportOptions{})
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) [%s]\n\n", rep.Work.Name, rep.Work.ID, rep.Planning.Status)
	e.renderer(cmd).Metrics(rep.Metrics, rep.Work.GoLive, rep.Today)
	return nil
}

func runPhases(cmd *cobra.Command, args []string) error {
	e, rep, err := loadReport(cmd, args[0], planner.ReportOptions{})
	if err != nil {
		return err
	}
	defer e.Close()

	e.renderer(cmd).Phases(rep.Phases)
	return nil
}

func runVariance(cmd *cobra.Command, args []string) error {
	e, rep, err := loadReport(cmd, args[0], planner.ReportOptions{})
	if err != nil {
		return err
	}
	defer e.Close()

	e.renderer(cmd).Variances(rep.Variances)
	return nil
}
