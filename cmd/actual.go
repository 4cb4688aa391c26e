package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/golive/internal/planner"
)

var actualCmd = &cobra.Command{
	Use:   "actual WORK STAGE",
	Short: "Record actual dates or the responsible person of a stage",
	Long: `Record what really happened on a stage. STAGE is a catalog key or the
stage name. Only the flags given are changed; pass an empty value
(e.g. --end "") to clear a date.`,
	Args: cobra.ExactArgs(2),
	RunE: runActual,
}

func init() {
	actualCmd.Flags().String("start", "", "actual start date (YYYY-MM-DD)")
	actualCmd.Flags().String("end", "", "actual end date (YYYY-MM-DD)")
	actualCmd.Flags().String("responsible", "", "person responsible for the stage")
	actualCmd.Flags().Bool("construction", false, "edit the construction schedule")
	rootCmd.AddCommand(actualCmd)
}

func runActual(cmd *cobra.Command, args []string) error {
	var edit planner.Edit
	start, set, err := dateFlag(cmd, "start")
	if err != nil {
		return err
	}
	if set {
		edit.ActualStart = &start
	}
	end, set, err := dateFlag(cmd, "end")
	if err != nil {
		return err
	}
	if set {
		edit.ActualEnd = &end
	}
	if cmd.Flags().Changed("responsible") {
		who, _ := cmd.Flags().GetString("responsible")
		edit.Responsible = &who
	}
	edit.Construction, _ = cmd.Flags().GetBool("construction")
	if edit.ActualStart == nil && edit.ActualEnd == nil && edit.Responsible == nil {
		return errors.New("actual: nothing to record; give --start, --end or --responsible")
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	pl, err := e.planner.RecordActual(cmd.Context(), args[0], args[1], edit)
	if err != nil {
		e.printer.Error(err.Error())
		return err
	}

	snap := pl.Data.Schedule
	if edit.Construction {
		snap = pl.Data.ConstructionSchedule
	}
	e.printer.ActualRecorded(snap[snap.Find(args[1])])
	return nil
}
