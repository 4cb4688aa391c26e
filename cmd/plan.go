package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/golive/internal/planning"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Change a planning: status, action plans and construction stages",
}

var planStatusCmd = &cobra.Command{
	Use:   "status WORK STATUS",
	Short: "Set the planning status (Rascunho, Ativo, Concluído, Arquivado)",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlanStatus,
}

var planActionCmd = &cobra.Command{
	Use:   "action WORK STAGE",
	Short: "Attach a corrective action plan to a stage",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlanAction,
}

var planStageCmd = &cobra.Command{
	Use:   "stage WORK NAME",
	Short: "Add a stage to the construction schedule",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlanStage,
}

func init() {
	planActionCmd.Flags().String("type", string(planning.ActionPlanning), "schedule the stage belongs to: planning or construction")
	planActionCmd.Flags().String("start", "", "start date of the action (YYYY-MM-DD)")
	planActionCmd.Flags().Int("sla", 0, "days allotted to the action")
	planActionCmd.Flags().String("description", "", "what will be done")

	planStageCmd.Flags().String("start", "", "planned start date (YYYY-MM-DD)")
	planStageCmd.Flags().Int("sla", 0, "days allotted to the stage")
	planStageCmd.Flags().Int("sla-limit", 0, "tolerated days before the stage counts as late")

	planCmd.AddCommand(planStatusCmd, planActionCmd, planStageCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlanStatus(cmd *cobra.Command, args []string) error {
	status, err := planning.ParseStatus(args[1])
	if err != nil {
		return err
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if _, err := e.planner.SetStatus(cmd.Context(), args[0], status); err != nil {
		e.printer.Error(err.Error())
		return err
	}
	e.printer.StatusChanged(args[0], status)
	return nil
}

func runPlanAction(cmd *cobra.Command, args []string) error {
	typ, _ := cmd.Flags().GetString("type")
	start, set, err := dateFlag(cmd, "start")
	if err != nil {
		return err
	}
	if !set || start.IsZero() {
		return errors.New("plan action: --start is required")
	}
	sla, _ := cmd.Flags().GetInt("sla")
	desc, _ := cmd.Flags().GetString("description")

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ap, err := e.planner.AddActionPlan(cmd.Context(), args[0], planning.ActionType(typ), args[1], start, sla, desc)
	if err != nil {
		e.printer.Error(err.Error())
		return err
	}
	e.printer.ActionPlanAdded(ap)
	return nil
}

func runPlanStage(cmd *cobra.Command, args []string) error {
	start, _, err := dateFlag(cmd, "start")
	if err != nil {
		return err
	}
	sla, _ := cmd.Flags().GetInt("sla")
	limit, _ := cmd.Flags().GetInt("sla-limit")

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	rec, err := e.planner.AddConstructionStage(cmd.Context(), args[0], args[1], start, sla, limit)
	if err != nil {
		e.printer.Error(err.Error())
		return err
	}
	e.printer.Success(fmt.Sprintf("construction stage %q added: %s → %s", rec.Name, orDash(rec.PlannedStart.String()), orDash(rec.PlannedEnd.String())))
	return nil
}
