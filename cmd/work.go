package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/golive/internal/planning"
	"github.com/papapumpkin/golive/internal/store"
)

var workCmd = &cobra.Command{
	Use:   "work",
	Short: "Manage works (store openings)",
}

var workAddCmd = &cobra.Command{
	Use:   "add ID",
	Short: "Create or update a work",
	Long: `Create a work, or update the one with the same ID. Flags that are not
given keep their stored value. A changed --go-live date moves the schedule on
its next use; recorded actual dates are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkAdd,
}

var workListCmd = &cobra.Command{
	Use:   "list",
	Short: "List works",
	Args:  cobra.NoArgs,
	RunE:  runWorkList,
}

func init() {
	workAddCmd.Flags().String("name", "", "display name")
	workAddCmd.Flags().String("regional", "", "regional office")
	workAddCmd.Flags().String("go-live", "", "go-live date (YYYY-MM-DD); empty clears it")
	workCmd.AddCommand(workAddCmd, workListCmd)
	rootCmd.AddCommand(workCmd)
}

func runWorkAdd(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	w, err := e.store.GetWork(cmd.Context(), args[0])
	switch {
	case errors.Is(err, store.ErrNotFound):
		w = planning.Work{ID: args[0]}
	case err != nil:
		e.printer.Error(err.Error())
		return err
	}

	if cmd.Flags().Changed("name") {
		w.Name, _ = cmd.Flags().GetString("name")
	}
	if cmd.Flags().Changed("regional") {
		w.Regional, _ = cmd.Flags().GetString("regional")
	}
	goLive, set, err := dateFlag(cmd, "go-live")
	if err != nil {
		return err
	}
	if set {
		w.GoLive = goLive
	}
	if w.Name == "" {
		w.Name = w.ID
	}

	if err := e.planner.SaveWork(cmd.Context(), w); err != nil {
		e.printer.Error(err.Error())
		return err
	}
	e.printer.WorkSaved(w)
	return nil
}

func runWorkList(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	works, err := e.store.ListWorks(cmd.Context())
	if err != nil {
		return err
	}
	if len(works) == 0 {
		e.printer.Info("no works yet; create one with: golive work add ID --go-live YYYY-MM-DD")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tREGIONAL\tGO-LIVE")
	for _, w := range works {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.ID, w.Name, orDash(w.Regional), orDash(w.GoLive.String()))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
