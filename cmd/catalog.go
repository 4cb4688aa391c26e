package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/golive/internal/catalog"
	"github.com/papapumpkin/golive/internal/config"
	"github.com/papapumpkin/golive/internal/ui"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the stage catalog",
	Long: `The catalog is the ordered list of stages with their SLA in days, plus the
macro-phases used by the progress rollup. It lives in a TOML or YAML file
(default .golive/catalog.toml); without one the built-in pipeline is used.`,
}

var catalogInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write the built-in catalog to a file for editing",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogInit,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [PATH]",
	Short: "List the stages and phases of the catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogShow,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [PATH]",
	Short: "Check a catalog file for errors",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogValidate,
}

func init() {
	catalogInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	catalogCmd.AddCommand(catalogInitCmd, catalogShowCmd, catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}

// catalogPath returns the explicit PATH argument or the configured path.
func catalogPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.CatalogPath, nil
}

func runCatalogInit(cmd *cobra.Command, args []string) error {
	noColor, _ := cmd.Flags().GetBool("no-color")
	printer := ui.New(noColor)

	path, err := catalogPath(args)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("catalog: %s already exists (use --force to overwrite)", path)
	}

	if err := catalog.Save(path, catalog.DefaultFile()); err != nil {
		printer.Error(err.Error())
		return err
	}
	printer.CatalogResult(path, catalog.Default(), catalog.DefaultPhases(), nil)
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	path, err := catalogPath(args)
	if err != nil {
		return err
	}
	cat, phases, err := catalog.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKEY\tNAME\tSLA")
	for i, def := range cat.Stages() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", i+1, def.Key, def.Name, def.SLADays)
	}
	fmt.Fprintf(tw, "\t\ttotal\t%d\n", cat.TotalSLADays())
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	for _, ph := range phases {
		fmt.Fprintf(out, "%s: %d member(s)\n", ph.Key, len(ph.Members))
	}
	return nil
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	noColor, _ := cmd.Flags().GetBool("no-color")
	printer := ui.New(noColor)

	path, err := catalogPath(args)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		printer.Warn(fmt.Sprintf("%s not found; the built-in catalog is in use", path))
		return nil
	}

	cat, phases, err := catalog.Load(path)
	printer.CatalogResult(path, cat, phases, err)
	return err
}
