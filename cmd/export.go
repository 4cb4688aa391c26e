package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/papapumpkin/golive/internal/planning"
)

var exportCmd = &cobra.Command{
	Use:   "export WORK",
	Short: "Write a work and its planning as JSON, YAML or TOML",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "output format: json, yaml or toml")
	rootCmd.AddCommand(exportCmd)
}

// exportDoc is the exported form of one work.
type exportDoc struct {
	Work     planning.Work     `json:"work" yaml:"work" toml:"work"`
	Planning planning.Planning `json:"planning" yaml:"planning" toml:"planning"`
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

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
	return writeExport(cmd.OutOrStdout(), format, exportDoc{Work: w, Planning: pl})
}

// writeExport encodes doc to w in the named format.
func writeExport(w io.Writer, format string, doc exportDoc) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("export: unknown format %q (want json, yaml or toml)", format)
	}
}
