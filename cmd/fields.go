package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pagoandino/capture-cli/internal/model"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Inspect the capture field set",
}

var fieldsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the fields the capture will extract",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fields, err := model.LoadFields(cfg.Capture.FieldsFile)
		if err != nil {
			return err
		}
		formatFields(os.Stdout, fields)
		return nil
	},
}

var fieldsCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a fields YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := model.LoadFields(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "OK: %d fields\n", len(fields))
		return nil
	},
}

func init() {
	fieldsCmd.AddCommand(fieldsListCmd)
	fieldsCmd.AddCommand(fieldsCheckCmd)
	rootCmd.AddCommand(fieldsCmd)
}

func formatFields(out io.Writer, fields model.FieldSet) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, f := range fields {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", f.Name, f.Description)
	}
	_ = w.Flush()
}
