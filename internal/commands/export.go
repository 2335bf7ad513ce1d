package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/hwk/internal/db"
	"github.com/balkashynov/hwk/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the task list as YAML or JSON",
	Long: `Export every task. Without --output the document goes to stdout; with it
the file is replaced atomically.`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		tasks, err := store.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching tasks: %w", err)
		}

		doc := export.NewDocument(tasks, now())
		if output == "" {
			return export.Write(cmd.OutOrStdout(), doc, format)
		}

		if err := export.WriteFile(output, doc, format); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s\n", doc.Count, output)
		return nil
	}),
}

func init() {
	exportCmd.Flags().String("format", export.FormatYAML, "Format: yaml, json")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}
