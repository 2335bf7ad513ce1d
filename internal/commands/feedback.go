package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/hwk/internal/db"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [task-id]",
	Short: "List recorded suggestion decisions",
	Args:  cobra.MaximumNArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		ctx := cmd.Context()

		taskID := ""
		if len(args) == 1 {
			task, err := store.FindTask(ctx, args[0])
			if err != nil {
				return err
			}
			taskID = task.ID
		}

		entries, err := store.ListFeedback(ctx, taskID)
		if err != nil {
			return fmt.Errorf("error fetching feedback: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(out, entries)
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No feedback recorded yet. Use 'hwk suggest' to review suggestions.")
			return nil
		}

		fmt.Fprintf(out, "%-16s %-8s %-8s %s\n", "WHEN", "TASK", "DECISION", "CHOICE")
		for _, e := range entries {
			decision := "rejected"
			if e.Accepted {
				decision = "accepted"
			}
			fmt.Fprintf(out, "%-16s %-8s %-8s %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04"), shortID(e.TaskID), decision, e.Choice)
		}
		return nil
	}),
}

func init() {
	feedbackCmd.Flags().Bool("json", false, "JSON output")
}
