package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/hwk/internal/db"
)

var removeCmd = &cobra.Command{
	Use:     "rm <task-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		task, err := store.FindTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if err := store.DeleteTask(cmd.Context(), task.ID); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted task %s: %s\n", shortID(task.ID), task.Title)
		return nil
	}),
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every task",
	Args:  cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		out := cmd.OutOrStdout()

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Fprint(out, "Delete all tasks? [y/N] ")
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		count, err := store.ClearTasks(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Deleted %d task(s).\n", count)
		return nil
	}),
}

func init() {
	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
