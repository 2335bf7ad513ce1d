package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/hwk/internal/db"
)

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task as completed",
	Long:  "Mark a task as completed. The ID may be shortened to any unique prefix.",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		task, err := store.FindTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		task, err = store.MarkTaskDone(cmd.Context(), task.ID)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Marked task %s as done: %s\n", shortID(task.ID), task.Title)
		return nil
	}),
}

var undoneCmd = &cobra.Command{
	Use:   "undone <task-id>",
	Short: "Mark a completed task back to pending",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		task, err := store.FindTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		task, err = store.MarkTaskUndone(cmd.Context(), task.ID)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "↩️  Marked task %s back to todo: %s\n", shortID(task.ID), task.Title)
		return nil
	}),
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <task-id>",
	Short: "Flip a task between pending and completed",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		task, err := store.FindTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		task, err = store.ToggleTask(cmd.Context(), task.ID)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s: %s\n", shortID(task.ID), task.Status(), task.Title)
		return nil
	}),
}
