package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/hwk/internal/db"
	"github.com/balkashynov/hwk/internal/models"
	"github.com/balkashynov/hwk/internal/parser"
)

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit an existing task",
	Long: `Edit an existing task. Only the fields given as flags change.

Usage:
  hwk edit 3f2a --priority high --due 2025-12-15
  hwk edit 3f2a --title "Read chapters 5 and 6"`,
	Args: cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		ctx := cmd.Context()
		today := now()

		task, err := store.FindTask(ctx, args[0])
		if err != nil {
			return err
		}

		changed := false
		flags := cmd.Flags()

		if flags.Changed("title") {
			title, _ := flags.GetString("title")
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("title cannot be empty")
			}
			task.Title = strings.TrimSpace(title)
			changed = true
		}
		if flags.Changed("description") {
			task.Description, _ = flags.GetString("description")
			changed = true
		}
		if flags.Changed("subject") {
			s, _ := flags.GetString("subject")
			subject, err := models.ParseSubject(s)
			if err != nil {
				return err
			}
			task.Subject = subject
			changed = true
		}
		if flags.Changed("priority") {
			p, _ := flags.GetString("priority")
			priority, ok := parser.NormalizePriority(p)
			if !ok {
				return fmt.Errorf("invalid priority '%s'. Use: low, medium, high or 1-3", p)
			}
			task.Priority = priority
			changed = true
		}
		if flags.Changed("due") {
			due, _ := flags.GetString("due")
			deadline, err := parser.ParseDueDate(due, today)
			if err != nil {
				return fmt.Errorf("error parsing due date: %w", err)
			}
			task.Deadline = deadline
			changed = true
		}

		if !changed {
			return fmt.Errorf("nothing to change; pass at least one of --title, --description, --subject, --priority, --due")
		}

		if err := store.UpdateTask(ctx, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		printTask(cmd.OutOrStdout(), "Updated task", *task, today)
		return nil
	}),
}

func init() {
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().String("description", "", "New description")
	editCmd.Flags().StringP("subject", "s", "", "New subject")
	editCmd.Flags().StringP("priority", "p", "", "New priority: low, medium, high, or 1-3")
	editCmd.Flags().StringP("due", "d", "", "New due date")
}
