package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/hwk/internal/db"
	"github.com/balkashynov/hwk/internal/models"
	"github.com/balkashynov/hwk/internal/parser"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task by hand",
	Long: `Add a task without extraction.

Subject and priority default to other and medium, the deadline to one week
from today.

Due date formats:
  dd/mm/yyyy, yyyy-mm-dd, X days, X weeks, today, tomorrow, next week,
  or a weekday name

Example:
  hwk add "Lab report on photosynthesis" --subject science --priority high --due friday`,
	Args: cobra.MinimumNArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		today := now()

		req, err := createRequestFromFlags(cmd, strings.Join(args, " "), today)
		if err != nil {
			return err
		}

		task, err := store.CreateTask(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		printTask(cmd.OutOrStdout(), "Created task", *task, today)
		return nil
	}),
}

// createRequestFromFlags builds a manual task request, applying defaults
func createRequestFromFlags(cmd *cobra.Command, title string, today time.Time) (db.CreateTaskRequest, error) {
	req := db.CreateTaskRequest{
		Title:    title,
		Subject:  models.SubjectOther,
		Priority: models.PriorityMedium,
		Deadline: parser.DateOnly(today).AddDate(0, 0, parser.DefaultDeadlineDays),
		Source:   models.SourceManual,
	}

	if s, _ := cmd.Flags().GetString("subject"); s != "" {
		subject, err := models.ParseSubject(s)
		if err != nil {
			return req, err
		}
		req.Subject = subject
	}

	if p, _ := cmd.Flags().GetString("priority"); p != "" {
		priority, ok := parser.NormalizePriority(p)
		if !ok {
			return req, fmt.Errorf("invalid priority '%s'. Use: low, medium, high or 1-3", p)
		}
		req.Priority = priority
	}

	if due, _ := cmd.Flags().GetString("due"); due != "" {
		deadline, err := parser.ParseDueDate(due, today)
		if err != nil {
			return req, fmt.Errorf("error parsing due date: %w", err)
		}
		req.Deadline = deadline
	}

	req.Description, _ = cmd.Flags().GetString("description")
	return req, nil
}

func init() {
	addCmd.Flags().StringP("subject", "s", "", "Subject: math, science, english, history, art, music, pe, other")
	addCmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high, or 1-3")
	addCmd.Flags().StringP("due", "d", "", "Due date: dd/mm/yyyy, yyyy-mm-dd, X days, X weeks, tomorrow, friday")
	addCmd.Flags().String("description", "", "Longer description")
}
