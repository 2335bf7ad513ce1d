package commands

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/hwk/internal/db"
	"github.com/balkashynov/hwk/internal/models"
	"github.com/balkashynov/hwk/internal/parser"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long: `List tasks with optional filters.

  --subject   math, science, english, history, art, music, pe, other
  --priority  low, medium, high
  --status    all, pending, completed (default all)
  --sort      deadline, priority, subject (default deadline)`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		opts, err := queryOptionsFromFlags(cmd)
		if err != nil {
			return err
		}

		tasks, err := store.ListTasks(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("error fetching tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			rows := make([]jsonTask, 0, len(tasks))
			for _, task := range tasks {
				rows = append(rows, toJSONTask(task))
			}
			return writeJSON(out, rows)
		}

		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks found. Use 'hwk extract' or 'hwk add \"title\"' to create your first task.")
			return nil
		}

		renderTaskTable(out, tasks, now())
		fmt.Fprintln(out)
		fmt.Fprintln(out, summary(tasks, now()))
		return nil
	}),
}

// queryOptionsFromFlags reads the filter flags shared by ls and search
func queryOptionsFromFlags(cmd *cobra.Command) (db.TaskQueryOptions, error) {
	var opts db.TaskQueryOptions

	if s, _ := cmd.Flags().GetString("subject"); s != "" {
		subject, err := models.ParseSubject(s)
		if err != nil {
			return opts, err
		}
		opts.Subject = subject
	}

	if p, _ := cmd.Flags().GetString("priority"); p != "" {
		switch priority := models.Priority(p); priority {
		case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
			opts.Priority = priority
		default:
			return opts, fmt.Errorf("invalid priority '%s'. Use: low, medium, high", p)
		}
	}

	opts.Status, _ = cmd.Flags().GetString("status")
	if cmd.Flags().Lookup("sort") != nil {
		opts.SortBy, _ = cmd.Flags().GetString("sort")
	}
	return opts, nil
}

// summary counts tasks by state. Due today includes completed tasks.
func summary(tasks []models.Task, today time.Time) string {
	completed, dueToday := 0, 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
		if parser.DaysBetween(today, task.Deadline) == 0 {
			dueToday++
		}
	}

	rate := 0
	if len(tasks) > 0 {
		rate = int(math.Round(float64(completed) / float64(len(tasks)) * 100))
	}
	return fmt.Sprintf("%d task(s): %d pending, %d completed (%d%% done), %d due today",
		len(tasks), len(tasks)-completed, completed, rate, dueToday)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("subject", "s", "", "Filter by subject")
	cmd.Flags().StringP("priority", "p", "", "Filter by priority")
	cmd.Flags().String("status", db.StatusAll, "Filter by status: all, pending, completed")
	cmd.Flags().Bool("json", false, "JSON output")
}

func init() {
	addFilterFlags(listCmd)
	listCmd.Flags().String("sort", "deadline", "Sort by: deadline, priority, subject")
}
