package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/hwk/internal/db"
	"github.com/balkashynov/hwk/internal/models"
	"github.com/balkashynov/hwk/internal/optimizer"
	"github.com/balkashynov/hwk/internal/parser"
	"github.com/balkashynov/hwk/internal/tui"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [task-id]",
	Short: "Suggest priorities and deadlines",
	Long: `Suggest a priority and deadline for one task, or for every pending task.

With --workload the pending list is considered as a whole: once more than
three tasks fall due within the coming week, later high-priority tasks are
suggested as medium.

Each suggestion is shown for review (a accept, r reject, A accept all)
unless --accept-all is given. Accepted suggestions update the task; every
decision is recorded and can be listed with 'hwk feedback'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withStore(runSuggest),
}

// suggestion pairs a task with what the optimizer proposes for it
type suggestion struct {
	Task       models.Task            `json:"-"`
	TaskID     string                 `json:"task_id"`
	Title      string                 `json:"title"`
	Priority   models.Priority        `json:"current_priority"`
	Deadline   string                 `json:"current_deadline"`
	Suggestion optimizer.Optimization `json:"suggestion"`
}

func runSuggest(cmd *cobra.Command, args []string, store *db.Store) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	tasks, err := suggestTargets(ctx, store, args)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No pending tasks to optimize.")
		return nil
	}

	workload, _ := cmd.Flags().GetBool("workload")
	suggestions := computeSuggestions(tasks, workload)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(out, suggestions)
	}

	decisions, err := reviewSuggestions(cmd, suggestions)
	if err != nil {
		return err
	}
	return applyDecisions(ctx, out, store, suggestions, decisions)
}

// suggestTargets returns the named task, or every pending task by deadline
func suggestTargets(ctx context.Context, store *db.Store, args []string) ([]models.Task, error) {
	if len(args) == 1 {
		task, err := store.FindTask(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return []models.Task{*task}, nil
	}

	return store.ListTasks(ctx, db.TaskQueryOptions{
		Status: db.StatusPending,
		SortBy: "deadline",
	})
}

// computeSuggestions runs the optimizer in single or workload mode and keeps
// the input order
func computeSuggestions(tasks []models.Task, workload bool) []suggestion {
	opt := optimizer.New(optimizer.WithClock(now), optimizer.WithLogger(app.log))

	var byID map[string]optimizer.Optimization
	if workload {
		byID = opt.SuggestForWorkload(tasks)
	}

	result := make([]suggestion, 0, len(tasks))
	for _, task := range tasks {
		s, ok := byID[task.ID]
		if !ok {
			if workload {
				// completed tasks are left out of the workload pass
				continue
			}
			s = opt.Suggest(task)
		}
		result = append(result, suggestion{
			Task:       task,
			TaskID:     task.ID,
			Title:      task.Title,
			Priority:   task.Priority,
			Deadline:   task.Deadline.Format(time.DateOnly),
			Suggestion: s,
		})
	}
	return result
}

func reviewSuggestions(cmd *cobra.Command, suggestions []suggestion) ([]tui.Decision, error) {
	if acceptAll, _ := cmd.Flags().GetBool("accept-all"); acceptAll {
		decisions := make([]tui.Decision, len(suggestions))
		for i := range decisions {
			decisions[i] = tui.Accepted
		}
		return decisions, nil
	}

	today := now()
	items := make([]tui.ReviewItem, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, tui.ReviewItem{
			Title:    s.Task.Title,
			Subject:  s.Task.Subject,
			Priority: s.Suggestion.SuggestedPriority,
			Badge:    s.Suggestion.SuggestedPriority.Short() + " " + s.Suggestion.SuggestedDeadline.Format("02/01"),
			Details: []tui.Detail{
				{Label: "Current", Value: fmt.Sprintf("%s, %s", s.Task.Priority, parser.FormatDueDate(s.Task.Deadline, today))},
				{Label: "Suggested", Value: fmt.Sprintf("%s, %s", s.Suggestion.SuggestedPriority, parser.FormatDueDate(s.Suggestion.SuggestedDeadline, today))},
				{Label: "Confidence", Value: fmt.Sprintf("%.0f%%", s.Suggestion.Confidence*100)},
			},
			Body: s.Suggestion.Reasoning,
		})
	}
	return tui.RunReviewTUI(fmt.Sprintf("%d suggestion(s)", len(suggestions)), items)
}

// applyDecisions records every decision and saves accepted suggestions
func applyDecisions(ctx context.Context, out io.Writer, store *db.Store, suggestions []suggestion, decisions []tui.Decision) error {
	today := now()
	accepted, rejected := 0, 0

	for i, s := range suggestions {
		if i >= len(decisions) || decisions[i] == tui.Undecided {
			continue
		}
		ok := decisions[i] == tui.Accepted

		updated, err := optimizer.Decide(ctx, store, s.Task, s.Suggestion, ok)
		if err != nil {
			return err
		}

		if !ok {
			rejected++
			continue
		}
		if err := store.UpdateTask(ctx, &updated); err != nil {
			return fmt.Errorf("failed to update task %s: %w", shortID(updated.ID), err)
		}
		accepted++
		fmt.Fprintf(out, "✅ %s: %s → %s, %s\n",
			shortID(updated.ID), updated.Title, updated.Priority, parser.FormatDueDate(updated.Deadline, today))
	}

	app.log.Debug("suggestions reviewed", zap.Int("accepted", accepted), zap.Int("rejected", rejected))
	fmt.Fprintf(out, "Applied %d suggestion(s), rejected %d.\n", accepted, rejected)
	return nil
}

func init() {
	suggestCmd.Flags().BoolP("workload", "w", false, "Balance the whole pending list")
	suggestCmd.Flags().BoolP("accept-all", "y", false, "Apply every suggestion without review")
	suggestCmd.Flags().Bool("json", false, "Print suggestions as JSON and change nothing")
}
