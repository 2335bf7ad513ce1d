// Package optimizer suggests priorities and deadlines for tasks using fixed
// rules: how close the deadline is, the subject, keywords in the
// description, and how crowded the coming week is.
package optimizer

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/balkashynov/hwk/internal/logging"
	"github.com/balkashynov/hwk/internal/models"
	"github.com/balkashynov/hwk/internal/parser"
)

const (
	baseConfidence = 0.7

	// Tasks due within this many days count towards the week's workload
	workloadWindowDays = 7
	// More than this many tasks in the window triggers rebalancing
	workloadLimit = 3
	// Tasks closer than this are never downgraded
	workloadMinDays = 2
	// Confidence multiplier applied to a downgraded suggestion
	workloadPenalty = 0.8
)

// Optimization is a suggestion for one task. It is always recomputed and
// only changes the task when the user accepts it.
type Optimization struct {
	SuggestedPriority models.Priority `json:"suggested_priority"`
	SuggestedDeadline time.Time       `json:"suggested_deadline"`
	Confidence        float64         `json:"confidence"`
	Reasoning         string          `json:"reasoning"`
}

// Optimizer computes suggestions; it has no state besides its clock.
type Optimizer struct {
	now func() time.Time
	log *logging.Logger
}

// Option configures an Optimizer
type Option func(*Optimizer)

// WithClock sets the time source
func WithClock(now func() time.Time) Option {
	return func(o *Optimizer) { o.now = now }
}

// WithLogger sets the logger
func WithLogger(log *logging.Logger) Option {
	return func(o *Optimizer) { o.log = log.Named("optimizer") }
}

// New creates an Optimizer
func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		now: time.Now,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// DaysUntil returns the whole days from now to deadline, rounded up.
// Overdue deadlines give zero or negative values.
func DaysUntil(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

// Suggest computes a suggestion for a single task
func (o *Optimizer) Suggest(task models.Task) Optimization {
	return suggestAt(task, o.now())
}

func suggestAt(task models.Task, now time.Time) Optimization {
	days := DaysUntil(task.Deadline, now)
	description := strings.ToLower(task.Description)

	priority := task.Priority
	reasoning := ""
	confidence := baseConfidence

	// Deadline proximity; each rung replaces the previous values
	switch {
	case days <= 1:
		priority = models.PriorityHigh
		reasoning = "Task is due within 24 hours - marked as high priority"
		confidence = 0.95
	case days <= 3:
		priority = models.PriorityHigh
		reasoning = "Task is due within 3 days - increased to high priority"
		confidence = 0.85
	case days <= 7:
		priority = models.PriorityMedium
		reasoning = "Task is due within a week - maintained as medium priority"
		confidence = 0.75
	case days > 14:
		priority = models.PriorityLow
		reasoning = "Task has flexible deadline - can be low priority"
		confidence = 0.70
	}

	if task.Subject == models.SubjectMath && days <= 5 {
		priority = models.PriorityHigh
		reasoning += " (Math assignments often require more preparation time)"
		confidence += 0.1
	}

	// An exam overrides everything above, including the math bump
	if strings.Contains(description, "exam") || strings.Contains(description, "test") {
		priority = models.PriorityHigh
		reasoning = "Exam/test detected - automatically high priority"
		confidence = 0.9
	} else if strings.Contains(description, "project") && days <= 7 {
		priority = models.PriorityHigh
		reasoning += " (Projects require extended work time)"
		confidence += 0.05
	}

	deadline := task.Deadline
	if strings.Contains(description, "project") || strings.Contains(description, "research") {
		buffer := max(1, int(math.Floor(float64(days)*0.1)))
		deadline = task.Deadline.AddDate(0, 0, -buffer)
		reasoning += fmt.Sprintf(" Suggested %d day(s) buffer for complex task.", buffer)
	}

	return Optimization{
		SuggestedPriority: priority,
		SuggestedDeadline: parser.DateOnly(deadline),
		Confidence:        math.Min(confidence, 1),
		Reasoning:         strings.TrimSpace(reasoning),
	}
}

// workloadState is threaded through the deadline-ordered fold
type workloadState struct {
	weekCount int
	results   map[string]Optimization
}

// SuggestForWorkload computes suggestions for every pending task and
// downgrades high-priority tasks once the coming week is crowded.
// The week counter only grows, so later tasks in a busy week are the ones
// that get downgraded.
func (o *Optimizer) SuggestForWorkload(tasks []models.Task) map[string]Optimization {
	now := o.now()

	pending := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if !task.Completed {
			pending = append(pending, task)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Deadline.Before(pending[j].Deadline)
	})

	state := workloadState{results: make(map[string]Optimization, len(pending))}
	for _, task := range pending {
		state = o.balance(state, task, now)
	}
	return state.results
}

// balance is one step of the workload fold
func (o *Optimizer) balance(state workloadState, task models.Task, now time.Time) workloadState {
	days := DaysUntil(task.Deadline, now)
	if days <= workloadWindowDays {
		state.weekCount++
	}

	suggestion := suggestAt(task, now)
	if state.weekCount > workloadLimit && task.Priority == models.PriorityHigh && days > workloadMinDays {
		suggestion.SuggestedPriority = models.PriorityMedium
		suggestion.Reasoning = strings.TrimSpace(suggestion.Reasoning + " (Workload balancing: too many high-priority tasks this week)")
		suggestion.Confidence *= workloadPenalty

		o.log.Debug("rebalanced task",
			zap.String("task_id", task.ID),
			zap.Int("week_count", state.weekCount),
			zap.Int("days_until", days),
		)
	}

	state.results[task.ID] = suggestion
	return state
}

// Apply returns a copy of task with the suggestion applied
func Apply(task models.Task, suggestion Optimization) models.Task {
	task.Priority = suggestion.SuggestedPriority
	task.Deadline = suggestion.SuggestedDeadline
	return task
}

// FeedbackSink stores the user's reaction to a suggestion. It is write-only
// from the optimizer's point of view.
type FeedbackSink interface {
	Record(ctx context.Context, taskID string, accepted bool, choice any) error
}

// Choice is what the user ended up with after deciding on a suggestion
type Choice struct {
	Priority models.Priority `json:"priority"`
	Deadline string          `json:"deadline"`
}

// Decide applies an accepted suggestion to the task and records the
// decision either way. The returned task is unchanged on rejection.
func Decide(ctx context.Context, sink FeedbackSink, task models.Task, suggestion Optimization, accepted bool) (models.Task, error) {
	if accepted {
		task = Apply(task, suggestion)
	}

	choice := Choice{
		Priority: task.Priority,
		Deadline: task.Deadline.Format(time.DateOnly),
	}
	if err := sink.Record(ctx, task.ID, accepted, choice); err != nil {
		return task, fmt.Errorf("failed to record feedback: %w", err)
	}
	return task, nil
}
