package optimizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/balkashynov/hwk/internal/logging"
	"github.com/balkashynov/hwk/internal/models"
)

var now = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func task(id string, deadline time.Time, priority models.Priority) models.Task {
	return models.Task{
		ID:       id,
		Title:    "task " + id,
		Subject:  models.SubjectOther,
		Priority: priority,
		Deadline: deadline,
	}
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 1, DaysUntil(now.Add(24*time.Hour), now))
	assert.Equal(t, 1, DaysUntil(now.Add(time.Hour), now))
	assert.Equal(t, 2, DaysUntil(now.Add(25*time.Hour), now))
	assert.Equal(t, 0, DaysUntil(now, now))
	assert.Equal(t, -1, DaysUntil(now.Add(-24*time.Hour), now))
}

func TestSuggest_DueWithin24Hours(t *testing.T) {
	o := New(WithClock(clock))

	got := o.Suggest(task("a", now.Add(24*time.Hour), models.PriorityLow))

	assert.Equal(t, models.PriorityHigh, got.SuggestedPriority)
	assert.InDelta(t, 0.95, got.Confidence, 1e-9)
	assert.Contains(t, got.Reasoning, "24 hours")
	assert.Equal(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), got.SuggestedDeadline)
}

func TestSuggest_ExamOverridesFlexibleDeadline(t *testing.T) {
	o := New(WithClock(clock))
	tk := task("a", now.AddDate(0, 0, 20), models.PriorityMedium)
	tk.Description = "Study for the history exam"

	got := o.Suggest(tk)

	assert.Equal(t, models.PriorityHigh, got.SuggestedPriority)
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)
	assert.Equal(t, "Exam/test detected - automatically high priority", got.Reasoning)
	assert.NotContains(t, got.Reasoning, "flexible")
}

func TestSuggest_DeadlineLadder(t *testing.T) {
	tests := []struct {
		name       string
		days       int
		priority   models.Priority
		want       models.Priority
		confidence float64
		reasoning  string
	}{
		{"overdue", -3, models.PriorityLow, models.PriorityHigh, 0.95, "24 hours"},
		{"three days", 3, models.PriorityLow, models.PriorityHigh, 0.85, "within 3 days"},
		{"a week", 6, models.PriorityHigh, models.PriorityMedium, 0.75, "within a week"},
		{"between one and two weeks keeps priority", 10, models.PriorityHigh, models.PriorityHigh, 0.7, ""},
		{"two weeks keeps priority", 14, models.PriorityLow, models.PriorityLow, 0.7, ""},
		{"far out", 30, models.PriorityHigh, models.PriorityLow, 0.7, "flexible deadline"},
		{"centuries out", 365 * 200, models.PriorityHigh, models.PriorityLow, 0.7, "flexible deadline"},
	}

	o := New(WithClock(clock))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := o.Suggest(task("a", now.AddDate(0, 0, tt.days), tt.priority))

			assert.Equal(t, tt.want, got.SuggestedPriority)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
			if tt.reasoning == "" {
				assert.Empty(t, got.Reasoning)
			} else {
				assert.Contains(t, got.Reasoning, tt.reasoning)
			}
		})
	}
}

func TestSuggest_MathNeedsPreparation(t *testing.T) {
	o := New(WithClock(clock))
	tk := task("a", now.AddDate(0, 0, 5), models.PriorityLow)
	tk.Subject = models.SubjectMath

	got := o.Suggest(tk)

	assert.Equal(t, models.PriorityHigh, got.SuggestedPriority)
	assert.InDelta(t, 0.85, got.Confidence, 1e-9)
	assert.Contains(t, got.Reasoning, "within a week")
	assert.Contains(t, got.Reasoning, "Math assignments")
}

func TestSuggest_MathConfidenceIsCapped(t *testing.T) {
	o := New(WithClock(clock))
	tk := task("a", now.Add(12*time.Hour), models.PriorityLow)
	tk.Subject = models.SubjectMath

	got := o.Suggest(tk)

	assert.Equal(t, 1.0, got.Confidence)
}

func TestSuggest_ExamReplacesMath(t *testing.T) {
	o := New(WithClock(clock))
	tk := task("a", now.AddDate(0, 0, 2), models.PriorityLow)
	tk.Subject = models.SubjectMath
	tk.Description = "Algebra TEST on chapter 3"

	got := o.Suggest(tk)

	assert.Equal(t, models.PriorityHigh, got.SuggestedPriority)
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)
	assert.NotContains(t, got.Reasoning, "Math")
}

func TestSuggest_ProjectNeedsBuffer(t *testing.T) {
	o := New(WithClock(clock))
	deadline := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	tk := task("a", deadline, models.PriorityMedium)
	tk.Description = "Science fair project"

	got := o.Suggest(tk)

	// ten days out: no ladder rung, no project bump, one day of buffer
	assert.Equal(t, models.PriorityMedium, got.SuggestedPriority)
	assert.InDelta(t, 0.7, got.Confidence, 1e-9)
	assert.Equal(t, time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC), got.SuggestedDeadline)
	assert.Equal(t, "Suggested 1 day(s) buffer for complex task.", got.Reasoning)
}

func TestSuggest_ProjectDueSoon(t *testing.T) {
	o := New(WithClock(clock))
	deadline := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	tk := task("a", deadline, models.PriorityLow)
	tk.Description = "Group project presentation"

	got := o.Suggest(tk)

	assert.Equal(t, models.PriorityHigh, got.SuggestedPriority)
	assert.InDelta(t, 0.8, got.Confidence, 1e-9)
	assert.Contains(t, got.Reasoning, "Projects require extended work time")
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got.SuggestedDeadline)
}

func TestSuggest_ResearchBufferScalesWithDistance(t *testing.T) {
	o := New(WithClock(clock))
	deadline := time.Date(2024, 2, 19, 0, 0, 0, 0, time.UTC)
	tk := task("a", deadline, models.PriorityMedium)
	tk.Description = "Research paper on volcanoes"

	got := o.Suggest(tk)

	// 40 days out gives four days of buffer
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), got.SuggestedDeadline)
	assert.Contains(t, got.Reasoning, "Suggested 4 day(s) buffer")
}

func TestSuggest_IsDeterministic(t *testing.T) {
	o := New(WithClock(clock))
	tk := task("a", now.AddDate(0, 0, 4), models.PriorityHigh)
	tk.Subject = models.SubjectMath
	tk.Description = "project"

	first := o.Suggest(tk)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, o.Suggest(tk))
	}
}

func TestSuggestForWorkload_DowngradesCrowdedWeek(t *testing.T) {
	o := New(WithClock(clock))
	tasks := []models.Task{
		task("t5", now.AddDate(0, 0, 4), models.PriorityHigh),
		task("t1", now.AddDate(0, 0, 1), models.PriorityHigh),
		task("t3", now.AddDate(0, 0, 3), models.PriorityHigh),
		task("t2", now.AddDate(0, 0, 2), models.PriorityHigh),
		task("t4", now.AddDate(0, 0, 3), models.PriorityHigh),
	}

	got := o.SuggestForWorkload(tasks)

	require.Len(t, got, 5)
	for _, id := range []string{"t1", "t2", "t3"} {
		assert.Equal(t, models.PriorityHigh, got[id].SuggestedPriority, id)
		assert.NotContains(t, got[id].Reasoning, "Workload balancing", id)
	}

	assert.Equal(t, models.PriorityMedium, got["t4"].SuggestedPriority)
	assert.InDelta(t, 0.85*0.8, got["t4"].Confidence, 1e-9)
	assert.Contains(t, got["t4"].Reasoning, "Workload balancing")

	assert.Equal(t, models.PriorityMedium, got["t5"].SuggestedPriority)
	assert.InDelta(t, 0.75*0.8, got["t5"].Confidence, 1e-9)
}

func TestSuggestForWorkload_NeverDowngradesUrgentOrLowerPriority(t *testing.T) {
	o := New(WithClock(clock))
	tasks := []models.Task{
		task("a", now.Add(12*time.Hour), models.PriorityHigh),
		task("b", now.Add(18*time.Hour), models.PriorityHigh),
		task("c", now.Add(20*time.Hour), models.PriorityHigh),
		// fourth in the week but due within two days
		task("d", now.Add(40*time.Hour), models.PriorityHigh),
		// fifth in the week but not high to begin with
		task("e", now.AddDate(0, 0, 5), models.PriorityLow),
	}

	got := o.SuggestForWorkload(tasks)

	assert.Equal(t, models.PriorityHigh, got["d"].SuggestedPriority)
	assert.NotContains(t, got["d"].Reasoning, "Workload")
	assert.Equal(t, models.PriorityMedium, got["e"].SuggestedPriority)
	assert.NotContains(t, got["e"].Reasoning, "Workload")
}

func TestSuggestForWorkload_CounterOnlyGrows(t *testing.T) {
	o := New(WithClock(clock))
	tasks := []models.Task{
		task("a", now.AddDate(0, 0, 1), models.PriorityHigh),
		task("b", now.AddDate(0, 0, 1), models.PriorityHigh),
		task("c", now.AddDate(0, 0, 2), models.PriorityHigh),
		task("d", now.AddDate(0, 0, 3), models.PriorityHigh),
		// outside the window, but the counter already passed the limit
		task("far", now.AddDate(0, 0, 10), models.PriorityHigh),
	}

	got := o.SuggestForWorkload(tasks)

	assert.Equal(t, models.PriorityMedium, got["d"].SuggestedPriority)
	assert.Equal(t, models.PriorityMedium, got["far"].SuggestedPriority)
	assert.InDelta(t, 0.7*0.8, got["far"].Confidence, 1e-9)
}

func TestSuggestForWorkload_SkipsCompleted(t *testing.T) {
	o := New(WithClock(clock))
	done := task("done", now.AddDate(0, 0, 1), models.PriorityHigh)
	done.Completed = true

	got := o.SuggestForWorkload([]models.Task{done, task("open", now.AddDate(0, 0, 2), models.PriorityLow)})

	assert.Len(t, got, 1)
	assert.Contains(t, got, "open")
	assert.Empty(t, o.SuggestForWorkload(nil))
}

func TestSuggestForWorkload_LogsRebalancing(t *testing.T) {
	log := logging.NewTestLogger()
	o := New(WithClock(clock), WithLogger(log.Logger))

	tasks := make([]models.Task, 0, 4)
	for i, id := range []string{"a", "b", "c", "d"} {
		tasks = append(tasks, task(id, now.AddDate(0, 0, i+1), models.PriorityHigh))
	}
	o.SuggestForWorkload(tasks)

	log.AssertLogged(t, zapcore.DebugLevel, "rebalanced task")
}

func TestApply(t *testing.T) {
	tk := task("a", now.AddDate(0, 0, 9), models.PriorityLow)
	suggestion := Optimization{
		SuggestedPriority: models.PriorityHigh,
		SuggestedDeadline: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	got := Apply(tk, suggestion)

	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, suggestion.SuggestedDeadline, got.Deadline)
	assert.Equal(t, tk.Title, got.Title)
	// the input is untouched
	assert.Equal(t, models.PriorityLow, tk.Priority)
}

type recordedFeedback struct {
	taskID   string
	accepted bool
	choice   any
}

type fakeSink struct {
	records []recordedFeedback
	err     error
}

func (f *fakeSink) Record(_ context.Context, taskID string, accepted bool, choice any) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, recordedFeedback{taskID: taskID, accepted: accepted, choice: choice})
	return nil
}

func TestDecide(t *testing.T) {
	ctx := context.Background()
	tk := task("a", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), models.PriorityLow)
	suggestion := Optimization{
		SuggestedPriority: models.PriorityHigh,
		SuggestedDeadline: time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC),
	}

	t.Run("accepted", func(t *testing.T) {
		sink := &fakeSink{}
		got, err := Decide(ctx, sink, tk, suggestion, true)
		require.NoError(t, err)

		assert.Equal(t, models.PriorityHigh, got.Priority)
		assert.Equal(t, suggestion.SuggestedDeadline, got.Deadline)
		require.Len(t, sink.records, 1)
		assert.Equal(t, "a", sink.records[0].taskID)
		assert.True(t, sink.records[0].accepted)
		assert.Equal(t, Choice{Priority: models.PriorityHigh, Deadline: "2024-01-18"}, sink.records[0].choice)
	})

	t.Run("rejected", func(t *testing.T) {
		sink := &fakeSink{}
		got, err := Decide(ctx, sink, tk, suggestion, false)
		require.NoError(t, err)

		assert.Equal(t, tk, got)
		require.Len(t, sink.records, 1)
		assert.False(t, sink.records[0].accepted)
		assert.Equal(t, Choice{Priority: models.PriorityLow, Deadline: "2024-01-20"}, sink.records[0].choice)
	})

	t.Run("sink failure", func(t *testing.T) {
		sink := &fakeSink{err: errors.New("disk full")}
		_, err := Decide(ctx, sink, tk, suggestion, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to record feedback")
		assert.ErrorIs(t, err, sink.err)
	})
}
