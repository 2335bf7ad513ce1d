package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/hwk/internal/models"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m ReviewModel, keys ...tea.KeyMsg) (ReviewModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		var ok bool
		m, ok = next.(ReviewModel)
		require.True(t, ok)
	}
	return m, cmd
}

func sampleItems() []ReviewItem {
	return []ReviewItem{
		{Title: "Math homework: solve problems 1-10", Subject: models.SubjectMath, Priority: models.PriorityHigh, Badge: "tomorrow"},
		{Title: "Read chapter 5", Subject: models.SubjectEnglish, Priority: models.PriorityMedium, Badge: "in 3 days"},
		{Title: "Science project", Subject: models.SubjectScience, Priority: models.PriorityLow, Badge: "in 14 days"},
	}
}

func TestReviewModel_AcceptRejectAdvances(t *testing.T) {
	m := NewReviewModel("Review", sampleItems())

	m, cmd := press(t, m, keyRunes("a"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Selected())

	m, cmd = press(t, m, keyRunes("x"))
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.Selected())

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd, "deciding the last item quits")
	assert.True(t, m.Finished())
	assert.False(t, m.Quit())
	assert.Equal(t, []Decision{Accepted, Rejected, Accepted}, m.Decisions())
}

func TestReviewModel_Navigation(t *testing.T) {
	m := NewReviewModel("Review", sampleItems())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Selected(), "stays at top")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, keyRunes("j"), keyRunes("j"))
	assert.Equal(t, 2, m.Selected(), "stays at bottom")

	m, _ = press(t, m, keyRunes("k"))
	assert.Equal(t, 1, m.Selected())
}

func TestReviewModel_DecideWrapsToUndecided(t *testing.T) {
	m := NewReviewModel("Review", sampleItems())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, keyRunes("r"))
	assert.Equal(t, 2, m.Selected())

	m, _ = press(t, m, keyRunes("a"))
	assert.Equal(t, 0, m.Selected(), "wraps to the first undecided item")
	assert.False(t, m.Finished())
}

func TestReviewModel_AcceptAll(t *testing.T) {
	m := NewReviewModel("Review", sampleItems())

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyDown}, keyRunes("r"), keyRunes("A"))
	assert.NotNil(t, cmd)
	assert.True(t, m.Finished())
	assert.Equal(t, []Decision{Accepted, Rejected, Accepted}, m.Decisions())
}

func TestReviewModel_QuitLeavesUndecided(t *testing.T) {
	m := NewReviewModel("Review", sampleItems())

	m, cmd := press(t, m, keyRunes("a"), keyRunes("q"))
	assert.NotNil(t, cmd)
	assert.True(t, m.Quit())
	assert.False(t, m.Finished())
	assert.Equal(t, []Decision{Accepted, Undecided, Undecided}, m.Decisions())
}

func TestReviewModel_Empty(t *testing.T) {
	m := NewReviewModel("Review", nil)

	m, cmd := press(t, m, keyRunes("a"))
	assert.NotNil(t, cmd)
	assert.True(t, m.Finished())
	assert.Empty(t, m.Decisions())
}

func TestReviewModel_View(t *testing.T) {
	m := NewReviewModel("Suggestions", sampleItems())
	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(ReviewModel)
	view := m.View()

	assert.Contains(t, view, "Suggestions")
	assert.Contains(t, view, "Read chapter 5")
	assert.Contains(t, view, "undecided")
	assert.Contains(t, view, "A accept all")
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "accepted", Accepted.String())
	assert.Equal(t, "rejected", Rejected.String())
	assert.Equal(t, "undecided", Undecided.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Math ho...", truncate("Math homework", 10))
	assert.Equal(t, "Ma", truncate("Math", 2))
}

func TestInputModel(t *testing.T) {
	m := NewInputModel()

	next, _ := m.Update(keyRunes("Read chapter 5 by Friday"))
	m = next.(InputModel)
	assert.Equal(t, "Read chapter 5 by Friday", m.Value())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(InputModel)
	assert.NotNil(t, cmd)
	assert.True(t, m.Submitted())
	assert.False(t, m.Cancelled())

	next, _ = NewInputModel().Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(InputModel).Cancelled())
}
