package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user leaves the input screen without submitting
var ErrCancelled = errors.New("cancelled")

// RunInputTUI opens a text area and returns what the user pasted
func RunInputTUI() (string, error) {
	p := tea.NewProgram(NewInputModel(), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(InputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model %T", finalModel)
	}
	if m.Cancelled() || !m.Submitted() {
		return "", ErrCancelled
	}
	return m.Value(), nil
}

// RunReviewTUI shows items for accept/reject and returns one decision per
// item. Items left when the user quits stay Undecided.
func RunReviewTUI(title string, items []ReviewItem) ([]Decision, error) {
	p := tea.NewProgram(NewReviewModel(title, items), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(ReviewModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model %T", finalModel)
	}
	return m.Decisions(), nil
}
