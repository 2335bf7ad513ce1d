package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InputModel is a text area for pasting assignment text
type InputModel struct {
	textarea textarea.Model
	width    int

	submitted bool
	cancelled bool
}

// NewInputModel creates a focused, empty text area
func NewInputModel() InputModel {
	ta := textarea.New()
	ta.Placeholder = "Paste your assignment text here... e.g. \"Math homework: solve problems 1-10 due tomorrow\""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(12)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	ta.FocusedStyle.Text = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	ta.Focus()

	return InputModel{textarea: ta}
}

// Init starts the cursor blinking
func (m InputModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.textarea.SetWidth(max(msg.Width-4, 20))
		m.textarea.SetHeight(max(msg.Height-8, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+d", "ctrl+s":
			m.submitted = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the TUI
func (m InputModel) View() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		headerStyle.Render("Extract assignments"),
		"",
		box.Render(m.textarea.View()),
		helpStyle.Render("ctrl+d submit · esc cancel"),
	)
}

// Value returns the trimmed text entered so far
func (m InputModel) Value() string {
	return strings.TrimSpace(m.textarea.Value())
}

// Submitted reports whether the user confirmed the text
func (m InputModel) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the user backed out
func (m InputModel) Cancelled() bool {
	return m.cancelled
}
