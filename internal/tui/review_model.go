package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/hwk/internal/models"
)

// Decision is what the user chose for a review item
type Decision int

const (
	Undecided Decision = iota
	Accepted
	Rejected
)

func (d Decision) String() string {
	switch d {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "undecided"
	}
}

// Detail is one label/value line in the details pane
type Detail struct {
	Label string
	Value string
}

// ReviewItem is a candidate shown for accept/reject: an extracted
// assignment or an optimizer suggestion
type ReviewItem struct {
	Title    string
	Subject  models.Subject
	Priority models.Priority
	Badge    string // short right-hand column, e.g. due text or confidence
	Details  []Detail
	Body     string // description or reasoning
}

// ReviewModel lets the user walk a list of items and accept or reject each
type ReviewModel struct {
	width  int
	height int

	title     string
	items     []ReviewItem
	decisions []Decision
	selected  int

	// Pagination
	currentPage  int
	itemsPerPage int

	finished bool
	quit     bool
}

// NewReviewModel creates a review model with every item undecided
func NewReviewModel(title string, items []ReviewItem) ReviewModel {
	return ReviewModel{
		title:        title,
		items:        items,
		decisions:    make([]Decision, len(items)),
		itemsPerPage: len(items),
	}
}

// Init initializes the model
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Height - header(3) - help(1) - borders(4) - margins(4)
		m.itemsPerPage = max(m.height-12, 3)
		m.currentPage = m.selected / m.itemsPerPage
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quit = true
			return m, tea.Quit

		case "up", "k":
			return m.moveTo(m.selected - 1), nil

		case "down", "j":
			return m.moveTo(m.selected + 1), nil

		case "a", "enter":
			return m.decide(Accepted)

		case "r", "x":
			return m.decide(Rejected)

		case "A":
			for i := range m.decisions {
				if m.decisions[i] == Undecided {
					m.decisions[i] = Accepted
				}
			}
			m.finished = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// decide records d for the selected item and jumps to the next undecided one
func (m ReviewModel) decide(d Decision) (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		m.finished = true
		return m, tea.Quit
	}

	m.decisions = append([]Decision(nil), m.decisions...)
	m.decisions[m.selected] = d

	next := m.nextUndecided()
	if next < 0 {
		m.finished = true
		return m, tea.Quit
	}
	return m.moveTo(next), nil
}

// nextUndecided searches forward from the selection, wrapping around
func (m ReviewModel) nextUndecided() int {
	n := len(m.items)
	for step := 1; step <= n; step++ {
		i := (m.selected + step) % n
		if m.decisions[i] == Undecided {
			return i
		}
	}
	return -1
}

func (m ReviewModel) moveTo(i int) ReviewModel {
	if i < 0 || i >= len(m.items) {
		return m
	}
	m.selected = i
	if m.itemsPerPage > 0 {
		m.currentPage = i / m.itemsPerPage
	}
	return m
}

// Decisions returns one decision per item, in item order
func (m ReviewModel) Decisions() []Decision {
	return append([]Decision(nil), m.decisions...)
}

// Selected returns the index of the highlighted item
func (m ReviewModel) Selected() int {
	return m.selected
}

// Finished reports whether every item got a decision
func (m ReviewModel) Finished() bool {
	return m.finished
}

// Quit reports whether the user left before deciding everything
func (m ReviewModel) Quit() bool {
	return m.quit
}

// View renders the TUI
func (m ReviewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth - 1

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderList(leftWidth),
		" ",
		m.renderDetails(rightWidth),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		content,
		"",
		m.renderHelpBar(),
	)
}

func (m ReviewModel) renderList(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	accepted, rejected := m.counts()
	b.WriteString(headerStyle.Render(m.title))
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).
		Render(fmt.Sprintf("  %d accepted · %d rejected · %d total", accepted, rejected, len(m.items))))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("Nothing to review"))
		return m.panel(width).Render(b.String())
	}

	badgeWidth := 12
	titleWidth := max(width-badgeWidth-10, 20)

	start := m.currentPage * m.itemsPerPage
	end := min(start+m.itemsPerPage, len(m.items))

	for i := start; i < end; i++ {
		item := m.items[i]
		marker, markerColor := decisionMarker(m.decisions[i])

		titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		if m.decisions[i] == Rejected {
			titleStyle = titleStyle.Foreground(lipgloss.Color(ColorDisabledText)).Strikethrough(true)
		}

		row := fmt.Sprintf("%s %s %s",
			lipgloss.NewStyle().Foreground(lipgloss.Color(markerColor)).Render(marker),
			titleStyle.Render(padRight(truncate(item.Title, titleWidth), titleWidth)),
			lipgloss.NewStyle().Foreground(lipgloss.Color(PriorityColor(item.Priority))).Render(truncate(item.Badge, badgeWidth)),
		)

		if i == m.selected {
			selectedStyle := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Bold(true).
				Padding(0, 1)
			b.WriteString(selectedStyle.Render(row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if m.itemsPerPage < len(m.items) {
		totalPages := (len(m.items) + m.itemsPerPage - 1) / m.itemsPerPage
		pageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(1)
		b.WriteString(pageStyle.Render(fmt.Sprintf("Page %d/%d", m.currentPage+1, totalPages)))
	}

	return m.panel(width).Render(b.String())
}

func (m ReviewModel) renderDetails(width int) string {
	var b strings.Builder

	if len(m.items) == 0 {
		logoStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width)
		b.WriteString(logoStyle.Render("hwk"))
		return m.panel(width).Render(b.String())
	}

	item := m.items[m.selected]

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Width(width - 2)
	b.WriteString(titleStyle.Render(item.Title))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	if item.Subject != "" {
		b.WriteString(labelStyle.Render("Subject: "))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(SubjectColor(item.Subject))).Render(string(item.Subject)))
		b.WriteString("\n")
	}
	if item.Priority != "" {
		b.WriteString(labelStyle.Render("Priority: "))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(PriorityColor(item.Priority))).Bold(true).Render(string(item.Priority)))
		b.WriteString("\n")
	}
	for _, d := range item.Details {
		b.WriteString(labelStyle.Render(d.Label + ": "))
		b.WriteString(d.Value)
		b.WriteString("\n")
	}

	marker, markerColor := decisionMarker(m.decisions[m.selected])
	b.WriteString(labelStyle.Render("Decision: "))
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(markerColor)).Render(marker + " " + m.decisions[m.selected].String()))
	b.WriteString("\n")

	if item.Body != "" {
		bodyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Width(width - 2)
		b.WriteString("\n")
		b.WriteString(bodyStyle.Render(item.Body))
	}

	return m.panel(width).Render(b.String())
}

func (m ReviewModel) panel(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)
}

func (m ReviewModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	return helpStyle.Render("↑/↓ nav · a/enter accept · r/x reject · A accept all · q quit")
}

func (m ReviewModel) counts() (accepted, rejected int) {
	for _, d := range m.decisions {
		switch d {
		case Accepted:
			accepted++
		case Rejected:
			rejected++
		}
	}
	return accepted, rejected
}

func decisionMarker(d Decision) (string, string) {
	switch d {
	case Accepted:
		return "✓", ColorSuccess
	case Rejected:
		return "✗", ColorError
	default:
		return "○", ColorSecondaryText
	}
}

// truncate shortens s to width runes, ending in "..." when cut
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
