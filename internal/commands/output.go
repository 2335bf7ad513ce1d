package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/hwk/internal/models"
	"github.com/balkashynov/hwk/internal/parser"
	"github.com/balkashynov/hwk/internal/tui"
)

// jsonTask is the --json shape of a task
type jsonTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Subject     string `json:"subject"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
	Status      string `json:"status"`
	Source      string `json:"source"`
}

func toJSONTask(t models.Task) jsonTask {
	return jsonTask{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Subject:     string(t.Subject),
		Priority:    string(t.Priority),
		Deadline:    t.Deadline.Format(time.DateOnly),
		Status:      t.Status(),
		Source:      string(t.Source),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderTaskTable prints tasks as a plain table
func renderTaskTable(w io.Writer, tasks []models.Task, today time.Time) {
	fmt.Fprintf(w, "%-8s %-6s %-40s %-9s %-6s %s\n", "ID", "STATUS", "TITLE", "SUBJECT", "PRIO", "DUE")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, task := range tasks {
		due := parser.FormatDueDate(task.Deadline, today)
		if task.Completed {
			due = task.Deadline.Format("02/01/2006")
		}

		fmt.Fprintf(w, "%-8s %-6s %-40s %-9s %s %s\n",
			shortID(task.ID),
			task.Status(),
			truncate(task.Title, 40),
			task.Subject,
			colorize(fmt.Sprintf("%-6s", task.Priority.Short()), tui.PriorityColor(task.Priority)),
			dueStyle(task, today).Render(due),
		)
	}
}

// printTask prints one task's fields after a headline
func printTask(w io.Writer, headline string, task models.Task, today time.Time) {
	fmt.Fprintf(w, "%s %s: %s\n", headline, shortID(task.ID), task.Title)
	fmt.Fprintf(w, "  Subject: %s\n", task.Subject)
	fmt.Fprintf(w, "  Priority: %s\n", colorize(string(task.Priority), tui.PriorityColor(task.Priority)))
	fmt.Fprintf(w, "  Due: %s\n", parser.FormatDueDate(task.Deadline, today))
	if task.Description != "" {
		fmt.Fprintf(w, "  Description: %s\n", task.Description)
	}
}

func dueStyle(task models.Task, today time.Time) lipgloss.Style {
	style := lipgloss.NewStyle()
	if task.Completed {
		return style.Foreground(lipgloss.Color(tui.ColorDisabledText))
	}
	switch days := parser.DaysBetween(today, task.Deadline); {
	case days < 0:
		return style.Foreground(lipgloss.Color(tui.ColorError)).Bold(true)
	case days <= 1:
		return style.Foreground(lipgloss.Color(tui.ColorWarning))
	case days <= 7:
		return style.Foreground(lipgloss.Color(tui.ColorAccentBright))
	default:
		return style
	}
}

func colorize(s, color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}

// truncate shortens s to width runes
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// shortID returns the first 8 characters of an ID for display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
