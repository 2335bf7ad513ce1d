package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/hwk/internal/db"
	"github.com/balkashynov/hwk/internal/extractor"
	"github.com/balkashynov/hwk/internal/fetcher"
	"github.com/balkashynov/hwk/internal/models"
	"github.com/balkashynov/hwk/internal/parser"
	"github.com/balkashynov/hwk/internal/tui"
)

var extractCmd = &cobra.Command{
	Use:     "extract [text]",
	Aliases: []string{"x"},
	Short:   "Find assignments in text, a file or a web page",
	Long: `Find homework assignments in free-form text and add the ones you accept.

Input (first match wins):
  --url <url>     Fetch a web page and use its main text
  --file <path>   Read a file ("-" for stdin)
  [text]          Use the arguments
  piped stdin     Read everything from stdin
  (nothing)       Open a text area to paste into

Every candidate is shown for review (a accept, r reject, A accept all)
unless --accept-all is given. --json prints the candidates and saves nothing.

Example:
  hwk extract "Math homework: solve problems 1-10 due tomorrow. Read chapter 5 by Friday."`,
	Args: cobra.ArbitraryArgs,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	text, err := readExtractInput(ctx, cmd, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to extract from")
	}

	minConfidence := app.cfg.Extract.MinConfidence
	if cmd.Flags().Changed("min-confidence") {
		minConfidence, _ = cmd.Flags().GetFloat64("min-confidence")
	}

	ex := extractor.New(
		extractor.WithClock(now),
		extractor.WithLogger(app.log),
		extractor.WithMinConfidence(minConfidence),
		extractor.WithDuplicateThreshold(app.cfg.Extract.DuplicateThreshold),
	)
	assignments := ex.Extract(text)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(out, assignments)
	}

	if len(assignments) == 0 {
		fmt.Fprintln(out, "No assignments found. Try text with words like \"homework\", \"due\", \"read\" or \"project\".")
		return nil
	}

	decisions, err := reviewAssignments(cmd, assignments)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	return saveAccepted(ctx, out, store, assignments, decisions)
}

// readExtractInput picks the text source from flags, args, stdin or the TUI
func readExtractInput(ctx context.Context, cmd *cobra.Command, args []string) (string, error) {
	if rawURL, _ := cmd.Flags().GetString("url"); rawURL != "" {
		content, err := fetchContent(ctx, cmd, rawURL)
		if err != nil {
			return "", err
		}
		return content.Content, nil
	}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		if path == "-" {
			return readAll(cmd.InOrStdin())
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(content), nil
	}

	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if stdinPiped(cmd.InOrStdin()) {
		return readAll(cmd.InOrStdin())
	}

	text, err := tui.RunInputTUI()
	if errors.Is(err, tui.ErrCancelled) {
		return "", fmt.Errorf("extraction cancelled")
	}
	return text, err
}

// stdinPiped reports whether in is a pipe or file rather than a terminal
func stdinPiped(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

func readAll(r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(content), nil
}

// fetchContent fetches rawURL with the configured fetcher
func fetchContent(ctx context.Context, cmd *cobra.Command, rawURL string) (*fetcher.Content, error) {
	if fetcher.IsClassroomURL(rawURL) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Note: classroom platforms usually need a login; if fetching fails, copy the text instead.")
	}

	f := fetcher.New(app.cfg.Fetch, fetcher.WithLogger(app.log), fetcher.WithClock(now))
	return f.Fetch(ctx, rawURL)
}

// reviewAssignments returns one decision per assignment
func reviewAssignments(cmd *cobra.Command, assignments []extractor.Assignment) ([]tui.Decision, error) {
	if acceptAll, _ := cmd.Flags().GetBool("accept-all"); acceptAll {
		decisions := make([]tui.Decision, len(assignments))
		for i := range decisions {
			decisions[i] = tui.Accepted
		}
		return decisions, nil
	}

	items := make([]tui.ReviewItem, 0, len(assignments))
	for _, a := range assignments {
		items = append(items, assignmentItem(a))
	}
	return tui.RunReviewTUI(fmt.Sprintf("Found %d assignment(s)", len(assignments)), items)
}

func assignmentItem(a extractor.Assignment) tui.ReviewItem {
	today := now()
	return tui.ReviewItem{
		Title:    a.Title,
		Subject:  a.Subject,
		Priority: a.Priority,
		Badge:    fmt.Sprintf("%.0f%%", a.Confidence*100),
		Details: []tui.Detail{
			{Label: "Type", Value: string(a.Type)},
			{Label: "Due", Value: parser.FormatDueDate(a.Deadline, today)},
			{Label: "Confidence", Value: fmt.Sprintf("%.0f%%", a.Confidence*100)},
		},
		Body: a.Description,
	}
}

// saveAccepted stores every accepted assignment as a task
func saveAccepted(ctx context.Context, out io.Writer, store *db.Store, assignments []extractor.Assignment, decisions []tui.Decision) error {
	today := now()
	added := 0
	for i, a := range assignments {
		if i >= len(decisions) || decisions[i] != tui.Accepted {
			continue
		}

		task, err := store.CreateTask(ctx, db.CreateTaskRequest{
			Title:       a.Title,
			Description: a.Description,
			Subject:     a.Subject,
			Priority:    a.Priority,
			Deadline:    a.Deadline,
			Source:      models.SourceAI,
		})
		if err != nil {
			return fmt.Errorf("failed to save %q: %w", a.Title, err)
		}

		added++
		fmt.Fprintf(out, "✅ Added %s: %s (%s, %s, %s)\n",
			shortID(task.ID), task.Title, task.Subject, task.Priority, parser.FormatDueDate(task.Deadline, today))
	}

	app.log.Debug("assignments saved", zap.Int("found", len(assignments)), zap.Int("added", added))
	if added == 0 {
		fmt.Fprintln(out, "No assignments added.")
		return nil
	}
	fmt.Fprintf(out, "Added %d of %d assignment(s).\n", added, len(assignments))
	return nil
}

func init() {
	extractCmd.Flags().StringP("file", "f", "", "Read text from a file (\"-\" for stdin)")
	extractCmd.Flags().StringP("url", "u", "", "Fetch text from a web page")
	extractCmd.Flags().BoolP("accept-all", "y", false, "Add every candidate without review")
	extractCmd.Flags().Float64("min-confidence", 0.3, "Drop candidates scoring at or below this")
	extractCmd.Flags().Bool("json", false, "Print candidates as JSON and save nothing")
}
