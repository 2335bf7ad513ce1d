package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/hwk/internal/db"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tasks by title, description or subject",
	Long: `Search tasks with ranked matching:
- Exact title match (highest priority)
- Title prefix
- Title contains
- Description contains or subject equals (lowest priority)

Search is case insensitive and accepts the same filters as ls.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		query := strings.Join(args, " ")

		opts, err := queryOptionsFromFlags(cmd)
		if err != nil {
			return err
		}

		tasks, err := store.SearchTasks(cmd.Context(), query, opts)
		if err != nil {
			return fmt.Errorf("error searching tasks: %w", err)
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
			fmt.Fprintf(out, "No tasks match %q.\n", query)
			return nil
		}

		fmt.Fprintf(out, "Found %d task(s) matching %q:\n\n", len(tasks), query)
		renderTaskTable(out, tasks, now())
		return nil
	}),
}

func init() {
	addFilterFlags(searchCmd)
}
