package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a web page and print its text",
	Long: `Fetch a web page and print the title and main text that extract --url
would work on. Nothing is saved.

Set fetch.proxy_url (or HWK_FETCH_PROXY_URL) to go through a proxy that
returns {"contents": "<html>"}.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		content, err := fetchContent(ctx, cmd, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(out, content)
		}

		fmt.Fprintf(out, "Title: %s\n", content.Title)
		fmt.Fprintf(out, "URL: %s\n", content.URL)
		fmt.Fprintf(out, "Fetched: %s\n\n", content.Timestamp.Format("15:04:05"))
		fmt.Fprintln(out, content.Content)
		return nil
	},
}

func init() {
	fetchCmd.Flags().Bool("json", false, "JSON output")
}
