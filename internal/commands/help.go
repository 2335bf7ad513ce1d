package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show comprehensive help for hwk",
	Long:  `Display detailed help for all hwk commands and flags, or the usual help for one command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			target, _, err := rootCmd.Find(args)
			if err != nil {
				return err
			}
			return target.Help()
		}
		showCustomHelp(cmd.OutOrStdout())
		return nil
	},
}

func showCustomHelp(w io.Writer) {
	fmt.Fprint(w, `
██╗  ██╗██╗    ██╗██╗  ██╗
██║  ██║██║    ██║██║ ██╔╝
███████║██║ █╗ ██║█████╔╝
██╔══██║██║███╗██║██╔═██╗
██║  ██║╚███╔███╔╝██║  ██╗
╚═╝  ╚═╝ ╚══╝╚══╝ ╚═╝  ╚═╝

hwk - homework tracker

COMMANDS:

  extract [text]          Find assignments and add the ones you accept
    -f, --file            Read text from a file ("-" for stdin)
    -u, --url             Fetch text from a web page
    -y, --accept-all      Skip review, add everything found
    --min-confidence      Drop weaker candidates (default 0.3)
    --json                Print candidates, save nothing

    Example:
      hwk extract "Math homework: solve problems 1-10 due tomorrow."

  fetch <url>             Print the text of a web page

  add <title>             Add a task by hand
    -s, --subject         math|science|english|history|art|music|pe|other
    -p, --priority        low|medium|high
    -d, --due             dd/mm/yyyy, yyyy-mm-dd, 3 days, tomorrow, friday
    --description         Longer description

  ls                      List tasks
    --subject, --priority Filter
    --status              all|pending|completed
    --sort                deadline|priority|subject
    --json                JSON output

  search <query>          Search titles, descriptions and subjects

  edit <id>               Change title, description, subject, priority or due
  done <id>               Mark task as completed
  undone <id>             Mark task as pending
  toggle <id>             Flip completed/pending
  rm <id>                 Delete a task
  clear                   Delete every task (-y to skip the prompt)

  suggest [id]            Suggest priorities and deadlines
    -w, --workload        Balance the whole pending list
    -y, --accept-all      Apply without review

    Review keys:
      ↑/↓           Navigate
      a/enter       Accept
      r/x           Reject
      A             Accept all remaining
      q/esc         Quit

  feedback [id]           List accepted/rejected suggestions
  export                  Export tasks (--format yaml|json, -o file)
  version                 Print the version
  help                    Show this help

IDs can be shortened to any unique prefix.

GLOBAL FLAGS:
  --config <file>         Config file (default ~/.hwk/config.yaml)
  --db <file>             Database file (default ~/.hwk/hwk.db)
  -v, --verbose           Debug logging to stderr

Settings can also come from HWK_* environment variables or a .env file,
e.g. HWK_FETCH_PROXY_URL, HWK_LOG_LEVEL.

`)
}
