package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "primo",
	Short: "primo - a chat-style task tracker",
	Long: `primo keeps a list of todos, deadlines and events in a plain text file.

Run it with no arguments to start an interactive session, then type commands
such as:

  todo read book /n chapter 3
  deadline return book /by 2024-12-01
  event trip /from 2024-01-01 /to 2024-01-05
  list | find <keyword> | mark <n> | unmark <n> | delete <n> | bye`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		return runREPL(session, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "primo %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
