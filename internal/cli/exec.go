package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <command line...>",
	Short: "Run a single primo command and exit",
	Long: `Run one command line, print the reply and exit. The arguments are joined
with spaces, so quoting is optional:

  primo exec todo read book
  primo exec "deadline return book /by 2024-12-01"

The exit status is non-zero when the command is rejected.`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Handle --help / -h manually since DisableFlagParsing is true.
		if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
			return cmd.Help()
		}
		if len(args) == 0 {
			return fmt.Errorf("a command line is required")
		}
		session, err := openSession()
		if err != nil {
			return err
		}
		if LoadErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning: "+LoadErr.Error())
		}

		res, err := session.Handle(strings.Join(args, " "))
		if res != nil {
			fmt.Fprintln(cmd.OutOrStdout(), res.Text())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
