// status.go implements the "questclock status" command printing the history summary.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/questclock/questclock/internal/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print today's totals and recent sessions",
	Long: `Print the same plain-text summary shown when stdout is not a terminal:
today's and yesterday's minutes, this week's total and streak, and the most
recent sessions.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	return tui.WriteSummary(cmd.OutOrStdout(), env.store.Load(), time.Now())
}
