package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JoacoWn/FoodScan/internal/cli"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive day view.

Keyboard shortcuts:
  - h/l or left/right: previous/next day
  - t: jump to today
  - j/k or arrows: select a meal
  - d then y: delete the selected meal
  - r: reload from the backend
  - ?: show help
  - q: quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI initializes and runs the TUI application. Logs go only to the
// log file and Sentry while the TUI holds the screen.
func runTUI(cmd *cobra.Command) {
	setupServices(cmd, true, func(d *cli.Deps) {
		if err := deps.RunTUI(d.Ctx(), d.Services, d.Config); err != nil {
			_, _ = fmt.Fprintf(d.Stderr, "Error: Failed to run the TUI\n")
			_, _ = fmt.Fprintf(d.Stderr, "Details: %v\n", err)
			d.Exit(1)
		}
	})
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI(cmd)
		return true
	}
	return false
}
