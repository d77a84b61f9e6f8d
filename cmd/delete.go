package cmd

import (
	"github.com/spf13/cobra"

	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/cli/handlers"
)

var yesFlag bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged meal by ID",
	Long: `Delete a logged meal from the backend by its ID.
IDs are shown next to each meal by 'foodscan day'.
A confirmation prompt will be shown unless --yes is specified.

Example:
  foodscan delete 665f1c2e9b1e8a3d4c2b1a01
  foodscan delete 665f1c2e9b1e8a3d4c2b1a01 --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, func(d *cli.Deps) {
			handlers.DeleteEntry(d, args[0], yesFlag)
		})
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
