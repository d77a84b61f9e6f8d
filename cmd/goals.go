package cmd

import (
	"github.com/spf13/cobra"

	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/cli/handlers"
	"github.com/JoacoWn/FoodScan/internal/service"
)

var goalsInput service.GoalsInput

// goalsCmd represents the goals command
var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show or change daily nutrition goals",
	Long: `Show your daily nutrition goals. Defaults are 2000 kcal, 100 g protein,
70 g fat and 250 g carbohydrates until you set your own.

Examples:
  foodscan goals
  foodscan goals set --calories 1800 --protein 120
  foodscan goals reset`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, handlers.ShowGoals)
	},
}

// goalsSetCmd represents the goals set command
var goalsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update one or more goals",
	Long: `Update daily goals. Goals not given keep their current value.
Values must be non-negative numbers; if any value is invalid nothing is saved.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, func(d *cli.Deps) {
			handlers.SetGoals(d, goalsInput)
		})
	},
}

// goalsResetCmd represents the goals reset command
var goalsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default goals",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, handlers.ResetGoals)
	},
}

func init() {
	goalsSetCmd.Flags().StringVar(&goalsInput.Calories, "calories", "", "daily calories (kcal)")
	goalsSetCmd.Flags().StringVar(&goalsInput.Protein, "protein", "", "daily protein (g)")
	goalsSetCmd.Flags().StringVar(&goalsInput.Fat, "fat", "", "daily fat (g)")
	goalsSetCmd.Flags().StringVar(&goalsInput.Carbs, "carbs", "", "daily carbohydrates (g)")

	goalsCmd.AddCommand(goalsSetCmd)
	goalsCmd.AddCommand(goalsResetCmd)
	rootCmd.AddCommand(goalsCmd)
}
