package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/cli/handlers"
	"github.com/JoacoWn/FoodScan/internal/service"
)

var mealFlag string

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze a meal photo and log it",
	Long: `Upload a meal photo to the backend, which identifies the foods, estimates
their nutrients and logs the meal under the given meal type.

Only png, jpg and jpeg files are accepted. Afternoon snacks and snacks are
both logged by the backend as "aperitivo" and show up under Snack.

Examples:
  foodscan analyze lunch.jpg --meal almuerzo
  foodscan analyze plato.png -m breakfast`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeImage,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, func(d *cli.Deps) {
			handlers.Analyze(d, args[0], mealFlag)
		})
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&mealFlag, "meal", "m", "", "meal type: "+strings.Join(service.UploadMealTypes, ", "))
	_ = analyzeCmd.RegisterFlagCompletionFunc("meal", completeMealType)
	rootCmd.AddCommand(analyzeCmd)
}
