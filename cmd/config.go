package cmd

import (
	"github.com/spf13/cobra"

	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/cli/handlers"
)

var initConfigFlag bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for foodscan.

Shows the configuration file location, whether it exists, all current
settings and the state of the local history cache. Values come from the
config file, then a .env file in the working directory, then FOODSCAN_*
environment variables.

By default, foodscan works without any configuration file:
  - base_url: http://localhost:5000/
  - timeout: 30s
  - timezone: Local (system timezone)
  - log_level: warn

Examples:
  foodscan config                       Show all current settings
  foodscan config --init                Write a commented sample config
  foodscan config set-url http://192.168.0.10:5000/

Configuration file location:
  ~/.config/foodscan/config.toml        Linux
  %APPDATA%\foodscan\config.toml        Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, func(d *cli.Deps) {
			if initConfigFlag {
				handlers.InitConfig(d)
				return
			}
			handlers.ShowConfig(d)
		})
	},
}

// setURLCmd represents the config set-url command
var setURLCmd = &cobra.Command{
	Use:   "set-url <url>",
	Short: "Set the backend base URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, func(d *cli.Deps) {
			handlers.SetURL(d, args[0])
		})
	},
}

func init() {
	configCmd.Flags().BoolVar(&initConfigFlag, "init", false, "create a sample config file")
	configCmd.AddCommand(setURLCmd)
	rootCmd.AddCommand(configCmd)
}
