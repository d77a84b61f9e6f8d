package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/cli/handlers"
	"github.com/JoacoWn/FoodScan/internal/logger"
	"github.com/JoacoWn/FoodScan/internal/service"
	"github.com/JoacoWn/FoodScan/internal/timeutil"
)

var (
	offlineFlag bool
	jsonFlag    bool
	baseURLFlag string
	itemsFlag   bool

	release = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "foodscan",
	Short: "Nutrition log client for the FoodScan backend",
	Long: `foodscan uploads meal photos to a FoodScan backend for analysis and shows
your food log day by day, grouped by meal, with progress against your
daily nutrition goals.

Usage:
  foodscan                                  Today's meals and goal progress
  foodscan y                                Yesterday
  foodscan day <date>                       Any date (YYYY-MM-DD, DD/MM/YYYY, today, yesterday, -N)
  foodscan days                             Dates that have logged meals
  foodscan analyze <image> --meal <type>    Analyze and log a meal photo
  foodscan delete <id>                      Delete a logged meal (with confirmation)
  foodscan goals                            Show daily goals
  foodscan goals set --calories 1800        Update goals
  foodscan tui                              Interactive day view

Meal types: desayuno, almuerzo, merienda, cena, snack
(English names such as breakfast, lunch and dinner also work).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		showDay(cmd, "today")
	},
}

// dayCmd represents the day command
var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show the meals of a date",
	Long: `Show the meals logged on a date, grouped by meal type, with totals and
progress against your goals. Without an argument it shows today.

Date formats:
  2024-06-04     ISO date
  04/06/2024     DD/MM/YYYY
  today, yesterday
  -3             three days ago

Examples:
  foodscan day 2024-06-04
  foodscan day -2 --items
  foodscan day yesterday --json`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeDate,
	Run: func(cmd *cobra.Command, args []string) {
		date := "today"
		if len(args) == 1 {
			date = args[0]
		}
		showDay(cmd, date)
	},
}

// yCmd represents the yesterday command
var yCmd = &cobra.Command{
	Use:   "y",
	Short: "Show yesterday's meals",
	Long:  `Show the meals logged yesterday with goal progress.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showDay(cmd, "yesterday")
	},
}

// daysCmd represents the days command
var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "List the dates that have logged meals",
	Long:  `List every date with logged meals, newest first, with meal counts and calories.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(cmd, handlers.ListDays)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&offlineFlag, "offline", false, "read the local history cache instead of the backend")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "print machine-readable JSON")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "backend URL (overrides config)")

	rootCmd.Flags().BoolVar(&itemsFlag, "items", false, "list the foods of each meal")
	dayCmd.Flags().BoolVar(&itemsFlag, "items", false, "list the foods of each meal")
	yCmd.Flags().BoolVar(&itemsFlag, "items", false, "list the foods of each meal")

	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(yCmd)
	rootCmd.AddCommand(daysCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	release = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"foodscan version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx bounding every backend call.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// showDay resolves a date argument and prints that day's view.
func showDay(cmd *cobra.Command, arg string) {
	withServices(cmd, func(d *cli.Deps) {
		date, err := timeutil.ParseDate(arg, d.Services.History.Location())
		if err != nil {
			_, _ = fmt.Fprintf(d.Stderr, "Error: Invalid date '%s'\n", arg)
			_, _ = fmt.Fprintf(d.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintln(d.Stderr, "Hint: Use YYYY-MM-DD, DD/MM/YYYY, today, yesterday or -N")
			d.Exit(1)
			return
		}
		handlers.ShowDay(d, date, itemsFlag)
	})
}

// withServices loads the configuration, sets up logging and the service
// layer, then runs fn. Setup failures are reported and exit with status 1.
func withServices(cmd *cobra.Command, fn func(d *cli.Deps)) {
	setupServices(cmd, false, fn)
}

// setupServices is withServices with control over stderr logging. quiet
// keeps log records off the terminal while a full-screen UI owns it.
func setupServices(cmd *cobra.Command, quiet bool, fn func(d *cli.Deps)) {
	configPath, cfg, err := deps.LoadConfig()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		if configPath != "" {
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: Fix or remove %s, or check FOODSCAN_* environment variables\n", configPath)
		}
		deps.Exit(1)
		return
	}

	closeLog, err := deps.InitLogger(logger.Options{
		Level:     cfg.LogLevel,
		Stderr:    deps.Stderr,
		Quiet:     quiet,
		File:      cfg.LogFile,
		SentryDSN: cfg.SentryDSN,
		Release:   release,
	})
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to set up logging")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check log_file and sentry_dsn in your config")
		deps.Exit(1)
		return
	}
	var cleanup sync.Once
	closeAll := func(services *service.Services) {
		cleanup.Do(func() {
			_ = services.Close()
			_ = closeLog()
		})
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	services, err := deps.NewServices(ctx, configPath, cfg, service.Options{
		BaseURL: baseURLFlag,
		Offline: offlineFlag,
		Logger:  slog.Default(),
	})
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to initialize foodscan")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check base_url and that the config directory is writable")
		_ = closeLog()
		deps.Exit(1)
		return
	}
	defer closeAll(services)

	fn(&cli.Deps{
		Stdout: deps.Stdout,
		Stderr: deps.Stderr,
		Stdin:  deps.Stdin,
		// Flush logs and close the goal store before a non-zero exit.
		Exit: func(code int) {
			closeAll(services)
			deps.Exit(code)
		},
		Services: services,
		Config:   cfg,
		Context:  ctx,
		JSON:     jsonFlag,
	})
}
