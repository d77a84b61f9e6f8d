package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/service"
	"github.com/JoacoWn/FoodScan/internal/timeutil"
)

// recentDays is how many "-N" offsets date completion offers.
const recentDays = 6

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for foodscan.

Besides commands and flags, the scripts complete:
  foodscan day <TAB>            today, yesterday and -1 to -6, each with its date
  foodscan analyze --meal <TAB> the meal types the backend accepts
  foodscan completion <TAB>     the supported shells

Images for analyze complete as png, jpg and jpeg files only.

Usage:
  foodscan completion bash       Generate bash completion script
  foodscan completion zsh        Generate zsh completion script
  foodscan completion fish       Generate fish completion script
  foodscan completion powershell Generate powershell completion script

Installation Instructions:

Bash:
  # Load completion temporarily (current session only):
  source <(foodscan completion bash)

  # Install completion permanently:
  # Linux:
  foodscan completion bash > ~/.local/share/bash-completion/completions/foodscan

  # macOS (requires bash-completion from Homebrew):
  foodscan completion bash > $(brew --prefix)/etc/bash_completion.d/foodscan

Zsh:
  # Load completion temporarily (current session only):
  source <(foodscan completion zsh)

  # Install completion permanently:
  # Add to ~/.zshrc:
  echo 'fpath=(~/.zsh/completion $fpath)' >> ~/.zshrc
  echo 'autoload -Uz compinit && compinit' >> ~/.zshrc

  # Generate completion file:
  mkdir -p ~/.zsh/completion
  foodscan completion zsh > ~/.zsh/completion/_foodscan

  # Then restart your shell

Fish:
  # Install completion permanently:
  foodscan completion fish > ~/.config/fish/completions/foodscan.fish

PowerShell:
  # Open your PowerShell profile:
  notepad $PROFILE

  # Add this line to your profile:
  foodscan completion powershell | Out-String | Invoke-Expression

  # Save and restart PowerShell`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// completeDate offers relative dates for the single date argument of day.
// Descriptions show the calendar date each one resolves to.
func completeDate(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	today := timeutil.Today(time.Local)
	suggestions := []string{
		"today\t" + cli.FormatDate(today),
		"yesterday\t" + cli.FormatDate(timeutil.AddDays(today, -1)),
	}
	for n := 1; n <= recentDays; n++ {
		suggestions = append(suggestions,
			"-"+strconv.Itoa(n)+"\t"+cli.FormatDate(timeutil.AddDays(today, -n)))
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}

// completeMealType offers the meal types analyze uploads.
func completeMealType(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return service.UploadMealTypes, cobra.ShellCompDirectiveNoFileComp
}

// completeImage restricts the analyze argument to supported image files.
func completeImage(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"png", "jpg", "jpeg"}, cobra.ShellCompDirectiveFilterFileExt
}

// generateCompletion generates the appropriate completion script based on shell type
func generateCompletion(shell string) {
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(deps.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(deps.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(deps.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(deps.Stdout)
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(deps.Stderr, "Supported shells: bash, zsh, fish, powershell")
		deps.Exit(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		deps.Exit(1)
		return
	}
}
