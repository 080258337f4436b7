package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/invoicer/pkg/pipeline"
	"github.com/matzehuels/invoicer/pkg/render/sheet/styles"
)

// completionCommand prints shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell to stdout.

  source <(invoicer completion bash)
  invoicer completion zsh > "${fpath[1]}/_invoicer"
  invoicer completion fish > ~/.config/fish/completions/invoicer.fish
  invoicer completion powershell | Out-String | Invoke-Expression

Besides commands and flags, the scripts complete palette names and output
formats.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completePalettes completes built-in palette names.
func completePalettes(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return styles.Names(), cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes the next entry of a comma-separated format
// list, skipping formats already given.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, prefix := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		done, prefix = toComplete[:i+1], toComplete[i+1:]
	}
	given := pipeline.ParseFormats(done)

	var out []string
	for format := range pipeline.ValidFormats {
		if strings.HasPrefix(format, prefix) && !slices.Contains(given, format) {
			out = append(out, done+format)
		}
	}
	slices.Sort(out)
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
