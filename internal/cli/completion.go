package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/builtwith/pkg/builtwith"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for builtwith.

  $ source <(builtwith completion bash)
  $ builtwith completion zsh > "${fpath[1]}/_builtwith"
  $ builtwith completion fish > ~/.config/fish/completions/builtwith.fish
  PS> builtwith completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(c.out, true)
			case "zsh":
				return root.GenZshCompletion(c.out)
			case "fish":
				return root.GenFishCompletion(c.out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(c.out)
			}
		},
	}
}

// registerFlagCompletions wires value completion for persistent flags.
func registerFlagCompletions(root *cobra.Command) {
	_ = root.RegisterFlagCompletionFunc("format", completeFormats)
}

// completeFormats suggests the supported response formats.
func completeFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(builtwith.Formats))
	for i, f := range builtwith.Formats {
		names[i] = f.String()
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
