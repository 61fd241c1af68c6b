package main

import (
	"github.com/spf13/cobra"
)

// NewCompletionCommand creates the 'completion' command that prints shell
// completion scripts for the root command, including --algorithm values.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `Print a shell completion script for dirdigest to stdout.

  $ source <(dirdigest completion bash)
  $ dirdigest completion zsh > "${fpath[1]}/_dirdigest"
  $ dirdigest completion fish > ~/.config/fish/completions/dirdigest.fish
  PS> dirdigest completion powershell | Out-String | Invoke-Expression

Completions cover the --algorithm values and directory paths.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
