package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// Completion returns the completion command for shell autocompletion.
func Completion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for webstamp.

The script completes subcommands and flags, so "webstamp ap<TAB>"
expands to "webstamp apply" and "--val<TAB>" to "--values".

Bash:
  $ source <(webstamp completion bash)
  # To install permanently on Linux:
  $ webstamp completion bash > /etc/bash_completion.d/webstamp
  # macOS with Homebrew:
  $ webstamp completion bash > $(brew --prefix)/etc/bash_completion.d/webstamp

Zsh:
  # Enable completion support once if you have not already:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ webstamp completion zsh > "${fpath[1]}/_webstamp"
  # Restart your shell afterwards.

Fish:
  $ webstamp completion fish | source
  # To install permanently:
  $ webstamp completion fish > ~/.config/fish/completions/webstamp.fish

PowerShell:
  PS> webstamp completion powershell | Out-String | Invoke-Expression
  # To load for every session, write the script to a file and source it
  # from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
