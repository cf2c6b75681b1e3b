package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for craft-plugin-list. Completion covers
subcommands, flags and the values of --orderBy and --order.

To load completions:

Bash:
  $ source <(craft-plugin-list completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ craft-plugin-list completion bash > /etc/bash_completion.d/craft-plugin-list
  # macOS:
  $ craft-plugin-list completion bash > $(brew --prefix)/etc/bash_completion.d/craft-plugin-list

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ craft-plugin-list completion zsh > "${fpath[1]}/_craft-plugin-list"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ craft-plugin-list completion fish | source

  # To load completions for each session, execute once:
  $ craft-plugin-list completion fish > ~/.config/fish/completions/craft-plugin-list.fish

PowerShell:
  PS> craft-plugin-list completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> craft-plugin-list completion powershell > craft-plugin-list.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(c.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(c.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.Stdout)
			}
			return nil
		},
	}

	return cmd
}
