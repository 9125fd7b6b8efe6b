package commands

import "github.com/spf13/cobra"

// Completion returns the completion command for shell autocompletion.
func Completion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sv2wizard.

To load completions:

Bash:
  $ source <(sv2wizard completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ sv2wizard completion bash > /etc/bash_completion.d/sv2wizard
  # macOS:
  $ sv2wizard completion bash > $(brew --prefix)/etc/bash_completion.d/sv2wizard

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ sv2wizard completion zsh > "${fpath[1]}/_sv2wizard"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ sv2wizard completion fish | source
  # To load completions for each session, execute once:
  $ sv2wizard completion fish > ~/.config/fish/completions/sv2wizard.fish

PowerShell:
  PS> sv2wizard completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> sv2wizard completion powershell > sv2wizard.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
