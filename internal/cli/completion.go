package cli

import (
	"io"

	"github.com/spf13/cobra"
)

type completionGen func(root *cobra.Command, w io.Writer, withDesc bool) error

var completionShells = map[string]completionGen{
	"bash": func(root *cobra.Command, w io.Writer, withDesc bool) error {
		return root.GenBashCompletionV2(w, withDesc)
	},
	"zsh": func(root *cobra.Command, w io.Writer, withDesc bool) error {
		if withDesc {
			return root.GenZshCompletion(w)
		}
		return root.GenZshCompletionNoDesc(w)
	},
	"fish": func(root *cobra.Command, w io.Writer, withDesc bool) error {
		return root.GenFishCompletion(w, withDesc)
	},
	"powershell": func(root *cobra.Command, w io.Writer, withDesc bool) error {
		if withDesc {
			return root.GenPowerShellCompletionWithDesc(w)
		}
		return root.GenPowerShellCompletion(w)
	},
}

// completionCommand prints a shell completion script.
func (c *CLI) completionCommand() *cobra.Command {
	var noDesc bool

	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for pinboard.

  $ source <(pinboard completion bash)
  $ pinboard completion zsh > "${fpath[1]}/_pinboard"
  $ pinboard completion fish > ~/.config/fish/completions/pinboard.fish
  PS> pinboard completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout(), !noDesc)
		},
	}
	cmd.Flags().BoolVar(&noDesc, "no-descriptions", false, "omit completion descriptions")

	return cmd
}
