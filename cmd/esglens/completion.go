package esglens

import (
	"io"

	"github.com/spf13/cobra"
)

var completionShells = map[string]func(w io.Writer) error{
	"bash":       rootCmd.GenBashCompletion,
	"zsh":        rootCmd.GenZshCompletion,
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": rootCmd.GenPowerShellCompletionWithDesc,
}

func init() {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts",
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.OutOrStdout())
		},
		Example: `  esglens completion bash > /etc/bash_completion.d/esglens
  esglens completion zsh > "${fpath[1]}/_esglens"
  esglens completion fish > ~/.config/fish/completions/esglens.fish`,
	}
	rootCmd.AddCommand(cmd)
}
