package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/microprint/pkg/fonts"
	"github.com/matzehuels/microprint/pkg/scene"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for microprint.

Bash:
  $ source <(microprint completion bash)

Zsh:
  $ microprint completion zsh > "${fpath[1]}/_microprint"

Fish:
  $ microprint completion fish > ~/.config/fish/completions/microprint.fish

PowerShell:
  PS> microprint completion powershell | Out-String | Invoke-Expression
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
}

// completePanels completes panel ids and the "all" pattern.
func completePanels(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cat := scene.NewCatalog(fonts.NewRegistry(nil, nil))
	taken := make(map[string]bool, len(args))
	for _, a := range args {
		taken[a] = true
	}
	var out []string
	for _, e := range cat.Entries() {
		if !taken[e.ID] && strings.HasPrefix(e.ID, toComplete) {
			out = append(out, e.ID+"\t"+e.Title)
		}
	}
	if strings.HasPrefix("all", toComplete) {
		out = append(out, "all\tevery panel")
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completePresets completes preset names for --preset.
func (c *CLI) completePresets(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, p := range cfg.Presets {
		if strings.HasPrefix(p.Name, toComplete) {
			out = append(out, p.Name+"\t"+p.Size)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
