package unindex

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type CLIConfig struct {
	DryRun      bool
	CopyPlan    bool
	ReloadNvim  bool
	NoAnimation bool
	Completion  string
}

var cfg = &CLIConfig{}

var rootCmd = &cobra.Command{
	Use:   "unindex [folder] [tsconfig] [root]",
	Short: "Rename index.* files after their directory and rewrite imports.",
	Long: `Rename every index.* file under a folder to its directory's name and
rewrite the import specifiers that point at it.

folder    defaults to src
tsconfig  defaults to tsconfig.json
root      defaults to the directory containing tsconfig

Example: unindex src tsconfig.json`,
	Args: cobra.MaximumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Completion != "" {
			return handleCompletion(cmd)
		}

		if cfg.CopyPlan && !cfg.DryRun {
			return fmt.Errorf("error: --copy requires --dry-run")
		}

		appCfg := &Config{
			DryRun:     cfg.DryRun,
			CopyPlan:   cfg.CopyPlan,
			ReloadNvim: cfg.ReloadNvim,
		}
		if len(args) > 0 {
			appCfg.Folder = args[0]
		}
		if len(args) > 1 {
			appCfg.ConfigPath = args[1]
		}
		if len(args) > 2 {
			appCfg.Root = args[2]
		}

		app, err := NewApp(appCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ui := NewTUI(app, cfg.NoAnimation)
		return ui.Run()
	},
}

func handleCompletion(cmd *cobra.Command) error {
	switch cfg.Completion {
	case "bash":
		return cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		return cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
	default:
		return fmt.Errorf("unsupported shell for completion: %s", cfg.Completion)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfg.Completion, "completion", "", "Generate completion script")
	rootCmd.Flags().BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Report the plan without touching the filesystem")
	rootCmd.Flags().BoolVarP(&cfg.CopyPlan, "copy", "c", false, "Copy the dry-run plan to the clipboard")
	rootCmd.Flags().BoolVar(&cfg.ReloadNvim, "reload-nvim", false, "Reload affected buffers in a running Neovim")
	rootCmd.Flags().BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable spinner")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func Execute() error {
	return rootCmd.Execute()
}
