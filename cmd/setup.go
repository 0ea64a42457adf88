package cmd

import (
	"fmt"

	"github.com/rewardscope/rewardscope/internal/config"
	"github.com/rewardscope/rewardscope/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	vals := tui.NewSetupValues(cfg)
	form := tui.NewSetupForm(vals, "Arahkan rewardscope ke file CSV survei dan pilih tema.")
	if err := form.Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	tui.ApplySetup(&cfg, vals)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `rewardscope setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
