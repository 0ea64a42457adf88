package cmd

import (
	"fmt"

	"github.com/rewardscope/rewardscope/internal/cli"

	"github.com/spf13/cobra"
)

var flagBarWidth int

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render every dashboard chart as terminal text",
	RunE:  runCharts,
}

func init() {
	chartsCmd.Flags().IntVarP(&flagBarWidth, "width", "w", 40, "Bar width in columns")
	rootCmd.AddCommand(chartsCmd)
}

func runCharts(_ *cobra.Command, _ []string) error {
	result, _, err := loadData()
	if err != nil {
		return err
	}

	r := buildReport(result)
	fmt.Println()
	fmt.Print(cli.RenderReport(r, max(flagBarWidth, 10)))
	fmt.Println()
	return nil
}
