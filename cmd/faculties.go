package cmd

import (
	"fmt"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/pipeline"

	"github.com/spf13/cobra"
)

var facultiesCmd = &cobra.Command{
	Use:   "faculties",
	Short: "List faculties with respondent counts",
	RunE:  runFaculties,
}

func init() {
	rootCmd.AddCommand(facultiesCmd)
}

func runFaculties(_ *cobra.Command, _ []string) error {
	result, _, err := loadData()
	if err != nil {
		return err
	}

	counts := pipeline.CountFaculties(result.Dataset.Respondents)
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Label, cli.FormatNumber(int64(c.Count)), cli.FormatPercent(c.Percent)})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Fakultas (%d)", len(counts)),
		Headers: []string{"Fakultas", "Responden", "Porsi"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
