package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/model"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagOutput string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summary metrics for the selected faculties",
	RunE:  runSummary,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, summaryCmd} {
		c.Flags().StringVarP(&flagOutput, "output", "o", "table", "Output format: table, json, yaml")
	}
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	result, _, err := loadData()
	if err != nil {
		return err
	}

	r := buildReport(result)
	return writeSummary(os.Stdout, r, flagOutput)
}

// writeSummary renders the report summary in the requested format. The structured
// formats carry the whole report so scripts get every aggregate.
func writeSummary(w io.Writer, r model.Report, format string) error {
	switch format {
	case "table", "":
		fmt.Fprintln(w)
		fmt.Fprintln(w, cli.RenderTitle(cli.DashboardTitle))
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s: %s\n\n", cli.FilterPrompt, cli.SelectionLabel(r))
		fmt.Fprint(w, cli.RenderSummary(r.Summary))
		fmt.Fprintln(w)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(r)
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}
