package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/pipeline"

	"gopkg.in/yaml.v3"
)

func testReport(selection []string) model.Report {
	ds := model.Dataset{Respondents: []model.Respondent{
		{Faculty: "Teknik", RewardType: "Makanan", Preference: "Materi", Frequency: 2, Desire: 4, Budget: 100000, Duration: 1, Importance: 5},
		{Faculty: "Teknik", RewardType: "Liburan", Preference: "Non-Materi", Frequency: 4, Desire: 3, Budget: 300000, Duration: 2, Importance: 2},
		{Faculty: "Hukum", RewardType: "Makanan", Preference: "Materi", Frequency: 3, Desire: 5, Budget: 200000, Duration: 3, Importance: 4},
	}}
	return pipeline.BuildReport(ds, selection)
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSummary(&buf, testReport([]string{"Teknik", "Hukum"}), "json"); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Summary struct {
			TotalRespondents int      `json:"total_respondents"`
			MedianBudget     *float64 `json:"median_budget"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Summary.TotalRespondents != 3 {
		t.Errorf("total = %d, want 3", got.Summary.TotalRespondents)
	}
	if got.Summary.MedianBudget == nil || *got.Summary.MedianBudget != 200000 {
		t.Errorf("median = %v, want 200000", got.Summary.MedianBudget)
	}
}

func TestWriteSummaryJSONEmptySelection(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSummary(&buf, testReport([]string{}), "json"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"median_budget": null`) {
		t.Errorf("undefined median should encode as null:\n%s", buf.String())
	}
}

func TestWriteSummaryYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSummary(&buf, testReport([]string{"Hukum"}), "yaml"); err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	summary, ok := got["summary"].(map[string]any)
	if !ok {
		t.Fatalf("summary missing: %v", got)
	}
	if summary["total_respondents"] != 1 {
		t.Errorf("total = %v, want 1", summary["total_respondents"])
	}
}

func TestWriteSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSummary(&buf, testReport([]string{"Teknik"}), "table"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Teknik") {
		t.Errorf("table output should name the selection:\n%s", buf.String())
	}
}

func TestWriteSummaryUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSummary(&buf, testReport(nil), "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
