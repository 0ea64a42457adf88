package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testDataset() model.Dataset {
	return model.Dataset{Path: "survey.csv", Respondents: []model.Respondent{
		{Faculty: "A", RewardType: "Makanan", Preference: "Materi", Budget: 100000, Frequency: 2, Importance: 5, Desire: 4, Duration: 1},
		{Faculty: "A", RewardType: "Liburan", Preference: "Non-Materi", Budget: 200000, Frequency: 1, Importance: 3, Desire: 2, Duration: 3},
		{Faculty: "B", RewardType: "Makanan", Preference: "Materi", Budget: 300000, Frequency: 3, Importance: 4, Desire: 5, Duration: 2},
	}}
}

func get(t *testing.T, s *Service, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// reportJSON mirrors the fields of model.Report the tests inspect.
type reportJSON struct {
	Selection []string `json:"selection"`
	Summary   struct {
		TotalRespondents  int      `json:"total_respondents"`
		MedianBudget      *float64 `json:"median_budget"`
		MeanFrequency     *float64 `json:"mean_frequency"`
		HighImportancePct *float64 `json:"high_importance_pct"`
	} `json:"summary"`
}

func decodeReport(t *testing.T, rec *httptest.ResponseRecorder) reportJSON {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var r reportJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return r
}

func TestReport_DefaultSelectsAll(t *testing.T) {
	s := New(Config{}, testDataset(), zerolog.Nop())
	r := decodeReport(t, get(t, s, "/api/report"))

	if r.Summary.TotalRespondents != 3 {
		t.Errorf("total = %d, want 3", r.Summary.TotalRespondents)
	}
	if len(r.Selection) != 2 {
		t.Errorf("selection = %v, want both faculties", r.Selection)
	}
}

func TestReport_FilterByFaculty(t *testing.T) {
	s := New(Config{}, testDataset(), zerolog.Nop())
	r := decodeReport(t, get(t, s, "/api/report?fakultas=A&fakultas=Z"))

	if r.Summary.TotalRespondents != 2 {
		t.Errorf("total = %d, want 2", r.Summary.TotalRespondents)
	}
	if r.Summary.MedianBudget == nil || *r.Summary.MedianBudget != 150000 {
		t.Errorf("median = %v, want 150000", r.Summary.MedianBudget)
	}
	if r.Summary.HighImportancePct == nil || *r.Summary.HighImportancePct != 50 {
		t.Errorf("high importance = %v, want 50", r.Summary.HighImportancePct)
	}
}

func TestReport_SubmittedEmptyForm(t *testing.T) {
	s := New(Config{}, testDataset(), zerolog.Nop())
	r := decodeReport(t, get(t, s, "/api/report?filter=1"))

	if r.Summary.TotalRespondents != 0 {
		t.Errorf("total = %d, want 0", r.Summary.TotalRespondents)
	}
	if r.Summary.MedianBudget != nil || r.Summary.MeanFrequency != nil || r.Summary.HighImportancePct != nil {
		t.Errorf("undefined metrics should encode as null: %+v", r.Summary)
	}
}

func TestPage_RendersDashboard(t *testing.T) {
	s := New(Config{}, testDataset(), zerolog.Nop())
	rec := get(t, s, "/?filter=1&fakultas=B")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{cli.DashboardTitle, cli.FilterPrompt, "1 orang", "Rp 300,000", `name="fakultas" value="B" checked`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, `value="A" checked`) {
		t.Error("faculty A should be unchecked")
	}
}

func TestPage_ChartLabelFormats(t *testing.T) {
	s := New(Config{}, testDataset(), zerolog.Nop())
	body := get(t, s, "/").Body.String()

	// Pie slices carry one-decimal percentages, correlation cells two decimals.
	for _, want := range []string{"p.percent.toFixed(1)", "v.toFixed(2)"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing label formatter %q", want)
		}
	}
}

func TestPage_EmptySelectionStillRenders(t *testing.T) {
	s := New(Config{}, testDataset(), zerolog.Nop())
	rec := get(t, s, "/?filter=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, cli.NotAvailable) || !strings.Contains(body, cli.NoData) {
		t.Error("empty page should show N/A metrics and empty-chart notes")
	}
}

func TestFacultiesAndHealth(t *testing.T) {
	s := New(Config{}, testDataset(), zerolog.Nop())

	rec := get(t, s, "/api/faculties")
	var counts []model.CategoryCount
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatal(err)
	}
	if len(counts) != 2 || counts[0].Label != "A" || counts[0].Count != 2 {
		t.Errorf("faculties = %+v", counts)
	}

	rec = get(t, s, "/healthz")
	var st Status
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Status != "ok" || st.Rows != 3 || st.Faculties != 2 {
		t.Errorf("status = %+v", st)
	}
	if st.RequestCount != 2 {
		t.Errorf("request count = %d, want 2", st.RequestCount)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	s := New(Config{}, testDataset(), zerolog.New(&buf))
	get(t, s, "/healthz")

	line := buf.String()
	if !strings.Contains(line, `"path":"/healthz"`) || !strings.Contains(line, `"status":200`) {
		t.Errorf("log line = %q", line)
	}
}
