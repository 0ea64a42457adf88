package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/model"

	"github.com/go-echarts/go-echarts/v2/components"
)

var headerTmpl = template.Must(template.New("header").Parse(`
<div class="rs-header">
  <h1>{{.Title}}</h1>
  <form class="rs-filter" method="get" action="/">
    <input type="hidden" name="filter" value="1">
    <strong>{{.FilterTitle}}</strong> &middot; {{.FilterPrompt}}:
    {{range .Options}}
    <label><input type="checkbox" name="fakultas" value="{{.Name}}"{{if .Checked}} checked{{end}}> {{.Name}}</label>
    {{end}}
    <button type="submit">Terapkan</button>
  </form>
  <h2>{{.SummaryTitle}}</h2>
  <div class="rs-metrics">
    {{range .Metrics}}
    <div class="rs-metric"><div class="rs-label">{{index . 0}}</div><div class="rs-value">{{index . 1}}</div></div>
    {{end}}
  </div>
</div>
`))

const pageCSS = `<style>
body { font-family: sans-serif; margin: 0 auto; max-width: 1200px; }
.rs-header { padding: 16px 30px; }
.rs-filter label { margin-right: 12px; }
.rs-metrics { display: flex; gap: 16px; }
.rs-metric { flex: 1; border: 1px solid #ddd; border-radius: 6px; padding: 12px; }
.rs-label { color: #6F6E69; font-size: 0.9em; }
.rs-value { font-size: 1.6em; font-weight: bold; }
</style>
`

type facultyOption struct {
	Name    string
	Checked bool
}

type headerData struct {
	Title        string
	FilterTitle  string
	FilterPrompt string
	SummaryTitle string
	Options      []facultyOption
	Metrics      [][]string
}

// RenderPage writes the full HTML dashboard for r: title, filter form and metrics,
// followed by every chart in dashboard order.
func RenderPage(r model.Report, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = cli.DashboardTitle
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		rewardTypeChart(r.RewardTypes),
		preferenceChart(r.Preferences),
		budgetBoxChart(r.Budget),
		frequencyChart(r.Frequency),
		groupMeanChart(r.BudgetByType),
		correlationChart(r.Correlation),
	)

	var buf strings.Builder
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("rendering charts: %w", err)
	}

	selected := make(map[string]bool, len(r.Selection))
	for _, s := range r.Selection {
		selected[s] = true
	}
	data := headerData{
		Title:        cli.DashboardTitle,
		FilterTitle:  cli.FilterTitle,
		FilterPrompt: cli.FilterPrompt,
		SummaryTitle: cli.SummaryTitle,
		Metrics:      cli.SummaryRows(r.Summary),
	}
	for _, f := range r.Faculties {
		data.Options = append(data.Options, facultyOption{Name: f, Checked: selected[f]})
	}

	var header bytes.Buffer
	if err := headerTmpl.Execute(&header, data); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	html := buf.String()
	html = strings.Replace(html, "<body>", "<body>\n"+header.String(), 1)
	html = strings.Replace(html, "</head>", pageCSS+"</head>", 1)

	_, err := io.WriteString(w, html)
	return err
}
