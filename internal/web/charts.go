package web

import (
	"fmt"
	"math"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Label formatters run in the browser. Pie slices show one decimal place,
// correlation cells two; undefined cells carry "-".
const (
	pieLabelFormatter     = "function (p) { return p.name + ': ' + p.percent.toFixed(1) + '%'; }"
	heatmapLabelFormatter = "function (p) { var v = p.value[2]; return v === '-' ? '-' : v.toFixed(2); }"
)

const (
	halfWidth   = "560px"
	fullWidth   = "1140px"
	chartHeight = "400px"
	barColor    = "#4385BE"
)

func subtitle(empty bool) string {
	if empty {
		return cli.NoData
	}
	return ""
}

func initOpts(width string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:  width,
		Height: chartHeight,
	})
}

// horizontalBar draws one bar per label with categories on the Y axis, first label on top.
func horizontalBar(title, valueAxis, categoryAxis string, labels []string, values []float64, width string) *charts.Bar {
	bar := charts.NewBar()

	// ECharts stacks categories bottom-up; reverse so the first label is drawn on top.
	n := len(labels)
	yLabels := make([]string, n)
	data := make([]opts.BarData, n)
	for i := range labels {
		yLabels[n-1-i] = labels[i]
		data[n-1-i] = opts.BarData{Value: values[i]}
	}

	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle(n == 0),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: valueAxis,
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: categoryAxis,
			Type: "category",
			Data: yLabels,
		}),
		charts.WithGridOpts(opts.Grid{
			Left:  "22%",
			Right: "12%",
		}),
		initOpts(width),
	)

	bar.AddSeries(valueAxis, data,
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color: barColor,
		}),
	)
	return bar
}

func rewardTypeChart(counts []model.CategoryCount) *charts.Bar {
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		labels[i] = c.Label
		values[i] = float64(c.Count)
	}
	return horizontalBar(cli.RewardTypeTitle, cli.AxisRespondents, cli.AxisRewardType, labels, values, halfWidth)
}

func groupMeanChart(means []model.GroupMean) *charts.Bar {
	labels := make([]string, len(means))
	values := make([]float64, len(means))
	for i, g := range means {
		labels[i] = g.Label
		values[i] = math.Round(g.Mean)
	}
	return horizontalBar(cli.GroupMeanTitle, cli.AxisMeanBudget, cli.AxisRewardType, labels, values, fullWidth)
}

func preferenceChart(counts []model.CategoryCount) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    cli.PreferenceTitle,
			Subtitle: subtitle(len(counts) == 0),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		initOpts(halfWidth),
	)

	items := make([]opts.PieData, len(counts))
	for i, c := range counts {
		items[i] = opts.PieData{Name: c.Label, Value: c.Count}
	}
	pie.AddSeries(cli.AxisRespondents, items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: string(opts.FuncOpts(pieLabelFormatter)),
		}))
	return pie
}

func budgetBoxChart(box model.BoxStats) *charts.BoxPlot {
	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    cli.BudgetBoxTitle,
			Subtitle: subtitle(!box.Defined()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: cli.AxisBudget,
			Type: "value",
		}),
		initOpts(halfWidth),
	)

	var data []opts.BoxPlotData
	if box.Defined() {
		data = append(data, opts.BoxPlotData{
			Name: cli.AxisBudget,
			Value: []float64{
				box.LowerWhisker.Value, box.Q1.Value, box.Median.Value,
				box.Q3.Value, box.UpperWhisker.Value,
			},
		})
	}
	bp.SetXAxis([]string{cli.AxisBudget}).AddSeries("Budget", data)

	if len(box.Outliers) > 0 {
		points := make([]opts.ScatterData, len(box.Outliers))
		for i, v := range box.Outliers {
			points[i] = opts.ScatterData{Value: []interface{}{0, v}, Symbol: "circle", SymbolSize: 8}
		}
		outliers := charts.NewScatter()
		outliers.AddSeries("Outlier", points)
		bp.Overlap(outliers)
	}
	return bp
}

func frequencyChart(h model.Histogram) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    cli.FrequencyTitle,
			Subtitle: subtitle(len(h.Bins) == 0),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: cli.AxisFrequency,
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: cli.AxisRespondents,
			Type: "value",
		}),
		initOpts(halfWidth),
	)

	labels := make([]string, len(h.Bins))
	data := make([]opts.BarData, len(h.Bins))
	for i, b := range h.Bins {
		labels[i] = fmt.Sprintf("%d", b.Lo)
		data[i] = opts.BarData{Value: b.Count}
	}

	bar.SetXAxis(labels)
	bar.AddSeries(cli.AxisRespondents, data,
		charts.WithBarChartOpts(opts.BarChart{
			BarCategoryGap: "2%",
		}),
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color: barColor,
		}),
	)
	return bar
}

func correlationChart(m model.CorrelationMatrix) *charts.HeatMap {
	hm := charts.NewHeatMap()

	n := len(m.Columns)
	xLabels := make([]string, n)
	yLabels := make([]string, n)
	for i, c := range m.Columns {
		xLabels[i] = cli.ShortColumn(c)
		yLabels[n-1-i] = cli.ShortColumn(c)
	}

	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: cli.HeatmapTitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      yLabels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithGridOpts(opts.Grid{
			Left:   "15%",
			Right:  "15%",
			Bottom: "12%",
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange: &opts.VisualMapInRange{
				Color: cli.Blues,
			},
		}),
		initOpts(fullWidth),
	)

	var data []opts.HeatMapData
	for i, row := range m.Values {
		for j, c := range row {
			var v interface{} = "-"
			if c.Defined {
				v = c.Value
			}
			data = append(data, opts.HeatMapData{
				Value: [3]interface{}{j, n - 1 - i, v},
			})
		}
	}

	hm.SetXAxis(xLabels).
		AddSeries("r", data).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: string(opts.FuncOpts(heatmapLabelFormatter)),
		}))
	return hm
}
