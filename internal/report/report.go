// Package report builds the year-in-review page: a self-contained HTML
// document with server-rendered charts over the year's sessions.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/nightowl-app/nightowl-backend-go/internal/analysis"
	"github.com/nightowl-app/nightowl-backend-go/internal/models"
)

// Build writes the year-in-review HTML for the sessions that started in
// now's calendar year.
func Build(w io.Writer, sessions []models.NightSession, now time.Time) error {
	year := now.Year()
	var yearSessions []models.NightSession
	for _, s := range sessions {
		if s.StartTime.In(now.Location()).Year() == year {
			yearSessions = append(yearSessions, s)
		}
	}

	stats := analysis.Lifetime(yearSessions, now)
	drinks := analysis.YearlyDrinks(sessions, now)

	page := components.NewPage()
	page.AddCharts(
		headlineBar(year, stats),
		drinkMixPie(drinks),
		weekdayBar(yearSessions),
		hourBar(yearSessions),
	)
	return page.Render(w)
}

// headlineBar shows the year's totals side by side.
func headlineBar(year int, stats models.LifetimeStats) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("NightOwl %d", year),
			Subtitle: fmt.Sprintf("%d nights out, %.1f km walked, busiest on %ss",
				stats.SessionCount, stats.TotalDistanceM/1000, stats.BusiestWeekday),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bar.SetXAxis([]string{"Nights", "Stops", "Drinks", "Hours out"}).
		AddSeries("totals", []opts.BarData{
			{Value: stats.SessionCount},
			{Value: stats.TotalDwells},
			{Value: stats.TotalDrinks},
			{Value: int(stats.TotalDurationSecs / 3600)},
		}, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	return bar
}

func drinkMixPie(b models.DrinkBreakdown) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Drink mix %d", b.Year),
			Subtitle: fmt.Sprintf("%d drinks, favorite: %s", b.Total, b.Favorite),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	data := make([]opts.PieData, 0, len(models.DrinkCategories))
	for _, category := range models.DrinkCategories {
		if count := b.Counts[category]; count > 0 {
			data = append(data, opts.PieData{Name: category, Value: count})
		}
	}
	pie.AddSeries("drinks", data)
	return pie
}

func weekdayBar(sessions []models.NightSession) *charts.Bar {
	counts := analysis.WeekdayCounts(sessions)

	x := make([]string, 7)
	data := make([]opts.BarData, 7)
	for i := 0; i < 7; i++ {
		x[i] = time.Weekday(i).String()[:3]
		data[i] = opts.BarData{Value: counts[i]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Nights out by weekday"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("nights", data)
	return bar
}

func hourBar(sessions []models.NightSession) *charts.Bar {
	counts := analysis.HourCounts(sessions)

	x := make([]string, 24)
	data := make([]opts.BarData, 24)
	for i := 0; i < 24; i++ {
		x[i] = fmt.Sprintf("%02d", i)
		data[i] = opts.BarData{Value: counts[i]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Start hour", Subtitle: "when the night begins"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("starts", data)
	return bar
}
