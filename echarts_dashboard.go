// echarts_dashboard.go
package main

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pivolan/chart_trends/domain/models"
)

// Интерактивные графики дашборда. PNG версии в пакете plot нужны для
// телеграма, здесь те же данные рендерятся в echarts для браузера.

// EChartsDailyTotals - линия суммарных прослушиваний по дням
func EChartsDailyTotals(daily []models.DailyStat) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Total Streams per Day"}),
	)

	dates := make([]string, len(daily))
	totals := make([]opts.LineData, len(daily))
	for i, d := range daily {
		dates[i] = d.Date.Format("2006-01-02")
		totals[i] = opts.LineData{Value: d.TotalStreams}
	}
	line.SetXAxis(dates).AddSeries("total streams", totals)
	return line
}

// EChartsDailyTracks - линия числа уникальных треков по дням
func EChartsDailyTracks(daily []models.DailyStat) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Unique Tracks per Day"}),
	)

	dates := make([]string, len(daily))
	counts := make([]opts.LineData, len(daily))
	for i, d := range daily {
		dates[i] = d.Date.Format("2006-01-02")
		counts[i] = opts.LineData{Value: d.UniqueTracks}
	}
	line.SetXAxis(dates).AddSeries("tracks", counts)
	return line
}

// EChartsTopBar - столбцы топа по суммарным прослушиваниям
func EChartsTopBar(totals []models.TotalStat, title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
	)

	names := make([]string, len(totals))
	values := make([]opts.BarData, len(totals))
	for i, t := range totals {
		name := t.Name
		if t.Artist != "" && t.Artist != t.Name {
			name = fmt.Sprintf("%s - %s", t.Name, t.Artist)
		}
		names[i] = name
		values[i] = opts.BarData{Value: t.TotalStreams}
	}
	bar.SetXAxis(names).AddSeries("total streams", values)
	return bar
}

// EChartsTrackRank - позиция одного трека по дням.
// Подпись оси напоминает, что меньшее значение лучше.
func EChartsTrackRank(points []models.TrackPoint, trackName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Rank over Time: %s", trackName)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rank (1 = top)"}),
	)

	dates := make([]string, len(points))
	ranks := make([]opts.LineData, len(points))
	for i, p := range points {
		dates[i] = p.Date.Format("2006-01-02")
		ranks[i] = opts.LineData{Value: p.Rank}
	}
	line.SetXAxis(dates).AddSeries("rank", ranks)
	return line
}

// EChartsTrackStreams - прослушивания одного трека по дням
func EChartsTrackStreams(points []models.TrackPoint, trackName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Streams over Time: %s", trackName)}),
	)

	dates := make([]string, len(points))
	streams := make([]opts.LineData, len(points))
	for i, p := range points {
		dates[i] = p.Date.Format("2006-01-02")
		streams[i] = opts.LineData{Value: p.Streams}
	}
	line.SetXAxis(dates).AddSeries("streams", streams)
	return line
}
