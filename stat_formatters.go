package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pivolan/chart_trends/domain/models"
)

// GenerateTopTable рендерит топ одного дня в текстовую таблицу
func GenerateTopTable(date time.Time, entries []models.RankedEntry) string {
	t := table.NewWriter()
	t.SetTitle(date.Format("2006-01-02"))
	t.AppendHeader(table.Row{"Rank", "Track", "Artist", "Streams"})
	for _, e := range entries {
		t.AppendRows([]table.Row{
			{e.Rank, e.Track, e.Artist, fmt.Sprintf("%.0f", e.Streams)},
		})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateTrendTable рендерит движение треков за день.
// Пустые позиции (NEW/DROPPED) выводятся прочерком, не нулем.
func GenerateTrendTable(trends []models.TrendRecord) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"", "Track", "Artist", "Rank", "Prev", "Delta", "Streak"})
	for _, r := range trends {
		t.AppendRows([]table.Row{{
			trendGlyph(r.Category),
			r.Track,
			r.Artist,
			rankCell(r.CurrentRank),
			rankCell(r.PreviousRank),
			deltaCell(r),
			r.Streak,
		}})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateTrendTableMarkdown - то же движение, но в markdown для веб-страницы
func GenerateTrendTableMarkdown(trends []models.TrendRecord) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"", "Track", "Artist", "Rank", "Prev", "Delta", "Streak"})
	for _, r := range trends {
		t.AppendRows([]table.Row{{
			trendGlyph(r.Category),
			r.Track,
			r.Artist,
			rankCell(r.CurrentRank),
			rankCell(r.PreviousRank),
			deltaCell(r),
			r.Streak,
		}})
	}
	return t.RenderMarkdown()
}

// GenerateMoversTable - таблица лучших подъемов (положительное = лучше)
func GenerateMoversTable(movers []models.MoverStat) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Track", "Artist", "Best Improvement", "Worst Drop"})
	for _, m := range movers {
		t.AppendRows([]table.Row{
			{m.Track, m.Artist, m.BestImprovement, m.WorstDrop},
		})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateDailyTable - агрегаты по дням
func GenerateDailyTable(daily []models.DailyStat) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Date", "Total Streams", "Avg Streams", "Tracks"})
	for _, d := range daily {
		t.AppendRows([]table.Row{
			{d.Date.Format("2006-01-02"), fmt.Sprintf("%.0f", d.TotalStreams), fmt.Sprintf("%.2f", d.AvgStreams), d.UniqueTracks},
		})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateTotalsTable - топ треков или исполнителей по сумме прослушиваний
func GenerateTotalsTable(totals []models.TotalStat) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Name", "Total Streams", "Best Rank"})
	for _, s := range totals {
		name := s.Name
		if s.Artist != "" && s.Artist != s.Name {
			name = fmt.Sprintf("%s - %s", s.Name, s.Artist)
		}
		t.AppendRows([]table.Row{
			{name, fmt.Sprintf("%.0f", s.TotalStreams), s.BestRank},
		})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateSummaryMsg собирает KPI сообщение для чата
func GenerateSummaryMsg(s models.DatasetSummary) string {
	if s.Rows == 0 {
		return "Выборка пустая. Попробуйте расширить даты или убрать фильтры."
	}
	msg := strings.Builder{}
	msg.WriteString("📈 Сводка по выборке:\n\n")
	msg.WriteString(fmt.Sprintf("Строк (трек-дней): %d\n", s.Rows))
	msg.WriteString(fmt.Sprintf("Уникальных треков: %d\n", s.UniqueTracks))
	msg.WriteString(fmt.Sprintf("Уникальных исполнителей: %d\n", s.UniqueArtists))
	msg.WriteString(fmt.Sprintf("Средние прослушивания: %.0f\n", s.AvgStreams))
	msg.WriteString(fmt.Sprintf("Период: %s - %s\n",
		s.DateFrom.Format("2006-01-02"), s.DateTo.Format("2006-01-02")))
	return msg.String()
}

func trendGlyph(c models.TrendCategory) string {
	switch c {
	case models.TrendRising:
		return "▲"
	case models.TrendFalling:
		return "▼"
	case models.TrendStable:
		return "="
	case models.TrendNew:
		return "★"
	case models.TrendDropped:
		return "✕"
	}
	return "?"
}

func rankCell(rank *int) string {
	if rank == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *rank)
}

func deltaCell(r models.TrendRecord) string {
	if r.CurrentRank == nil || r.PreviousRank == nil {
		return "-"
	}
	return fmt.Sprintf("%+d", r.Delta)
}
