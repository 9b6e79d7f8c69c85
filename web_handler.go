package main

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pivolan/chart_trends/config"
	"github.com/pivolan/chart_trends/domain/models"
	uuid "github.com/satori/go.uuid"
)

const dashboardHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Chart Trends</title></head>
<body style="font-family: monospace; max-width: 1200px; margin: 20px auto;">
<h1>Chart Trends Dashboard</h1>
<form method="GET" action="/">
  from <input name="from" value="{{.From}}" placeholder="2025-01-01">
  to <input name="to" value="{{.To}}" placeholder="2025-01-31">
  track <input name="track" value="{{.Track}}">
  artist <input name="artist" value="{{.Artist}}">
  top <input name="top" value="{{.Top}}" size="4">
  <button type="submit">Apply</button>
</form>
<p><a href="/charts{{.Query}}">interactive charts</a> | <a href="/download{{.Query}}">download csv</a></p>
<h2>Summary</h2>
<pre>{{.Summary}}</pre>
<h2>Top of {{.LatestDate}}</h2>
<pre>{{.TopTable}}</pre>
<h2>Movement vs previous day</h2>
<pre>{{.TrendTable}}</pre>
<h2>Best movers</h2>
<pre>{{.MoversTable}}</pre>
<h2>Daily stats</h2>
<pre>{{.DailyTable}}</pre>
</body>
</html>`

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

// parseFilterParams читает фильтры дашборда из query параметров.
// Невалидные значения молча игнорируются - фильтр просто не применяется.
func parseFilterParams(r *http.Request) (models.FilterParams, int) {
	q := r.URL.Query()
	p := models.FilterParams{
		TrackQuery:  q.Get("track"),
		ArtistQuery: q.Get("artist"),
	}
	if from, err := time.Parse("2006-01-02", q.Get("from")); err == nil {
		p.DateFrom = from
	}
	if to, err := time.Parse("2006-01-02", q.Get("to")); err == nil {
		p.DateTo = to
	}
	if minRank, err := strconv.Atoi(q.Get("min_rank")); err == nil && minRank > 0 {
		p.MinRank = minRank
	}
	if maxRank, err := strconv.Atoi(q.Get("max_rank")); err == nil && maxRank > 0 {
		p.MaxRank = maxRank
	}

	topN := 50
	if top, err := strconv.Atoi(q.Get("top")); err == nil && top > 0 {
		topN = top
	}
	return p, topN
}

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ds := currentDataset()
	if ds == nil {
		http.Error(w, "Dataset is not loaded", http.StatusServiceUnavailable)
		return
	}

	p, topN := parseFilterParams(r)
	views := cache.Views(ds.Entries, p, topN)

	data := map[string]string{
		"From":   r.URL.Query().Get("from"),
		"To":     r.URL.Query().Get("to"),
		"Track":  r.URL.Query().Get("track"),
		"Artist": r.URL.Query().Get("artist"),
		"Top":    strconv.Itoa(topN),
		"Query":  queryString(r),
	}
	data["Summary"] = GenerateSummaryMsg(SummarizeDataset(views.Filtered))

	if dates := SortedBuckets(views.Ranked); len(dates) > 0 {
		latest := dates[len(dates)-1]
		data["LatestDate"] = latest.Format("2006-01-02")
		data["TopTable"] = GenerateTopTable(latest, views.Ranked[latest])
		// Телеграм получает ASCII вариант, веб-страница - markdown
		data["TrendTable"] = GenerateTrendTableMarkdown(trendsForDate(views.Trends, latest))
	} else {
		data["LatestDate"] = "-"
		data["TopTable"] = "no data"
		data["TrendTable"] = "no data"
	}
	data["MoversTable"] = GenerateMoversTable(BestMovers(views.Trends, 10))
	data["DailyTable"] = GenerateDailyTable(views.Daily)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		http.Error(w, "Error rendering dashboard", http.StatusInternalServerError)
	}
}

// handleCharts отдает страницу с интерактивными echarts графиками
func handleCharts(w http.ResponseWriter, r *http.Request) {
	ds := currentDataset()
	if ds == nil {
		http.Error(w, "Dataset is not loaded", http.StatusServiceUnavailable)
		return
	}

	p, topN := parseFilterParams(r)
	views := cache.Views(ds.Entries, p, topN)

	page := components.NewPage()
	page.AddCharts(
		EChartsDailyTotals(views.Daily),
		EChartsDailyTracks(views.Daily),
		EChartsTopBar(TopTracksByStreams(views.Filtered, 10), "Top 10 Tracks"),
		EChartsTopBar(TopArtistsByStreams(views.Filtered, 10), "Top 10 Artists"),
	)
	// Drilldown по конкретному треку, если он один попал под фильтр
	if track := r.URL.Query().Get("track"); track != "" {
		if id, name, ok := findTrack(views.Filtered, track); ok {
			history := TrackHistory(views.Filtered, id)
			page.AddCharts(
				EChartsTrackRank(history, name),
				EChartsTrackStreams(history, name),
			)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		http.Error(w, "Error rendering charts", http.StatusInternalServerError)
	}
}

// handleDownload выгружает отфильтрованную таблицу как CSV
func handleDownload(w http.ResponseWriter, r *http.Request) {
	ds := currentDataset()
	if ds == nil {
		http.Error(w, "Dataset is not loaded", http.StatusServiceUnavailable)
		return
	}

	p, topN := parseFilterParams(r)
	views := cache.Views(ds.Entries, p, topN)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="chart_filtered.csv"`)
	cw := csv.NewWriter(w)
	cw.Write([]string{"date", "rank", "track", "artist", "streams", "url"})
	for _, e := range views.Filtered {
		cw.Write([]string{
			e.Date.Format("2006-01-02"),
			strconv.Itoa(e.Rank),
			e.Track,
			e.Artist,
			strconv.FormatFloat(e.Streams, 'f', -1, 64),
			e.URL,
		})
	}
	cw.Flush()
}

// handleUpload принимает новый дневной файл чарта, кладет его в каталог
// датасета и перезагружает все в память, сбрасывая кеш пересчетов
func handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	id := r.FormValue("uuid")
	if id == "" {
		id = uuid.NewV4().String()
	}

	cfg := config.GetConfig()
	filePath := filepath.Join(cfg.DataDir, filepath.Base(header.Filename))
	os.MkdirAll(cfg.DataDir, 0755)
	dst, err := os.Create(filePath)
	if err != nil {
		http.Error(w, "Error saving file "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer dst.Close()
	if _, err = io.Copy(dst, file); err != nil {
		http.Error(w, "Error saving file", http.StatusInternalServerError)
		return
	}

	if err := reloadDataset(); err != nil {
		http.Error(w, "Uploaded file did not load: "+err.Error(), http.StatusBadRequest)
		return
	}

	if chatId, ok := uploadChat(id); ok && bot != nil {
		ds := currentDataset()
		msg := tgbotapi.NewMessage(chatId, "Файл загружен, датасет перечитан\n\n"+
			GenerateSummaryMsg(SummarizeDataset(ds.Entries)))
		bot.Send(msg)
	}

	fmt.Fprintf(w, "File uploaded successfully")
}

func trendsForDate(trends []models.TrendRecord, date time.Time) []models.TrendRecord {
	result := []models.TrendRecord{}
	for _, t := range trends {
		if t.Date.Equal(date) {
			result = append(result, t)
		}
	}
	return result
}

// findTrack ищет первый трек, чье название содержит запрос
func findTrack(entries []models.ChartEntry, query string) (trackID, name string, ok bool) {
	matched := ApplyFilter(entries, models.FilterParams{TrackQuery: query})
	if len(matched) == 0 {
		return "", "", false
	}
	e := matched[0]
	return e.TrackID, fmt.Sprintf("%s - %s", e.Track, e.Artist), true
}

func queryString(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return ""
	}
	return "?" + r.URL.RawQuery
}
