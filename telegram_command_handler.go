package main

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pivolan/chart_trends/domain/models"
	"github.com/pivolan/chart_trends/plot"
)

// Сколько позиций показывает бот, если чат не задал свое значение
const defaultTopN = 50

// Персональный topN чатов. Команды обрабатываются в отдельных горутинах
var (
	chatTopNMu sync.Mutex
	chatTopN   = map[int64]int{}
)

func setChatTopN(chatID int64, n int) {
	chatTopNMu.Lock()
	defer chatTopNMu.Unlock()
	chatTopN[chatID] = n
}

func chatTopNFor(chatID int64) int {
	chatTopNMu.Lock()
	defer chatTopNMu.Unlock()
	if n, ok := chatTopN[chatID]; ok {
		return n
	}
	return defaultTopN
}

func handleCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	// Получаем полную команду (без слеша)
	fullCommand := update.Message.Command()
	chatID := update.Message.Chat.ID

	topPrefix := "top_"
	trackPrefix := "track_"

	switch {
	case strings.HasPrefix(fullCommand, topPrefix):
		nStr := strings.TrimPrefix(fullCommand, topPrefix)
		n, err := strconv.Atoi(nStr)
		if err != nil || n <= 0 {
			msg := tgbotapi.NewMessage(chatID, "Укажите число после top_, например /top_10")
			api.Send(msg)
			return
		}
		setChatTopN(chatID, n)
		handleTopCommand(api, chatID)

	case strings.HasPrefix(fullCommand, trackPrefix):
		query := strings.TrimPrefix(fullCommand, trackPrefix)
		if query == "" {
			msg := tgbotapi.NewMessage(chatID, "Укажите название после track_, например /track_shape_of_you")
			api.Send(msg)
			return
		}
		handleTrackCommand(api, chatID, query)

	case fullCommand == "top":
		handleTopCommand(api, chatID)
	case fullCommand == "trends":
		handleTrendsCommand(api, chatID)
	case fullCommand == "movers":
		handleMoversCommand(api, chatID)
	case fullCommand == "daily":
		handleDailyCommand(api, chatID)
	case fullCommand == "streams":
		handleStreamsCommand(api, chatID)
	case fullCommand == "summary":
		sendStats(chatID, api)
	case fullCommand == "start":
		handleText(api, update)
	default:
		msg := tgbotapi.NewMessage(chatID, "Неизвестная команда. Используйте /start для списка команд")
		api.Send(msg)
	}
}

// chatViews пересчитывает (или берет из кеша) производные таблицы для чата
func chatViews(chatID int64) (*DerivedViews, bool) {
	ds := currentDataset()
	if ds == nil {
		return nil, false
	}
	return cache.Views(ds.Entries, models.FilterParams{}, chatTopNFor(chatID)), true
}

func latestBucket(views *DerivedViews) (time.Time, bool) {
	dates := SortedBuckets(views.Ranked)
	if len(dates) == 0 {
		return time.Time{}, false
	}
	return dates[len(dates)-1], true
}

func handleTopCommand(api *tgbotapi.BotAPI, chatID int64) {
	views, ok := chatViews(chatID)
	if !ok {
		api.Send(tgbotapi.NewMessage(chatID, "Датасет еще не загружен"))
		return
	}
	date, ok := latestBucket(views)
	if !ok {
		api.Send(tgbotapi.NewMessage(chatID, "В выборке нет данных"))
		return
	}
	sendMonospace(api, chatID, GenerateTopTable(date, views.Ranked[date]))

	totals := TopTracksByStreams(views.Filtered, 10)
	graph, err := topTotalsGraph(totals, "Top Tracks by Streams")
	if err != nil {
		api.Send(tgbotapi.NewMessage(chatID, "Не удалось построить график: "+err.Error()))
		return
	}
	sendChartImage(graph, "Топ треков по суммарным прослушиваниям", "top_tracks", chatID, api)
}

// topTotalsGraph рисует столбцы суммарных прослушиваний по трекам или
// исполнителям для отправки в чат
func topTotalsGraph(totals []models.TotalStat, nameGraph string) ([]byte, error) {
	if len(totals) == 0 {
		return nil, fmt.Errorf("nothing to draw: empty selection")
	}
	labels := make([]string, len(totals))
	values := make([]float64, len(totals))
	for i, t := range totals {
		label := t.Name
		if t.Artist != "" && t.Artist != t.Name {
			label = fmt.Sprintf("%s - %s", t.Name, t.Artist)
		}
		labels[i] = label
		values[i] = t.TotalStreams
	}
	return plot.DrawPlotBar(plot.NewDataLabelForGraph(labels, values, "Streams", nameGraph))
}

func handleTrendsCommand(api *tgbotapi.BotAPI, chatID int64) {
	views, ok := chatViews(chatID)
	if !ok {
		api.Send(tgbotapi.NewMessage(chatID, "Датасет еще не загружен"))
		return
	}
	date, ok := latestBucket(views)
	if !ok {
		api.Send(tgbotapi.NewMessage(chatID, "В выборке нет данных"))
		return
	}
	trends := trendsForDate(views.Trends, date)
	if len(trends) == 0 {
		api.Send(tgbotapi.NewMessage(chatID, "Нет движения за "+date.Format("2006-01-02")))
		return
	}
	sendMonospace(api, chatID, GenerateTrendTable(trends))
}

func handleMoversCommand(api *tgbotapi.BotAPI, chatID int64) {
	views, ok := chatViews(chatID)
	if !ok {
		api.Send(tgbotapi.NewMessage(chatID, "Датасет еще не загружен"))
		return
	}
	movers := BestMovers(views.Trends, 10)
	if len(movers) == 0 {
		api.Send(tgbotapi.NewMessage(chatID, "Движений пока нет - нужен минимум два соседних дня"))
		return
	}
	sendMonospace(api, chatID, GenerateMoversTable(movers))
}

func handleDailyCommand(api *tgbotapi.BotAPI, chatID int64) {
	views, ok := chatViews(chatID)
	if !ok {
		api.Send(tgbotapi.NewMessage(chatID, "Датасет еще не загружен"))
		return
	}
	if len(views.Daily) == 0 {
		api.Send(tgbotapi.NewMessage(chatID, "В выборке нет данных"))
		return
	}
	sendMonospace(api, chatID, GenerateDailyTable(views.Daily))

	dates := make([]time.Time, len(views.Daily))
	totals := make([]float64, len(views.Daily))
	for i, d := range views.Daily {
		dates[i] = d.Date
		totals[i] = d.TotalStreams
	}
	graph, err := plot.DrawPlotBar(plot.NewDataDailyForGraph(dates, totals, "Streams", "Total Streams per Day"))
	if err != nil {
		api.Send(tgbotapi.NewMessage(chatID, "Не удалось построить график: "+err.Error()))
		return
	}
	sendChartImage(graph, "Суммарные прослушивания по дням", "daily_totals", chatID, api)
}

func handleStreamsCommand(api *tgbotapi.BotAPI, chatID int64) {
	views, ok := chatViews(chatID)
	if !ok {
		api.Send(tgbotapi.NewMessage(chatID, "Датасет еще не загружен"))
		return
	}
	values := StreamValues(views.Filtered)
	stats := AnalyzeNumbers(values)
	api.Send(tgbotapi.NewMessage(chatID, FormatStreamStats(stats)))
	if stats == nil {
		return
	}
	graph, err := plot.DrawStreamHistogram(values, 20)
	if err != nil {
		api.Send(tgbotapi.NewMessage(chatID, "Не удалось построить гистограмму: "+err.Error()))
		return
	}
	sendChartImage(graph, "Гистограмма распределения прослушиваний", "streams_hist", chatID, api)
}

// handleTrackCommand шлет историю трека: текст, график позиции и график
// прослушиваний
func handleTrackCommand(api *tgbotapi.BotAPI, chatID int64, query string) {
	views, ok := chatViews(chatID)
	if !ok {
		api.Send(tgbotapi.NewMessage(chatID, "Датасет еще не загружен"))
		return
	}
	// В командах телеграма пробелы заменены подчеркиваниями
	query = strings.ReplaceAll(query, "_", " ")
	trackID, name, found := findTrack(views.Filtered, query)
	if !found {
		api.Send(tgbotapi.NewMessage(chatID, "Трек не найден: "+query))
		return
	}
	history := TrackHistory(views.Filtered, trackID)

	dates := make([]time.Time, len(history))
	ranks := make([]float64, len(history))
	streams := make([]float64, len(history))
	for i, p := range history {
		dates[i] = p.Date
		ranks[i] = float64(p.Rank)
		streams[i] = p.Streams
	}

	api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("%s\nДней в чарте: %d", name, len(history))))

	if graph, err := plot.DrawRankSeries(dates, ranks, "Rank over Time: "+name); err == nil {
		sendChartImage(graph, "Позиция по дням (1 наверху)", "track_rank", chatID, api)
	}
	if graph, err := plot.DrawStreamSeries(dates, streams, "Streams over Time: "+name); err == nil {
		sendChartImage(graph, "Прослушивания по дням", "track_streams", chatID, api)
	}
}

// sendMonospace отправляет таблицу моноширинным блоком
func sendMonospace(api *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "```\n"+text+"\n```")
	msg.ParseMode = tgbotapi.ModeMarkdown
	api.Send(msg)
}
