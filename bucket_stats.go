// bucket_stats.go
package main

import (
	"sort"

	"github.com/pivolan/chart_trends/domain/models"
)

// SummarizeDataset считает KPI блок дашборда по текущей выборке
func SummarizeDataset(entries []models.ChartEntry) models.DatasetSummary {
	s := models.DatasetSummary{Rows: len(entries)}
	if len(entries) == 0 {
		return s
	}

	tracks := map[string]bool{}
	artists := map[string]bool{}
	total := 0.0
	s.DateFrom = entries[0].Date
	s.DateTo = entries[0].Date
	for _, e := range entries {
		tracks[e.TrackID] = true
		artists[e.Artist] = true
		total += e.Streams
		if e.Date.Before(s.DateFrom) {
			s.DateFrom = e.Date
		}
		if e.Date.After(s.DateTo) {
			s.DateTo = e.Date
		}
	}
	s.UniqueTracks = len(tracks)
	s.UniqueArtists = len(artists)
	s.AvgStreams = roundToTwo(total / float64(len(entries)))
	return s
}

// DailyStats агрегирует выборку по дням: сумма и среднее прослушиваний,
// число уникальных треков. Результат отсортирован хронологически.
func DailyStats(entries []models.ChartEntry) []models.DailyStat {
	type acc struct {
		total  float64
		count  int
		tracks map[string]bool
	}
	byDate := map[int64]*acc{}
	for _, e := range entries {
		key := e.Date.Unix()
		a, ok := byDate[key]
		if !ok {
			a = &acc{tracks: map[string]bool{}}
			byDate[key] = a
		}
		a.total += e.Streams
		a.count++
		a.tracks[e.TrackID] = true
	}

	stats := make([]models.DailyStat, 0, len(byDate))
	for _, e := range entries {
		key := e.Date.Unix()
		a, ok := byDate[key]
		if !ok {
			continue
		}
		delete(byDate, key)
		stats = append(stats, models.DailyStat{
			Date:         e.Date,
			TotalStreams: a.total,
			AvgStreams:   roundToTwo(a.total / float64(a.count)),
			UniqueTracks: len(a.tracks),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date.Before(stats[j].Date) })
	return stats
}

// TopTracksByStreams - треки с наибольшей суммой прослушиваний за выборку
func TopTracksByStreams(entries []models.ChartEntry, n int) []models.TotalStat {
	return topTotals(entries, n, func(e models.ChartEntry) string { return e.TrackID },
		func(e models.ChartEntry) (string, string) { return e.Track, e.Artist })
}

// TopArtistsByStreams - исполнители с наибольшей суммой прослушиваний
func TopArtistsByStreams(entries []models.ChartEntry, n int) []models.TotalStat {
	return topTotals(entries, n, func(e models.ChartEntry) string { return e.Artist },
		func(e models.ChartEntry) (string, string) { return e.Artist, "" })
}

func topTotals(entries []models.ChartEntry, n int, keyOf func(models.ChartEntry) string, nameOf func(models.ChartEntry) (string, string)) []models.TotalStat {
	totals := map[string]*models.TotalStat{}
	order := []string{}
	for _, e := range entries {
		key := keyOf(e)
		t, ok := totals[key]
		if !ok {
			name, artist := nameOf(e)
			t = &models.TotalStat{Name: name, Artist: artist, BestRank: e.Rank}
			totals[key] = t
			order = append(order, key)
		}
		t.TotalStreams += e.Streams
		if e.Rank < t.BestRank {
			t.BestRank = e.Rank
		}
	}

	result := make([]models.TotalStat, 0, len(order))
	for _, key := range order {
		result = append(result, *totals[key])
	}
	// При равных суммах выше тот, у кого лучшая позиция (как в оригинале)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TotalStreams != result[j].TotalStreams {
			return result[i].TotalStreams > result[j].TotalStreams
		}
		return result[i].BestRank < result[j].BestRank
	})
	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// BestMovers сводит TrendRecord в таблицу "кто сильнее всех прыгнул":
// для каждого трека лучший однодневный подъем и худшее падение.
// Положительное BestImprovement = подъем (знак дельты перевернут).
func BestMovers(trends []models.TrendRecord, n int) []models.MoverStat {
	movers := map[string]*models.MoverStat{}
	order := []string{}
	for _, t := range trends {
		if t.PreviousRank == nil || t.CurrentRank == nil {
			continue // NEW и DROPPED не двигались, им нечего сравнивать
		}
		change := -t.Delta
		m, ok := movers[t.TrackID]
		if !ok {
			m = &models.MoverStat{TrackID: t.TrackID, Track: t.Track, Artist: t.Artist,
				BestImprovement: change, WorstDrop: change}
			movers[t.TrackID] = m
			order = append(order, t.TrackID)
			continue
		}
		if change > m.BestImprovement {
			m.BestImprovement = change
		}
		if change < m.WorstDrop {
			m.WorstDrop = change
		}
	}

	result := make([]models.MoverStat, 0, len(order))
	for _, key := range order {
		result = append(result, *movers[key])
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].BestImprovement != result[j].BestImprovement {
			return result[i].BestImprovement > result[j].BestImprovement
		}
		return result[i].TrackID < result[j].TrackID
	})
	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// TrackHistory - хронология позиций и прослушиваний одного трека
func TrackHistory(entries []models.ChartEntry, trackID string) []models.TrackPoint {
	points := []models.TrackPoint{}
	for _, e := range entries {
		if e.TrackID != trackID {
			continue
		}
		points = append(points, models.TrackPoint{Date: e.Date, Rank: e.Rank, Streams: e.Streams})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// StreamValues выдергивает колонку прослушиваний для числового анализа
func StreamValues(entries []models.ChartEntry) []float64 {
	values := make([]float64, len(entries))
	for i, e := range entries {
		values[i] = e.Streams
	}
	return values
}
