// aggregator.go
package main

import (
	"sort"
	"time"

	"github.com/pivolan/chart_trends/domain/models"
)

// TopN группирует строки по датам и отдает топ-N каждого бакета.
// Если ранги бакета уже плотные (1..k без пропусков), они сохраняются как
// есть, иначе бакет перенумеровывается. При равных рангах выше стоит трек
// с большими прослушиваниями, при равных прослушиваниях - меньший TrackID,
// так что результат полностью детерминирован. n <= 0 отключает усечение.
func TopN(entries []models.ChartEntry, n int) map[time.Time][]models.RankedEntry {
	buckets := map[time.Time][]models.ChartEntry{}
	for _, e := range entries {
		buckets[e.Date] = append(buckets[e.Date], e)
	}

	result := map[time.Time][]models.RankedEntry{}
	for date, bucket := range buckets {
		sorted := make([]models.ChartEntry, len(bucket))
		copy(sorted, bucket)
		sort.Slice(sorted, func(i, j int) bool {
			a, b := sorted[i], sorted[j]
			if a.Rank != b.Rank {
				return a.Rank < b.Rank
			}
			if a.Streams != b.Streams {
				return a.Streams > b.Streams
			}
			return a.TrackID < b.TrackID
		})

		dense := ranksAreDense(sorted)
		ranked := make([]models.RankedEntry, 0, len(sorted))
		for i, e := range sorted {
			rank := e.Rank
			if !dense {
				rank = i + 1
			}
			if n > 0 && rank > n {
				break
			}
			ranked = append(ranked, models.RankedEntry{
				Date:    date,
				TrackID: e.TrackID,
				Track:   e.Track,
				Artist:  e.Artist,
				Rank:    rank,
				Streams: e.Streams,
			})
		}
		result[date] = ranked
	}
	return result
}

// ranksAreDense проверяет, что отсортированные по рангу строки образуют
// последовательность 1..k без дырок и повторов
func ranksAreDense(sorted []models.ChartEntry) bool {
	for i, e := range sorted {
		if e.Rank != i+1 {
			return false
		}
	}
	return true
}

// SortedBuckets возвращает даты бакетов в хронологическом порядке
func SortedBuckets(ranked map[time.Time][]models.RankedEntry) []time.Time {
	dates := make([]time.Time, 0, len(ranked))
	for date := range ranked {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
