// trend_classifier.go
package main

import (
	"sort"
	"time"

	"github.com/pivolan/chart_trends/domain/models"
)

// ClassifyTrends сравнивает позиции треков между соседними по календарю
// бакетами. Дельта считается только когда предыдущий бакет датирован ровно
// одним днем раньше: если в данных дыра, все треки текущего дня получают
// NEW, даже если встречались раньше. Трек, ушедший из чарта за день,
// получает синтетическую запись DROPPED с прежней позицией. Функция
// тотальная - отсутствие данных никогда не ошибка.
func ClassifyTrends(ranked map[time.Time][]models.RankedEntry) []models.TrendRecord {
	dates := SortedBuckets(ranked)
	rankIndex := map[time.Time]map[string]models.RankedEntry{}
	for date, bucket := range ranked {
		idx := map[string]models.RankedEntry{}
		for _, e := range bucket {
			idx[e.TrackID] = e
		}
		rankIndex[date] = idx
	}

	records := []models.TrendRecord{}
	for i, date := range dates {
		hasPrev := i > 0 && consecutiveDays(dates[i-1], date)

		for _, cur := range ranked[date] {
			rec := models.TrendRecord{
				TrackID:     cur.TrackID,
				Track:       cur.Track,
				Artist:      cur.Artist,
				Date:        date,
				CurrentRank: intPtr(cur.Rank),
				Category:    models.TrendNew,
			}
			if hasPrev {
				if prev, ok := rankIndex[dates[i-1]][cur.TrackID]; ok {
					rec.PreviousRank = intPtr(prev.Rank)
					rec.Delta = cur.Rank - prev.Rank
					rec.Category = categoryForDelta(rec.Delta)
					rec.Streak = streakLength(dates, rankIndex, i, cur.TrackID)
				}
			}
			records = append(records, rec)
		}

		if !hasPrev {
			continue
		}
		// Треки, выпавшие из чарта по сравнению со вчерашним днем
		dropped := []models.TrendRecord{}
		for _, prev := range ranked[dates[i-1]] {
			if _, ok := rankIndex[date][prev.TrackID]; ok {
				continue
			}
			dropped = append(dropped, models.TrendRecord{
				TrackID:      prev.TrackID,
				Track:        prev.Track,
				Artist:       prev.Artist,
				Date:         date,
				PreviousRank: intPtr(prev.Rank),
				Category:     models.TrendDropped,
			})
		}
		sort.Slice(dropped, func(a, b int) bool {
			return *dropped[a].PreviousRank < *dropped[b].PreviousRank
		})
		records = append(records, dropped...)
	}
	return records
}

func categoryForDelta(delta int) models.TrendCategory {
	switch {
	case delta < 0:
		return models.TrendRising
	case delta > 0:
		return models.TrendFalling
	default:
		return models.TrendStable
	}
}

// streakLength идет от текущего бакета назад по соседним дням и считает,
// сколько шагов подряд позиция трека не ухудшалась. Ограничен только
// данными, искусственного предела нет.
func streakLength(dates []time.Time, rankIndex map[time.Time]map[string]models.RankedEntry, i int, trackID string) int {
	streak := 0
	for j := i; j > 0; j-- {
		if !consecutiveDays(dates[j-1], dates[j]) {
			break
		}
		cur, okCur := rankIndex[dates[j]][trackID]
		prev, okPrev := rankIndex[dates[j-1]][trackID]
		if !okCur || !okPrev {
			break
		}
		if cur.Rank > prev.Rank {
			break
		}
		streak++
	}
	return streak
}

func consecutiveDays(prev, cur time.Time) bool {
	return prev.AddDate(0, 0, 1).Equal(cur)
}

func intPtr(v int) *int {
	return &v
}
