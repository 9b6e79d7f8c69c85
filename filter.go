// filter.go
package main

import (
	"strings"

	"github.com/pivolan/chart_trends/domain/models"
)

// ApplyFilter возвращает подпоследовательность entries в исходном порядке.
// Нулевые поля FilterParams ограничений не накладывают. Функция тотальная:
// пустой результат - нормальный ответ, а не ошибка.
func ApplyFilter(entries []models.ChartEntry, p models.FilterParams) []models.ChartEntry {
	trackQuery := strings.ToLower(strings.TrimSpace(p.TrackQuery))
	artistQuery := strings.ToLower(strings.TrimSpace(p.ArtistQuery))

	result := []models.ChartEntry{}
	for _, e := range entries {
		if !p.DateFrom.IsZero() && e.Date.Before(p.DateFrom) {
			continue
		}
		if !p.DateTo.IsZero() && e.Date.After(p.DateTo) {
			continue
		}
		if p.MinRank > 0 && e.Rank < p.MinRank {
			continue
		}
		if p.MaxRank > 0 && e.Rank > p.MaxRank {
			continue
		}
		if trackQuery != "" && !strings.Contains(strings.ToLower(e.Track), trackQuery) {
			continue
		}
		if artistQuery != "" && !strings.Contains(strings.ToLower(e.Artist), artistQuery) {
			continue
		}
		result = append(result, e)
	}
	return result
}
