package main

import (
	"testing"

	"github.com/pivolan/chart_trends/domain/models"
	"github.com/stretchr/testify/assert"
)

func testEntries() []models.ChartEntry {
	return []models.ChartEntry{
		entry(1, 1, "Shape of You", "Ed Sheeran", 50000),
		entry(1, 2, "Blinding Lights", "The Weeknd", 40000),
		entry(2, 1, "Blinding Lights", "The Weeknd", 45000),
		entry(2, 2, "Shape of You", "Ed Sheeran", 42000),
		entry(3, 1, "Pasoori", "Ali Sethi", 60000),
	}
}

func TestApplyFilterNoConstraints(t *testing.T) {
	entries := testEntries()
	result := ApplyFilter(entries, models.FilterParams{})
	assert.Equal(t, entries, result)
}

func TestApplyFilterDateRange(t *testing.T) {
	result := ApplyFilter(testEntries(), models.FilterParams{
		DateFrom: day(2),
		DateTo:   day(2),
	})
	assert.Len(t, result, 2)
	for _, e := range result {
		assert.Equal(t, day(2), e.Date)
	}
}

func TestApplyFilterTrackQueryCaseInsensitive(t *testing.T) {
	result := ApplyFilter(testEntries(), models.FilterParams{TrackQuery: "bLiNdInG"})
	assert.Len(t, result, 2)
	for _, e := range result {
		assert.Equal(t, "Blinding Lights", e.Track)
	}
}

func TestApplyFilterArtistQuery(t *testing.T) {
	result := ApplyFilter(testEntries(), models.FilterParams{ArtistQuery: "sethi"})
	assert.Len(t, result, 1)
	assert.Equal(t, "Pasoori", result[0].Track)
}

func TestApplyFilterRankBounds(t *testing.T) {
	result := ApplyFilter(testEntries(), models.FilterParams{MaxRank: 1})
	assert.Len(t, result, 3)
	for _, e := range result {
		assert.Equal(t, 1, e.Rank)
	}

	result = ApplyFilter(testEntries(), models.FilterParams{MinRank: 2})
	assert.Len(t, result, 2)
	for _, e := range result {
		assert.Equal(t, 2, e.Rank)
	}
}

func TestApplyFilterPreservesOrder(t *testing.T) {
	// Результат - подпоследовательность: исходный порядок, без дублей
	entries := testEntries()
	result := ApplyFilter(entries, models.FilterParams{ArtistQuery: "e"})
	pos := 0
	for _, e := range result {
		found := false
		for ; pos < len(entries); pos++ {
			if entries[pos] == e {
				found = true
				pos++
				break
			}
		}
		assert.True(t, found, "element out of original order: %v", e)
	}
}

func TestApplyFilterIdempotent(t *testing.T) {
	p := models.FilterParams{TrackQuery: "lights", MaxRank: 2}
	once := ApplyFilter(testEntries(), p)
	twice := ApplyFilter(once, p)
	assert.Equal(t, once, twice)
}

func TestApplyFilterUnmatchedYieldsEmpty(t *testing.T) {
	// Пустой результат - валидный ответ, не ошибка
	result := ApplyFilter(testEntries(), models.FilterParams{TrackQuery: "no such track"})
	assert.NotNil(t, result)
	assert.Len(t, result, 0)
}
