package main

import (
	"testing"
	"time"

	"github.com/pivolan/chart_trends/domain/models"
	"github.com/stretchr/testify/assert"
)

func ranked(d int, rank int, track string) models.RankedEntry {
	return models.RankedEntry{
		Date:    day(d),
		TrackID: makeTrackID(track, "Artist"),
		Track:   track,
		Artist:  "Artist",
		Rank:    rank,
		Streams: 1000,
	}
}

func findTrend(records []models.TrendRecord, d int, track string) *models.TrendRecord {
	id := makeTrackID(track, "Artist")
	for i := range records {
		if records[i].Date.Equal(day(d)) && records[i].TrackID == id {
			return &records[i]
		}
	}
	return nil
}

func TestClassifyFallingTrack(t *testing.T) {
	// X первое место 1 января, третье 2 января: delta=+2, падение
	input := map[time.Time][]models.RankedEntry{
		day(1): {ranked(1, 1, "X")},
		day(2): {ranked(2, 3, "X")},
	}
	records := ClassifyTrends(input)

	rec := findTrend(records, 2, "X")
	assert.NotNil(t, rec)
	assert.Equal(t, models.TrendFalling, rec.Category)
	assert.Equal(t, 2, rec.Delta)
	assert.Equal(t, 1, *rec.PreviousRank)
	assert.Equal(t, 3, *rec.CurrentRank)
}

func TestClassifyRisingTrack(t *testing.T) {
	input := map[time.Time][]models.RankedEntry{
		day(1): {ranked(1, 5, "X")},
		day(2): {ranked(2, 2, "X")},
	}
	records := ClassifyTrends(input)

	rec := findTrend(records, 2, "X")
	assert.NotNil(t, rec)
	assert.Equal(t, models.TrendRising, rec.Category)
	assert.Equal(t, -3, rec.Delta)
}

func TestClassifyStableTrack(t *testing.T) {
	input := map[time.Time][]models.RankedEntry{
		day(1): {ranked(1, 4, "X")},
		day(2): {ranked(2, 4, "X")},
	}
	records := ClassifyTrends(input)

	rec := findTrend(records, 2, "X")
	assert.NotNil(t, rec)
	assert.Equal(t, models.TrendStable, rec.Category)
	assert.Equal(t, 0, rec.Delta)
}

func TestClassifyNewTrack(t *testing.T) {
	// Y появился только 2 января: NEW, предыдущей позиции нет
	input := map[time.Time][]models.RankedEntry{
		day(1): {ranked(1, 1, "X")},
		day(2): {ranked(2, 1, "X"), ranked(2, 2, "Y")},
	}
	records := ClassifyTrends(input)

	rec := findTrend(records, 2, "Y")
	assert.NotNil(t, rec)
	assert.Equal(t, models.TrendNew, rec.Category)
	assert.Nil(t, rec.PreviousRank)
	assert.Equal(t, 2, *rec.CurrentRank)
}

func TestClassifyDroppedTrack(t *testing.T) {
	// Z был вторым 1 января и исчез 2 января: синтетическая запись DROPPED
	input := map[time.Time][]models.RankedEntry{
		day(1): {ranked(1, 1, "X"), ranked(1, 2, "Z")},
		day(2): {ranked(2, 1, "X")},
	}
	records := ClassifyTrends(input)

	rec := findTrend(records, 2, "Z")
	assert.NotNil(t, rec)
	assert.Equal(t, models.TrendDropped, rec.Category)
	assert.Equal(t, 2, *rec.PreviousRank)
	assert.Nil(t, rec.CurrentRank)
}

func TestClassifyGapMakesNew(t *testing.T) {
	// 2 января в данных нет: 1 и 3 января не соседние, дельты быть не должно
	input := map[time.Time][]models.RankedEntry{
		day(1): {ranked(1, 1, "X")},
		day(3): {ranked(3, 3, "X")},
	}
	records := ClassifyTrends(input)

	rec := findTrend(records, 3, "X")
	assert.NotNil(t, rec)
	assert.Equal(t, models.TrendNew, rec.Category)
	assert.Nil(t, rec.PreviousRank)

	// И никаких DROPPED через дыру
	for _, r := range records {
		assert.NotEqual(t, models.TrendDropped, r.Category)
	}
}

func TestClassifyFirstBucketAllNew(t *testing.T) {
	input := map[time.Time][]models.RankedEntry{
		day(1): {ranked(1, 1, "X"), ranked(1, 2, "Y")},
	}
	records := ClassifyTrends(input)

	assert.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, models.TrendNew, r.Category)
		assert.Nil(t, r.PreviousRank)
	}
}

func TestClassifyStreakCountsImprovingDays(t *testing.T) {
	// Позиции по дням: 5, 4, 4, 2 - три шага подряд без ухудшения
	input := map[time.Time][]models.RankedEntry{
		day(1): {ranked(1, 5, "X")},
		day(2): {ranked(2, 4, "X")},
		day(3): {ranked(3, 4, "X")},
		day(4): {ranked(4, 2, "X")},
	}
	records := ClassifyTrends(input)

	assert.Equal(t, 1, findTrend(records, 2, "X").Streak)
	assert.Equal(t, 2, findTrend(records, 3, "X").Streak)
	assert.Equal(t, 3, findTrend(records, 4, "X").Streak)
}

func TestClassifyStreakBrokenByWorseRank(t *testing.T) {
	// Падение на третий день обнуляет серию, подъем на четвертый начинает новую
	input := map[time.Time][]models.RankedEntry{
		day(1): {ranked(1, 3, "X")},
		day(2): {ranked(2, 2, "X")},
		day(3): {ranked(3, 6, "X")},
		day(4): {ranked(4, 1, "X")},
	}
	records := ClassifyTrends(input)

	assert.Equal(t, 1, findTrend(records, 2, "X").Streak)
	assert.Equal(t, 0, findTrend(records, 3, "X").Streak)
	assert.Equal(t, 1, findTrend(records, 4, "X").Streak)
}

func TestClassifyStreakBrokenByGap(t *testing.T) {
	// Дыра в данных обрывает серию, даже если позиции продолжали расти
	input := map[time.Time][]models.RankedEntry{
		day(1): {ranked(1, 5, "X")},
		day(2): {ranked(2, 4, "X")},
		day(4): {ranked(4, 3, "X")},
		day(5): {ranked(5, 2, "X")},
	}
	records := ClassifyTrends(input)

	assert.Equal(t, models.TrendNew, findTrend(records, 4, "X").Category)
	assert.Equal(t, 0, findTrend(records, 4, "X").Streak)
	assert.Equal(t, 1, findTrend(records, 5, "X").Streak)
}

func TestClassifyDeltaMatchesRankDifference(t *testing.T) {
	input := map[time.Time][]models.RankedEntry{
		day(1): {ranked(1, 1, "X"), ranked(1, 2, "Y"), ranked(1, 3, "Z")},
		day(2): {ranked(2, 2, "X"), ranked(2, 1, "Y"), ranked(2, 3, "Z")},
	}
	records := ClassifyTrends(input)

	for _, track := range []string{"X", "Y", "Z"} {
		rec := findTrend(records, 2, track)
		assert.NotNil(t, rec)
		assert.Equal(t, *rec.CurrentRank-*rec.PreviousRank, rec.Delta)
		switch {
		case rec.Delta < 0:
			assert.Equal(t, models.TrendRising, rec.Category)
		case rec.Delta > 0:
			assert.Equal(t, models.TrendFalling, rec.Category)
		default:
			assert.Equal(t, models.TrendStable, rec.Category)
		}
	}
}
