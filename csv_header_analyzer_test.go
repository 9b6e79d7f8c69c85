package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveChartHeadersSpotifyExport(t *testing.T) {
	m := ResolveChartHeaders([]string{"rank", "uri", "artist_names", "track_name", "streams"})

	assert.NotNil(t, m)
	assert.Equal(t, 0, m.Rank)
	assert.Equal(t, 1, m.URI)
	assert.Equal(t, 2, m.Artist)
	assert.Equal(t, 3, m.Track)
	assert.Equal(t, 4, m.Streams)
	assert.Equal(t, -1, m.URL)
	assert.False(t, m.FirstRowIsData)
}

func TestResolveChartHeadersAliasVariants(t *testing.T) {
	m := ResolveChartHeaders([]string{"Position", "Track Name", "Artist", "Streams", "Spotify URL"})

	assert.NotNil(t, m)
	assert.Equal(t, 0, m.Rank)
	assert.Equal(t, 1, m.Track)
	assert.Equal(t, 2, m.Artist)
	assert.Equal(t, 3, m.Streams)
	assert.Equal(t, 4, m.URL)
}

func TestResolveChartHeadersMissingRequired(t *testing.T) {
	// Без позиции или прослушиваний маппинг бесполезен
	assert.Nil(t, ResolveChartHeaders([]string{"track", "artist", "streams"}))
	assert.Nil(t, ResolveChartHeaders([]string{"position", "track", "artist"}))
	assert.Nil(t, ResolveChartHeaders([]string{}))
}

func TestResolveChartHeadersDuplicateTakesFirst(t *testing.T) {
	m := ResolveChartHeaders([]string{"position", "streams", "stream"})

	assert.NotNil(t, m)
	assert.Equal(t, 1, m.Streams)
}

func TestResolveChartHeadersHeaderless(t *testing.T) {
	// Первая строка - данные: числа и даты, похожих на заголовки полей мало.
	// Порядок колонок канонический: position, track, artist, streams, url
	m := ResolveChartHeaders([]string{"1", "Believer", "505", "12345.5", "2024-01-01"})

	assert.NotNil(t, m)
	assert.True(t, m.FirstRowIsData)
	assert.Equal(t, 0, m.Rank)
	assert.Equal(t, 1, m.Track)
	assert.Equal(t, 2, m.Artist)
	assert.Equal(t, 3, m.Streams)
	assert.Equal(t, 4, m.URL)
}

func TestIsLikelyHeader(t *testing.T) {
	assert.True(t, isLikelyHeader("track_name"))
	assert.True(t, isLikelyHeader("Artist Names"))
	assert.False(t, isLikelyHeader("12345"))
	assert.False(t, isLikelyHeader("12345.5"))
	assert.False(t, isLikelyHeader("2024-01-01"))
	assert.False(t, isLikelyHeader(""))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "track name", normalizeHeader("Track_Name"))
	assert.Equal(t, "artist names", normalizeHeader("  artist   names "))
}
