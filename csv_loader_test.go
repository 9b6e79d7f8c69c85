package main

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)
	return path
}

const chartDay1 = `rank,uri,artist_names,track_name,streams
1,spotify:track:Abc123,The Weeknd,Blinding Lights,50000
2,spotify:track:Def456,Ed Sheeran,Shape of You,40000
`

const chartDay2 = `rank,uri,artist_names,track_name,streams
1,spotify:track:Def456,Ed Sheeran,Shape of You,55000
2,spotify:track:Abc123,The Weeknd,Blinding Lights,42000
`

func TestLoadDatasetReadsAllFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "regional-global-daily-2024-01-02.csv", chartDay2)
	writeFile(t, dir, "regional-global-daily-2024-01-01.csv", chartDay1)

	ds, err := LoadDataset(dir)
	assert.NoError(t, err)
	assert.Equal(t, 2, ds.Files)
	assert.Equal(t, 0, ds.Skipped)
	assert.Len(t, ds.Entries, 4)

	// Строки отсортированы по дате, внутри даты - по позиции
	assert.Equal(t, day(1), ds.Entries[0].Date)
	assert.Equal(t, 1, ds.Entries[0].Rank)
	assert.Equal(t, "Blinding Lights", ds.Entries[0].Track)
	assert.Equal(t, day(2), ds.Entries[2].Date)
	assert.Equal(t, "Shape of You", ds.Entries[2].Track)
}

func TestLoadDatasetURIBecomesURL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "chart-2024-01-01.csv", chartDay1)

	ds, err := LoadDataset(dir)
	assert.NoError(t, err)
	assert.Equal(t, "https://open.spotify.com/track/Abc123", ds.Entries[0].URL)
}

func TestLoadDatasetSkipsBadRows(t *testing.T) {
	dir := t.TempDir()
	content := `rank,track_name,artist_names,streams
1,Good Track,Artist,1000
abc,Bad Rank,Artist,1000
0,Zero Rank,Artist,1000
2,No Streams,Artist,n/a
3,,,1000
4,Second Good,Artist,900
`
	writeFile(t, dir, "chart-2024-01-01.csv", content)

	ds, err := LoadDataset(dir)
	assert.NoError(t, err)
	assert.Len(t, ds.Entries, 2)
	assert.Equal(t, 4, ds.Skipped)
}

func TestLoadDatasetSkipsFileWithoutDate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "chart-2024-01-01.csv", chartDay1)
	writeFile(t, dir, "notes.csv", chartDay2)

	ds, err := LoadDataset(dir)
	assert.NoError(t, err)
	assert.Equal(t, 1, ds.Files)
	assert.Equal(t, 1, ds.SkippedFiles)
	assert.Len(t, ds.Entries, 2)
}

func TestLoadDatasetMissingDir(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "no_such_dir"))
	assert.Error(t, err)
	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoadDatasetEmptyDir(t *testing.T) {
	_, err := LoadDataset(t.TempDir())
	assert.Error(t, err)
	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "no readable chart csv files")
}

func TestLoadDatasetNoValidRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "chart-2024-01-01.csv", "rank,track_name,artist_names,streams\nabc,Track,Artist,xyz\n")

	_, err := LoadDataset(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no valid rows")
}

func TestLoadDatasetHeaderless(t *testing.T) {
	dir := t.TempDir()
	content := "1,Believer,Imagine Dragons,12345,\n2,Thunder,Imagine Dragons,11000,\n"
	writeFile(t, dir, "chart-2024-01-01.csv", content)

	ds, err := LoadDataset(dir)
	assert.NoError(t, err)
	assert.Len(t, ds.Entries, 2)
	assert.Equal(t, "Believer", ds.Entries[0].Track)
	assert.Equal(t, "Imagine Dragons", ds.Entries[0].Artist)
	assert.Equal(t, float64(12345), ds.Entries[0].Streams)
}

func TestLoadDatasetGzipArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart-2024-01-01.csv.gz")
	f, err := os.Create(path)
	assert.NoError(t, err)
	w := gzip.NewWriter(f)
	_, err = w.Write([]byte(chartDay1))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, f.Close())

	ds, err := LoadDataset(dir)
	assert.NoError(t, err)
	assert.Equal(t, 1, ds.Files)
	assert.Len(t, ds.Entries, 2)

	// Архив распакован на место и удален
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "chart-2024-01-01.csv"))
	assert.NoError(t, err)
}

func TestDateFromFilename(t *testing.T) {
	date, ok := dateFromFilename("/tmp/regional-pk-daily-2025-12-22.csv")
	assert.True(t, ok)
	assert.Equal(t, "2025-12-22", date.Format("2006-01-02"))

	_, ok = dateFromFilename("/tmp/chart.csv")
	assert.False(t, ok)
}

func TestMakeTrackID(t *testing.T) {
	assert.Equal(t, "shape_of_you__ed_sheeran", makeTrackID("Shape of You", "Ed Sheeran"))
	assert.Equal(t, makeTrackID("Track", "Artist"), makeTrackID("TRACK", "ARTIST"))
	// Транслитерация дает стабильный ASCII ключ для любых названий
	assert.Regexp(t, `^[a-z0-9_]+__[a-z0-9_]+$`, makeTrackID("Меланхолия", "Artist"))
}

func TestURIToURL(t *testing.T) {
	assert.Equal(t, "https://open.spotify.com/track/Abc123", uriToURL("spotify:track:Abc123"))
	assert.Equal(t, "", uriToURL("not a uri"))
	assert.Equal(t, "", uriToURL(""))
}
