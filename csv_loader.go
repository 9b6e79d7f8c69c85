// csv_loader.go
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/chart_trends/domain/models"
)

const SEPARATOR = ','

// Dataset - загруженная таблица чартов за все даты. Entries отсортированы
// по (дата, позиция) и после загрузки не изменяются.
type Dataset struct {
	Entries      []models.ChartEntry
	Skipped      int // строки, не прошедшие валидацию
	SkippedFiles int // файлы без даты в имени или без нужных колонок
	Files        int // успешно прочитанные файлы
	LoadedAt     time.Time
}

// LoadError - датасет прочитать не удалось совсем. Единственная ошибка,
// которая уходит наружу: построчные проблемы только считаются в Skipped.
type LoadError struct {
	Dir    string
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load dataset from %q: %s", e.Dir, e.Reason)
}

// Дата бакета лежит в имени файла, например regional-pk-daily-2025-12-22.csv
var dateInNameRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

var spotifyURIRe = regexp.MustCompile(`^spotify:track:([A-Za-z0-9]+)$`)

// LoadDataset читает каталог дневных CSV выгрузок чарта в память.
// Архивы gz/lz4/zip распаковываются на месте. Файлы без даты в имени и
// строки, не прошедшие валидацию, пропускаются и считаются, а не рушат
// загрузку - фатален только полностью нечитаемый каталог.
func LoadDataset(dir string) (*Dataset, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Dir: dir, Reason: err.Error()}
	}

	ds := &Dataset{LoadedAt: time.Now()}
	paths := []string{}
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		path := filepath.Join(dir, de.Name())
		unpacked, err := unpackArchive(path)
		if err != nil {
			log.Printf("cannot unpack %s: %v", path, err)
			ds.SkippedFiles++
			continue
		}
		if unpacked != "" {
			path = unpacked
		}
		if filepath.Ext(path) != ".csv" {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		date, ok := dateFromFilename(path)
		if !ok {
			log.Printf("no date in filename, skipping: %s", path)
			ds.SkippedFiles++
			continue
		}
		entries, skipped, err := loadChartFile(path, date)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			ds.SkippedFiles++
			continue
		}
		ds.Entries = append(ds.Entries, entries...)
		ds.Skipped += skipped
		ds.Files++
	}

	if ds.Files == 0 {
		return nil, &LoadError{Dir: dir, Reason: "no readable chart csv files"}
	}
	if len(ds.Entries) == 0 {
		return nil, &LoadError{Dir: dir, Reason: "no valid rows in any file"}
	}

	sort.Slice(ds.Entries, func(i, j int) bool {
		a, b := ds.Entries[i], ds.Entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.TrackID < b.TrackID
	})
	fmt.Println("dataset loaded, files:", ds.Files, "rows:", len(ds.Entries), "skipped rows:", ds.Skipped)
	return ds, nil
}

func dateFromFilename(path string) (time.Time, bool) {
	m := dateInNameRe.FindString(filepath.Base(path))
	if m == "" {
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", m)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// loadChartFile читает один дневной файл. Ошибка возвращается только когда
// файл нельзя использовать целиком, иначе плохие строки идут в skipped.
func loadChartFile(path string, date time.Time) ([]models.ChartEntry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = SEPARATOR
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	firstRow, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("cannot read first row: %v", err)
	}
	mapping := ResolveChartHeaders(firstRow)
	if mapping == nil {
		return nil, 0, fmt.Errorf("required columns not found")
	}

	entries := []models.ChartEntry{}
	skipped := 0
	appendRow := func(row []string) {
		entry, ok := parseChartRow(row, mapping, date)
		if !ok {
			skipped++
			return
		}
		entries = append(entries, entry)
	}

	if mapping.FirstRowIsData {
		appendRow(firstRow)
	}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		appendRow(row)
	}
	return entries, skipped, nil
}

// parseChartRow валидирует одну строку. Требования: целая положительная
// позиция, числовые прослушивания, непустой трек или исполнитель.
func parseChartRow(row []string, m *HeaderMapping, date time.Time) (models.ChartEntry, bool) {
	rankStr := fieldAt(row, m.Rank)
	rank, err := strconv.Atoi(strings.TrimSpace(rankStr))
	if err != nil || rank <= 0 {
		return models.ChartEntry{}, false
	}

	streams, err := strconv.ParseFloat(strings.TrimSpace(fieldAt(row, m.Streams)), 64)
	if err != nil {
		return models.ChartEntry{}, false
	}

	track := strings.TrimSpace(fieldAt(row, m.Track))
	artist := strings.TrimSpace(fieldAt(row, m.Artist))
	if m.Track == -1 {
		track = "Unknown"
	}
	if m.Artist == -1 {
		artist = "Unknown"
	}
	if track == "" && artist == "" {
		return models.ChartEntry{}, false
	}

	url := strings.TrimSpace(fieldAt(row, m.URL))
	if url == "" {
		url = uriToURL(fieldAt(row, m.URI))
	}

	return models.ChartEntry{
		Date:    date,
		TrackID: makeTrackID(track, artist),
		Track:   track,
		Artist:  artist,
		Rank:    rank,
		Streams: streams,
		URL:     url,
	}, true
}

func fieldAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// makeTrackID строит детерминированный составной ключ трек+исполнитель.
// Названия транслитерируются в ASCII, чтобы ключ был стабильным независимо
// от юникода в выгрузке.
func makeTrackID(track, artist string) string {
	return slugify(track) + "__" + slugify(artist)
}

func slugify(s string) string {
	return strings.ToLower(replaceSpecialSymbols(unidecode.Unidecode(s)))
}

func replaceSpecialSymbols(input string) string {
	// Replace all non-alphanumeric characters with underscores
	re := regexp.MustCompile("[^a-zA-Z0-9]+")
	processedString := re.ReplaceAllString(input, "_")

	// Remove any underscores at the beginning or end of the string
	return strings.Trim(processedString, "_")
}

// uriToURL превращает spotify:track:ID в обычную ссылку
func uriToURL(uri string) string {
	m := spotifyURIRe.FindStringSubmatch(strings.TrimSpace(uri))
	if m == nil {
		return ""
	}
	return "https://open.spotify.com/track/" + m[1]
}
