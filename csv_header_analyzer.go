// csv_header_analyzer.go
package main

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pivolan/go_utils"
)

// HeaderMapping - индексы распознанных колонок чарта в CSV файле.
// -1 означает, что колонка в файле отсутствует.
type HeaderMapping struct {
	Rank           int
	Track          int
	Artist         int
	Streams        int
	URL            int
	URI            int
	Columns        int  // всего колонок в файле
	FirstRowIsData bool // файл без строки заголовков
}

// Алиасы имен колонок, как их пишут разные выгрузки чартов
var (
	rankAliases    = []string{"position", "rank", "chart position"}
	trackAliases   = []string{"track name", "track", "trackname", "song", "title"}
	artistAliases  = []string{"artist", "artist name", "artist names", "artistname", "artistnames"}
	streamsAliases = []string{"streams", "stream"}
	urlAliases     = []string{"url", "track url", "spotify url"}
	uriAliases     = []string{"uri"}
)

// ResolveChartHeaders анализирует первую строку CSV и сопоставляет колонки
// с полями чарта. Возвращает nil, если обязательные колонки (позиция и
// прослушивания) найти не удалось - такой файл пропускается целиком.
func ResolveChartHeaders(firstRow []string) *HeaderMapping {
	if len(firstRow) == 0 {
		return nil
	}

	m := &HeaderMapping{
		Rank: -1, Track: -1, Artist: -1, Streams: -1, URL: -1, URI: -1,
		Columns: len(firstRow),
	}

	// Подсчитываем, сколько полей похожи на заголовки
	headerLikeCount := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLikeCount++
		}
	}

	if float64(headerLikeCount)/float64(len(firstRow)) < 0.5 {
		// Первая строка - данные. Выгрузки без заголовков идут в
		// каноническом порядке: position, track, artist, streams, url
		m.FirstRowIsData = true
		fields := []*int{&m.Rank, &m.Track, &m.Artist, &m.Streams, &m.URL}
		for i := range fields {
			if i < len(firstRow) {
				*fields[i] = i
			}
		}
		if m.Streams == -1 {
			return nil
		}
		return m
	}

	for i, header := range firstRow {
		cl := normalizeHeader(header)
		switch {
		case go_utils.InArray(cl, rankAliases):
			m.Rank = pickFirst(m.Rank, i)
		case go_utils.InArray(cl, trackAliases):
			m.Track = pickFirst(m.Track, i)
		case go_utils.InArray(cl, artistAliases):
			m.Artist = pickFirst(m.Artist, i)
		case go_utils.InArray(cl, streamsAliases):
			m.Streams = pickFirst(m.Streams, i)
		case go_utils.InArray(cl, urlAliases):
			m.URL = pickFirst(m.URL, i)
		case go_utils.InArray(cl, uriAliases):
			m.URI = pickFirst(m.URI, i)
		}
	}

	// Без позиции и прослушиваний файл бесполезен
	if m.Rank == -1 || m.Streams == -1 {
		return nil
	}
	return m
}

// normalizeHeader приводит имя колонки к виду для сравнения с алиасами:
// нижний регистр, подчеркивания и повторные пробелы схлопываются в один пробел
func normalizeHeader(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	re := regexp.MustCompile(`[_\s]+`)
	return re.ReplaceAllString(c, " ")
}

func pickFirst(current, candidate int) int {
	if current != -1 {
		return current
	}
	return candidate
}

// isLikelyHeader определяет, похож ли текст на заголовок
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	// Число - точно не заголовок
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}

	// Типичные форматы дат
	datePatterns := []string{
		`^\d{4}-\d{2}-\d{2}$`,
		`^\d{2}/\d{2}/\d{4}$`,
		`^\d{2}\.\d{2}\.\d{4}$`,
		`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}$`,
	}
	for _, pattern := range datePatterns {
		if matched, _ := regexp.MatchString(pattern, text); matched {
			return false
		}
	}

	letters := 0
	digits := 0
	specials := 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r):
		default:
			specials++
		}
	}

	totalChars := letters + digits + specials
	if totalChars == 0 {
		return false
	}

	// Если букв больше 30% от всех символов - вероятно это заголовок
	return letters > 0 && float64(letters)/float64(totalChars) >= 0.3
}
