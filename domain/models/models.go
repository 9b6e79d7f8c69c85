package models

import "time"

type TrendCategory string

const (
	TrendNew     TrendCategory = "NEW"
	TrendRising  TrendCategory = "RISING"
	TrendFalling TrendCategory = "FALLING"
	TrendStable  TrendCategory = "STABLE"
	TrendDropped TrendCategory = "DROPPED"
)

// ChartEntry - одна строка чарта: позиция трека за конкретную дату.
// После загрузки не изменяется.
type ChartEntry struct {
	Date    time.Time
	TrackID string // составной ключ трек+исполнитель
	Track   string
	Artist  string
	Rank    int
	Streams float64
	URL     string
}

// RankedEntry - строка бакета после перенумерации топ-N.
// Внутри одной даты ранги плотные: 1..k без пропусков.
type RankedEntry struct {
	Date    time.Time
	TrackID string
	Track   string
	Artist  string
	Rank    int
	Streams float64
}

// TrendRecord - сравнение позиции трека с предыдущим днем.
// CurrentRank/PreviousRank нулевые указатели, когда трека нет в
// соответствующем бакете (DROPPED/NEW), никаких значений-заглушек.
type TrendRecord struct {
	TrackID      string
	Track        string
	Artist       string
	Date         time.Time
	CurrentRank  *int
	PreviousRank *int
	Delta        int // current - previous, отрицательное = рост
	Streak       int // сколько дней подряд позиция не ухудшалась
	Category     TrendCategory
}

// FilterParams - фильтры из интерфейса. Нулевое значение поля = фильтр выключен.
type FilterParams struct {
	DateFrom    time.Time
	DateTo      time.Time
	TrackQuery  string // подстрока, без учета регистра
	ArtistQuery string
	MinRank     int
	MaxRank     int
}

type DailyStat struct {
	Date         time.Time
	TotalStreams float64
	AvgStreams   float64
	UniqueTracks int
}

// TotalStat - суммарные прослушивания по треку или исполнителю за выборку.
type TotalStat struct {
	Name         string
	Artist       string
	TotalStreams float64
	BestRank     int
}

// MoverStat - лучший подъем и худшее падение трека за один день.
type MoverStat struct {
	TrackID         string
	Track           string
	Artist          string
	BestImprovement int // насколько позиций поднялся, положительное = лучше
	WorstDrop       int
}

type DatasetSummary struct {
	Rows          int
	UniqueTracks  int
	UniqueArtists int
	AvgStreams    float64
	DateFrom      time.Time
	DateTo        time.Time
}

// TrackPoint - точка истории одного трека для графиков.
type TrackPoint struct {
	Date    time.Time
	Rank    int
	Streams float64
}
