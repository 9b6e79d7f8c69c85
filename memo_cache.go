// memo_cache.go
package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pivolan/chart_trends/domain/models"
)

// DerivedViews - полный пересчет пайплайна для одной комбинации фильтров:
// Filter -> TopN -> Classify плюс дневные агрегаты. Владеет результатом
// вызывающая сторона, стадии ничего не мутируют.
type DerivedViews struct {
	Filtered []models.ChartEntry
	Ranked   map[time.Time][]models.RankedEntry
	Trends   []models.TrendRecord
	Daily    []models.DailyStat
}

// ComputeDerivedViews - чистый пересчет без кеша
func ComputeDerivedViews(entries []models.ChartEntry, p models.FilterParams, topN int) *DerivedViews {
	filtered := ApplyFilter(entries, p)
	ranked := TopN(filtered, topN)
	return &DerivedViews{
		Filtered: filtered,
		Ranked:   ranked,
		Trends:   ClassifyTrends(ranked),
		Daily:    DailyStats(filtered),
	}
}

// ResultCache - явная мемоизация пересчетов по ключу (фильтры, topN).
// Заменяет неявный кеш реактивных фреймворков: поведение видно в коде и
// инвалидация только ручная, при перезагрузке датасета.
type ResultCache struct {
	mu    sync.Mutex
	views map[string]*DerivedViews
}

func NewResultCache() *ResultCache {
	return &ResultCache{views: map[string]*DerivedViews{}}
}

// Views отдает кешированный пересчет или считает и запоминает новый
func (c *ResultCache) Views(entries []models.ChartEntry, p models.FilterParams, topN int) *DerivedViews {
	key := cacheKey(p, topN)
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.views[key]; ok {
		return v
	}
	v := ComputeDerivedViews(entries, p, topN)
	c.views[key] = v
	return v
}

// Invalidate сбрасывает кеш целиком. Вызывается при перезагрузке датасета.
func (c *ResultCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views = map[string]*DerivedViews{}
}

func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.views)
}

func cacheKey(p models.FilterParams, topN int) string {
	// Запросы-подстроки нечувствительны к регистру, ключ тоже
	return fmt.Sprintf("%d|%d|%s|%s|%d|%d|%d",
		p.DateFrom.Unix(), p.DateTo.Unix(),
		strings.ToLower(strings.TrimSpace(p.TrackQuery)),
		strings.ToLower(strings.TrimSpace(p.ArtistQuery)),
		p.MinRank, p.MaxRank, topN)
}
