package plot

import (
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// dataDailyForGraph - столбцы по дням: суммы прослушиваний или число треков
type dataDailyForGraph struct {
	dates     []time.Time
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func NewDataDailyForGraph(dates []time.Time, y []float64, nameYAxis, nameGraph string) dataDailyForGraph {
	return dataDailyForGraph{
		dates:     dates,
		yValues:   y,
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
	}
}

func (d dataDailyForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataDailyForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataDailyForGraph) getYValues() []float64 {
	return d.yValues
}
func (d dataDailyForGraph) lenXValues() int {
	return len(d.dates)
}

func (d dataDailyForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return barChartDimensions(d.lenXValues(), len(d.yValues), minBarWidth)
}

func (d dataDailyForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	for i, date := range d.dates {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: date.Format("2006-01-02"),
			Style: chart.Style{
				FillColor:         drawing.ColorLime.WithAlpha(40),
				TextVerticalAlign: 100,
			},
		})
	}
	return bars
}

func (d dataDailyForGraph) generateGrid() []chart.Tick {
	var ticks []chart.Tick
	max := findMaxValue(d.yValues)
	gridStep := calculateGridStep(max)
	for i := 0.0; i <= max; i += gridStep {
		ticks = append(ticks, chart.Tick{
			Value: i,
			Label: fmt.Sprintf("%.1f", i),
		})
	}
	return ticks
}
