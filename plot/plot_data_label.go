package plot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// dataLabelForGraph - столбцы с произвольными подписями: топ треков,
// топ исполнителей
type dataLabelForGraph struct {
	labels    []string
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func NewDataLabelForGraph(labels []string, y []float64, nameYAxis, nameGraph string) dataLabelForGraph {
	return dataLabelForGraph{
		labels:    labels,
		yValues:   y,
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
	}
}

func (d dataLabelForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataLabelForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataLabelForGraph) getYValues() []float64 {
	return d.yValues
}
func (d dataLabelForGraph) lenXValues() int {
	return len(d.labels)
}

func (d dataLabelForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return barChartDimensions(d.lenXValues(), len(d.yValues), minBarWidth)
}

func (d dataLabelForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	for i, label := range d.labels {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: label,
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}
