// Package chart draws the per-assignment averages as a bar chart.
package chart

import (
	"errors"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"gradebook-server-go/grading"
)

const (
	Title  = "Average Scores Graph"
	Width  = 700
	Height = 600
)

var barColor = drawing.ColorFromHex("FFA500")

var ErrNoData = errors.New("no averages to plot")

// Format is an output encoding supported by RenderAverages.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ContentType is the MIME type of a rendered chart.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func barStyle() gochart.Style {
	return gochart.Style{
		FillColor:   barColor,
		StrokeColor: barColor,
		StrokeWidth: 1,
	}
}

// RenderAverages writes one bar per score field, labelled HW1 through Final.
func RenderAverages(w io.Writer, averages []grading.ColumnAverage, format Format) error {
	if len(averages) == 0 {
		return ErrNoData
	}

	top := 100.0
	bars := make([]gochart.Value, 0, len(averages))
	for _, a := range averages {
		bars = append(bars, gochart.Value{Label: a.Label, Value: a.Value, Style: barStyle()})
		top = math.Max(top, a.Value)
	}

	bc := gochart.BarChart{
		Title:      Title,
		Width:      Width,
		Height:     Height,
		BarWidth:   45,
		BarSpacing: 20,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: math.Ceil(top)},
		},
		Bars: bars,
	}

	renderer := gochart.PNG
	if format == SVG {
		renderer = gochart.SVG
	}
	return bc.Render(renderer, w)
}
