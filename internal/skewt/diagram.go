// Package skewt lays out the upper air sounding diagram: temperature on a linear horizontal
// axis, pressure on a logarithmic vertical axis, a fixed grid, mixing ratio isopleths and
// the observed temperature and dew point traces.
//
// Everything in here is a pure function of the diagram geometry and the observation; the
// result is a set of polylines in pixel coordinates that any canvas can draw.
package skewt

import (
	"fmt"
	"math"
)

// Bounds is the physical domain of the diagram.
type Bounds struct {
	MinTemperature float64 // °C
	MaxTemperature float64 // °C
	MinPressure    float64 // hPa
	MaxPressure    float64 // hPa
}

// Margin is the space around the plot area, in pixels.
type Margin struct {
	Top, Left, Bottom, Right float64
}

// Point is a position on the canvas, in pixels.
type Point struct {
	X, Y float64
}

// Diagram maps temperature and pressure to canvas pixels.
type Diagram struct {
	Width           float64
	Height          float64
	Margin          Margin
	Bounds          Bounds
	Pressures       []float64 // pressure levels with a gridline, from the surface up
	TemperatureStep float64
}

// NewDiagram returns the standard sounding diagram for a canvas of the given size.
func NewDiagram(width, height float64) Diagram {
	return Diagram{
		Width:  width,
		Height: height,
		Margin: Margin{Top: 10, Left: 50, Bottom: 15, Right: 10}, //nolint:mnd // layout
		Bounds: Bounds{
			MinTemperature: -90,  //nolint:mnd // coldest tropopause temperatures
			MaxTemperature: 50,   //nolint:mnd // hottest surface temperatures
			MinPressure:    100,  //nolint:mnd // top of the diagram
			MaxPressure:    1050, //nolint:mnd // below any surface pressure
		},
		Pressures:       []float64{1050, 1000, 925, 850, 700, 500, 400, 300, 250, 200, 150, 100},
		TemperatureStep: 5, //nolint:mnd // one gridline every 5 °C
	}
}

// X returns the horizontal pixel position of a temperature.
func (d Diagram) X(temperature float64) float64 {
	b := d.Bounds
	plotWidth := d.Width - (d.Margin.Left + d.Margin.Right)
	return (temperature-b.MinTemperature)/(b.MaxTemperature-b.MinTemperature)*plotWidth + d.Margin.Left
}

// Y returns the vertical pixel position of a pressure. Pressure decreases exponentially with
// height, so the axis is logarithmic; low pressure is at the top.
func (d Diagram) Y(pressure float64) float64 {
	b := d.Bounds
	plotHeight := d.Height - (d.Margin.Top + d.Margin.Bottom)
	return (math.Log(pressure)-math.Log(b.MinPressure))/
		(math.Log(b.MaxPressure)-math.Log(b.MinPressure))*plotHeight + d.Margin.Top
}

// At returns the pixel position of a temperature at a pressure.
func (d Diagram) At(temperature, pressure float64) Point {
	return Point{X: d.X(temperature), Y: d.Y(pressure)}
}

// Anchor tells where a label sits relative to its position.
type Anchor int

const (
	// AnchorEnd right-aligns the label and centers it vertically.
	AnchorEnd Anchor = iota
	// AnchorTop centers the label horizontally below its position.
	AnchorTop
	// AnchorBottom centers the label horizontally above its position.
	AnchorBottom
)

// Label is a text placed on the canvas.
type Label struct {
	Text   string
	At     Point
	Anchor Anchor
}

// GridLine is one isobar or isotherm of the grid.
type GridLine struct {
	From, To Point
	Primary  bool
	Label    *Label // nil when the line is not labelled
}

// Grid returns the isobars at the diagram's pressure levels followed by the isotherms.
// Only the isobars bounding the plot are primary; the bottom one is not labelled.
// Isotherms on multiples of twice the temperature step are primary and labelled.
func (d Diagram) Grid() []GridLine {
	const labelGap = 5

	b := d.Bounds
	minX := d.X(b.MinTemperature)
	maxX := d.X(b.MaxTemperature)
	bottomY := d.Y(b.MaxPressure)
	topY := d.Y(b.MinPressure)

	lines := make([]GridLine, 0, len(d.Pressures)+d.isothermCount())

	for _, p := range d.Pressures {
		y := d.Y(p)
		line := GridLine{
			From:    Point{X: minX, Y: y},
			To:      Point{X: maxX, Y: y},
			Primary: p == b.MinPressure || p == b.MaxPressure,
		}
		if p != b.MaxPressure {
			line.Label = &Label{
				Text:   formatNumber(p),
				At:     Point{X: minX - labelGap, Y: y},
				Anchor: AnchorEnd,
			}
		}
		lines = append(lines, line)
	}

	if d.TemperatureStep <= 0 {
		return lines
	}

	for n := range d.isothermCount() {
		t := b.MinTemperature + float64(n)*d.TemperatureStep
		x := d.X(t)
		line := GridLine{
			From:    Point{X: x, Y: bottomY},
			To:      Point{X: x, Y: topY},
			Primary: math.Mod(t, d.TemperatureStep*2) == 0, //nolint:mnd // every other isotherm
		}
		if line.Primary {
			line.Label = &Label{
				Text:   formatNumber(t),
				At:     Point{X: x, Y: bottomY + labelGap},
				Anchor: AnchorTop,
			}
		}
		lines = append(lines, line)
	}

	return lines
}

// isothermCount is the number of isotherms from the minimum temperature up to and including
// the maximum temperature plus one degree.
func (d Diagram) isothermCount() int {
	if d.TemperatureStep <= 0 {
		return 0
	}
	span := d.Bounds.MaxTemperature + 1 - d.Bounds.MinTemperature
	return int(math.Ceil(span / d.TemperatureStep))
}

func formatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}
