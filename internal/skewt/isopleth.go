package skewt

import (
	"math"

	"github.com/micutio/flightreplay/internal"
)

// Constants of the saturation vapor pressure relation.
const (
	triplePointTemperature = 273.16  // K
	waterVaporGasConstant  = 461.7   // J/(kg·K)
	vaporizationHeat       = 2500000 // J/kg
	triplePointPressure    = 611.73  // Pa
	molecularWeightRatio   = 0.622   // water vapor / dry air
	celsiusOffset          = 273.15
)

// MixingRatios are the isopleths drawn on the diagram, in g/kg.
var MixingRatios = []float64{0.1, 0.4, 1, 2, 4, 7, 10, 16, 24, 32} //nolint:gochecknoglobals // read-only preset

// MixingRatioTemperature returns the temperature in °C at which air at the given pressure
// (hPa) is saturated with the given water vapor mixing ratio (g/kg).
func MixingRatioTemperature(ratio, pressure float64) float64 {
	r := ratio / 1000 //nolint:mnd // g/kg to kg/kg
	vaporPressure := r * pressure * 100 / (triplePointPressure * (molecularWeightRatio + r))
	return 1/(1/triplePointTemperature-waterVaporGasConstant/vaporizationHeat*math.Log(vaporPressure)) -
		celsiusOffset
}

// Isopleth is the line of constant mixing ratio through all pressure levels.
type Isopleth struct {
	Ratio  float64
	Points []Point
	Label  Label
}

// Isopleths returns one line per mixing ratio, evaluated at each pressure level of the
// diagram. The label sits just above the point at the first level.
func (d Diagram) Isopleths() []Isopleth {
	const labelLift = 2

	if len(d.Pressures) == 0 {
		return nil
	}

	isopleths := make([]Isopleth, 0, len(MixingRatios))
	for _, ratio := range MixingRatios {
		points := make([]Point, 0, len(d.Pressures))
		for _, p := range d.Pressures {
			points = append(points, d.At(MixingRatioTemperature(ratio, p), p))
		}

		first := points[0]
		isopleths = append(isopleths, Isopleth{
			Ratio:  ratio,
			Points: points,
			Label: Label{
				Text:   formatNumber(ratio),
				At:     Point{X: first.X, Y: first.Y - labelLift},
				Anchor: AnchorBottom,
			},
		})
	}

	return isopleths
}

// Contains reports whether a point lies inside the plot area.
func (d Diagram) Contains(p Point) bool {
	return p == d.Clip(p)
}

// Clip moves a point onto the nearest position inside the plot area.
func (d Diagram) Clip(p Point) Point {
	return Point{
		X: internal.Clamp(p.X, d.Margin.Left, d.Width-d.Margin.Right),
		Y: internal.Clamp(p.Y, d.Margin.Top, d.Height-d.Margin.Bottom),
	}
}
