package graph

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Scale describes the gridline density of a value axis.
type Scale struct {
	Step         float64 // distance between two gridlines
	LabelEvery   float64 // gridlines on multiples of this carry a label
	PrimaryEvery float64 // gridlines on multiples of this are drawn bolder
	Unit         string
}

// AltitudeScale is the axis of the altitude graph, in meters.
var AltitudeScale = Scale{ //nolint:gochecknoglobals // read-only preset
	Step:         100,
	LabelEvery:   200,
	PrimaryEvery: 1000,
	Unit:         "m",
}

// GroundSpeedScale is the axis of the ground speed graph, in km/h.
var GroundSpeedScale = Scale{ //nolint:gochecknoglobals // read-only preset
	Step:         10,
	LabelEvery:   20,
	PrimaryEvery: 100,
	Unit:         "km/h",
}

// Step is a gridline of the value axis.
type Step struct {
	Value   float64
	Label   string // empty for unlabelled gridlines
	Primary bool
}

// Range is the value axis domain of a graph together with its gridlines.
type Range struct {
	Min   float64
	Max   float64
	Steps []Step
}

// ComputeRange derives the axis domain from all given series, visible or not, so that the
// axis does not jump when a flight is hidden. The minimum is fixed at 0. Samples that are NaN
// or infinite are ignored.
func ComputeRange(series []Series, scale Scale) Range {
	const minValue = 0.0

	maxValue := minValue
	for _, s := range series {
		for i := range s.Len() {
			v := s.At(i).Value
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			maxValue = math.Max(maxValue, v)
		}
	}

	printer := message.NewPrinter(language.English)

	var steps []Step
	if scale.Step > 0 {
		for n := 0; ; n++ {
			value := minValue + float64(n)*scale.Step
			if value >= maxValue+1 {
				break
			}

			step := Step{
				Value:   value,
				Primary: isMultiple(value, scale.PrimaryEvery),
			}
			if isMultiple(value, scale.LabelEvery) {
				step.Label = printer.Sprintf("%d%s", int64(value), scale.Unit)
			}
			steps = append(steps, step)
		}
	}

	return Range{
		Min:   minValue,
		Max:   maxValue,
		Steps: steps,
	}
}

func isMultiple(value, of float64) bool {
	if of <= 0 {
		return false
	}
	return math.Mod(value, of) == 0
}
