// Package plotexport renders the replay graphs and the sounding diagram to PNG images.
package plotexport

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/micutio/flightreplay/internal/graph"
)

var errNoSize = errors.New("image has no area")

// timeSteps are the candidate spacings of the time axis ticks.
var timeSteps = []time.Duration{ //nolint:gochecknoglobals // read-only
	time.Minute,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
	time.Hour,
	2 * time.Hour,
	6 * time.Hour,
}

const maxTimeTicks = 8

// WriteAltitudePNG renders the paths of a frame on a time axis starting at start, with the
// value axis gridlines taken from the frame's range.
func WriteAltitudePNG(w io.Writer, frame graph.Frame, start time.Time, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("writeAltitudePNG: %w: %dx%d", errNoSize, width, height)
	}

	span := 1.0
	for _, path := range frame.Paths {
		if last, ok := path.Last(); ok {
			span = max(span, last.Time.Sub(start).Seconds())
		}
	}

	series := []chart.Series{
		// ground line, also keeps the chart valid without any visible flight
		chart.ContinuousSeries{
			Name:    "ground",
			XValues: []float64{0, span},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeColor: drawing.ColorFromHex("999999"), StrokeWidth: 1},
		},
	}
	for _, path := range frame.Paths {
		if s, ok := pathSeries(path, start); ok {
			series = append(series, s)
		}
	}

	top := max(frame.Range.Max, 1)
	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:  "Time",
			Range: &chart.ContinuousRange{Min: 0, Max: span},
			Ticks: timeTicks(start, span),
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: frame.Range.Min, Max: top},
			Ticks:          valueTicks(frame.Range, top),
			GridLines:      gridLines(frame.Range),
			GridMajorStyle: chart.Style{StrokeColor: drawing.ColorFromHex("000000"), StrokeWidth: 1},
			GridMinorStyle: chart.Style{StrokeColor: drawing.ColorFromHex("dddddd"), StrokeWidth: 1},
		},
		Series: series,
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("writeAltitudePNG: %w", err)
	}
	return nil
}

// pathSeries converts a path to a line series. A path of a single point is drawn as a dot.
func pathSeries(path graph.Stroke, start time.Time) (chart.ContinuousSeries, bool) {
	if len(path.Points) == 0 {
		return chart.ContinuousSeries{}, false
	}

	xs := make([]float64, 0, len(path.Points))
	ys := make([]float64, 0, len(path.Points))
	for _, p := range path.Points {
		xs = append(xs, p.Time.Sub(start).Seconds())
		ys = append(ys, p.Value)
	}

	color := drawing.ColorFromHex(strings.TrimPrefix(path.Color, "#"))
	style := chart.Style{StrokeColor: color, StrokeWidth: 2} //nolint:mnd // px
	if len(xs) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
		style = chart.Style{StrokeWidth: 0, DotWidth: 3, DotColor: color} //nolint:mnd // px
	}

	return chart.ContinuousSeries{Name: path.SeriesID, XValues: xs, YValues: ys, Style: style}, true
}

func timeTicks(start time.Time, span float64) []chart.Tick {
	step := timeSteps[len(timeSteps)-1]
	for _, candidate := range timeSteps {
		if span/candidate.Seconds() <= maxTimeTicks {
			step = candidate
			break
		}
	}

	// first tick on a round multiple of the step
	first := start.Truncate(step)
	if first.Before(start) {
		first = first.Add(step)
	}

	var ticks []chart.Tick
	for t := first; t.Sub(start).Seconds() <= span; t = t.Add(step) {
		ticks = append(ticks, chart.Tick{Value: t.Sub(start).Seconds(), Label: t.Format("15:04")})
	}
	if len(ticks) < 2 { //nolint:mnd // go-chart needs two ticks to lay out an axis
		ticks = []chart.Tick{
			{Value: 0, Label: start.Format("15:04:05")},
			{Value: span, Label: start.Add(time.Duration(span * float64(time.Second))).Format("15:04:05")},
		}
	}
	return ticks
}

func valueTicks(rng graph.Range, top float64) []chart.Tick {
	var ticks []chart.Tick
	for _, step := range rng.Steps {
		if step.Label != "" {
			ticks = append(ticks, chart.Tick{Value: step.Value, Label: step.Label})
		}
	}
	if len(ticks) < 2 { //nolint:mnd // go-chart needs two ticks to lay out an axis
		ticks = []chart.Tick{{Value: rng.Min, Label: ""}, {Value: top, Label: ""}}
	}
	return ticks
}

func gridLines(rng graph.Range) []chart.GridLine {
	lines := make([]chart.GridLine, 0, len(rng.Steps))
	for _, step := range rng.Steps {
		lines = append(lines, chart.GridLine{IsMinor: !step.Primary, Value: step.Value})
	}
	return lines
}
