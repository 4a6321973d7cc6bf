package tuiapp

import (
	"math"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/micutio/flightreplay/internal/graph"
)

const (
	xAxisRows      = 2  // axis line and time labels
	timeLabelEvery = 10 // columns
	gridRune       = '┈'
	cursorRune     = '│'
)

// altitudeChart draws the paths of an engine frame onto a braille line chart. The time
// axis spans the whole replay, the value axis the frame's range.
type altitudeChart struct {
	width  int
	height int
	lc     linechart.Model

	gridStyle    lipgloss.Style
	primaryStyle lipgloss.Style
	cursorStyle  lipgloss.Style
}

func newAltitudeChart(theme Theme, width, height int) altitudeChart {
	width, height = max(width, 1), max(height, xAxisRows+1)
	lc := linechart.New(width, height, 0, 1, 0, 1)
	lc.AxisStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
	lc.LabelStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	lc.SetXStep(timeLabelEvery)
	lc.SetYStep(1)

	return altitudeChart{
		width:        width,
		height:       height,
		lc:           lc,
		gridStyle:    lipgloss.NewStyle().Foreground(theme.Border),
		primaryStyle: lipgloss.NewStyle().Foreground(theme.Secondary),
		cursorStyle:  lipgloss.NewStyle().Foreground(theme.Highlight),
	}
}

func (c *altitudeChart) resize(width, height int) {
	c.width, c.height = max(width, 1), max(height, xAxisRows+1)
	c.lc.Resize(c.width, c.height)
}

// draw replaces the chart content with the given frame. start and end bound the replay.
func (c *altitudeChart) draw(frame graph.Frame, start, end time.Time) {
	span := math.Max(end.Sub(start).Seconds(), 1)
	bottom := frame.Range.Min
	top := math.Max(frame.Range.Max, bottom+1)

	c.lc.Clear()
	c.lc.XLabelFormatter = func(_ int, v float64) string {
		return start.Add(time.Duration(v * float64(time.Second))).Format("15:04")
	}
	c.lc.YLabelFormatter = stepLabels(frame.Range, bottom, top, c.height-xAxisRows)
	c.lc.SetXYRange(0, span, bottom, top)
	c.lc.SetViewXYRange(0, span, bottom, top)
	c.lc.UpdateGraphSizes()
	c.lc.DrawXYAxisAndLabel()

	for _, step := range frame.Range.Steps {
		if step.Value <= bottom {
			continue
		}
		style := c.gridStyle
		if step.Primary {
			style = c.primaryStyle
		}
		c.lc.DrawRuneLineWithStyle(
			canvas.Float64Point{X: 0, Y: step.Value},
			canvas.Float64Point{X: span, Y: step.Value},
			gridRune, style)
	}

	if !frame.Cursor.IsZero() {
		x := frame.Cursor.Sub(start).Seconds()
		c.lc.DrawRuneLineWithStyle(
			canvas.Float64Point{X: x, Y: bottom},
			canvas.Float64Point{X: x, Y: top},
			cursorRune, c.cursorStyle)
	}

	for _, path := range frame.Paths {
		c.drawPath(path, start)
	}
}

func (c *altitudeChart) drawPath(path graph.Stroke, start time.Time) {
	if len(path.Points) == 0 {
		return
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(path.Color))

	prev := chartPoint(path.Points[0], start)
	if len(path.Points) == 1 {
		c.lc.DrawBrailleLineWithStyle(prev, prev, style)
		return
	}
	for _, p := range path.Points[1:] {
		next := chartPoint(p, start)
		c.lc.DrawBrailleLineWithStyle(prev, next, style)
		prev = next
	}
}

func (c *altitudeChart) View() string {
	return c.lc.View()
}

func chartPoint(p graph.Point, start time.Time) canvas.Float64Point {
	return canvas.Float64Point{X: p.Time.Sub(start).Seconds(), Y: p.Value}
}

// stepLabels returns a label formatter that only names the labelled gridlines. A row shows
// the label of a step lying within half a row of its value.
func stepLabels(rng graph.Range, bottom, top float64, rows int) linechart.LabelFormatter {
	halfRow := (top - bottom) / float64(max(rows, 1)) / 2 //nolint:mnd // half
	return func(_ int, v float64) string {
		for _, step := range rng.Steps {
			if step.Label != "" && math.Abs(step.Value-v) <= halfRow {
				return step.Label
			}
		}
		return ""
	}
}
