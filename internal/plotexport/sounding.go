package plotexport

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/micutio/flightreplay/internal/skewt"
)

const (
	traceWidth = 2
	gridWidth  = 1
)

// WriteSoundingPNG draws the grid, the mixing ratio isopleths and the temperature and dew
// point traces of an observation.
func WriteSoundingPNG(w io.Writer, d skewt.Diagram, observation []skewt.Observation) error {
	width, height := int(d.Width), int(d.Height)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("writeSoundingPNG: %w: %dx%d", errNoSize, width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	drawGrid(dc, d)

	// isopleths and traces may leave the plot area
	dc.DrawRectangle(d.Margin.Left, d.Margin.Top,
		d.Width-d.Margin.Left-d.Margin.Right, d.Height-d.Margin.Top-d.Margin.Bottom)
	dc.Clip()
	drawIsopleths(dc, d)

	temperature, dewPoint := d.Traces(observation)
	dc.SetLineWidth(traceWidth)
	dc.SetRGB(1, 0, 0)
	drawPolyline(dc, temperature)
	dc.SetRGB(0, 0, 1)
	drawPolyline(dc, dewPoint)
	dc.ResetClip()

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("writeSoundingPNG: %w", err)
	}
	return nil
}

func drawGrid(dc *gg.Context, d skewt.Diagram) {
	dc.SetLineWidth(gridWidth)
	for _, line := range d.Grid() {
		if line.Primary {
			dc.SetRGB(0, 0, 0)
		} else {
			dc.SetRGB(0.75, 0.75, 0.75) //nolint:mnd // light gray
		}
		dc.DrawLine(line.From.X, line.From.Y, line.To.X, line.To.Y)
		dc.Stroke()

		if line.Label != nil {
			dc.SetRGB(0, 0, 0)
			drawLabel(dc, *line.Label)
		}
	}
}

func drawIsopleths(dc *gg.Context, d skewt.Diagram) {
	dc.SetLineWidth(gridWidth)
	dc.SetRGB(0, 0.6, 0) //nolint:mnd // green
	dc.SetDash(4, 4)     //nolint:mnd // px
	for _, iso := range d.Isopleths() {
		drawPolyline(dc, iso.Points)
		drawLabel(dc, iso.Label)
	}
	dc.SetDash()
}

func drawPolyline(dc *gg.Context, points []skewt.Point) {
	if len(points) == 0 {
		return
	}
	dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.Stroke()
}

func drawLabel(dc *gg.Context, label skewt.Label) {
	switch label.Anchor {
	case skewt.AnchorEnd:
		dc.DrawStringAnchored(label.Text, label.At.X, label.At.Y, 1, 0.5) //nolint:mnd // right, middle
	case skewt.AnchorTop:
		dc.DrawStringAnchored(label.Text, label.At.X, label.At.Y, 0.5, 1) //nolint:mnd // center, below
	case skewt.AnchorBottom:
		dc.DrawStringAnchored(label.Text, label.At.X, label.At.Y, 0.5, 0) //nolint:mnd // center, above
	}
}
