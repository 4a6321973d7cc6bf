package track

import (
	"time"

	"github.com/micutio/flightreplay/internal/graph"
)

// channel exposes one value per record of a flight as a graph series.
type channel struct {
	flight *Flight
	value  func(f *Flight, i int) float64
}

func (c channel) ID() string           { return c.flight.ID }
func (c channel) Color() string        { return c.flight.Color }
func (c channel) Visible() bool        { return c.flight.Visible }
func (c channel) StartTime() time.Time { return c.flight.StartTime() }
func (c channel) Len() int             { return len(c.flight.Records) }

func (c channel) At(i int) graph.Sample {
	return graph.Sample{Time: c.flight.Records[i].Time, Value: c.value(c.flight, i)}
}

// AltitudeSeries exposes the altitude of a flight in meters.
func AltitudeSeries(f *Flight) graph.Series {
	return channel{flight: f, value: func(f *Flight, i int) float64 {
		return f.Records[i].Altitude
	}}
}

// GroundSpeedSeries exposes the ground speed in km/h between consecutive records. The first
// record has speed 0.
func GroundSpeedSeries(f *Flight) graph.Series {
	return channel{flight: f, value: groundSpeed}
}

// VerticalSpeedSeries exposes the climb rate in m/s between consecutive records. The first
// record has rate 0.
func VerticalSpeedSeries(f *Flight) graph.Series {
	return channel{flight: f, value: verticalSpeed}
}
