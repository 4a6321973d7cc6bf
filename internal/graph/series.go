// Package graph builds the time/value polylines shown in the replay graphs.
// Strokes are rebuilt in full on structural changes and extended incrementally while the
// playback cursor moves forward.
package graph

import "time"

// Sample is a single time-indexed value of a series, e.g. the altitude of a flight.
type Sample struct {
	Time  time.Time
	Value float64
}

// Series is a read-only view over one flight's ordered samples.
// Samples are non-decreasing in time and their indices are stable for the lifetime of the
// series.
type Series interface {
	ID() string
	Color() string
	Visible() bool
	StartTime() time.Time
	Len() int
	At(i int) Sample
}

// Point is a vertex of a stroke.
type Point struct {
	Time  time.Time
	Value float64
}

// Stroke is the polyline of one series for one render pass.
type Stroke struct {
	SeriesID string
	Color    string
	Points   []Point
	// Resumed is set when the first point is the seed taken from a graph context, i.e. the
	// stroke only holds the segment drawn since the previous pass.
	Resumed bool
	// NowMarker is set when the last point is the synthetic point at the cursor.
	NowMarker bool
}

// Last returns the final point of the stroke.
func (s Stroke) Last() (Point, bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}
