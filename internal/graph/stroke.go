package graph

import "time"

// BuildStroke walks the samples of a series up to the current time and returns its polyline.
//
// A zero current time draws the series through the end of its data. When ctx is given and
// partial is true, the walk resumes from the point stored in ctx and the stroke only holds
// the new segment, starting with that stored point. When partial is false ctx is reset
// first, so the stroke is rebuilt from the first sample while ctx is still updated for the
// following partial calls.
//
// BuildStroke does not detect a cursor that moved backwards: resuming from a context that
// is ahead of the cursor silently skips the samples in between. Callers have to pass
// partial = false whenever the cursor moves non-monotonically.
func BuildStroke(s Series, current time.Time, ctx *Context, partial bool) Stroke {
	if ctx != nil && !partial {
		ctx.Reset()
	}

	stroke := Stroke{
		SeriesID: s.ID(),
		Color:    s.Color(),
		Points:   make([]Point, 0, 8), //nolint:mnd // typical frame segment length
	}

	count := s.Len()
	hasCursor := !current.IsZero()

	var (
		start     int
		lastIndex int
		emitted   bool
		seed      Point
	)

	if ctx != nil && ctx.IsSet() {
		seed.Value, lastIndex, seed.Time = ctx.Get()
		emitted = lastIndex != NoSample
		start = ctx.resumeIndex()
		stroke.Resumed = true
	} else {
		seed.Time = s.StartTime()
		if count > 0 {
			first := s.At(0)
			seed.Value = first.Value
			// A first sample taken at the start time is the seed itself.
			if first.Time.Equal(seed.Time) {
				start = 1
				emitted = true
			}
		}
	}

	stroke.Points = append(stroke.Points, seed)
	last := seed

	for n := start; n < count; n++ {
		sample := s.At(n)
		if hasCursor && sample.Time.After(current) {
			break
		}

		last = Point(sample)
		stroke.Points = append(stroke.Points, last)
		lastIndex = n
		emitted = true
	}

	if hasCursor && !s.StartTime().After(current) {
		last = Point{Time: current, Value: last.Value}
		stroke.Points = append(stroke.Points, last)
		stroke.NowMarker = true
	}

	if ctx != nil {
		if !emitted {
			lastIndex = NoSample
		}
		ctx.Set(last.Value, lastIndex, last.Time)
	}

	return stroke
}
