package graph

import "time"

var epoch = time.Date(2014, time.August, 2, 10, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // test fixture

func at(seconds int) time.Time {
	return epoch.Add(time.Duration(seconds) * time.Second)
}

// testSeries is an in-memory Series. Samples are given as alternating seconds and values.
type testSeries struct {
	id      string
	color   string
	hidden  bool
	start   time.Time
	samples []Sample
}

func newTestSeries(id string, startSeconds int, secondsAndValues ...float64) *testSeries {
	s := &testSeries{
		id:    id,
		color: "#ff0000",
		start: at(startSeconds),
	}
	for i := 0; i+1 < len(secondsAndValues); i += 2 {
		s.samples = append(s.samples, Sample{
			Time:  at(int(secondsAndValues[i])),
			Value: secondsAndValues[i+1],
		})
	}
	return s
}

func (s *testSeries) ID() string           { return s.id }
func (s *testSeries) Color() string        { return s.color }
func (s *testSeries) Visible() bool        { return !s.hidden }
func (s *testSeries) StartTime() time.Time { return s.start }
func (s *testSeries) Len() int             { return len(s.samples) }
func (s *testSeries) At(i int) Sample      { return s.samples[i] }

func pt(seconds int, value float64) Point {
	return Point{Time: at(seconds), Value: value}
}
