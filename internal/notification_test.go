package internal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micutio/flightreplay/internal/track"
)

func testFlights() []*track.Flight {
	start := time.Date(2024, 7, 14, 11, 0, 0, 0, time.UTC)
	glider := &track.Flight{ID: "a", Name: "glider", Records: []track.Record{
		{Time: start, Latitude: 47, Longitude: 8, Altitude: 900},
		{Time: start.Add(10 * time.Second), Latitude: 47.001, Longitude: 8, Altitude: 1400},
	}}
	tug := &track.Flight{ID: "b", Name: "tug", Records: []track.Record{
		{Time: start, Latitude: 47, Longitude: 8, Altitude: 600},
	}}
	return []*track.Flight{tug, glider}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	notify := NewNotify("flightreplay", &buf)

	notify.PrintSummary(testFlights())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "  1400 m - glider", lines[2])
	assert.Equal(t, "   600 m - tug", lines[3])
}

func TestReplayFinished(t *testing.T) {
	var buf bytes.Buffer
	notify := NewNotify("flightreplay", &buf)

	var title, body string
	notify.send = func(gotTitle, gotBody string) error {
		title, body = gotTitle, gotBody
		return nil
	}

	require.NoError(t, notify.ReplayFinished(testFlights(), 90*time.Second))
	assert.Equal(t, "Replay Finished", title)
	assert.Contains(t, body, "2 flights replayed over 1m30s")
	assert.Contains(t, body, "highest: glider at 1400 m")

	failure := errors.New("no notification daemon")
	notify.send = func(string, string) error { return failure }
	assert.ErrorIs(t, notify.ReplayFinished(testFlights(), time.Minute), failure)
}

func TestFlightToString(t *testing.T) {
	flights := testFlights()
	glider := flights[1]
	start := glider.StartTime()

	assert.Contains(t, FlightToString(glider, start.Add(-time.Second)), "not started")

	line := FlightToString(glider, start.Add(15*time.Second))
	assert.True(t, strings.HasPrefix(line, "glider"))
	assert.Contains(t, line, "ALT  1400 m")
	assert.Contains(t, line, "VS  50.0 m/s")
	assert.Contains(t, line, "LD -")
}
