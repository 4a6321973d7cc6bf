package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micutio/flightreplay/internal/graph"
)

var epoch = time.Date(2024, 7, 14, 11, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // test fixture

func at(seconds int) time.Time {
	return epoch.Add(time.Duration(seconds) * time.Second)
}

// flightOf returns a visible flight with one record every 10 seconds at the given altitudes.
func flightOf(id string, startSeconds int, altitudes ...float64) *Flight {
	f := &Flight{ID: id, Visible: true}
	for i, alt := range altitudes {
		f.Records = append(f.Records, Record{
			Time:      at(startSeconds + 10*i),
			Latitude:  47,
			Longitude: 8 + float64(i)*0.001,
			Altitude:  alt,
		})
	}
	return f
}

func TestStoreAdd(t *testing.T) {
	store := NewStore()
	var events []Event
	store.Subscribe(func(e Event) { events = append(events, e) })

	require.NoError(t, store.Add(flightOf("a", 30, 500, 600)))
	require.NoError(t, store.Add(flightOf("b", 10, 900)))

	flights := store.Flights()
	require.Len(t, flights, 2)
	assert.Equal(t, "a", flights[0].ID)
	assert.Equal(t, "a", flights[0].Name, "name defaults to the id")
	assert.Equal(t, Palette[0], flights[0].Color)
	assert.Equal(t, Palette[1], flights[1].Color)

	assert.Equal(t, at(30), store.CurrentTime(), "cursor starts at the first flight added")
	assert.Equal(t, at(10), store.StartTime())
	assert.Equal(t, at(40), store.EndTime())
	assert.InDelta(t, 900, store.MaxAltitude(), 0)

	require.Len(t, events, 2)
	assert.Equal(t, FlightAdded, events[1].Kind)
	assert.Equal(t, "b", events[1].FlightID)
}

func TestStoreAddErrors(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add(flightOf("a", 0, 1)))

	assert.ErrorIs(t, store.Add(flightOf("a", 0, 2)), errDuplicateFlight)
	assert.ErrorIs(t, store.Add(&Flight{}), errEmptyFlightID)
	assert.Len(t, store.Flights(), 1)
}

func TestStoreKeepsAssignedColor(t *testing.T) {
	store := NewStore()
	f := flightOf("a", 0, 1)
	f.Color = "#000000"

	require.NoError(t, store.Add(f))
	require.NoError(t, store.Add(flightOf("b", 0, 1)))

	got, _ := store.Flight("b")
	assert.Equal(t, Palette[0], got.Color)
}

func TestStorePaletteWraps(t *testing.T) {
	store := NewStore()
	for i := range len(Palette) + 1 {
		require.NoError(t, store.Add(flightOf(string(rune('a'+i)), 0, 1)))
	}

	flights := store.Flights()
	assert.Equal(t, flights[0].Color, flights[len(Palette)].Color)
}

func TestStoreChanges(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add(flightOf("a", 0, 1)))
	require.NoError(t, store.Add(flightOf("b", 0, 1)))

	var kinds []EventKind
	store.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })

	require.NoError(t, store.SetVisible("a", false))
	require.NoError(t, store.SetVisible("a", false))
	require.NoError(t, store.SetName("a", "Glider One"))
	store.SetCurrentTime(at(5))
	store.SetCurrentTime(at(5))
	require.NoError(t, store.Remove("b"))

	want := []EventKind{VisibilityChanged, FlightRenamed, CurrentTimeChanged, FlightRemoved}
	assert.Equal(t, want, kinds, "unchanged values must not publish")

	a, ok := store.Flight("a")
	require.True(t, ok)
	assert.False(t, a.Visible)
	assert.Equal(t, "Glider One", a.Name)

	_, ok = store.Flight("b")
	assert.False(t, ok)

	assert.ErrorIs(t, store.Remove("b"), errUnknownFlight)
	assert.ErrorIs(t, store.SetVisible("b", true), errUnknownFlight)
	assert.ErrorIs(t, store.SetName("b", "x"), errUnknownFlight)
}

func TestStoreFlightsIsACopy(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add(flightOf("a", 0, 1)))

	flights := store.Flights()
	flights[0] = nil

	assert.NotNil(t, store.Flights()[0])
}

func TestEventCommand(t *testing.T) {
	tests := []struct {
		kind EventKind
		want graph.Command
	}{
		{FlightAdded, graph.Rebuild},
		{FlightRemoved, graph.Rebuild},
		{VisibilityChanged, graph.Rebuild},
		{FlightRenamed, graph.Advance},
		{CurrentTimeChanged, graph.Advance},
	}

	for _, test := range tests {
		t.Run(test.kind.String(), func(t *testing.T) {
			assert.Equal(t, test.want, Event{Kind: test.kind}.Command())
		})
	}
}

func TestStoreDrivesEngine(t *testing.T) {
	store := NewStore()
	engine := graph.NewEngine(graph.AltitudeScale, nil)

	var last graph.Frame
	store.Subscribe(func(e Event) {
		last = engine.Render(e.Command(), store.Series(AltitudeSeries), store.CurrentTime())
	})

	require.NoError(t, store.Add(flightOf("a", 0, 100, 300, 200, 400)))
	assert.Equal(t, graph.Rebuild, last.Command)

	for seconds := 1; seconds <= 40; seconds += 3 {
		store.SetCurrentTime(at(seconds))
		assert.Equal(t, graph.Advance, last.Command)

		a, _ := store.Flight("a")
		want := graph.BuildStroke(AltitudeSeries(a), at(seconds), nil, false)
		require.Equal(t, want, last.Paths[0], "cursor %d", seconds)
	}
}
