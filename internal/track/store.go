package track

import (
	"errors"
	"fmt"
	"time"

	"github.com/micutio/flightreplay/internal/graph"
)

var (
	errDuplicateFlight = errors.New("flight already exists")
	errUnknownFlight   = errors.New("unknown flight")
	errEmptyFlightID   = errors.New("flight has no id")
)

// EventKind tells what changed in the store.
type EventKind int

const (
	FlightAdded EventKind = iota
	FlightRemoved
	FlightRenamed
	VisibilityChanged
	CurrentTimeChanged
)

func (k EventKind) String() string {
	switch k {
	case FlightAdded:
		return "flight_added"
	case FlightRemoved:
		return "flight_removed"
	case FlightRenamed:
		return "flight_renamed"
	case VisibilityChanged:
		return "visibility_changed"
	case CurrentTimeChanged:
		return "currenttime_changed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after the store changed.
type Event struct {
	Kind     EventKind
	FlightID string    // empty for CurrentTimeChanged
	Time     time.Time // the current time after the change
}

// Command returns the kind of graph redraw the event calls for. Structural changes redraw
// everything, a moved cursor or a renamed flight only extends the existing paths.
func (e Event) Command() graph.Command {
	switch e.Kind {
	case FlightAdded, FlightRemoved, VisibilityChanged:
		return graph.Rebuild
	case FlightRenamed, CurrentTimeChanged:
		return graph.Advance
	default:
		return graph.Rebuild
	}
}

// Store is the ordered set of replayed flights and the shared current time. It is not safe
// for concurrent use; callers drive it from a single loop.
type Store struct {
	flights     []*Flight
	current     time.Time
	nextColor   int
	subscribers []func(Event)
}

func NewStore() *Store {
	return &Store{
		flights:     nil,
		current:     time.Time{},
		nextColor:   0,
		subscribers: nil,
	}
}

// Subscribe registers fn to be called after every change, in registration order.
func (s *Store) Subscribe(fn func(Event)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) publish(kind EventKind, id string) {
	event := Event{Kind: kind, FlightID: id, Time: s.current}
	for _, fn := range s.subscribers {
		fn(event)
	}
}

// Flights returns the flights in the order they were added.
func (s *Store) Flights() []*Flight {
	flights := make([]*Flight, len(s.flights))
	copy(flights, s.flights)
	return flights
}

// Flight looks up a flight by id.
func (s *Store) Flight(id string) (*Flight, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.flights[i], true
}

func (s *Store) indexOf(id string) int {
	for i, f := range s.flights {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a flight. A flight without a color gets the next one from the palette, and the
// current time is moved to the start of the replay when it was not set yet.
func (s *Store) Add(f *Flight) error {
	if f.ID == "" {
		return fmt.Errorf("add: %w", errEmptyFlightID)
	}
	if s.indexOf(f.ID) >= 0 {
		return fmt.Errorf("add: %w: %s", errDuplicateFlight, f.ID)
	}

	if f.Color == "" {
		f.Color = Palette[s.nextColor%len(Palette)]
		s.nextColor++
	}
	if f.Name == "" {
		f.Name = f.ID
	}

	s.flights = append(s.flights, f)
	if s.current.IsZero() {
		s.current = s.StartTime()
	}

	s.publish(FlightAdded, f.ID)
	return nil
}

// Remove drops a flight.
func (s *Store) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove: %w: %s", errUnknownFlight, id)
	}

	s.flights = append(s.flights[:i], s.flights[i+1:]...)
	s.publish(FlightRemoved, id)
	return nil
}

// SetVisible shows or hides a flight. Nothing is published when the visibility is unchanged.
func (s *Store) SetVisible(id string, visible bool) error {
	f, ok := s.Flight(id)
	if !ok {
		return fmt.Errorf("setVisible: %w: %s", errUnknownFlight, id)
	}
	if f.Visible == visible {
		return nil
	}

	f.Visible = visible
	s.publish(VisibilityChanged, id)
	return nil
}

func (s *Store) SetName(id, name string) error {
	f, ok := s.Flight(id)
	if !ok {
		return fmt.Errorf("setName: %w: %s", errUnknownFlight, id)
	}
	if f.Name == name {
		return nil
	}

	f.Name = name
	s.publish(FlightRenamed, id)
	return nil
}

func (s *Store) CurrentTime() time.Time {
	return s.current
}

// SetCurrentTime moves the replay cursor. The cursor is not clamped to the replay; the graph
// holds the last value of a finished flight.
func (s *Store) SetCurrentTime(t time.Time) {
	if t.Equal(s.current) {
		return
	}
	s.current = t
	s.publish(CurrentTimeChanged, "")
}

// StartTime returns the earliest first record over all flights.
func (s *Store) StartTime() time.Time {
	var start time.Time
	for _, f := range s.flights {
		t := f.StartTime()
		if t.IsZero() {
			continue
		}
		if start.IsZero() || t.Before(start) {
			start = t
		}
	}
	return start
}

// EndTime returns the latest last record over all flights.
func (s *Store) EndTime() time.Time {
	var end time.Time
	for _, f := range s.flights {
		if t := f.EndTime(); t.After(end) {
			end = t
		}
	}
	return end
}

// MaxAltitude returns the highest altitude over all flights, visible or not.
func (s *Store) MaxAltitude() float64 {
	highest := 0.0
	for _, f := range s.flights {
		highest = max(highest, f.MaxAltitude())
	}
	return highest
}

// Series returns one series per flight built by the given adapter, in flight order.
func (s *Store) Series(adapter func(*Flight) graph.Series) []graph.Series {
	series := make([]graph.Series, 0, len(s.flights))
	for _, f := range s.flights {
		series = append(series, adapter(f))
	}
	return series
}
