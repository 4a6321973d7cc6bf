// Package track holds the flights being replayed: their GPS records, display metadata and the
// shared current time cursor. It notifies subscribers of every change and exposes each
// flight's channels as graph series.
package track

import (
	"sort"
	"time"
)

// Record is one GPS fix.
type Record struct {
	Time      time.Time
	Latitude  float64
	Longitude float64
	Altitude  float64 // meters
}

// Flight is one recorded track with its display metadata. Records are ordered by time.
type Flight struct {
	ID      string
	Name    string
	Color   string
	Visible bool
	Records []Record
}

// StartTime returns the time of the first record, or the zero time for an empty flight.
func (f *Flight) StartTime() time.Time {
	if len(f.Records) == 0 {
		return time.Time{}
	}
	return f.Records[0].Time
}

// EndTime returns the time of the last record, or the zero time for an empty flight.
func (f *Flight) EndTime() time.Time {
	if len(f.Records) == 0 {
		return time.Time{}
	}
	return f.Records[len(f.Records)-1].Time
}

// MaxAltitude returns the highest altitude of the flight, 0 when it has no records.
func (f *Flight) MaxAltitude() float64 {
	highest := 0.0
	for _, r := range f.Records {
		if r.Altitude > highest {
			highest = r.Altitude
		}
	}
	return highest
}

// IndexAt returns the index of the last record at or before t, or -1 when the flight has not
// started yet.
func (f *Flight) IndexAt(t time.Time) int {
	// first record strictly after t
	after := sort.Search(len(f.Records), func(i int) bool {
		return f.Records[i].Time.After(t)
	})
	return after - 1
}

// Palette is the sequence of colors handed out to flights as they are added.
var Palette = []string{ //nolint:gochecknoglobals // read-only preset
	"#e41a1c",
	"#377eb8",
	"#4daf4a",
	"#984ea3",
	"#ff7f00",
	"#a65628",
	"#f781bf",
	"#999999",
}
