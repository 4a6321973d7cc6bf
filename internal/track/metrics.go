package track

import (
	"math"
	"time"
)

const (
	earthRadiusMeters float64 = 6371000
	secondsPerHour    float64 = 3600
	metersPerKm       float64 = 1000

	// statusWindow is how far back the heading changes are summed to tell circling from gliding.
	statusWindow = 20 * time.Second
	// circlingTurn is the accumulated heading change within statusWindow from which a flight is
	// considered circling [degrees].
	circlingTurn = 180.0
	// glideWindow is the stretch over which the glide ratio is measured.
	glideWindow = 60 * time.Second
)

// Status is what a flight is doing at a point in time.
type Status int

const (
	StatusUnknown Status = iota
	StatusCircling
	StatusGliding
)

func (s Status) String() string {
	switch s {
	case StatusCircling:
		return "Circling"
	case StatusGliding:
		return "Gliding"
	case StatusUnknown:
	}
	return "-"
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0 //nolint: mnd // readability
}

func toDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi //nolint: mnd // readability
}

// distance returns the great circle distance between two records in meters, using the
// haversine formula.
//
//nolint:mnd // readability of mathmatic formula
func distance(p, q Record) float64 {
	fromLat, toLat := toRadians(p.Latitude), toRadians(q.Latitude)
	deltaLat := toLat - fromLat
	deltaLon := toRadians(q.Longitude - p.Longitude)

	a := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(fromLat)*
			math.Cos(toLat)*
			math.Pow(math.Sin(deltaLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return c * earthRadiusMeters
}

// bearing returns the initial bearing (forward azimuth) from p to q in degrees, normalized
// to [0, 360).
func bearing(p, q Record) float64 {
	fLat := toRadians(p.Latitude)
	tLat := toRadians(q.Latitude)
	dLon := toRadians(q.Longitude - p.Longitude)

	y := math.Sin(dLon) * math.Cos(tLat)
	x := math.Cos(fLat)*math.Sin(tLat) - math.Sin(fLat)*math.Cos(tLat)*math.Cos(dLon)

	// Atan2 ranges from -180 to +180
	return math.Mod(toDegrees(math.Atan2(y, x))+360.0, 360.0) //nolint: mnd // readability
}

// headingChange returns the smallest turn from one bearing to another, in (-180, 180].
func headingChange(from, to float64) float64 {
	d := math.Mod(to-from, 360.0) //nolint: mnd // full circle
	if d > 180 {                  //nolint: mnd // half circle
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

func seconds(from, to Record) float64 {
	return to.Time.Sub(from.Time).Seconds()
}

// groundSpeed is the speed in km/h over the leg ending at record i.
func groundSpeed(f *Flight, i int) float64 {
	if i <= 0 {
		return 0
	}
	from, to := f.Records[i-1], f.Records[i]
	dt := seconds(from, to)
	if dt <= 0 {
		return 0
	}
	return distance(from, to) / metersPerKm / dt * secondsPerHour
}

// verticalSpeed is the climb rate in m/s over the leg ending at record i.
func verticalSpeed(f *Flight, i int) float64 {
	if i <= 0 {
		return 0
	}
	from, to := f.Records[i-1], f.Records[i]
	dt := seconds(from, to)
	if dt <= 0 {
		return 0
	}
	return (to.Altitude - from.Altitude) / dt
}

// PositionAt returns the last record at or before t.
func (f *Flight) PositionAt(t time.Time) (Record, bool) {
	i := f.IndexAt(t)
	if i < 0 {
		return Record{}, false
	}
	return f.Records[i], true
}

// GroundSpeedAt returns the ground speed in km/h at t.
func (f *Flight) GroundSpeedAt(t time.Time) float64 {
	return groundSpeed(f, f.IndexAt(t))
}

// VerticalSpeedAt returns the climb rate in m/s at t.
func (f *Flight) VerticalSpeedAt(t time.Time) float64 {
	return verticalSpeed(f, f.IndexAt(t))
}

// StatusAt sums the heading changes of the legs flown during statusWindow before t. Fewer
// than two legs leave the status unknown.
func (f *Flight) StatusAt(t time.Time) Status {
	from := t.Add(-statusWindow)
	turn := 0.0
	legs := 0
	previous := 0.0

	for j := f.IndexAt(t); j >= 1 && !f.Records[j-1].Time.Before(from); j-- {
		p, q := f.Records[j-1], f.Records[j]
		if p.Latitude == q.Latitude && p.Longitude == q.Longitude {
			continue
		}

		b := bearing(p, q)
		if legs > 0 {
			turn += math.Abs(headingChange(b, previous))
		}
		previous = b
		legs++
	}

	switch {
	case legs < 2: //nolint:mnd // a turn needs two legs
		return StatusUnknown
	case turn >= circlingTurn:
		return StatusCircling
	default:
		return StatusGliding
	}
}

// LDAt returns the glide ratio, distance flown over height lost during glideWindow before t.
// It is only defined while gliding and losing height.
func (f *Flight) LDAt(t time.Time) (float64, bool) {
	if f.StatusAt(t) != StatusGliding {
		return 0, false
	}

	end := f.IndexAt(t)
	from := t.Add(-glideWindow)
	start := end
	flown := 0.0
	for start > 0 && !f.Records[start-1].Time.Before(from) {
		flown += distance(f.Records[start-1], f.Records[start])
		start--
	}

	lost := f.Records[start].Altitude - f.Records[end].Altitude
	if lost <= 0 || flown == 0 {
		return 0, false
	}
	return flown / lost, true
}

// AverageClimbAt returns the mean climb rate in m/s since the flight started circling. It is
// only defined while circling.
func (f *Flight) AverageClimbAt(t time.Time) (float64, bool) {
	if f.StatusAt(t) != StatusCircling {
		return 0, false
	}

	end := f.IndexAt(t)
	start := end
	for start > 0 && f.StatusAt(f.Records[start-1].Time) == StatusCircling {
		start--
	}

	dt := seconds(f.Records[start], f.Records[end])
	if dt <= 0 {
		return 0, false
	}
	return (f.Records[end].Altitude - f.Records[start].Altitude) / dt, true
}
