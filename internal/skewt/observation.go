package skewt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var errEmptyObservation = errors.New("observation has no levels")

// Observation is one level of a sounding. Temperature and DewPoint are nil when the
// channel was not reported at that level.
type Observation struct {
	Pressure    float64  `json:"pressure"`    // hPa
	Temperature *float64 `json:"temperature"` // °C
	DewPoint    *float64 `json:"dewPoint"`    // °C
}

// Trace is a polyline of the observation overlay.
type Trace []Point

// Traces walks the observation once and returns the temperature and dew point lines.
// Levels missing a channel are skipped for that channel; the line continues straight to the
// next level that has a value.
func (d Diagram) Traces(observation []Observation) (Trace, Trace) {
	temperature := make(Trace, 0, len(observation))
	dewPoint := make(Trace, 0, len(observation))

	for _, level := range observation {
		if level.Temperature != nil {
			temperature = append(temperature, d.At(*level.Temperature, level.Pressure))
		}
		if level.DewPoint != nil {
			dewPoint = append(dewPoint, d.At(*level.DewPoint, level.Pressure))
		}
	}

	return temperature, dewPoint
}

// LoadObservations decodes a sounding, a JSON array of levels ordered from the surface up.
func LoadObservations(r io.Reader) ([]Observation, error) {
	var observation []Observation
	if err := json.NewDecoder(r).Decode(&observation); err != nil {
		return nil, fmt.Errorf("loadObservations: %w", err)
	}

	if len(observation) == 0 {
		return nil, fmt.Errorf("loadObservations: %w", errEmptyObservation)
	}

	return observation, nil
}
