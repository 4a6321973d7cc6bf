package internal

import (
	"sort"

	"github.com/micutio/flightreplay/internal/track"
)

type PropertyValueTuple struct {
	Property string
	Label    string // shown instead of Property, empty if there is none
	Value    float64
}

// ByValue orders from the highest to the lowest value, ties by property name.
type ByValue []PropertyValueTuple

func (a ByValue) Len() int { return len(a) }
func (a ByValue) Less(i, j int) bool {
	if a[i].Value != a[j].Value {
		return a[i].Value > a[j].Value
	}
	return a[i].Property < a[j].Property
}
func (a ByValue) Swap(i, j int) { a[i], a[j] = a[j], a[i] }

func GetRankedValuesForProperty(propertyValueMap map[string]float64) []PropertyValueTuple {
	propertyValues := make([]PropertyValueTuple, len(propertyValueMap))
	i := 0
	for key, value := range propertyValueMap {
		propertyValues[i] = PropertyValueTuple{Property: key, Value: value}
		i++
	}

	sort.Sort(ByValue(propertyValues))
	return propertyValues
}

// RankByMaxAltitude ranks flights from the highest to the lowest maximum altitude. Flights are
// told apart by ID and labelled by name, or by ID if they have no name.
func RankByMaxAltitude(flights []*track.Flight) []PropertyValueTuple {
	altitudes := make(map[string]float64, len(flights))
	labels := make(map[string]string, len(flights))
	for _, f := range flights {
		altitudes[f.ID] = max(altitudes[f.ID], f.MaxAltitude())
		labels[f.ID] = f.Name
		if f.Name == "" {
			labels[f.ID] = f.ID
		}
	}

	ranked := GetRankedValuesForProperty(altitudes)
	for i := range ranked {
		ranked[i].Label = labels[ranked[i].Property]
	}
	return ranked
}
