package track

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var (
	errHeader           = errors.New("unexpected header")
	errFieldCount       = errors.New("unexpected number of fields")
	errUnorderedRecords = errors.New("records are not ordered by time")
	errNoRecords        = errors.New("track has no records")
	errUnknownFormat    = errors.New("unknown track format")
	errNonFinite        = errors.New("value is not finite")
)

// csvHeader is the header row expected in CSV tracks.
var csvHeader = []string{"time", "lat", "lon", "altitude"} //nolint:gochecknoglobals // read-only

type jsonRecord struct {
	Time      time.Time `json:"time"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	Altitude  float64   `json:"altitude"`
}

type jsonFlight struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Color   string       `json:"color"`
	Records []jsonRecord `json:"records"`
}

// LoadJSON decodes a flight from a JSON object with an id, an optional name and color, and
// the records with RFC 3339 times. The flight starts visible.
func LoadJSON(r io.Reader) (*Flight, error) {
	var decoded jsonFlight
	if err := json.NewDecoder(r).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("loadJSON: %w", err)
	}

	records := make([]Record, 0, len(decoded.Records))
	for _, rec := range decoded.Records {
		records = append(records, Record{
			Time:      rec.Time,
			Latitude:  rec.Latitude,
			Longitude: rec.Longitude,
			Altitude:  rec.Altitude,
		})
	}
	if err := checkRecords(records); err != nil {
		return nil, fmt.Errorf("loadJSON: %w", err)
	}

	return &Flight{
		ID:      decoded.ID,
		Name:    decoded.Name,
		Color:   decoded.Color,
		Visible: true,
		Records: records,
	}, nil
}

// LoadCSV reads the records of a flight from CSV with the header "time,lat,lon,altitude".
// Times are RFC 3339 or unix seconds. The returned flight has no id.
func LoadCSV(r io.Reader) (*Flight, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, headerErr := reader.Read()
	if headerErr != nil {
		return nil, fmt.Errorf("loadCSV: failed to read header: %w", headerErr)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("loadCSV: %w: %v", errHeader, header)
	}
	for i, name := range csvHeader {
		if strings.ToLower(strings.TrimSpace(header[i])) != name {
			return nil, fmt.Errorf("loadCSV: %w: %v", errHeader, header)
		}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loadCSV: %w", err)
		}

		record, parseErr := parseRow(row)
		if parseErr != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("loadCSV: line %d: %w", line, parseErr)
		}
		records = append(records, record)
	}

	if err := checkRecords(records); err != nil {
		return nil, fmt.Errorf("loadCSV: %w", err)
	}

	return &Flight{Visible: true, Records: records}, nil
}

func parseRow(row []string) (Record, error) {
	if len(row) != len(csvHeader) {
		return Record{}, fmt.Errorf("%w: %d", errFieldCount, len(row))
	}

	t, err := parseTime(row[0])
	if err != nil {
		return Record{}, err
	}

	var values [3]float64
	for i := range values {
		v, parseErr := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if parseErr != nil {
			return Record{}, fmt.Errorf("%s: %w", csvHeader[i+1], parseErr)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Record{}, fmt.Errorf("%s: %w", csvHeader[i+1], errNonFinite)
		}
		values[i] = v
	}

	return Record{Time: t, Latitude: values[0], Longitude: values[1], Altitude: values[2]}, nil
}

func parseTime(field string) (time.Time, error) {
	field = strings.TrimSpace(field)
	if unix, err := strconv.ParseInt(field, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}

	t, err := time.Parse(time.RFC3339, field)
	if err != nil {
		return time.Time{}, fmt.Errorf("time: %w", err)
	}
	return t, nil
}

func checkRecords(records []Record) error {
	if len(records) == 0 {
		return errNoRecords
	}
	for i := 1; i < len(records); i++ {
		if records[i].Time.Before(records[i-1].Time) {
			return fmt.Errorf("%w: record %d", errUnorderedRecords, i)
		}
	}
	return nil
}

// LoadFile reads a track, picking the format by extension. Flights without an id are named
// after the file.
func LoadFile(path string) (*Flight, error) {
	file, openErr := os.Open(path)
	if openErr != nil {
		return nil, fmt.Errorf("loadFile: %w", openErr)
	}
	defer file.Close()

	var flight *Flight
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		flight, err = LoadJSON(file)
	case ".csv":
		flight, err = LoadCSV(file)
	default:
		return nil, fmt.Errorf("loadFile: %w: %q", errUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("loadFile: %s: %w", path, err)
	}

	if flight.ID == "" {
		flight.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return flight, nil
}
