package track

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonTrack = `{
	"id": "hb-1234",
	"name": "Morning flight",
	"records": [
		{"time": "2024-07-14T11:00:00Z", "lat": 47.1, "lon": 8.2, "altitude": 650},
		{"time": "2024-07-14T11:00:04Z", "lat": 47.1005, "lon": 8.2, "altitude": 700}
	]
}`

const csvTrack = `time,lat,lon,altitude
2024-07-14T11:00:00Z,47.1,8.2,650
1720954804, 47.1005, 8.2, 700
`

func TestLoadJSON(t *testing.T) {
	f, err := LoadJSON(strings.NewReader(jsonTrack))
	require.NoError(t, err)

	assert.Equal(t, "hb-1234", f.ID)
	assert.Equal(t, "Morning flight", f.Name)
	assert.True(t, f.Visible)
	require.Len(t, f.Records, 2)
	assert.True(t, f.Records[1].Time.Equal(epoch.Add(4*time.Second)))
	assert.InDelta(t, 700, f.Records[1].Altitude, 0)
}

func TestLoadCSV(t *testing.T) {
	f, err := LoadCSV(strings.NewReader(csvTrack))
	require.NoError(t, err)

	assert.Empty(t, f.ID)
	require.Len(t, f.Records, 2)
	assert.True(t, f.Records[0].Time.Equal(epoch))
	assert.True(t, f.Records[1].Time.Equal(epoch.Add(4*time.Second)), "unix seconds")
	assert.InDelta(t, 47.1005, f.Records[1].Latitude, 1e-12)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		load    func(string) (*Flight, error)
		input   string
		wantErr error
	}{
		{
			name:    "csv with wrong header",
			load:    loadCSVString,
			input:   "t,latitude,longitude,alt\n",
			wantErr: errHeader,
		},
		{
			name:    "csv without records",
			load:    loadCSVString,
			input:   "time,lat,lon,altitude\n",
			wantErr: errNoRecords,
		},
		{
			name:    "csv out of order",
			load:    loadCSVString,
			input:   "time,lat,lon,altitude\n20,47,8,100\n10,47,8,100\n",
			wantErr: errUnorderedRecords,
		},
		{
			name:    "json without records",
			load:    loadJSONString,
			input:   `{"id": "a", "records": []}`,
			wantErr: errNoRecords,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.load(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadCSVBadValue(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("time,lat,lon,altitude\n0,47,east,100\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "lon")
}

func TestLoadCSVNonFinite(t *testing.T) {
	for _, value := range []string{"NaN", "Inf", "-Inf", "+infinity"} {
		t.Run(value, func(t *testing.T) {
			input := "time,lat,lon,altitude\n0,47,8,100\n10,47.001,8," + value + "\n"
			_, err := LoadCSV(strings.NewReader(input))
			require.ErrorIs(t, err, errNonFinite)
			assert.Contains(t, err.Error(), "line 3")
			assert.Contains(t, err.Error(), "altitude")
		})
	}

	_, err := LoadCSV(strings.NewReader("time,lat,lon,altitude\n0,NaN,8,100\n"))
	assert.ErrorIs(t, err, errNonFinite, "coordinates are checked as well")
}

func loadCSVString(s string) (*Flight, error)  { return LoadCSV(strings.NewReader(s)) }
func loadJSONString(s string) (*Flight, error) { return LoadJSON(strings.NewReader(s)) }

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "evening.csv")
	jsonPath := filepath.Join(dir, "morning.json")
	require.NoError(t, os.WriteFile(csvPath, []byte(csvTrack), 0o600))
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonTrack), 0o600))

	f, err := LoadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "evening", f.ID, "id falls back to the file name")

	f, err = LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "hb-1234", f.ID)

	_, err = LoadFile(filepath.Join(dir, "track.igc"))
	assert.Error(t, err)

	txtPath := filepath.Join(dir, "track.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte(csvTrack), 0o600))
	_, err = LoadFile(txtPath)
	assert.ErrorIs(t, err, errUnknownFormat)
}
