package plotexport

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/micutio/flightreplay/internal/graph"
	"github.com/micutio/flightreplay/internal/skewt"
)

const (
	AltitudeFile = "altitude.png"
	SoundingFile = "sounding.png"

	altitudeWidth  = 1200
	altitudeHeight = 480
	soundingWidth  = 800
	soundingHeight = 800
)

// WriteFiles writes the altitude graph into dir, and the sounding diagram when an
// observation is given. It returns the paths of the written files.
func WriteFiles(dir string, frame graph.Frame, start time.Time, observation []skewt.Observation) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd // rwxr-xr-x
		return nil, fmt.Errorf("writeFiles: %w", err)
	}

	altitudePath := filepath.Join(dir, AltitudeFile)
	if err := writeFile(altitudePath, func(w io.Writer) error {
		return WriteAltitudePNG(w, frame, start, altitudeWidth, altitudeHeight)
	}); err != nil {
		return nil, fmt.Errorf("writeFiles: %w", err)
	}
	written := []string{altitudePath}

	if len(observation) == 0 {
		return written, nil
	}

	soundingPath := filepath.Join(dir, SoundingFile)
	diagram := skewt.NewDiagram(soundingWidth, soundingHeight)
	if err := writeFile(soundingPath, func(w io.Writer) error {
		return WriteSoundingPNG(w, diagram, observation)
	}); err != nil {
		return written, fmt.Errorf("writeFiles: %w", err)
	}

	return append(written, soundingPath), nil
}

func writeFile(path string, render func(io.Writer) error) (err error) {
	file, createErr := os.Create(path)
	if createErr != nil {
		return fmt.Errorf("writeFile: %w", createErr)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("writeFile: error while closing file %s: %w", path, closeErr)
		}
	}()

	return render(file)
}
