// Package main provides the flight replay application
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/micutio/flightreplay/internal"
	"github.com/micutio/flightreplay/internal/graph"
	"github.com/micutio/flightreplay/internal/plotexport"
	"github.com/micutio/flightreplay/internal/skewt"
	"github.com/micutio/flightreplay/internal/track"
	"github.com/micutio/flightreplay/tickerapp"
	"github.com/micutio/flightreplay/tuiapp"
)

const (
	// thisAppName is the name of this application as shown on notifications.
	thisAppName = "flightreplay"
)

var errNoTracks = errors.New("no track files given")

type arguments struct {
	isUseTicker   bool
	speed         float64
	frameInterval time.Duration
	logLevel      string
	logFile       string
	exportDir     string
	soundingFile  string
}

func main() {
	var args arguments
	setupCommandLineFlags(&args)

	// Parse all arguments provided to the program on launch.
	pflag.Parse()

	if err := run(args, pflag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", thisAppName, err)
		os.Exit(1)
	}
}

func run(args arguments, trackFiles []string) error {
	if len(trackFiles) == 0 {
		return errNoTracks
	}

	store := track.NewStore()
	for _, path := range trackFiles {
		f, err := track.LoadFile(path)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		if err = store.Add(f); err != nil {
			return fmt.Errorf("run: %s: %w", path, err)
		}
	}

	if args.exportDir != "" {
		return export(store, args.exportDir, args.soundingFile)
	}

	options := internal.ReplayOptions{
		Speed:         args.speed,
		FrameInterval: args.frameInterval,
		LogLevel:      args.logLevel,
		LogFile:       args.logFile,
	}
	if args.isUseTicker {
		return tickerapp.Run(thisAppName, store, options)
	}
	return tuiapp.Run(thisAppName, store, options)
}

// export writes the whole replay as a static altitude graph, plus the sounding diagram if an
// observation file is given.
func export(store *track.Store, dir, soundingFile string) error {
	var observation []skewt.Observation
	if soundingFile != "" {
		file, err := os.Open(soundingFile)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		observation, err = skewt.LoadObservations(file)
		_ = file.Close()
		if err != nil {
			return fmt.Errorf("export: %s: %w", soundingFile, err)
		}
	}

	engine := graph.NewEngine(graph.AltitudeScale, nil)
	frame := engine.Render(graph.Rebuild, store.Series(track.AltitudeSeries), time.Time{})

	written, err := plotexport.WriteFiles(dir, frame, store.StartTime(), observation)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for _, path := range written {
		fmt.Println(path)
	}
	return nil
}

func setupCommandLineFlags(args *arguments) {
	// Whether to launch the Ticker or TUI app.
	pflag.BoolVarP(
		&args.isUseTicker,
		"ticker",
		"t",
		false,
		"print the replay on the command line without TUI")
	pflag.Lookup("ticker").NoOptDefVal = "true"

	pflag.Float64VarP(
		&args.speed,
		"speed",
		"s",
		internal.DefaultSpeed,
		"replayed seconds per second")

	pflag.DurationVarP(
		&args.frameInterval,
		"frame",
		"f",
		internal.DefaultFrameInterval,
		"time between two frames")

	pflag.StringVar(
		&args.logLevel,
		"log-level",
		"info",
		"one of debug, info, warn, error")

	pflag.StringVar(
		&args.logFile,
		"log-file",
		"",
		"write JSON logs to this rotating file")

	// Static export instead of a replay.
	pflag.StringVarP(
		&args.exportDir,
		"export",
		"e",
		"",
		"write the altitude graph as PNG into this directory and exit")

	pflag.StringVar(
		&args.soundingFile,
		"sounding",
		"",
		"sounding observation (JSON) to draw as Skew-T diagram when exporting")
}
