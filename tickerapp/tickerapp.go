// Package tickerapp launches the ticker application which writes the replay to stdout, one
// block of telemetry lines per frame, so it can be piped into other programs and processed
// further. This is in contrast to the TUI app, which shows the altitude graph.
package tickerapp

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/micutio/flightreplay/internal"
	"github.com/micutio/flightreplay/internal/graph"
	"github.com/micutio/flightreplay/internal/track"
)

// Run replays the flights of the store until the replay ends or a shutdown signal arrives.
func Run(appName string, store *track.Store, options internal.ReplayOptions) error {
	logParams := internal.LogParams{
		ConsoleOut: os.Stdout,
		ErrorOut:   os.Stderr,
	}
	logger, logErr := internal.NewLogger(logParams, options.LogLevel, options.LogFile)
	if logErr != nil {
		return fmt.Errorf("run: %w", logErr)
	}
	defer func() { _ = logger.Close() }()

	notify := internal.NewNotify(appName, logParams.ConsoleOut)

	frameInterval := options.FrameInterval
	if frameInterval <= 0 {
		frameInterval = internal.DefaultFrameInterval
	}

	r := newReplay(store, options.Speed, logParams.ConsoleOut, logger.Logger)
	fmt.Fprintf(logParams.ConsoleOut, "%s replaying %d flights from %s at x%.0f\n",
		appName, len(store.Flights()), replayClock(store.StartTime()), r.playback.Speed())
	r.printFrame()

	// Create a frame ticker that advances the replay in a given interval
	frameTicker := time.NewTicker(frameInterval)
	defer frameTicker.Stop()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	lastTick := time.Now()
	for {
		select {
		case now := <-frameTicker.C:
			elapsed := now.Sub(lastTick)
			lastTick = now
			if !r.step(elapsed) {
				continue
			}

			notify.PrintSummary(store.Flights())
			if err := notify.ReplayFinished(store.Flights(), store.EndTime().Sub(store.StartTime())); err != nil {
				logger.Error("unable to send notification", slog.Any("error", err))
			}
			return nil
		case <-sigc:
			logger.Info("Shutdown signal received, stopping...")
			return nil
		}
	}
}

// replay advances the cursor of a store and prints every rendered frame.
type replay struct {
	store    *track.Store
	playback *internal.Playback
	engine   *graph.Engine
	frame    graph.Frame
	out      io.Writer
	logger   *slog.Logger

	pending graph.Command
	dirty   bool
}

func newReplay(store *track.Store, speed float64, out io.Writer, logger *slog.Logger) *replay {
	r := &replay{
		store:    store,
		playback: internal.NewPlayback(store, speed),
		engine:   graph.NewEngine(graph.AltitudeScale, logger),
		out:      out,
		logger:   logger,
		pending:  graph.Rebuild,
		dirty:    true,
	}
	store.Subscribe(r.onStoreEvent)
	r.render()
	return r
}

func (r *replay) onStoreEvent(e track.Event) {
	if e.Kind == track.FlightRemoved {
		r.engine.Forget(e.FlightID)
	}
	cmd := e.Command()
	if !r.dirty || cmd == graph.Rebuild {
		r.pending = cmd
	}
	r.dirty = true
}

// render reports whether a new frame was rendered.
func (r *replay) render() bool {
	if !r.dirty {
		return false
	}
	r.frame = r.engine.Render(r.pending, r.store.Series(track.AltitudeSeries), r.store.CurrentTime())
	r.dirty = false
	r.pending = graph.Advance
	return true
}

// step advances the replay by the wall clock time elapsed and prints the new frame. It
// returns true once the end of the replay is reached.
func (r *replay) step(elapsed time.Duration) bool {
	finished := r.playback.Step(elapsed)
	if r.render() {
		r.printFrame()
	}
	return finished
}

func (r *replay) printFrame() {
	fmt.Fprintf(r.out, "--- %s %3.0f%% %s ---\n",
		replayClock(r.frame.Cursor), r.playback.Progress()*100, r.frame.Command) //nolint:mnd // percent

	points := make(map[string]int, len(r.frame.Paths))
	for _, path := range r.frame.Paths {
		points[path.SeriesID] = len(path.Points)
	}
	for _, f := range r.store.Flights() {
		if !f.Visible {
			continue
		}
		fmt.Fprintf(r.out, "%s PTS %d\n", internal.FlightToString(f, r.frame.Cursor), points[f.ID])
	}

	r.logger.Debug("frame printed",
		slog.String("command", r.frame.Command.String()),
		slog.Int("segments", len(r.frame.Segments)))
}

func replayClock(t time.Time) string {
	if t.IsZero() {
		return "--:--:--"
	}
	return t.Format("15:04:05")
}
