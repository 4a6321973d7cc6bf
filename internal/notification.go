package internal

import (
	"fmt"
	"io"
	"log" //nolint:depguard // Don't feel like using slog
	"time"

	"github.com/gen2brain/beeep"

	"github.com/micutio/flightreplay/internal/track"
)

const (
	// appIconPath is the file path to the icon png for this application.
	appIconPath = "./assets/icon.png"
)

// notifier sends a desktop notification.
type notifier func(title, message string) error

type Notify struct {
	Stdout log.Logger
	send   notifier
}

func NewNotify(appName string, consoleOut io.Writer) *Notify {
	beeep.AppName = appName //nolint:reassign // This is the only way to set app name in beeep.
	return &Notify{
		Stdout: *log.New(consoleOut, "", 0),
		send: func(title, message string) error {
			return beeep.Notify(title, message, appIconPath)
		},
	}
}

// PrintSummary prints the flights ranked by their maximum altitude.
func (notify *Notify) PrintSummary(flights []*track.Flight) {
	notify.Stdout.Println("=== Summary ===")
	notify.Stdout.Println("Highest flights:")
	for _, tuple := range RankByMaxAltitude(flights) {
		notify.Stdout.Printf("%6.0f m - %s\n", tuple.Value, tuple.Label)
	}
	notify.Stdout.Println("=== End Summary ===")
}

// ReplayFinished tells the desktop that the replay reached its end.
func (notify *Notify) ReplayFinished(flights []*track.Flight, duration time.Duration) error {
	msgBody := fmt.Sprintf("%d flights replayed over %s", len(flights), duration.Round(time.Second))
	if ranked := RankByMaxAltitude(flights); len(ranked) > 0 {
		msgBody += fmt.Sprintf("\nhighest: %s at %.0f m", ranked[0].Label, ranked[0].Value)
	}

	if err := notify.send("Replay Finished", msgBody); err != nil {
		return fmt.Errorf("replayFinished: %w", err)
	}
	return nil
}

// FlightToString generates a one-liner consisting of the most relevant telemetry of the given
// flight at time t.
func FlightToString(f *track.Flight, t time.Time) string {
	pos, ok := f.PositionAt(t)
	if !ok {
		return fmt.Sprintf("%-12s not started", f.Name)
	}

	ld := "-"
	if v, hasLD := f.LDAt(t); hasLD {
		ld = fmt.Sprintf("%.1f", v)
	}
	climb := "-"
	if v, hasClimb := f.AverageClimbAt(t); hasClimb {
		climb = fmt.Sprintf("%.1fm/s", v)
	}

	return fmt.Sprintf("%-12s POS %8.4f,%9.4f ALT %5.0f m SPD %3.0f km/h VS %5.1f m/s %-8s LD %s AVG %s",
		f.Name,
		pos.Latitude,
		pos.Longitude,
		pos.Altitude,
		f.GroundSpeedAt(t),
		f.VerticalSpeedAt(t),
		f.StatusAt(t),
		ld,
		climb)
}
