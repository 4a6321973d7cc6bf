// Package tuiapp provides the interactive replay viewer. The altitude graph follows the replay
// cursor while the flight table lists the telemetry of every loaded flight at that time.
// Layout idea:
// +-------------------------------------------------+
// | ▶ 11:42:10  x16  [#######-----------]  38%      |
// |                                                 |
// | 1,200m ┤          ⣀⡠⠤⠒⠉│                         |
// |        ┤     ⣀⠤⠒⠉      │                         |
// |     0m ┼───────────────┴──────────────────────  |
// |         11:00    11:10     11:20                |
// |  _____________________________________________  |
// | | flight table                                | |
// | | entry 0                                     | |
// | | ...                                         | |
// |  ---------------------------------------------  |
// +-------------------------------------------------+
// .
package tuiapp

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/micutio/flightreplay/internal"
	"github.com/micutio/flightreplay/internal/track"
)

// Run replays the flights of the store until the user quits.
func Run(appName string, store *track.Store, options internal.ReplayOptions) error {
	// the terminal belongs to bubbletea, logs only go to a file if one is given
	logger, logErr := internal.NewLogger(
		internal.LogParams{ConsoleOut: io.Discard, ErrorOut: io.Discard},
		options.LogLevel,
		options.LogFile)
	if logErr != nil {
		return fmt.Errorf("run: %w", logErr)
	}
	defer func() { _ = logger.Close() }()

	notify := internal.NewNotify(appName, io.Discard)
	replayDuration := store.EndTime().Sub(store.StartTime())
	onFinished := func() error {
		return notify.ReplayFinished(store.Flights(), replayDuration)
	}

	m := newModel(store, options, logger.Logger, onFinished)
	p := tea.NewProgram(m, tea.WithAltScreen())

	logger.Info("replay started", slog.Int("flights", len(store.Flights())), slog.Float64("speed", options.Speed))
	if _, err := p.Run(); err != nil {
		logger.Error("replay aborted", slog.Any("error", err))
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

type Theme struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Green     lipgloss.AdaptiveColor
	Red       lipgloss.AdaptiveColor
}

var Color = Theme{ //nolint:gochecknoglobals // read-only theme
	Primary:   lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},
	Secondary: lipgloss.AdaptiveColor{Light: "#969B86", Dark: "#696969"},
	Highlight: lipgloss.AdaptiveColor{Light: "#8b2def", Dark: "#8b2def"},
	Border:    lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"},
	Green:     lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#00FF00"},
	Red:       lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF0000"},
}

func defaultTableStyles(theme Theme) table.Styles {
	tableStyle := table.DefaultStyles()
	tableStyle.Header = tableStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	tableStyle.Selected = lipgloss.NewStyle().Background(theme.Highlight)
	return tableStyle
}

// replayClock formats the replay cursor for the status line.
func replayClock(t time.Time) string {
	if t.IsZero() {
		return "--:--:--"
	}
	return t.Format("15:04:05")
}
