package tuiapp

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type PlaybackTickMsg time.Time

func playbackTick(interval time.Duration) tea.Cmd {
	return tea.Every(
		interval,
		func(t time.Time) tea.Msg {
			return PlaybackTickMsg(t)
		},
	)
}

// ReplayFinishedMsg reports the outcome of the end-of-replay notification.
type ReplayFinishedMsg struct {
	Err error
}

func replayFinishedCmd(onFinished func() error) tea.Cmd {
	if onFinished == nil {
		return nil
	}
	return func() tea.Msg {
		return ReplayFinishedMsg{Err: onFinished()}
	}
}

func logReplayFinished(logger *slog.Logger, msg ReplayFinishedMsg) {
	if msg.Err != nil {
		logger.Error("unable to send notification", slog.Any("error", msg.Err))
		return
	}
	logger.Info("replay finished")
}
