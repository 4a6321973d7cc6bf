package tuiapp

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/micutio/flightreplay/internal"
	"github.com/micutio/flightreplay/internal/graph"
	"github.com/micutio/flightreplay/internal/track"
)

const (
	initialWidth    = 80
	initialHeight   = 24
	headerRows      = 2
	footerRows      = 1
	minChartHeight  = 6
	progressBarCell = 20
)

// Model implements the bubbletea.Model interface, which requires three methods:
// - Init() Cmd
// - Update(Msg) (Model, Cmd)
// - View() string
// This forms the base for the TUI app.
type model struct {
	width      int
	height     int
	baseStyle  lipgloss.Style
	viewStyle  lipgloss.Style
	theme      Theme
	state      uiState
	tableStyle table.Styles

	store         *track.Store
	playback      *internal.Playback
	engine        *graph.Engine
	frame         graph.Frame
	frameInterval time.Duration
	lastTick      time.Time

	// the strongest redraw requested by store events since the last render
	pending graph.Command
	dirty   bool

	chart      altitudeChart
	flightTbl  autoFormatTable
	logger     *slog.Logger
	onFinished func() error
}

func newModel(
	store *track.Store,
	options internal.ReplayOptions,
	logger *slog.Logger,
	onFinished func() error,
) *model {
	if logger == nil {
		logger = slog.Default()
	}
	frameInterval := options.FrameInterval
	if frameInterval <= 0 {
		frameInterval = internal.DefaultFrameInterval
	}

	tableStyle := defaultTableStyles(Color)
	m := &model{
		width:         initialWidth,
		height:        initialHeight,
		baseStyle:     lipgloss.NewStyle(),
		viewStyle:     lipgloss.NewStyle(),
		theme:         Color,
		state:         replayPage,
		tableStyle:    tableStyle,
		store:         store,
		playback:      internal.NewPlayback(store, options.Speed),
		engine:        graph.NewEngine(graph.AltitudeScale, logger),
		frameInterval: frameInterval,
		pending:       graph.Rebuild,
		dirty:         true,
		chart:         newAltitudeChart(Color, initialWidth, minChartHeight),
		flightTbl:     newFlightTable(tableStyle),
		logger:        logger,
		onFinished:    onFinished,
	}
	store.Subscribe(m.onStoreEvent)
	m.layout()
	m.render()

	return m
}

// onStoreEvent records the redraw an event calls for. Rebuild wins over Advance until the
// next render.
func (m *model) onStoreEvent(e track.Event) {
	if e.Kind == track.FlightRemoved {
		m.engine.Forget(e.FlightID)
	}
	cmd := e.Command()
	if !m.dirty || cmd == graph.Rebuild {
		m.pending = cmd
	}
	m.dirty = true
}

// render runs the engine once for all events since the previous render and refreshes the
// views from the new frame.
func (m *model) render() {
	if m.dirty {
		m.frame = m.engine.Render(m.pending, m.store.Series(track.AltitudeSeries), m.store.CurrentTime())
		m.dirty = false
		m.pending = graph.Advance
	}

	m.chart.draw(m.frame, m.store.StartTime(), m.store.EndTime())
	m.flightTbl.table.SetRows(flightsToRows(m.store.Flights(), m.store.CurrentTime()))
}

func (m *model) layout() {
	chartHeight := max((m.height-headerRows-footerRows)/2, minChartHeight) //nolint:mnd // half of the screen
	tableHeight := max(m.height-headerRows-footerRows-chartHeight-1, 1)

	m.chart.resize(m.width, chartHeight)
	if err := m.flightTbl.resize(m.width); err != nil {
		m.logger.Error("unable to resize flight table", slog.Any("error", err))
	}
	m.flightTbl.SetHeight(tableHeight)
}

// Init starts the playback ticks.
func (m *model) Init() tea.Cmd {
	m.lastTick = time.Now()
	return playbackTick(m.frameInterval)
}

// Update takes a tea.Msg as input and uses a type switch to handle different types of messages.
// Each case in the switch statement corresponds to a specific message type.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn // required by interface
	var cmd tea.Cmd

	switch thisMsg := msg.(type) {
	// message is sent when the window size changes
	// save to reflect the new dimensions of the terminal window.
	case tea.WindowSizeMsg:
		m.height = thisMsg.Height
		m.width = thisMsg.Width
		m.layout()

	case tea.KeyMsg:
		if m.handleKey(thisMsg.String()) {
			return m, tea.Quit
		}

	case PlaybackTickMsg:
		now := time.Time(thisMsg)
		elapsed := now.Sub(m.lastTick)
		m.lastTick = now
		cmd = playbackTick(m.frameInterval)
		if m.playback.Step(elapsed) {
			cmd = tea.Batch(cmd, replayFinishedCmd(m.onFinished))
		}

	case ReplayFinishedMsg:
		logReplayFinished(m.logger, thisMsg)
		return m, nil
	}

	m.render()
	return m, cmd
}

// handleKey applies a key press and reports whether the app should quit.
func (m *model) handleKey(key string) bool {
	switch key {
	case "q", "ctrl+c":
		return true
	case "?":
		if m.state == helpPage {
			m.state = replayPage
		} else {
			m.state = helpPage
		}
	case " ", "space":
		m.playback.Toggle()
	case "left", "h":
		m.playback.Seek(-internal.SeekStep)
	case "right", "l":
		m.playback.Seek(internal.SeekStep)
	case "+", "=":
		m.playback.Faster()
	case "-":
		m.playback.Slower()
	case "v":
		m.toggleSelected()
	case "a":
		m.toggleAll()
	// Toggles the focus state of the flight table
	case "esc":
		if m.flightTbl.table.Focused() {
			m.tableStyle.Selected = m.baseStyle
			m.flightTbl.table.SetStyles(m.tableStyle)
			m.flightTbl.table.Blur()
		} else {
			m.tableStyle.Selected = m.tableStyle.Selected.Background(m.theme.Highlight)
			m.flightTbl.table.SetStyles(m.tableStyle)
			m.flightTbl.table.Focus()
		}
	case "up", "k":
		if m.flightTbl.table.Focused() {
			m.flightTbl.table.MoveUp(1)
		}
	case "down", "j":
		if m.flightTbl.table.Focused() {
			m.flightTbl.table.MoveDown(1)
		}
	}
	return false
}

func (m *model) toggleSelected() {
	flights := m.store.Flights()
	idx := m.flightTbl.table.Cursor()
	if idx < 0 || idx >= len(flights) {
		return
	}
	f := flights[idx]
	if err := m.store.SetVisible(f.ID, !f.Visible); err != nil {
		m.logger.Error("unable to toggle flight", slog.String("flight", f.ID), slog.Any("error", err))
	}
}

// toggleAll hides every flight if any is shown, otherwise shows all of them.
func (m *model) toggleAll() {
	flights := m.store.Flights()
	show := true
	for _, f := range flights {
		if f.Visible {
			show = false
			break
		}
	}
	for _, f := range flights {
		if err := m.store.SetVisible(f.ID, show); err != nil {
			m.logger.Error("unable to toggle flight", slog.String("flight", f.ID), slog.Any("error", err))
		}
	}
}

func (m *model) View() string {
	column := m.baseStyle.Width(m.width).Render

	body := lipgloss.JoinVertical(lipgloss.Left,
		column(m.chart.View()),
		column(m.viewStyle.Render(m.flightTbl.table.View())),
	)
	if m.state == helpPage {
		body = column(m.viewHelp())
	}

	return m.baseStyle.
		Width(m.width).
		Height(m.height).
		Render(
			lipgloss.JoinVertical(lipgloss.Left,
				column(m.viewHeader()),
				body,
				column(m.viewFooter()),
			),
		)
}

// viewHeader shows the replay clock, speed and progress.
func (m *model) viewHeader() string {
	state := m.baseStyle.Foreground(m.theme.Green).Render("▶")
	if !m.playback.Playing() {
		state = m.baseStyle.Foreground(m.theme.Red).Render("⏸")
	}

	progress := m.playback.Progress()
	done := int(progress * progressBarCell)
	bar := strings.Repeat("#", done) + strings.Repeat("-", progressBarCell-done)

	return m.viewStyle.Render(fmt.Sprintf("%s %s  x%-3.0f [%s] %3.0f%%\n",
		state,
		replayClock(m.store.CurrentTime()),
		m.playback.Speed(),
		bar,
		progress*100)) //nolint:mnd // percent
}

func (m *model) viewFooter() string {
	return m.baseStyle.Foreground(m.theme.Secondary).Render(
		"space play/pause • ←/→ seek • +/- speed • v/a visibility • ? help • q quit")
}

func (m *model) viewHelp() string {
	listHeader := m.baseStyle.Bold(true).Render
	keys := [][2]string{
		{"space", "play or pause, restarts a finished replay"},
		{"← / →", fmt.Sprintf("seek %s back or forward", internal.SeekStep)},
		{"+ / -", "double or halve the replay speed"},
		{"↑ / ↓", "select a flight"},
		{"v", "show or hide the selected flight"},
		{"a", "hide all flights, or show all if none is shown"},
		{"esc", "focus or blur the flight table"},
		{"q", "quit"},
	}

	lines := []string{listHeader("Keys"), ""}
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%-8s %s", k[0], k[1]))
	}
	return m.viewStyle.Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) //nolint:mnd // padding
}
