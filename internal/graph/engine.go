package graph

import (
	"log/slog"
	"slices"
	"time"
)

// Command tells the engine how much of the graph has to be redrawn.
type Command int

const (
	// Rebuild recomputes the axis and every stroke from the first sample. Used when flights
	// are added, removed, shown or hidden.
	Rebuild Command = iota
	// Advance only appends what happened since the previous render. Used when the cursor
	// moved forward.
	Advance
)

func (c Command) String() string {
	switch c {
	case Rebuild:
		return "rebuild"
	case Advance:
		return "advance"
	}
	return "unknown"
}

// Frame is the result of one render pass.
type Frame struct {
	Command  Command // the command that was actually executed
	Cursor   time.Time
	Range    Range
	Segments []Stroke // strokes built in this pass, partial when Command is Advance
	Paths    []Stroke // complete polylines of all visible series
}

// Engine renders one graph for a changing set of series. It owns one Context per series,
// keyed by series id, and keeps the complete polyline of each visible series so that an
// Advance only has to walk the samples added since the previous pass.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	scale    Scale
	logger   *slog.Logger
	contexts map[string]*Context
	paths    map[string]*Stroke
	rng      Range
	cursor   time.Time
	rendered bool
}

// NewEngine returns an engine for a graph with the given value axis.
func NewEngine(scale Scale, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		scale:    scale,
		logger:   logger,
		contexts: make(map[string]*Context),
		paths:    make(map[string]*Stroke),
	}
}

// Render redraws the graph for the given series at the cursor. A zero cursor draws every
// series through the end of its data.
// An Advance is turned into a Rebuild when there is nothing to advance from or when the
// cursor moved backwards.
func (e *Engine) Render(cmd Command, series []Series, cursor time.Time) Frame {
	if cmd == Advance {
		switch {
		case !e.rendered:
			e.logger.Debug("graph: no previous frame, rebuilding")
			cmd = Rebuild
		case cursor.IsZero() || e.cursor.IsZero() || cursor.Before(e.cursor):
			e.logger.Debug("graph: cursor not moving forward, rebuilding",
				"from", e.cursor, "to", cursor)
			cmd = Rebuild
		}
	}

	if cmd == Rebuild {
		e.rng = ComputeRange(series, e.scale)
		clear(e.paths)
	}

	frame := Frame{
		Command:  cmd,
		Cursor:   cursor,
		Range:    e.rng,
		Segments: make([]Stroke, 0, len(series)),
		Paths:    make([]Stroke, 0, len(series)),
	}

	for _, s := range series {
		if !s.Visible() {
			// Context and path are kept so the series resumes once it is shown again.
			continue
		}

		ctx := e.context(s.ID())
		path, hasPath := e.paths[s.ID()]
		partial := cmd == Advance && hasPath

		segment := BuildStroke(s, cursor, ctx, partial)
		frame.Segments = append(frame.Segments, segment)

		if partial && segment.Resumed {
			path.extend(segment)
		} else {
			path = &Stroke{
				SeriesID:  segment.SeriesID,
				Color:     segment.Color,
				Points:    slices.Clone(segment.Points),
				NowMarker: segment.NowMarker,
			}
			e.paths[s.ID()] = path
		}

		frame.Paths = append(frame.Paths, path.clone())
	}

	e.cursor = cursor
	e.rendered = true

	e.logger.Debug("graph: rendered",
		"command", cmd.String(),
		"series", len(frame.Paths),
		"cursor", cursor)

	return frame
}

// Forget drops all state kept for a series. Called when a series is removed for good.
func (e *Engine) Forget(id string) {
	delete(e.contexts, id)
	delete(e.paths, id)
}

// Context returns the graph context kept for a series, if any.
func (e *Engine) Context(id string) (*Context, bool) {
	ctx, ok := e.contexts[id]
	return ctx, ok
}

func (e *Engine) context(id string) *Context {
	ctx, ok := e.contexts[id]
	if !ok {
		ctx = &Context{} //nolint:exhaustruct // zero value is an unset context
		e.contexts[id] = ctx
	}
	return ctx
}

// extend appends a resumed segment. The segment's seed repeats the last point of the path
// and a trailing now-marker of the path is superseded by the new segment.
func (s *Stroke) extend(segment Stroke) {
	if s.NowMarker && len(s.Points) > 0 {
		s.Points = s.Points[:len(s.Points)-1]
	}
	s.Points = append(s.Points, segment.Points[1:]...)
	s.NowMarker = segment.NowMarker
}

func (s *Stroke) clone() Stroke {
	c := *s
	c.Points = slices.Clone(s.Points)
	return c
}
