package internal

import (
	"time"

	"github.com/micutio/flightreplay/internal/track"
)

const (
	// DefaultFrameInterval determines how often the replay cursor advances.
	DefaultFrameInterval = 250 * time.Millisecond
	// DefaultSpeed is the number of replayed seconds per wall clock second.
	DefaultSpeed = 10.0
	// MinSpeed and MaxSpeed bound the replay speed.
	MinSpeed = 1.0
	MaxSpeed = 512.0
	// SeekStep is how far a single seek moves the cursor.
	SeekStep = 30 * time.Second
)

// ReplayOptions are the settings shared by the ticker and the TUI app.
type ReplayOptions struct {
	Speed         float64
	FrameInterval time.Duration
	LogLevel      string
	LogFile       string
}

// Playback moves the current time of a store forward in replay time.
type Playback struct {
	store   *track.Store
	speed   float64
	playing bool
}

func NewPlayback(store *track.Store, speed float64) *Playback {
	return &Playback{
		store:   store,
		speed:   Clamp(speed, MinSpeed, MaxSpeed),
		playing: true,
	}
}

func (p *Playback) Playing() bool {
	return p.playing
}

func (p *Playback) Speed() float64 {
	return p.speed
}

// Toggle pauses or resumes the replay. Resuming a finished replay starts it over.
func (p *Playback) Toggle() {
	if !p.playing && p.Finished() {
		p.store.SetCurrentTime(p.store.StartTime())
	}
	p.playing = !p.playing
}

func (p *Playback) Faster() {
	p.speed = Clamp(p.speed*2, MinSpeed, MaxSpeed) //nolint:mnd // doubling
}

func (p *Playback) Slower() {
	p.speed = Clamp(p.speed/2, MinSpeed, MaxSpeed) //nolint:mnd // halving
}

// Step advances the cursor by the wall clock time elapsed since the last step. It returns true
// on the step that reaches the end of the replay, which also pauses the playback.
func (p *Playback) Step(elapsed time.Duration) bool {
	if !p.playing || elapsed <= 0 {
		return false
	}

	end := p.store.EndTime()
	if end.IsZero() {
		return false
	}
	next := p.store.CurrentTime().Add(time.Duration(float64(elapsed) * p.speed))
	if !next.Before(end) {
		p.store.SetCurrentTime(end)
		p.playing = false
		return true
	}

	p.store.SetCurrentTime(next)
	return false
}

// Seek moves the cursor by delta, within the bounds of the replay.
func (p *Playback) Seek(delta time.Duration) {
	start, end := p.store.StartTime(), p.store.EndTime()
	if start.IsZero() {
		return
	}

	target := p.store.CurrentTime().Add(delta)
	offset := Clamp(target.Sub(start), 0, end.Sub(start))
	p.store.SetCurrentTime(start.Add(offset))
}

// Finished reports whether the cursor reached the end of the replay.
func (p *Playback) Finished() bool {
	end := p.store.EndTime()
	return !end.IsZero() && !p.store.CurrentTime().Before(end)
}

// Progress returns the fraction of the replay already played.
func (p *Playback) Progress() float64 {
	start, end := p.store.StartTime(), p.store.EndTime()
	total := end.Sub(start)
	if total <= 0 {
		return 0
	}
	return Clamp(float64(p.store.CurrentTime().Sub(start))/float64(total), 0, 1)
}
