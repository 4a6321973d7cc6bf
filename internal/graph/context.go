package graph

import "time"

// NoSample is the resume index of a context whose render has not drawn any sample yet.
const NoSample = -1

// Context remembers where the last render of a series left off, so that the next partial
// render only walks the samples added since.
// One Context exists per (series, graph) pair; it is owned by the render engine.
type Context struct {
	set   bool
	value float64
	index int // last drawn sample, NoSample if none
	time  time.Time
}

// IsSet reports whether a prior render produced a valid resume point.
func (c *Context) IsSet() bool {
	return c.set
}

// Get returns the resume point. Only meaningful if IsSet returns true.
func (c *Context) Get() (float64, int, time.Time) {
	return c.value, c.index, c.time
}

// Set stores a resume point, overwriting any previous one. index is the last sample index
// that has been drawn, or NoSample (any negative index) if the render drew none; the next
// resumed walk then starts at sample 0.
func (c *Context) Set(value float64, index int, t time.Time) {
	if index < 0 {
		index = NoSample
	}
	c.set = true
	c.value = value
	c.index = index
	c.time = t
}

// Reset clears the resume point. Calling it on a cleared context is a no-op.
func (c *Context) Reset() {
	c.set = false
}

// resumeIndex is the first sample index a resumed walk has to look at.
func (c *Context) resumeIndex() int {
	return c.index + 1
}
