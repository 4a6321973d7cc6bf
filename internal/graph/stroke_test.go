package graph

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestBuildStrokePlaybackScenario(t *testing.T) {
	series := newTestSeries("a", 0, 0, 0, 10, 100, 20, 300)
	var ctx Context

	first := BuildStroke(series, at(15), &ctx, false)
	if diff := cmp.Diff([]Point{pt(0, 0), pt(10, 100), pt(15, 100)}, first.Points); diff != "" {
		t.Errorf("stroke at 15 mismatch (-want +got):\n%s", diff)
	}

	next := BuildStroke(series, at(25), &ctx, true)
	if diff := cmp.Diff([]Point{pt(15, 100), pt(20, 300), pt(25, 300)}, next.Points); diff != "" {
		t.Errorf("partial stroke at 25 mismatch (-want +got):\n%s", diff)
	}
	if !next.Resumed {
		t.Errorf("partial stroke at 25 is not marked as resumed")
	}

	full := BuildStroke(series, at(25), nil, false)
	want := []Point{pt(0, 0), pt(10, 100), pt(20, 300), pt(25, 300)}
	if diff := cmp.Diff(want, full.Points); diff != "" {
		t.Errorf("full stroke at 25 mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildStrokeFullIsIdempotent(t *testing.T) {
	series := newTestSeries("a", 0, 0, 120, 4, 180, 9, 260, 15, 240)

	for _, cursor := range []time.Time{{}, at(0), at(7), at(15), at(60)} {
		first := BuildStroke(series, cursor, nil, false)
		second := BuildStroke(series, cursor, nil, false)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("BuildStroke(%v) not idempotent (-first +second):\n%s", cursor, diff)
		}
	}
}

func TestBuildStrokeNowMarker(t *testing.T) {
	series := newTestSeries("a", 0, 0, 500, 10, 700, 20, 650)

	tests := []struct {
		name   string
		cursor time.Time
		want   []Point
	}{
		{
			name:   "between samples holds the previous value",
			cursor: at(13),
			want:   []Point{pt(0, 500), pt(10, 700), pt(13, 700)},
		},
		{
			name:   "on a sample",
			cursor: at(10),
			want:   []Point{pt(0, 500), pt(10, 700), pt(10, 700)},
		},
		{
			name:   "after the last sample",
			cursor: at(40),
			want:   []Point{pt(0, 500), pt(10, 700), pt(20, 650), pt(40, 650)},
		},
		{
			name:   "no cursor draws through the end of data",
			cursor: time.Time{},
			want:   []Point{pt(0, 500), pt(10, 700), pt(20, 650)},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := BuildStroke(series, test.cursor, nil, false)
			if diff := cmp.Diff(test.want, got.Points); diff != "" {
				t.Errorf("BuildStroke() points mismatch (-want +got):\n%s", diff)
			}
			if got.NowMarker == test.cursor.IsZero() {
				t.Errorf("BuildStroke() NowMarker = %v, want %v", got.NowMarker, !test.cursor.IsZero())
			}
		})
	}
}

func TestBuildStrokeStartsBeforeFirstSample(t *testing.T) {
	// The flight starts before its first record, the seed holds the first value.
	series := newTestSeries("a", 0, 5, 300, 10, 400)

	got := BuildStroke(series, at(7), nil, false)
	want := []Point{pt(0, 300), pt(5, 300), pt(7, 300)}
	if diff := cmp.Diff(want, got.Points); diff != "" {
		t.Errorf("BuildStroke() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildStrokeCursorBeforeStart(t *testing.T) {
	series := newTestSeries("a", 100, 100, 900, 110, 950)

	got := BuildStroke(series, at(50), nil, false)
	if diff := cmp.Diff([]Point{pt(100, 900)}, got.Points); diff != "" {
		t.Errorf("BuildStroke() mismatch (-want +got):\n%s", diff)
	}
	if got.NowMarker {
		t.Errorf("BuildStroke() drew a now-marker before the flight started")
	}
}

func TestBuildStrokeEmptySeries(t *testing.T) {
	series := newTestSeries("empty", 10)

	got := BuildStroke(series, time.Time{}, nil, false)
	if diff := cmp.Diff([]Point{pt(10, 0)}, got.Points); diff != "" {
		t.Errorf("BuildStroke() without cursor mismatch (-want +got):\n%s", diff)
	}

	var ctx Context
	got = BuildStroke(series, at(30), &ctx, false)
	if diff := cmp.Diff([]Point{pt(10, 0), pt(30, 0)}, got.Points); diff != "" {
		t.Errorf("BuildStroke() with cursor mismatch (-want +got):\n%s", diff)
	}

	got = BuildStroke(series, at(40), &ctx, true)
	if diff := cmp.Diff([]Point{pt(30, 0), pt(40, 0)}, got.Points); diff != "" {
		t.Errorf("BuildStroke() resumed mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildStrokeSeedContinuity(t *testing.T) {
	series := newTestSeries("a", 0, 0, 10, 3, 40, 6, 35, 9, 80, 12, 120, 15, 110)
	var ctx Context

	prev := BuildStroke(series, at(1), &ctx, false)
	for seconds := 2; seconds <= 20; seconds += 2 {
		next := BuildStroke(series, at(seconds), &ctx, true)

		last, _ := prev.Last()
		if diff := cmp.Diff(last, next.Points[0]); diff != "" {
			t.Errorf("cursor %d: seed does not continue the previous stroke (-want +got):\n%s", seconds, diff)
		}
		prev = next
	}
}

func TestBuildStrokeResumeIndexNeverDecreases(t *testing.T) {
	series := newTestSeries("a", 0, 0, 10, 3, 40, 6, 35, 9, 80, 12, 120)
	var ctx Context

	BuildStroke(series, at(0), &ctx, false)
	_, prevIndex, _ := ctx.Get()
	// Repeated and in-between cursors must not move the index back.
	for _, seconds := range []int{0, 1, 3, 3, 4, 8, 9, 9, 10, 30} {
		BuildStroke(series, at(seconds), &ctx, true)
		_, index, _ := ctx.Get()
		if index < prevIndex {
			t.Errorf("cursor %d: resume index went from %d to %d", seconds, prevIndex, index)
		}
		prevIndex = index
	}

	if prevIndex != series.Len()-1 {
		t.Errorf("resume index = %d, want %d", prevIndex, series.Len()-1)
	}
}

func TestBuildStrokeFullResetsContext(t *testing.T) {
	series := newTestSeries("a", 0, 0, 10, 10, 20, 20, 30)
	var ctx Context

	BuildStroke(series, at(25), &ctx, false)
	// A full rebuild after seeking back starts from the first sample again.
	got := BuildStroke(series, at(12), &ctx, false)
	want := []Point{pt(0, 10), pt(10, 20), pt(12, 20)}
	if diff := cmp.Diff(want, got.Points); diff != "" {
		t.Errorf("BuildStroke() after reset mismatch (-want +got):\n%s", diff)
	}
	if got.Resumed {
		t.Errorf("BuildStroke() with partial = false reported a resumed stroke")
	}

	value, index, when := ctx.Get()
	if !ctx.IsSet() || value != 20 || index != 1 || !when.Equal(at(12)) {
		t.Errorf("ctx.Get() = (%v, %d, %v), want (20, 1, %v)", value, index, when, at(12))
	}
}

func TestBuildStrokePartialWithoutResumePoint(t *testing.T) {
	series := newTestSeries("a", 0, 0, 10, 10, 20)
	var ctx Context

	got := BuildStroke(series, at(5), &ctx, true)
	if got.Resumed {
		t.Errorf("BuildStroke() resumed from an unset context")
	}
	if diff := cmp.Diff([]Point{pt(0, 10), pt(5, 10)}, got.Points); diff != "" {
		t.Errorf("BuildStroke() mismatch (-want +got):\n%s", diff)
	}
}

func TestContextReset(t *testing.T) {
	var ctx Context
	if ctx.IsSet() {
		t.Fatalf("zero Context is set")
	}

	ctx.Set(120, 4, at(30))
	value, index, when := ctx.Get()
	if !ctx.IsSet() || value != 120 || index != 4 || !when.Equal(at(30)) {
		t.Errorf("ctx.Get() = (%v, %d, %v), want (120, 4, %v)", value, index, when, at(30))
	}
	if ctx.resumeIndex() != 5 {
		t.Errorf("resumeIndex() = %d, want 5", ctx.resumeIndex())
	}

	ctx.Reset()
	ctx.Reset()
	if ctx.IsSet() {
		t.Errorf("ctx still set after Reset")
	}
}

func TestContextSetWithoutDrawnSample(t *testing.T) {
	series := newTestSeries("a", 0, 5, 10, 10, 100)
	var ctx Context
	ctx.Set(10, NoSample, at(0))

	got := BuildStroke(series, at(15), &ctx, true)
	if diff := cmp.Diff([]Point{pt(0, 10), pt(5, 10), pt(10, 100), pt(15, 100)}, got.Points); diff != "" {
		t.Errorf("BuildStroke() skipped the first sample (-want +got):\n%s", diff)
	}
	if _, index, _ := ctx.Get(); index != 1 {
		t.Errorf("ctx index = %d, want 1", index)
	}

	ctx.Set(10, -7, at(0))
	if _, index, _ := ctx.Get(); index != NoSample || ctx.resumeIndex() != 0 {
		t.Errorf("negative index stored as %d, resumes at %d", index, ctx.resumeIndex())
	}
}
