package script

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/OpenTraceLab/pinchzoom/pkg/geom"
	"github.com/OpenTraceLab/pinchzoom/pkg/zoom"
)

// ErrExpectation is returned when an expect step does not hold.
var ErrExpectation = errors.New("script: expectation failed")

// Tolerance is the allowed difference in expect steps.
const Tolerance = 1e-6

// Clock is a manually advanced time source.
type Clock struct {
	now time.Time
}

// NewClock returns a clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current time.
func (c *Clock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Runner replays scripts against a coordinator on a manual clock.
type Runner struct {
	coord *zoom.Coordinator
	clock *Clock

	// Trace, when set, receives one line per step with the displayed
	// transform after it.
	Trace io.Writer
}

// NewRunner wires a manual clock into c.
func NewRunner(c *zoom.Coordinator) *Runner {
	clock := NewClock(time.Unix(0, 0).Add(24 * time.Hour))
	c.SetClock(clock.Now)
	return &Runner{coord: c, clock: clock}
}

// Clock returns the runner's clock.
func (r *Runner) Clock() *Clock {
	return r.clock
}

// Run executes every step, stopping at the first failed expectation.
func (r *Runner) Run(s *Script) error {
	for _, step := range s.Steps {
		label, err := r.step(step)
		if err != nil {
			return fmt.Errorf("line %d: %w", step.Pos.Line, err)
		}
		if r.Trace != nil {
			t := r.coord.CurrentTransform()
			fmt.Fprintf(r.Trace, "%-10s scale=%.4f tx=%.2f ty=%.2f state=%s\n",
				label, t.Scale, t.TranslateX, t.TranslateY, r.coord.State())
		}
	}
	return nil
}

func (r *Runner) step(s *Step) (string, error) {
	c := r.coord
	switch {
	case s.Viewport != nil:
		c.Measure(geom.Size{Width: s.Viewport.Width, Height: s.Viewport.Height})
		return "viewport", nil
	case s.Start != nil:
		c.Start()
		return "start", nil
	case s.Tap != nil:
		c.Start()
		c.End(geom.Point{})
		return "tap", nil
	case s.Move != nil:
		c.Move(r.touches(s.Move.Touches), s.Move.Delta.point())
		return "move", nil
	case s.Release != nil:
		if s.Release.Kind == "cancel" {
			c.Terminate(s.Release.Delta.point())
		} else {
			c.End(s.Release.Delta.point())
		}
		return s.Release.Kind, nil
	case s.Wait != nil:
		r.clock.Advance(time.Duration(s.Wait.Millis * float64(time.Millisecond)))
		return "wait", nil
	case s.Zoom != nil:
		c.ZoomTo(s.Zoom.Target)
		return "zoom", nil
	case s.Expect != nil:
		return "expect", r.expect(s.Expect)
	}
	return "", fmt.Errorf("empty step")
}

func (r *Runner) touches(specs []*TouchSpec) []zoom.Touch {
	current := r.coord.CurrentTransform()
	viewport := r.coord.Viewport()
	img := r.coord.Image()

	out := make([]zoom.Touch, 0, len(specs))
	for _, spec := range specs {
		page := spec.Page.point()
		local := current.ViewportToImage(page, viewport, img)
		if spec.Local != nil {
			local = spec.Local.point()
		}
		out = append(out, zoom.Touch{Page: page, Local: local})
	}
	return out
}

func (r *Runner) expect(e *ExpectStep) error {
	t := r.coord.CurrentTransform()
	var got float64
	switch e.Field {
	case "scale":
		got = t.Scale
	case "tx":
		got = t.TranslateX
	case "ty":
		got = t.TranslateY
	}
	if math.Abs(got-e.Value) > Tolerance {
		return fmt.Errorf("%w: %s = %v, want %v", ErrExpectation, e.Field, got, e.Value)
	}
	return nil
}

func (p *PointSpec) point() geom.Point {
	if p == nil {
		return geom.Point{}
	}
	return geom.Pt(p.X, p.Y)
}
