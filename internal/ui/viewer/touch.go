package viewer

import (
	"gioui.org/f32"
	"gioui.org/io/pointer"

	"github.com/OpenTraceLab/pinchzoom/pkg/geom"
	"github.com/OpenTraceLab/pinchzoom/pkg/zoom"
)

// gestureSink receives gesture lifecycle events. *zoom.Coordinator
// implements it.
type gestureSink interface {
	Start() bool
	Move(touches []zoom.Touch, delta geom.Point)
	End(delta geom.Point)
	Terminate(delta geom.Point)
}

// touchTracker turns Gio pointer events into touch batches. Every finger
// (or the primary mouse button) currently down is reported on each drag.
type touchTracker struct {
	ids []pointer.ID // press order
	pos map[pointer.ID]f32.Point

	// The drag delta follows the earliest finger still down.
	origin f32.Point
	delta  f32.Point
}

func newTouchTracker() *touchTracker {
	return &touchTracker{pos: make(map[pointer.ID]f32.Point)}
}

// Active reports whether any finger is down.
func (t *touchTracker) Active() bool {
	return len(t.ids) > 0
}

// Handle forwards e to sink. toLocal maps a viewport point to image-local
// coordinates under the current transform. It reports whether the event
// belonged to a gesture.
func (t *touchTracker) Handle(e pointer.Event, toLocal func(geom.Point) geom.Point, sink gestureSink) bool {
	switch e.Kind {
	case pointer.Press:
		if e.Source == pointer.Mouse && e.Buttons != pointer.ButtonPrimary {
			return false
		}
		if _, ok := t.pos[e.PointerID]; ok {
			return false
		}
		first := len(t.ids) == 0
		t.ids = append(t.ids, e.PointerID)
		t.pos[e.PointerID] = e.Position
		if first {
			t.origin = e.Position
			t.delta = f32.Point{}
			sink.Start()
		}
		return true

	case pointer.Drag:
		if _, ok := t.pos[e.PointerID]; !ok {
			return false
		}
		t.pos[e.PointerID] = e.Position
		if e.PointerID == t.ids[0] {
			t.delta = e.Position.Sub(t.origin)
		}
		sink.Move(t.batch(toLocal), toPoint(t.delta))
		return true

	case pointer.Release:
		idx := t.index(e.PointerID)
		if idx < 0 {
			return false
		}
		t.ids = append(t.ids[:idx], t.ids[idx+1:]...)
		delete(t.pos, e.PointerID)
		if len(t.ids) == 0 {
			sink.End(toPoint(t.delta))
			return true
		}
		if idx == 0 {
			// Rebase on the next finger so the delta does not jump.
			t.origin = t.pos[t.ids[0]].Sub(t.delta)
		}
		return true

	case pointer.Cancel:
		if len(t.ids) == 0 {
			return false
		}
		t.ids = t.ids[:0]
		clear(t.pos)
		sink.Terminate(toPoint(t.delta))
		return true
	}
	return false
}

func (t *touchTracker) batch(toLocal func(geom.Point) geom.Point) []zoom.Touch {
	touches := make([]zoom.Touch, 0, len(t.ids))
	for _, id := range t.ids {
		page := toPoint(t.pos[id])
		touches = append(touches, zoom.Touch{Page: page, Local: toLocal(page)})
	}
	return touches
}

func (t *touchTracker) index(id pointer.ID) int {
	for i, v := range t.ids {
		if v == id {
			return i
		}
	}
	return -1
}

func toPoint(p f32.Point) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}
