package zoom

import (
	"testing"

	"github.com/OpenTraceLab/pinchzoom/pkg/geom"
)

func touchAt(x, y float64) Touch {
	return Touch{Page: geom.Pt(x, y), Local: geom.Pt(x, y)}
}

func TestPanTranslateIsUnclamped(t *testing.T) {
	got := PanTranslate(geom.Pt(10, 20), geom.Pt(5000, -5000))
	if got != geom.Pt(5010, -4980) {
		t.Fatalf("PanTranslate = %v, want {5010 -4980}", got)
	}
}

func TestPinchZoomIsProportional(t *testing.T) {
	cfg := DefaultConfig()
	viewport := geom.Size{Width: 400, Height: 400}
	img := tallImage(t)
	state := Identity()
	var session GestureSession

	// First frame only records the distance.
	first := Pinch(cfg, viewport, img, state, session, touchAt(100, 100), touchAt(200, 100))
	if first.ZoomChange != 0 {
		t.Fatalf("first frame ZoomChange = %v, want 0", first.ZoomChange)
	}
	if first.State.Scale != 1 {
		t.Fatalf("first frame Scale = %v, want 1", first.State.Scale)
	}
	if !first.Session.Zooming || first.Session.InitialPinchDistance == nil || *first.Session.InitialPinchDistance != 100 {
		t.Fatalf("first frame session = %+v", first.Session)
	}

	second := Pinch(cfg, viewport, img, first.State, first.Session, touchAt(75, 100), touchAt(225, 100))
	if !near(second.ZoomChange, 0.25) {
		t.Fatalf("ZoomChange = %v, want 0.25", second.ZoomChange)
	}
	if !near(second.State.Scale, 1.25) {
		t.Fatalf("Scale = %v, want 1.25", second.State.Scale)
	}
}

func TestPinchZeroDistanceProducesNoZoom(t *testing.T) {
	cfg := DefaultConfig()
	zero := 0.0
	session := GestureSession{InitialPinchDistance: &zero, Zooming: true}

	frame := Pinch(cfg, geom.Size{Width: 400, Height: 400}, tallImage(t), Identity(), session, touchAt(0, 0), touchAt(300, 400))
	if frame.ZoomChange != 0 {
		t.Fatalf("ZoomChange = %v, want 0 for zero initial distance", frame.ZoomChange)
	}
}

func TestPinchRespectsFloor(t *testing.T) {
	cfg := DefaultConfig()
	prev := 400.0
	session := GestureSession{InitialPinchDistance: &prev, Zooming: true, PinchPanCenter: geom.Pt(100, 100)}

	frame := Pinch(cfg, geom.Size{Width: 400, Height: 400}, tallImage(t), Identity(), session, touchAt(99, 100), touchAt(101, 100))
	if frame.State.Scale != cfg.PinchFloor {
		t.Fatalf("Scale = %v, want floor %v", frame.State.Scale, cfg.PinchFloor)
	}
}

func TestPinchFollowsMidpoint(t *testing.T) {
	cfg := DefaultConfig()
	viewport := geom.Size{Width: 400, Height: 400}
	img := tallImage(t)
	d := 100.0
	session := GestureSession{InitialPinchDistance: &d, Zooming: true, PinchPanCenter: geom.Pt(150, 150)}

	// Same spread, midpoint moved by (+20, -10): a two-finger drag.
	frame := Pinch(cfg, viewport, img, Identity(), session, touchAt(120, 140), touchAt(220, 140))
	if !nearPoint(frame.State.Translate(), geom.Pt(20, -10)) {
		t.Fatalf("Translate = %v, want {20 -10}", frame.State.Translate())
	}
}

func TestPinchKeepsFocalPointFixed(t *testing.T) {
	cfg := DefaultConfig()
	viewport := geom.Size{Width: 400, Height: 400}
	img, _ := NewImageGeometry(geom.Size{Width: 400, Height: 400})

	state := TransformState{Scale: 1.5, TranslateX: 40, TranslateY: -25}
	var session GestureSession

	touch := func(x, y float64) Touch {
		p := geom.Pt(x, y)
		return Touch{Page: p, Local: state.ViewportToImage(p, viewport, img)}
	}

	// Fingers spread symmetrically around a fixed page midpoint.
	mid := geom.Pt(120, 150)
	frame := Pinch(cfg, viewport, img, state, session, touch(100, 150), touch(140, 150))
	state, session = frame.State, frame.Session

	focal := state.ViewportToImage(mid, viewport, img)
	for _, spread := range []float64{40, 60, 90} {
		frame = Pinch(cfg, viewport, img, state, session, touch(mid.X-spread, mid.Y), touch(mid.X+spread, mid.Y))
		state, session = frame.State, frame.Session

		got := state.ImageToViewport(focal, viewport, img)
		if !nearPoint(got, mid) {
			t.Fatalf("spread %v: focal point drawn at %v, want %v", spread, got, mid)
		}
	}
	if !near(state.Scale, 1.5+(180-40)/cfg.ZoomSensitivity) {
		t.Fatalf("Scale = %v, want %v", state.Scale, 1.5+(180-40)/cfg.ZoomSensitivity)
	}
}

func TestSettleClampsZoom(t *testing.T) {
	cfg := DefaultConfig()
	viewport := geom.Size{Width: 400, Height: 400}
	img := tallImage(t)

	for _, target := range []float64{-1, 0, 0.3, 0.4, 1, 2.5, 4, 4.01, 10} {
		for _, live := range []float64{target, 1, 3} {
			state := TransformState{Scale: live, TranslateX: 900, TranslateY: -3000}
			got, bounds := Settle(cfg, viewport, img, state, geom.Pt(20, 380), target)
			if got.Scale < cfg.MinZoom || got.Scale > cfg.MaxZoom {
				t.Fatalf("Settle(%v) zoom = %v, outside [%v, %v]", target, got.Scale, cfg.MinZoom, cfg.MaxZoom)
			}
			if !bounds.Contains(got.Translate()) {
				t.Fatalf("Settle(%v) translate %v outside bounds %+v", target, got.Translate(), bounds)
			}
		}
	}
}

func TestSettleIsIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	viewport := geom.Size{Width: 400, Height: 400}
	img := tallImage(t)
	center := geom.Pt(50, 100)

	cases := []TransformState{
		{Scale: 5, TranslateX: 30, TranslateY: -10},
		{Scale: 0.5, TranslateX: 30, TranslateY: -10},
		{Scale: 2, TranslateX: 1000, TranslateY: 1000},
	}
	for _, state := range cases {
		once, _ := Settle(cfg, viewport, img, state, center, state.Scale)
		twice, _ := Settle(cfg, viewport, img, once, center, state.Scale)
		if !nearPoint(once.Translate(), twice.Translate()) || once.Scale != twice.Scale {
			t.Fatalf("Settle not idempotent from %+v: once %+v, twice %+v", state, once, twice)
		}
	}
}

func TestSettleShiftsAroundFocalPoint(t *testing.T) {
	cfg := DefaultConfig()
	viewport := geom.Size{Width: 400, Height: 400}
	img, _ := NewImageGeometry(geom.Size{Width: 400, Height: 400})

	// A pinch overshot to zoom 5 around the left edge of the image.
	state := TransformState{Scale: 5, TranslateX: 500, TranslateY: 0}
	got, _ := Settle(cfg, viewport, img, state, geom.Pt(0, 200), 5)

	// Clamping 5 -> 4 shifts by 400 * -1 * 0.5 = -200 before bounds apply.
	if !near(got.TranslateX, 300) {
		t.Fatalf("TranslateX = %v, want 300", got.TranslateX)
	}
	if got.Scale != 4 {
		t.Fatalf("Scale = %v, want 4", got.Scale)
	}
}

func TestDoubleTapTarget(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct{ current, want float64 }{
		{4, 1},
		{1, 4},
		{2.5, 4},
		{3.999, 4},
	}
	for _, tc := range cases {
		if got := cfg.DoubleTapTarget(tc.current); got != tc.want {
			t.Fatalf("DoubleTapTarget(%v) = %v, want %v", tc.current, got, tc.want)
		}
	}
}
