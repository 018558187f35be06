package zoom

import (
	"math"

	"github.com/OpenTraceLab/pinchzoom/pkg/geom"
)

// PanTranslate returns the live translation for a one-finger drag. The
// result is not clamped; settling snaps it back into bounds.
func PanTranslate(previous, delta geom.Point) geom.Point {
	return previous.Add(delta)
}

// PinchFrame is the outcome of one two-finger move event.
type PinchFrame struct {
	State      TransformState
	Session    GestureSession
	ZoomChange float64
}

// Pinch applies one two-finger move event to state.
//
// The zoom changes by the change in finger distance divided by the
// sensitivity, floored at cfg.PinchFloor. The translation moves so that the
// image point between the fingers stays under them, and follows the fingers'
// midpoint as it moves across the page.
func Pinch(cfg *Config, viewport geom.Size, img ImageGeometry, state TransformState, session GestureSession, a, b Touch) PinchFrame {
	distance := geom.Distance(a.Page, b.Page)
	distanceDelta := 0.0
	if prev, ok := session.pinchDistance(); ok {
		distanceDelta = distance - prev
	}
	zoomChange := distanceDelta / cfg.ZoomSensitivity

	center := geom.Center(a.Local, b.Local)
	pinchPanCenter := geom.Center(a.Page, b.Page)

	var centerChange geom.Point
	if session.Zooming {
		centerChange = session.PinchPanCenter.Sub(pinchPanCenter)
	}

	delta := CenterDeltaFromZoomChange(viewport, img, center, zoomChange)

	next := session.Clone()
	next.ActiveTouchCount = 2
	next.ZoomCenter = center
	next.PinchPanCenter = pinchPanCenter
	next.InitialPinchDistance = &distance
	next.Zooming = true

	return PinchFrame{
		State: TransformState{
			Scale:      math.Max(cfg.PinchFloor, state.Scale+zoomChange),
			TranslateX: state.TranslateX + delta.X - centerChange.X,
			TranslateY: state.TranslateY + delta.Y - centerChange.Y,
		},
		Session:    next,
		ZoomChange: zoomChange,
	}
}

// Settle clamps the zoom into [cfg.MinZoom, cfg.MaxZoom] and the translation
// into the bounds for that zoom.
//
// When target is the live zoom (a gesture ending outside the legal range),
// the translation is first shifted so zoomCenter stays put across the clamp.
// Settling any other target leaves the focal point alone, which also makes a
// repeated Settle with the same target a no-op.
func Settle(cfg *Config, viewport geom.Size, img ImageGeometry, state TransformState, zoomCenter geom.Point, target float64) (TransformState, Bounds) {
	clamped := geom.Clamp(target, cfg.MinZoom, cfg.MaxZoom)
	bounds, _ := ComputeBounds(viewport, img, clamped)

	var shift geom.Point
	if target == state.Scale {
		shift = CenterDeltaFromZoomChange(viewport, img, zoomCenter, clamped-target)
	}

	translate := bounds.Clamp(state.Translate().Add(shift))
	return TransformState{
		Scale:      clamped,
		TranslateX: translate.X,
		TranslateY: translate.Y,
	}, bounds
}
