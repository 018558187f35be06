package zoom

import "github.com/OpenTraceLab/pinchzoom/pkg/geom"

// Touch is one finger reported by the host input layer.
type Touch struct {
	Page  geom.Point `json:"page"`  // container coordinates
	Local geom.Point `json:"local"` // image-local coordinates
}

// GestureSession holds what the engine remembers between move events of a
// single gesture. It is empty whenever no finger is down.
type GestureSession struct {
	ActiveTouchCount int `json:"activeTouchCount"`

	// InitialPinchDistance is the finger distance of the previous pinch
	// frame; nil before the first one.
	InitialPinchDistance *float64 `json:"initialPinchDistance,omitempty"`

	ZoomCenter     geom.Point `json:"zoomCenter"`     // image-local focal point
	PinchPanCenter geom.Point `json:"pinchPanCenter"` // page focal point
	Zooming        bool       `json:"zooming"`
}

// Reset empties the session.
func (s *GestureSession) Reset() {
	*s = GestureSession{}
}

// Clone returns a deep copy.
func (s GestureSession) Clone() GestureSession {
	if s.InitialPinchDistance != nil {
		d := *s.InitialPinchDistance
		s.InitialPinchDistance = &d
	}
	return s
}

func (s GestureSession) pinchDistance() (float64, bool) {
	if s.InitialPinchDistance == nil || *s.InitialPinchDistance == 0 {
		return 0, false
	}
	return *s.InitialPinchDistance, true
}
