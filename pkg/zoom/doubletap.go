package zoom

import "time"

// DoubleTapDetector recognizes a touch-down that follows the previous one
// within a short window.
type DoubleTapDetector struct {
	window    time.Duration
	lastPress time.Time
}

// NewDoubleTapDetector returns a detector with the given window.
func NewDoubleTapDetector(window time.Duration) *DoubleTapDetector {
	return &DoubleTapDetector{window: window}
}

// Tap records a touch-down at now and reports whether it completes a
// double-tap. The press time is recorded either way.
func (d *DoubleTapDetector) Tap(now time.Time) bool {
	double := !d.lastPress.IsZero() && now.Sub(d.lastPress) < d.window
	d.lastPress = now
	return double
}

// LastPress returns the time of the previous touch-down.
func (d *DoubleTapDetector) LastPress() time.Time {
	return d.lastPress
}
