// Package anim animates scalar values over time.
//
// Values are pulled, not pushed: the owner asks for the value at a given
// instant (usually the frame time) and no goroutine or timer is involved.
// Starting a new animation replaces the previous target; nothing is queued.
package anim

import "time"

// Driver animates a single scalar.
type Driver interface {
	// Set jumps to v and cancels any running animation.
	Set(v float64)
	// AnimateTo starts an animation from the current value to `to`.
	AnimateTo(to float64, d time.Duration, now time.Time)
	// At reports the value at the given instant.
	At(now time.Time) float64
	// Active reports whether an animation is still running at now.
	Active(now time.Time) bool
	// Target reports the value the driver settles on.
	Target() float64
}

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseInOut is a cubic ease-in-out curve.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Value is a cancellable tween between two scalars.
type Value struct {
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
	running  bool

	// Ease defaults to EaseInOut when nil.
	Ease Easing
}

var _ Driver = (*Value)(nil)

// NewValue returns a Value resting at v.
func NewValue(v float64) *Value {
	return &Value{from: v, to: v}
}

func (v *Value) Set(x float64) {
	v.from = x
	v.to = x
	v.running = false
}

// AnimateTo starts a new animation from the value at now. Asking for the
// target that is already being animated towards keeps the running animation.
func (v *Value) AnimateTo(to float64, d time.Duration, now time.Time) {
	if v.Active(now) && v.to == to {
		return
	}
	v.from = v.At(now)
	v.to = to
	v.start = now
	v.duration = d
	v.running = d > 0 && v.from != to
	if !v.running {
		v.from = to
	}
}

func (v *Value) At(now time.Time) float64 {
	if !v.running {
		return v.to
	}
	elapsed := now.Sub(v.start)
	if elapsed >= v.duration {
		return v.to
	}
	if elapsed <= 0 {
		return v.from
	}
	ease := v.Ease
	if ease == nil {
		ease = EaseInOut
	}
	p := ease(float64(elapsed) / float64(v.duration))
	return v.from + (v.to-v.from)*p
}

func (v *Value) Active(now time.Time) bool {
	return v.running && now.Before(v.start.Add(v.duration))
}

func (v *Value) Target() float64 {
	return v.to
}
