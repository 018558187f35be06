package zoom

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("zoom: invalid config")
	// ErrInvalidImage is returned when the image has no usable size.
	ErrInvalidImage = errors.New("zoom: invalid image dimensions")
)

const (
	DefaultMinZoom         = 1.0
	DefaultMaxZoom         = 4.0
	DefaultZoomSensitivity = 200.0
	DefaultPinchFloor      = 0.4
	DefaultDoubleTapWindow = 200 * time.Millisecond
	DefaultSettleDuration  = 300 * time.Millisecond
)

// Config controls zoom limits and gesture tuning. It is read-only once a
// Coordinator has been built from it.
type Config struct {
	MinZoom float64
	MaxZoom float64

	DoubleTapEnabled bool
	DoubleTapWindow  time.Duration // taps closer than this are a double-tap

	// ZoomSensitivity divides the change in finger distance (pixels) to get
	// the change in zoom. Lower is faster; 100-200 feels natural.
	ZoomSensitivity float64

	// PinchFloor is the lowest zoom reachable while a pinch is in progress.
	// It may be below MinZoom; settling brings the zoom back into range.
	PinchFloor float64

	SettleDuration time.Duration
}

// DefaultConfig returns a Config with the stock viewer behavior.
func DefaultConfig() *Config {
	return &Config{
		MinZoom:          DefaultMinZoom,
		MaxZoom:          DefaultMaxZoom,
		DoubleTapEnabled: true,
		DoubleTapWindow:  DefaultDoubleTapWindow,
		ZoomSensitivity:  DefaultZoomSensitivity,
		PinchFloor:       DefaultPinchFloor,
		SettleDuration:   DefaultSettleDuration,
	}
}

// Validate checks the zoom range and sensitivity and fills unset tuning
// values with their defaults.
func (c *Config) Validate() error {
	if c.MinZoom <= 0 {
		return fmt.Errorf("%w: min zoom %v must be positive", ErrInvalidConfig, c.MinZoom)
	}
	if c.MaxZoom < c.MinZoom {
		return fmt.Errorf("%w: max zoom %v below min zoom %v", ErrInvalidConfig, c.MaxZoom, c.MinZoom)
	}
	if c.ZoomSensitivity <= 0 {
		return fmt.Errorf("%w: zoom sensitivity %v must be positive", ErrInvalidConfig, c.ZoomSensitivity)
	}

	if c.PinchFloor <= 0 {
		c.PinchFloor = DefaultPinchFloor
	}
	if c.DoubleTapWindow <= 0 {
		c.DoubleTapWindow = DefaultDoubleTapWindow
	}
	if c.SettleDuration <= 0 {
		c.SettleDuration = DefaultSettleDuration
	}
	return nil
}

// DoubleTapTarget returns the zoom a double-tap settles to: MinZoom when the
// current zoom is exactly MaxZoom, MaxZoom otherwise.
func (c *Config) DoubleTapTarget(current float64) float64 {
	if current == c.MaxZoom {
		return c.MinZoom
	}
	return c.MaxZoom
}
