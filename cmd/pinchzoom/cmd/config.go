package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/pinchzoom/pkg/geom"
	"github.com/OpenTraceLab/pinchzoom/pkg/zoom"
)

// fileConfig is the JSON form of zoom.Config. Durations are milliseconds.
type fileConfig struct {
	MinZoom           *float64 `json:"min_zoom,omitempty"`
	MaxZoom           *float64 `json:"max_zoom,omitempty"`
	DoubleTapZoom     *bool    `json:"double_tap_zoom,omitempty"`
	ZoomSensitivity   *float64 `json:"zoom_sensitivity,omitempty"`
	PinchFloor        *float64 `json:"pinch_floor,omitempty"`
	DoubleTapWindowMS *int     `json:"double_tap_window_ms,omitempty"`
	SettleDurationMS  *int     `json:"settle_duration_ms,omitempty"`
}

var zoomFlags struct {
	configPath      string
	minZoom         float64
	maxZoom         float64
	doubleTap       bool
	sensitivity     float64
	pinchFloor      float64
	doubleTapWindow time.Duration
	settleDuration  time.Duration
}

func addZoomFlags(c *cobra.Command) {
	def := zoom.DefaultConfig()
	f := c.PersistentFlags()
	f.StringVar(&zoomFlags.configPath, "config", "", "JSON zoom config file")
	f.Float64Var(&zoomFlags.minZoom, "min-zoom", def.MinZoom, "minimum settled zoom")
	f.Float64Var(&zoomFlags.maxZoom, "max-zoom", def.MaxZoom, "maximum settled zoom")
	f.BoolVar(&zoomFlags.doubleTap, "double-tap", def.DoubleTapEnabled, "toggle zoom on double-tap")
	f.Float64Var(&zoomFlags.sensitivity, "sensitivity", def.ZoomSensitivity, "pixels of finger spread per 1.0 zoom")
	f.Float64Var(&zoomFlags.pinchFloor, "pinch-floor", def.PinchFloor, "lowest zoom reachable mid-pinch")
	f.DurationVar(&zoomFlags.doubleTapWindow, "double-tap-window", def.DoubleTapWindow, "max gap between double-tap presses")
	f.DurationVar(&zoomFlags.settleDuration, "settle-duration", def.SettleDuration, "settle animation length")
}

// loadZoomConfig builds the config from defaults, then the --config file,
// then any flags set explicitly.
func loadZoomConfig(c *cobra.Command) (*zoom.Config, error) {
	cfg := zoom.DefaultConfig()

	if zoomFlags.configPath != "" {
		data, err := os.ReadFile(zoomFlags.configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		var fc fileConfig
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", zoomFlags.configPath, err)
		}
		fc.apply(cfg)
	}

	flags := c.Flags()
	if flags.Changed("min-zoom") {
		cfg.MinZoom = zoomFlags.minZoom
	}
	if flags.Changed("max-zoom") {
		cfg.MaxZoom = zoomFlags.maxZoom
	}
	if flags.Changed("double-tap") {
		cfg.DoubleTapEnabled = zoomFlags.doubleTap
	}
	if flags.Changed("sensitivity") {
		cfg.ZoomSensitivity = zoomFlags.sensitivity
	}
	if flags.Changed("pinch-floor") {
		cfg.PinchFloor = zoomFlags.pinchFloor
	}
	if flags.Changed("double-tap-window") {
		cfg.DoubleTapWindow = zoomFlags.doubleTapWindow
	}
	if flags.Changed("settle-duration") {
		cfg.SettleDuration = zoomFlags.settleDuration
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (fc fileConfig) apply(cfg *zoom.Config) {
	if fc.MinZoom != nil {
		cfg.MinZoom = *fc.MinZoom
	}
	if fc.MaxZoom != nil {
		cfg.MaxZoom = *fc.MaxZoom
	}
	if fc.DoubleTapZoom != nil {
		cfg.DoubleTapEnabled = *fc.DoubleTapZoom
	}
	if fc.ZoomSensitivity != nil {
		cfg.ZoomSensitivity = *fc.ZoomSensitivity
	}
	if fc.PinchFloor != nil {
		cfg.PinchFloor = *fc.PinchFloor
	}
	if fc.DoubleTapWindowMS != nil {
		cfg.DoubleTapWindow = time.Duration(*fc.DoubleTapWindowMS) * time.Millisecond
	}
	if fc.SettleDurationMS != nil {
		cfg.SettleDuration = time.Duration(*fc.SettleDurationMS) * time.Millisecond
	}
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (geom.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return geom.Size{}, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return geom.Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	height, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return geom.Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return geom.Size{}, fmt.Errorf("size %q: dimensions must be positive", s)
	}
	return geom.Size{Width: width, Height: height}, nil
}
