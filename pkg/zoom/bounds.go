package zoom

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/pinchzoom/pkg/geom"
)

// ImageGeometry is the intrinsic size of the displayed image.
type ImageGeometry struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	AspectRatio float64 `json:"aspectRatio"` // Height / Width
}

// NewImageGeometry validates the size and derives the aspect ratio.
func NewImageGeometry(size geom.Size) (ImageGeometry, error) {
	if size.IsZero() {
		return ImageGeometry{}, fmt.Errorf("%w: %vx%v", ErrInvalidImage, size.Width, size.Height)
	}
	return ImageGeometry{
		Width:       size.Width,
		Height:      size.Height,
		AspectRatio: size.Height / size.Width,
	}, nil
}

// Center returns the middle of the image in image-local coordinates.
func (g ImageGeometry) Center() geom.Point {
	return geom.Pt(g.Width/2, g.Height/2)
}

// Bounds is the legal range of the translation at one zoom level.
type Bounds struct {
	Min geom.Point `json:"min"`
	Max geom.Point `json:"max"`
}

// Clamp pulls p into the bounds.
func (b Bounds) Clamp(p geom.Point) geom.Point {
	return geom.Point{
		X: geom.Clamp(p.X, b.Min.X, b.Max.X),
		Y: geom.Clamp(p.Y, b.Min.Y, b.Max.Y),
	}
}

// Contains reports whether p lies inside the bounds, edges included.
func (b Bounds) Contains(p geom.Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ComputeBounds returns the translation limits for the image at zoom. It
// reports false when the viewport has not been measured.
//
// Horizontal travel grows linearly with zoom and is zero at zoom 1, where the
// image exactly fills the viewport width. Vertical travel is the overflow of
// the scaled image height, or zero when the image is letterboxed. Below zoom 1
// the image is narrower than the viewport and is held centered horizontally.
func ComputeBounds(viewport geom.Size, img ImageGeometry, zoom float64) (Bounds, bool) {
	if viewport.IsZero() {
		return Bounds{}, false
	}

	halfX := math.Max(0, viewport.Width*(zoom-1)/2)

	imageHeight := img.AspectRatio * viewport.Width * zoom
	heightSlack := (viewport.Height - imageHeight) / 2
	halfY := 0.0
	if heightSlack < 0 {
		halfY = -heightSlack
	}

	return Bounds{
		Min: geom.Pt(-halfX, -halfY),
		Max: geom.Pt(halfX, halfY),
	}, true
}

// CenterDeltaFromZoomChange returns the translation that keeps the image
// point center in place when the zoom changes by zoomChange. Both axes scale
// with the viewport width because the image is fitted to it.
func CenterDeltaFromZoomChange(viewport geom.Size, img ImageGeometry, center geom.Point, zoomChange float64) geom.Point {
	xChange := viewport.Width * zoomChange
	percentX := 0.5 - center.X/img.Width
	percentY := 0.5 - center.Y/img.Height
	return geom.Pt(xChange*percentX, xChange*percentY)
}
