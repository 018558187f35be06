package zoom

import "github.com/OpenTraceLab/pinchzoom/pkg/geom"

// TransformState is the zoom and translation applied on top of the
// fit-width, centered placement of the image.
type TransformState struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
}

// Identity returns the untransformed state.
func Identity() TransformState {
	return TransformState{Scale: 1}
}

// Translate returns the translation as a point.
func (t TransformState) Translate() geom.Point {
	return geom.Pt(t.TranslateX, t.TranslateY)
}

// BaseScale is the scale that fits the image to the viewport width.
func BaseScale(viewport geom.Size, img ImageGeometry) float64 {
	if img.Width == 0 {
		return 0
	}
	return viewport.Width / img.Width
}

// RenderScale is the total scale applied to image pixels.
func (t TransformState) RenderScale(viewport geom.Size, img ImageGeometry) float64 {
	return BaseScale(viewport, img) * t.Scale
}

// ImageToViewport maps an image-local point to viewport pixels.
func (t TransformState) ImageToViewport(p geom.Point, viewport geom.Size, img ImageGeometry) geom.Point {
	s := t.RenderScale(viewport, img)
	c := img.Center()
	return geom.Point{
		X: viewport.Width/2 + t.TranslateX + (p.X-c.X)*s,
		Y: viewport.Height/2 + t.TranslateY + (p.Y-c.Y)*s,
	}
}

// ViewportToImage maps viewport pixels back to image-local coordinates.
func (t TransformState) ViewportToImage(p geom.Point, viewport geom.Size, img ImageGeometry) geom.Point {
	c := img.Center()
	s := t.RenderScale(viewport, img)
	if s == 0 {
		return c
	}
	return geom.Point{
		X: (p.X-viewport.Width/2-t.TranslateX)/s + c.X,
		Y: (p.Y-viewport.Height/2-t.TranslateY)/s + c.Y,
	}
}
