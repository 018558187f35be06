package zoom

import (
	"testing"

	"github.com/OpenTraceLab/pinchzoom/pkg/geom"
)

func TestTransformRoundTrip(t *testing.T) {
	viewport := geom.Size{Width: 400, Height: 300}
	img := tallImage(t)
	tr := TransformState{Scale: 2.5, TranslateX: -30, TranslateY: 75}

	for _, p := range []geom.Point{{}, img.Center(), geom.Pt(17, 390), geom.Pt(200, 0)} {
		back := tr.ViewportToImage(tr.ImageToViewport(p, viewport, img), viewport, img)
		if !nearPoint(back, p) {
			t.Fatalf("round trip of %v = %v", p, back)
		}
	}
}

func TestIdentityPlacementFitsWidth(t *testing.T) {
	viewport := geom.Size{Width: 400, Height: 400}
	img := tallImage(t)
	tr := Identity()

	left := tr.ImageToViewport(geom.Pt(0, img.Height/2), viewport, img)
	right := tr.ImageToViewport(geom.Pt(img.Width, img.Height/2), viewport, img)
	if !nearPoint(left, geom.Pt(0, 200)) || !nearPoint(right, geom.Pt(400, 200)) {
		t.Fatalf("identity placement edges = %v, %v; want {0 200}, {400 200}", left, right)
	}
}
