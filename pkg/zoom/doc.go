// Package zoom interprets raw multi-touch input as pan, pinch and double-tap
// gestures and maintains the resulting viewport transform over a fixed-aspect
// image.
//
// # Overview
//
// The image is placed to fit the viewport width and centered. On top of that
// placement the engine keeps a uniform zoom factor and a translation:
//
//	screen = viewportCenter + translate + (p - imageCenter) * baseScale * zoom
//
// where baseScale = viewport.Width / image.Width. A renderer polls
// Coordinator.CurrentTransform each frame and applies scale, then translate.
//
// # Gestures
//
//   - One finger pans. The image follows the finger without clamping.
//   - Two fingers pinch. The zoom changes in proportion to the change in
//     finger distance and the point under the fingers stays in place.
//   - Two taps within Config.DoubleTapWindow toggle between MinZoom and
//     MaxZoom.
//
// When the fingers lift, the engine settles: zoom is clamped to
// [MinZoom, MaxZoom], the translation is clamped to the Bounds for that zoom,
// and both are animated to their settled values.
//
// # Bounds
//
// Bounds assume the image's horizontal edges reach the viewport edges first.
// Horizontal travel is viewport.Width*(zoom-1)/2 each way; vertical travel is
// the overflow of the scaled image height, or zero when the image is shorter
// than the viewport. An axis that overflows while the other is slack is not
// bounded independently.
//
// # Concurrency
//
// A Coordinator is not safe for concurrent use. The host input layer must
// deliver events one at a time, which is how UI event loops already work.
package zoom
