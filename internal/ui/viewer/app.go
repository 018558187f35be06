// Package viewer hosts the pinch-zoom image viewer window.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/pinchzoom/pkg/geom"
	"github.com/OpenTraceLab/pinchzoom/pkg/zoom"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
)

type zoomPreset struct {
	label string
	zoom  func(cfg zoom.Config) float64
}

var zoomPresets = []zoomPreset{
	{label: "Fit", zoom: func(cfg zoom.Config) float64 { return cfg.MinZoom }},
	{label: "2x", zoom: func(zoom.Config) float64 { return 2 }},
	{label: "Max", zoom: func(cfg zoom.Config) float64 { return cfg.MaxZoom }},
}

// App hosts the Gio viewer window.
type App struct {
	window *app.Window
	theme  *material.Theme
	ops    op.Ops

	coord    *zoom.Coordinator
	imageOp  paint.ImageOp
	touches  *touchTracker
	verbose  bool
	viewport image.Point

	zoomInBtn   widget.Clickable
	zoomOutBtn  widget.Clickable
	zoomInIcon  *widget.Icon
	zoomOutIcon *widget.Icon
	presetMenu  *menu.DropdownMenu
	presetBtn   widget.Clickable
}

// New wires the window, coordinator and decoded image together. img must
// have the size the coordinator was built for.
func New(window *app.Window, coord *zoom.Coordinator, img image.Image) *App {
	a := &App{
		window:  window,
		theme:   material.NewTheme(),
		coord:   coord,
		imageOp: paint.NewImageOp(img),
		touches: newTouchTracker(),
	}
	a.zoomInIcon = a.makeIcon(icons.ActionZoomIn, "zoom in")
	a.zoomOutIcon = a.makeIcon(icons.ActionZoomOut, "zoom out")
	a.presetMenu = a.buildPresetMenu()
	return a
}

// SetVerbose routes coordinator diagnostics to the log.
func (a *App) SetVerbose(v bool) {
	a.verbose = v
	if v {
		a.coord.SetLogger(a.Logf)
	}
}

// Logf writes a viewer log line when verbose output is enabled.
func (a *App) Logf(format string, args ...any) {
	if !a.verbose {
		return
	}
	log.Printf("viewer: "+format, args...)
}

// Run processes Gio events until the window is closed.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) makeIcon(data []byte, name string) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		log.Printf("viewer: failed to load %s icon: %v", name, err)
		return nil
	}
	return icon
}

func (a *App) invalidate() {
	if a.window != nil {
		a.window.Invalidate()
	}
}

func (a *App) buildPresetMenu() *menu.DropdownMenu {
	opts := make([]menu.MenuOption, 0, len(zoomPresets))
	for _, p := range zoomPresets {
		preset := p
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				target := preset.zoom(a.coord.Config())
				a.Logf("preset %s -> zoom %v", preset.label, target)
				a.coord.ZoomTo(target)
				a.invalidate()
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, preset.label)
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(140)
	return drop
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	a.handleKeys(gtx)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutToolbar),
		layout.Flexed(1, a.layoutViewport),
		layout.Rigid(a.layoutStatus),
	)
}

func (a *App) handleKeys(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "+", Optional: key.ModShift},
			key.Filter{Name: "-"},
		)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		switch e.Name {
		case "+":
			a.stepZoom(1)
		case "-":
			a.stepZoom(-1)
		}
	}
}

func (a *App) stepZoom(dir float64) {
	current := a.coord.Committed().Scale
	a.Logf("step zoom %v from %v", dir, current)
	a.coord.ZoomTo(current + dir)
	a.invalidate()
}

func (a *App) layoutToolbar(gtx layout.Context) layout.Dimensions {
	if a.zoomInBtn.Clicked(gtx) {
		a.stepZoom(1)
	}
	if a.zoomOutBtn.Clicked(gtx) {
		a.stepZoom(-1)
	}
	if a.presetBtn.Clicked(gtx) {
		a.presetMenu.ToggleVisibility(gtx)
	}

	return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.IconButton(a.theme, &a.zoomOutBtn, a.zoomOutIcon, "Zoom out").Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.IconButton(a.theme, &a.zoomInBtn, a.zoomInIcon, "Zoom in").Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				dims := material.Button(a.theme, &a.presetBtn, "Zoom").Layout(gtx)
				// Layout menu after button so it appears on top
				gvTheme := theme.NewTheme("", nil, true)
				a.presetMenu.Layout(gtx, gvTheme)
				return dims
			}),
		)
	})
}

func (a *App) layoutViewport(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	if size != a.viewport {
		a.viewport = size
		if a.coord.Measure(geom.Size{Width: float64(size.X), Height: float64(size.Y)}) {
			a.Logf("viewport measured %dx%d", size.X, size.Y)
		}
	}

	handled := false
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: a.touches,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			if a.touches.Handle(pe, a.toLocal, a.coord) {
				handled = true
			}
		}
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, color.NRGBA{R: 24, G: 24, B: 28, A: 255})
	event.Op(gtx.Ops, a.touches)

	aff := imageAffine(a.coord.CurrentTransform(), a.coord.Viewport(), a.coord.Image())
	stack := op.Affine(aff).Push(gtx.Ops)
	a.imageOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	stack.Pop()

	if handled || a.coord.Animating() {
		gtx.Execute(op.InvalidateCmd{})
	}
	return layout.Dimensions{Size: size}
}

func (a *App) layoutStatus(gtx layout.Context) layout.Dimensions {
	t := a.coord.CurrentTransform()
	msg := fmt.Sprintf("zoom %.2fx  offset %.0f, %.0f  %s", t.Scale, t.TranslateX, t.TranslateY, a.coord.State())
	return layout.UniformInset(unit.Dp(6)).Layout(gtx, material.Caption(a.theme, msg).Layout)
}

// toLocal maps a viewport point to image pixels under the displayed
// transform.
func (a *App) toLocal(p geom.Point) geom.Point {
	return a.coord.CurrentTransform().ViewportToImage(p, a.coord.Viewport(), a.coord.Image())
}

// imageAffine places image pixels: centered, fitted to the viewport width,
// scaled by the zoom about the image center and then translated.
func imageAffine(t zoom.TransformState, viewport geom.Size, img zoom.ImageGeometry) f32.Affine2D {
	if viewport.IsZero() {
		return f32.Affine2D{}
	}
	s := float32(t.RenderScale(viewport, img))
	return f32.Affine2D{}.
		Offset(f32.Pt(-float32(img.Width)/2, -float32(img.Height)/2)).
		Scale(f32.Point{}, f32.Pt(s, s)).
		Offset(f32.Pt(float32(viewport.Width/2+t.TranslateX), float32(viewport.Height/2+t.TranslateY)))
}
