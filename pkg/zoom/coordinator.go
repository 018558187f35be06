package zoom

import (
	"fmt"
	"time"

	"github.com/OpenTraceLab/pinchzoom/pkg/anim"
	"github.com/OpenTraceLab/pinchzoom/pkg/geom"
)

// State is the gesture state of a Coordinator.
type State uint8

const (
	StateIdle State = iota
	StatePanning
	StatePinching
)

var stateNames = map[State]string{
	StateIdle:     "Idle",
	StatePanning:  "Panning",
	StatePinching: "Pinching",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", s)
}

// Resolver looks up the intrinsic size of an image reference.
type Resolver interface {
	Resolve(ref string) (geom.Size, error)
}

// Snapshot is a copy of the coordinator state for rendering and debugging.
type Snapshot struct {
	State     State          `json:"state"`
	Measured  bool           `json:"measured"`
	Viewport  geom.Size      `json:"viewport"`
	Image     ImageGeometry  `json:"image"`
	Committed TransformState `json:"committed"`
	Displayed TransformState `json:"displayed"`
	Bounds    *Bounds        `json:"bounds,omitempty"`
	Session   GestureSession `json:"session"`
	Animating bool           `json:"animating"`
}

// Coordinator turns gesture lifecycle events into a viewport transform.
//
// It keeps two transforms: the committed one, which is what the image settles
// to, and the displayed one, which follows the fingers live and animates
// towards the committed one after a gesture ends.
type Coordinator struct {
	cfg   Config
	image ImageGeometry

	viewport geom.Size
	measured bool

	state     State
	committed TransformState
	session   GestureSession
	bounds    Bounds
	hasBounds bool
	taps      *DoubleTapDetector

	scale anim.Driver
	tx    anim.Driver
	ty    anim.Driver

	now  func() time.Time
	logf func(format string, args ...any)
}

// New builds a coordinator for an image of the given geometry. A nil cfg
// uses DefaultConfig.
func New(img ImageGeometry, cfg *Config) (*Coordinator, error) {
	if img.Width <= 0 || img.Height <= 0 {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidImage, img.Width, img.Height)
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	if err := c.Validate(); err != nil {
		return nil, err
	}

	start := Identity()
	return &Coordinator{
		cfg:       c,
		image:     img,
		committed: start,
		taps:      NewDoubleTapDetector(c.DoubleTapWindow),
		scale:     anim.NewValue(start.Scale),
		tx:        anim.NewValue(start.TranslateX),
		ty:        anim.NewValue(start.TranslateY),
		now:       time.Now,
		logf:      func(string, ...any) {},
	}, nil
}

// NewFromResolver resolves ref once and builds a coordinator for it. Any
// resolution failure is returned; there is no fallback size.
func NewFromResolver(r Resolver, ref string, cfg *Config) (*Coordinator, error) {
	size, err := r.Resolve(ref)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ref, err)
	}
	img, err := NewImageGeometry(size)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", ref, err)
	}
	return New(img, cfg)
}

// SetClock replaces the time source used for double-tap detection and
// animation.
func (c *Coordinator) SetClock(now func() time.Time) {
	if now != nil {
		c.now = now
	}
}

// SetLogger sets a callback for diagnostic messages such as dropped frames.
func (c *Coordinator) SetLogger(logf func(format string, args ...any)) {
	if logf != nil {
		c.logf = logf
	}
}

// Config returns the configuration in use.
func (c *Coordinator) Config() Config {
	return c.cfg
}

// Image returns the image geometry.
func (c *Coordinator) Image() ImageGeometry {
	return c.image
}

// Viewport returns the measured viewport, zero until Measure succeeds.
func (c *Coordinator) Viewport() geom.Size {
	return c.viewport
}

// State reports the current gesture state.
func (c *Coordinator) State() State {
	return c.state
}

// Session returns a copy of the gesture session.
func (c *Coordinator) Session() GestureSession {
	return c.session.Clone()
}

// Committed returns the transform the image is settling to.
func (c *Coordinator) Committed() TransformState {
	return c.committed
}

// Bounds returns the translation bounds at the last zoom change, if the
// viewport has been measured.
func (c *Coordinator) Bounds() (Bounds, bool) {
	return c.bounds, c.hasBounds
}

// Measure records the viewport size. Only the first non-empty measurement is
// used; it reports whether this call was the one.
func (c *Coordinator) Measure(viewport geom.Size) bool {
	if c.measured {
		return false
	}
	if viewport.IsZero() {
		c.logf("zoom: ignoring empty viewport %vx%v", viewport.Width, viewport.Height)
		return false
	}
	c.viewport = viewport
	c.measured = true
	c.updateBounds(c.committed.Scale)
	return true
}

// CurrentTransform returns the transform to render now. It is the identity
// until the viewport has been measured.
func (c *Coordinator) CurrentTransform() TransformState {
	if !c.measured {
		return Identity()
	}
	now := c.now()
	return TransformState{
		Scale:      c.scale.At(now),
		TranslateX: c.tx.At(now),
		TranslateY: c.ty.At(now),
	}
}

// Animating reports whether a settle animation is still running.
func (c *Coordinator) Animating() bool {
	now := c.now()
	return c.scale.Active(now) || c.tx.Active(now) || c.ty.Active(now)
}

// Snapshot copies the coordinator state.
func (c *Coordinator) Snapshot() Snapshot {
	s := Snapshot{
		State:     c.state,
		Measured:  c.measured,
		Viewport:  c.viewport,
		Image:     c.image,
		Committed: c.committed,
		Displayed: c.CurrentTransform(),
		Session:   c.session.Clone(),
		Animating: c.Animating(),
	}
	if c.hasBounds {
		b := c.bounds
		s.Bounds = &b
	}
	return s
}

// Start handles a touch-down that begins a gesture. It always claims the
// gesture. A running settle animation keeps going and the committed
// transform stays at its target, so a double-tap toggles against the zoom
// being settled to. A double-tap settles to the toggle zoom without entering
// an active state.
func (c *Coordinator) Start() bool {
	if c.state != StateIdle {
		c.logf("zoom: gesture started while %s, resetting session", c.state)
		c.reset()
	}
	if c.cfg.DoubleTapEnabled && c.taps.Tap(c.now()) {
		target := c.cfg.DoubleTapTarget(c.committed.Scale)
		c.logf("zoom: double-tap, zooming to %v", target)
		c.settle(target)
	}
	return true
}

// Move handles one batch of touches. delta is the drag distance of the
// gesture since Start.
func (c *Coordinator) Move(touches []Touch, delta geom.Point) {
	if !c.measured {
		c.logf("zoom: dropping move before layout")
		return
	}
	// Lifting one finger of a pinch must not turn it into a pan.
	if c.state == StatePinching && len(touches) == 1 {
		return
	}

	switch len(touches) {
	case 1:
		c.state = StatePanning
		c.session.ActiveTouchCount = 1
		c.pan(delta)
	case 2:
		c.state = StatePinching
		c.pinch(touches[0], touches[1])
	default:
		c.logf("zoom: ignoring move with %d touches", len(touches))
	}
}

// End handles the release of the last finger.
func (c *Coordinator) End(delta geom.Point) {
	c.release(delta)
}

// Terminate handles a gesture taken away by the host. It behaves like End.
func (c *Coordinator) Terminate(delta geom.Point) {
	c.release(delta)
}

// ZoomTo settles to target zoom programmatically. A target outside
// [MinZoom, MaxZoom] is clamped without re-centring on a focal point; only
// the translation is pulled into the new bounds.
func (c *Coordinator) ZoomTo(target float64) {
	c.settle(target)
}

// pan and pinch write the drivers directly, which cancels any settle
// animation on the axes they touch.
func (c *Coordinator) pan(delta geom.Point) {
	t := PanTranslate(c.committed.Translate(), delta)
	c.tx.Set(t.X)
	c.ty.Set(t.Y)
}

func (c *Coordinator) pinch(a, b Touch) {
	frame := Pinch(&c.cfg, c.viewport, c.image, c.committed, c.session, a, b)
	c.committed = frame.State
	c.session = frame.Session

	c.scale.Set(c.committed.Scale)
	c.tx.Set(c.committed.TranslateX)
	c.ty.Set(c.committed.TranslateY)
	c.updateBounds(c.committed.Scale)
}

func (c *Coordinator) release(delta geom.Point) {
	if !c.session.Zooming {
		c.committed.TranslateX += delta.X
		c.committed.TranslateY += delta.Y
	}
	c.settle(c.committed.Scale)
	c.reset()
}

func (c *Coordinator) reset() {
	c.session.Reset()
	c.state = StateIdle
}

func (c *Coordinator) settle(target float64) {
	if !c.measured {
		c.logf("zoom: cannot settle before layout")
		return
	}
	next, bounds := Settle(&c.cfg, c.viewport, c.image, c.committed, c.session.ZoomCenter, target)
	c.committed = next
	c.bounds = bounds
	c.hasBounds = true

	now := c.now()
	d := c.cfg.SettleDuration
	c.scale.AnimateTo(next.Scale, d, now)
	c.tx.AnimateTo(next.TranslateX, d, now)
	c.ty.AnimateTo(next.TranslateY, d, now)
}

func (c *Coordinator) updateBounds(zoom float64) {
	c.bounds, c.hasBounds = ComputeBounds(c.viewport, c.image, zoom)
}
