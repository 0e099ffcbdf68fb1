// Package input translates raw pointer, touch, and key events into per-frame
// camera and run-state changes.
//
// Raw event producers enqueue typed events into an Aggregator mailbox; the
// frame loop drains it exactly once per frame. Everything runs on the main
// thread, so the mailbox needs no locking.
package input

import (
	"math"

	"github.com/pthm-cable/gravwell/camera"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary   Button = iota // rotate (3D) or drag (2D)
	ButtonSecondary               // pan
)

// Key identifies the control keys the aggregator cares about.
type Key int

const (
	KeyPause Key = iota
	KeyReset
)

// Point is a touch contact position in screen pixels.
type Point struct {
	X, Y float32
}

// Event is a raw input event. Producers construct one of the concrete
// event types below and hand it to Aggregator.Push.
type Event interface {
	isEvent()
}

// PointerDown reports a button press at a position.
type PointerDown struct {
	Button Button
	X, Y   float32
}

// PointerMove reports the current pointer position.
type PointerMove struct {
	X, Y float32
}

// PointerUp reports release of all pointer buttons.
type PointerUp struct{}

// Wheel reports a scroll step. Positive DeltaY is scroll-down.
type Wheel struct {
	DeltaY float32
}

// TouchStart reports the full set of active contacts after a touch began.
type TouchStart struct {
	Points []Point
}

// TouchMove reports updated positions for all active contacts.
type TouchMove struct {
	Points []Point
}

// TouchEnd reports the remaining contacts after a touch lifted.
type TouchEnd struct {
	Points []Point
}

// KeyDown reports a control key press.
type KeyDown struct {
	Key Key
}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Wheel) isEvent()       {}
func (TouchStart) isEvent()  {}
func (TouchMove) isEvent()   {}
func (TouchEnd) isEvent()    {}
func (KeyDown) isEvent()     {}

// Options configures aggregation behavior.
type Options struct {
	// DeadZone suppresses pointer deltas smaller than this magnitude.
	DeadZone float32
	// RotateSensitivity converts pointer pixels to radians.
	RotateSensitivity float32
	// PinchSensitivity converts pinch-distance change to a zoom delta.
	PinchSensitivity float32
	// RotateEnabled maps the primary button to rotation. When false
	// (2D cameras) the primary button drags instead.
	RotateEnabled bool
}

// Aggregator collapses raw events into one camera update per frame.
//
// Move events only record positions; UpdateCamera computes deltas against the
// last consumed position, so any number of events between frames produce a
// single camera mutation. Pause and reset are edge-triggered: set once per
// physical press, cleared by exactly one consumer read.
type Aggregator struct {
	opts  Options
	queue []Event

	pointerX, pointerY float32
	lastX, lastY       float32
	dragActive         bool
	rotateActive       bool
	zoomDelta          float32
	pinchLast          float32
	touchCount         int
	pausePending       bool
	resetPending       bool
}

// New creates an aggregator with the given options.
func New(opts Options) *Aggregator {
	return &Aggregator{opts: opts}
}

// Push enqueues a raw event for the next frame's drain.
func (a *Aggregator) Push(ev Event) {
	a.queue = append(a.queue, ev)
}

// drain runs the per-event state machine over the queued events.
func (a *Aggregator) drain() {
	for _, ev := range a.queue {
		switch e := ev.(type) {
		case PointerDown:
			switch e.Button {
			case ButtonPrimary:
				if a.opts.RotateEnabled {
					a.rotateActive = true
				} else {
					a.dragActive = true
				}
			case ButtonSecondary:
				a.dragActive = true
			}
			a.pointerX, a.pointerY = e.X, e.Y
			a.lastX, a.lastY = e.X, e.Y

		case PointerMove:
			a.pointerX, a.pointerY = e.X, e.Y

		case PointerUp:
			a.dragActive = false
			a.rotateActive = false

		case Wheel:
			// Scroll-down zooms out. One-shot: consumed by UpdateCamera.
			a.zoomDelta = -e.DeltaY

		case TouchStart:
			a.touchCount = len(e.Points)
			if a.touchCount == 1 {
				a.rotateActive = true
				p := e.Points[0]
				a.pointerX, a.pointerY = p.X, p.Y
				a.lastX, a.lastY = p.X, p.Y
			}
			if a.touchCount >= 2 {
				a.rotateActive = false
				a.pinchLast = dist(e.Points[0], e.Points[1])
			}

		case TouchMove:
			if len(e.Points) >= 2 {
				d := dist(e.Points[0], e.Points[1])
				if a.pinchLast > 0 {
					a.zoomDelta = (d - a.pinchLast) * a.opts.PinchSensitivity
				}
				a.pinchLast = d
			} else if len(e.Points) == 1 {
				p := e.Points[0]
				a.pointerX, a.pointerY = p.X, p.Y
			}

		case TouchEnd:
			a.touchCount = len(e.Points)
			if a.touchCount == 0 {
				a.rotateActive = false
				a.pinchLast = 0
			}

		case KeyDown:
			switch e.Key {
			case KeyPause:
				a.pausePending = true
			case KeyReset:
				a.resetPending = true
			}
		}
	}
	a.queue = a.queue[:0]
}

// UpdateCamera drains the mailbox and applies the accumulated input to the
// camera: rotation or drag from pointer deltas, one-shot zoom, and a pending
// reset. Called exactly once per frame.
func (a *Aggregator) UpdateCamera(cam *camera.Camera) {
	a.drain()

	if a.rotateActive {
		dx := a.pointerX - a.lastX
		dy := a.pointerY - a.lastY
		if absf(dx) > a.opts.DeadZone || absf(dy) > a.opts.DeadZone {
			cam.Rotate(dx*a.opts.RotateSensitivity, dy*a.opts.RotateSensitivity)
			a.lastX, a.lastY = a.pointerX, a.pointerY
		}
	}

	if a.dragActive {
		dx := a.pointerX - a.lastX
		dy := a.pointerY - a.lastY
		if absf(dx) > a.opts.DeadZone || absf(dy) > a.opts.DeadZone {
			cam.Pan(dx, dy)
			a.lastX, a.lastY = a.pointerX, a.pointerY
		}
	}

	if absf(a.zoomDelta) > a.opts.DeadZone {
		cam.Zoom(a.zoomDelta)
	}
	a.zoomDelta = 0

	if a.resetPending {
		cam.Reset()
		a.resetPending = false
	}
}

// PauseToggled consumes the pause edge flag. Returns true at most once per
// physical press.
func (a *Aggregator) PauseToggled() bool {
	a.drain()
	if a.pausePending {
		a.pausePending = false
		return true
	}
	return false
}

func dist(p, q Point) float32 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return float32(math.Hypot(dx, dy))
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
