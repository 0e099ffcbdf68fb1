package input

import (
	"testing"

	"github.com/pthm-cable/gravwell/camera"
)

func newAggregator(rotate bool) *Aggregator {
	return New(Options{
		DeadZone:          0.1,
		RotateSensitivity: 0.01,
		PinchSensitivity:  0.5,
		RotateEnabled:     rotate,
	})
}

func newTestCamera(mode camera.Mode) *camera.Camera {
	cam := camera.New(mode, 0.01, 10.0, 0.001, 2000.0)
	cam.SetAspectRatio(4.0 / 3.0)
	return cam
}

func TestPrimaryDragRotates3D(t *testing.T) {
	agg := newAggregator(true)
	cam := newTestCamera(camera.Perspective3D)

	agg.Push(PointerDown{Button: ButtonPrimary, X: 100, Y: 100})
	agg.Push(PointerMove{X: 150, Y: 120})
	agg.UpdateCamera(cam)

	// dx=50, dy=20 at sensitivity 0.01
	if cam.RotationY != 0.5 {
		t.Errorf("yaw = %f, want 0.5", cam.RotationY)
	}
	if cam.RotationX != 0.2 {
		t.Errorf("pitch = %f, want 0.2", cam.RotationX)
	}
}

func TestPrimaryDragPans2D(t *testing.T) {
	agg := newAggregator(false)
	cam := newTestCamera(camera.Orthographic2D)

	agg.Push(PointerDown{Button: ButtonPrimary, X: 100, Y: 100})
	agg.Push(PointerMove{X: 110, Y: 90})
	agg.UpdateCamera(cam)

	if cam.Position.X() != -10 {
		t.Errorf("x = %f, want -10", cam.Position.X())
	}
	if cam.Position.Y() != -10 {
		t.Errorf("y = %f, want -10", cam.Position.Y())
	}
}

func TestSecondaryButtonPans(t *testing.T) {
	agg := newAggregator(true)
	cam := newTestCamera(camera.Perspective3D)

	agg.Push(PointerDown{Button: ButtonSecondary, X: 0, Y: 0})
	agg.Push(PointerMove{X: 20, Y: 0})
	agg.UpdateCamera(cam)

	if cam.Position.X() != -20 {
		t.Errorf("x = %f, want -20", cam.Position.X())
	}
	if cam.RotationY != 0 {
		t.Errorf("secondary button must not rotate, yaw = %f", cam.RotationY)
	}
}

func TestMoveEventsCollapseIntoOneUpdate(t *testing.T) {
	agg := newAggregator(true)
	cam := newTestCamera(camera.Perspective3D)

	agg.Push(PointerDown{Button: ButtonPrimary, X: 0, Y: 0})
	// Many intermediate samples between frames: only the net delta counts.
	agg.Push(PointerMove{X: 10, Y: 0})
	agg.Push(PointerMove{X: 20, Y: 0})
	agg.Push(PointerMove{X: 30, Y: 0})
	agg.UpdateCamera(cam)

	if cam.RotationY != 0.3 {
		t.Errorf("yaw = %f, want 0.3 (single collapsed update)", cam.RotationY)
	}
}

func TestDeadZoneSuppressesJitter(t *testing.T) {
	agg := newAggregator(true)
	cam := newTestCamera(camera.Perspective3D)

	agg.Push(PointerDown{Button: ButtonPrimary, X: 100, Y: 100})
	agg.Push(PointerMove{X: 100.05, Y: 100.05})
	agg.UpdateCamera(cam)

	if cam.RotationX != 0 || cam.RotationY != 0 {
		t.Errorf("sub-deadzone move rotated camera: (%f, %f)", cam.RotationX, cam.RotationY)
	}
}

func TestPointerUpClearsModes(t *testing.T) {
	agg := newAggregator(true)
	cam := newTestCamera(camera.Perspective3D)

	agg.Push(PointerDown{Button: ButtonPrimary, X: 0, Y: 0})
	agg.Push(PointerUp{})
	agg.Push(PointerMove{X: 500, Y: 500})
	agg.UpdateCamera(cam)

	if cam.RotationX != 0 || cam.RotationY != 0 {
		t.Error("camera rotated after pointer up")
	}
}

func TestWheelZoomIsOneShot(t *testing.T) {
	agg := newAggregator(true)
	cam := newTestCamera(camera.Perspective3D)

	// Scroll up (negative browser-style delta) zooms in.
	agg.Push(Wheel{DeltaY: -100})
	agg.UpdateCamera(cam)
	zoomed := cam.Scale
	if zoomed <= 1.0 {
		t.Fatalf("scale = %f, want > 1 after zoom in", zoomed)
	}

	// Next frame with no new wheel events must not zoom again.
	agg.UpdateCamera(cam)
	if cam.Scale != zoomed {
		t.Errorf("zoom delta applied twice: %f -> %f", zoomed, cam.Scale)
	}
}

func TestWheelScrollDownZoomsOut(t *testing.T) {
	agg := newAggregator(true)
	cam := newTestCamera(camera.Perspective3D)

	agg.Push(Wheel{DeltaY: 100})
	agg.UpdateCamera(cam)

	if cam.Scale >= 1.0 {
		t.Errorf("scale = %f, want < 1 after scroll down", cam.Scale)
	}
}

func TestPinchShrinkZoomsOut(t *testing.T) {
	agg := newAggregator(true)
	cam := newTestCamera(camera.Perspective3D)

	agg.Push(TouchStart{Points: []Point{{100, 100}, {200, 100}}})
	agg.Push(TouchMove{Points: []Point{{125, 100}, {175, 100}}})
	agg.UpdateCamera(cam)

	// Contact distance shrank from 100 to 50: zoom out.
	if cam.Scale >= 1.0 {
		t.Errorf("scale = %f, want < 1 after pinch in", cam.Scale)
	}
}

func TestPinchGrowZoomsIn(t *testing.T) {
	agg := newAggregator(true)
	cam := newTestCamera(camera.Perspective3D)

	agg.Push(TouchStart{Points: []Point{{100, 100}, {150, 100}}})
	agg.Push(TouchMove{Points: []Point{{50, 100}, {200, 100}}})
	agg.UpdateCamera(cam)

	if cam.Scale <= 1.0 {
		t.Errorf("scale = %f, want > 1 after pinch out", cam.Scale)
	}
}

func TestSingleTouchRotates(t *testing.T) {
	agg := newAggregator(true)
	cam := newTestCamera(camera.Perspective3D)

	agg.Push(TouchStart{Points: []Point{{100, 100}}})
	agg.Push(TouchMove{Points: []Point{{200, 100}}})
	agg.UpdateCamera(cam)

	if cam.RotationY != 1.0 {
		t.Errorf("yaw = %f, want 1.0", cam.RotationY)
	}
}

func TestTouchEndResetsPinchBaseline(t *testing.T) {
	agg := newAggregator(true)
	cam := newTestCamera(camera.Perspective3D)

	agg.Push(TouchStart{Points: []Point{{0, 0}, {100, 0}}})
	agg.Push(TouchEnd{Points: nil})
	// A new gesture starting wide must not read the old baseline.
	agg.Push(TouchStart{Points: []Point{{0, 0}, {300, 0}}})
	agg.UpdateCamera(cam)

	if cam.Scale != 1.0 {
		t.Errorf("scale = %f, want 1.0 (no zoom from baseline change)", cam.Scale)
	}
}

func TestPauseEdgeConsumedOnce(t *testing.T) {
	agg := newAggregator(true)

	agg.Push(KeyDown{Key: KeyPause})
	if !agg.PauseToggled() {
		t.Fatal("expected pause toggle")
	}
	if agg.PauseToggled() {
		t.Error("pause edge consumed twice for one press")
	}

	// A second physical press produces a second edge.
	agg.Push(KeyDown{Key: KeyPause})
	if !agg.PauseToggled() {
		t.Error("expected pause toggle for second press")
	}
}

func TestResetEdgeConsumedOnce(t *testing.T) {
	agg := newAggregator(true)
	cam := newTestCamera(camera.Perspective3D)

	cam.Rotate(1.0, 0.5)
	agg.Push(KeyDown{Key: KeyReset})
	agg.UpdateCamera(cam)

	if cam.RotationX != 0 || cam.RotationY != 0 {
		t.Fatal("reset did not restore camera")
	}

	// Mutate again: a second frame without a new press must not reset.
	cam.Rotate(1.0, 0.5)
	agg.UpdateCamera(cam)
	if cam.RotationY != 1.0 {
		t.Errorf("yaw = %f, want 1.0 (reset fired twice)", cam.RotationY)
	}
}
