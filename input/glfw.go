package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// wheelStep scales one scroll notch into the delta range the zoom
// sensitivity expects.
const wheelStep = 100.0

// Bind installs GLFW callbacks that feed raw events into the aggregator's
// mailbox. Callbacks fire during glfw.PollEvents on the main thread, so they
// only enqueue; all interpretation happens in UpdateCamera.
//
// Desktop windows have no native context menu on secondary click, so
// secondary-button pans arrive uninterrupted without extra suppression.
func Bind(win *glfw.Window, agg *Aggregator) {
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			x, y := w.GetCursorPos()
			switch button {
			case glfw.MouseButtonLeft:
				agg.Push(PointerDown{Button: ButtonPrimary, X: float32(x), Y: float32(y)})
			case glfw.MouseButtonRight:
				agg.Push(PointerDown{Button: ButtonSecondary, X: float32(x), Y: float32(y)})
			}
		case glfw.Release:
			agg.Push(PointerUp{})
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		agg.Push(PointerMove{X: float32(x), Y: float32(y)})
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		// GLFW reports scroll-up as positive; wheel deltas use the
		// opposite convention.
		agg.Push(Wheel{DeltaY: float32(-yoff * wheelStep)})
	})

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeySpace:
			agg.Push(KeyDown{Key: KeyPause})
		case glfw.KeyR:
			agg.Push(KeyDown{Key: KeyReset})
		}
	})
}
