// Package graphics owns the window and the GL context the simulation
// renders into.
package graphics

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Context wraps the GLFW window and its OpenGL 4.3 context. All methods
// must run on the main thread; the caller locks it before construction.
type Context struct {
	window *glfw.Window
	width  int
	height int

	pendingW, pendingH int
	resized            bool
}

// New initializes GLFW, creates the window, and loads GL. Failure here is
// fatal for the application: there is nothing to render into.
func New(width, height int, title string, vsync bool) (*Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("graphics: initializing glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("graphics: creating window: %w", err)
	}

	window.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("graphics: loading gl: %w", err)
	}

	slog.Info("graphics context ready",
		"gl_version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)

	c := &Context{window: window, width: width, height: height}
	c.Configure(width, height)

	// Resizes land here during PollEvents; the frame loop applies them
	// between frames via TakeResize.
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		c.pendingW, c.pendingH = w, h
		c.resized = true
	})

	return c, nil
}

// Configure applies new framebuffer dimensions.
func (c *Context) Configure(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// TakeResize consumes a pending resize, if any.
func (c *Context) TakeResize() (width, height int, ok bool) {
	if !c.resized {
		return 0, 0, false
	}
	c.resized = false
	return c.pendingW, c.pendingH, true
}

// Drawable reports whether the framebuffer can currently be rendered into.
// A minimized window has a zero-sized framebuffer; that frame is skipped,
// not failed.
func (c *Context) Drawable() bool {
	return c.width > 0 && c.height > 0 && c.window.GetAttrib(glfw.Iconified) == glfw.False
}

// BeginFrame clears the color and depth attachments.
func (c *Context) BeginFrame() {
	gl.ClearColor(0.01, 0.01, 0.05, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Present swaps the back buffer to the screen.
func (c *Context) Present() {
	c.window.SwapBuffers()
}

// Size returns the current framebuffer dimensions.
func (c *Context) Size() (int, int) {
	return c.width, c.height
}

// Window exposes the underlying window for input binding.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// ShouldClose reports whether the user asked to close the window.
func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

// Destroy tears down the window and GLFW.
func (c *Context) Destroy() {
	c.window.Destroy()
	glfw.Terminate()
}
