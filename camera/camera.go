// Package camera provides the view/projection model for the particle view.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects the projection strategy.
type Mode int

const (
	// Orthographic2D views the plane top-down with pan and zoom.
	Orthographic2D Mode = iota
	// Perspective3D orbits the origin with yaw/pitch rotation.
	Perspective3D
)

// Pitch is clamped to this range so the camera never flips past the poles.
const maxPitch = 1.5

// Camera controls the viewport into the particle field.
// It holds no GPU state; BuildViewProjection derives a matrix from the
// current pose and the caller writes it into the camera uniform.
type Camera struct {
	Position  mgl32.Vec3
	Scale     float32
	Aspect    float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians
	Mode      Mode

	// Scale constraints and sensitivities
	MinScale float32
	MaxScale float32
	ZoomK    float32
	FarPlane float32

	home pose
}

// pose is the resettable part of the camera state.
type pose struct {
	position  mgl32.Vec3
	scale     float32
	rotationX float32
	rotationY float32
}

// New creates a camera at the default pose looking at the origin.
func New(mode Mode, minScale, maxScale, zoomK, farPlane float32) *Camera {
	c := &Camera{
		Position: mgl32.Vec3{0, 0, 800},
		Scale:    1.0,
		Aspect:   1.0,
		Mode:     mode,
		MinScale: minScale,
		MaxScale: maxScale,
		ZoomK:    zoomK,
		FarPlane: farPlane,
	}
	c.home = pose{position: c.Position, scale: c.Scale}
	return c
}

// SetAspectRatio updates the aspect ratio after a resize.
func (c *Camera) SetAspectRatio(aspect float32) {
	c.Aspect = aspect
}

// Pan moves the camera by a screen-space delta, scaled so panning covers the
// same on-screen distance at any zoom level. Y is flipped: screen down is
// world up.
func (c *Camera) Pan(dx, dy float32) {
	c.Position[0] -= dx / c.Scale
	c.Position[1] += dy / c.Scale
}

// Zoom applies a multiplicative zoom step and clamps the scale so the
// projection never degenerates or inverts.
func (c *Camera) Zoom(delta float32) {
	c.Scale *= 1.0 + delta*c.ZoomK
	c.Scale = clamp(c.Scale, c.MinScale, c.MaxScale)
}

// Rotate adjusts yaw and pitch. Yaw is unbounded; pitch is clamped to keep
// the orbit from crossing the poles. No-op in 2D mode.
func (c *Camera) Rotate(dx, dy float32) {
	if c.Mode != Perspective3D {
		return
	}
	c.RotationY += dx
	c.RotationX = clamp(c.RotationX+dy, -maxPitch, maxPitch)
}

// Reset restores the construction-time pose exactly.
func (c *Camera) Reset() {
	c.Position = c.home.position
	c.Scale = c.home.scale
	c.RotationX = c.home.rotationX
	c.RotationY = c.home.rotationY
}

// BuildViewProjection derives the view-projection matrix from the current
// state. Pure; does not mutate the camera.
func (c *Camera) BuildViewProjection() mgl32.Mat4 {
	if c.Mode == Perspective3D {
		// Orbit the origin: place the eye at (0,0,distance) rotated by
		// pitch then yaw, looking back at the center.
		distance := 800.0 / c.Scale
		rot := mgl32.Rotate3DY(c.RotationY).Mul3(mgl32.Rotate3DX(c.RotationX))
		eye := rot.Mul3x1(mgl32.Vec3{0, 0, distance})

		view := mgl32.LookAtV(eye, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
		proj := mgl32.Perspective(mgl32.DegToRad(45), c.Aspect, 0.1, c.FarPlane)
		return proj.Mul4(view)
	}

	halfW := 1000.0 / c.Scale
	halfH := halfW / c.Aspect
	return mgl32.Ortho(
		c.Position.X()-halfW, c.Position.X()+halfW,
		c.Position.Y()-halfH, c.Position.Y()+halfH,
		-1000, 1000,
	)
}

// WorldToScreen projects a world position to pixel coordinates.
// The returned Z is the NDC depth.
func (c *Camera) WorldToScreen(world mgl32.Vec3, screenW, screenH float32) mgl32.Vec3 {
	clip := c.BuildViewProjection().Mul4x1(world.Vec4(1))
	w := clip.W()
	if w == 0 {
		w = 1
	}
	ndc := clip.Vec3().Mul(1 / w)
	return mgl32.Vec3{
		(ndc.X() + 1) * 0.5 * screenW,
		(1 - ndc.Y()) * 0.5 * screenH,
		ndc.Z(),
	}
}

// ScreenToWorld unprojects pixel coordinates onto the Z=0 NDC plane.
// A singular view-projection falls back to the identity rather than
// producing NaNs.
func (c *Camera) ScreenToWorld(screen mgl32.Vec3, screenW, screenH float32) mgl32.Vec3 {
	ndcX := (screen.X()/screenW)*2 - 1
	ndcY := 1 - (screen.Y()/screenH)*2

	inv := c.BuildViewProjection().Inv()
	if inv == (mgl32.Mat4{}) {
		inv = mgl32.Ident4()
	}

	world := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 0, 1})
	w := world.W()
	if w == 0 {
		w = 1
	}
	return world.Vec3().Mul(1 / w)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
