// Package sim owns the GPU-resident particle state and the compute and
// render kernels that advance and draw it.
package sim

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/shaders"
)

// Params is the host-owned, GPU-mirrored scalar record at uniform binding 1
// of the compute kernel. Only DT changes after construction.
type Params struct {
	DT    float32
	GM    float32
	Count uint32
}

// pack lays Params out as the std140 uniform block expects: three scalars
// and explicit tail padding to 16 bytes.
func (p Params) pack() [4]uint32 {
	return [4]uint32{
		math.Float32bits(p.DT),
		math.Float32bits(p.GM),
		p.Count,
		0,
	}
}

// DispatchGroups returns the number of workgroups needed to cover count
// particles: the ceiling of count over the workgroup size.
func DispatchGroups(count, workgroupSize uint32) uint32 {
	return (count + workgroupSize - 1) / workgroupSize
}

// ClampDT caps a frame timestep so a stalled frame cannot destabilize the
// integration.
func ClampDT(dt, max float32) float32 {
	if dt > max {
		return max
	}
	return dt
}

// Engine owns the particle and parameter buffers plus the compiled kernels.
// All methods must run on the thread holding the GL context; buffer writes
// and dispatches are ordered by call order on the single GL queue.
type Engine struct {
	particleSSBO uint32
	paramsUBO    uint32
	cameraUBO    uint32

	computeProgram uint32
	renderProgram  uint32
	vao            uint32

	params        Params
	maxDT         float32
	workgroupSize uint32
}

// NewEngine uploads the initial particle field and builds both kernels.
// Kernel construction failure is fatal: no valid frame can be produced
// without them.
func NewEngine(cfg *config.Config) (*Engine, error) {
	e := &Engine{
		params: Params{
			DT:    1.0 / 60.0,
			GM:    cfg.Derived.GM32,
			Count: cfg.Derived.ParticleCount32,
		},
		maxDT:         cfg.Derived.MaxDT32,
		workgroupSize: uint32(cfg.Simulation.WorkgroupSize),
	}

	var err error
	e.computeProgram, err = shaders.NewComputeProgram(shaders.ParticleUpdate)
	if err != nil {
		return nil, fmt.Errorf("sim: building compute pipeline: %w", err)
	}
	e.renderProgram, err = shaders.NewRenderProgram(shaders.PointVert, shaders.PointFrag)
	if err != nil {
		gl.DeleteProgram(e.computeProgram)
		return nil, fmt.Errorf("sim: building render pipeline: %w", err)
	}

	particles := GenerateField(cfg.Field, cfg.Simulation.ParticleCount, cfg.Simulation.GM)
	data := PackParticles(particles)

	gl.GenBuffers(1, &e.particleSSBO)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, e.particleSSBO)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)

	packed := e.params.pack()
	gl.GenBuffers(1, &e.paramsUBO)
	gl.BindBuffer(gl.UNIFORM_BUFFER, e.paramsUBO)
	gl.BufferData(gl.UNIFORM_BUFFER, len(packed)*4, gl.Ptr(packed[:]), gl.DYNAMIC_DRAW)

	ident := mgl32.Ident4()
	gl.GenBuffers(1, &e.cameraUBO)
	gl.BindBuffer(gl.UNIFORM_BUFFER, e.cameraUBO)
	gl.BufferData(gl.UNIFORM_BUFFER, 16*4, gl.Ptr(&ident[0]), gl.DYNAMIC_DRAW)

	// Core profile requires a bound VAO to draw, even with no attributes.
	gl.GenVertexArrays(1, &e.vao)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	slog.Info("simulation engine ready",
		"particles", e.params.Count,
		"gm", e.params.GM,
		"workgroups", DispatchGroups(e.params.Count, e.workgroupSize),
		"workgroup_size", e.workgroupSize,
	)

	return e, nil
}

// Update clamps the frame timestep and mirrors the parameter record to the
// GPU. Must precede ComputePass within the frame.
func (e *Engine) Update(dt float32) {
	e.params.DT = ClampDT(dt, e.maxDT)
	packed := e.params.pack()
	gl.BindBuffer(gl.UNIFORM_BUFFER, e.paramsUBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(packed)*4, gl.Ptr(packed[:]))
}

// DT returns the timestep written by the last Update.
func (e *Engine) DT() float32 {
	return e.params.DT
}

// ComputePass dispatches one integration step over the particle buffer.
// The trailing barrier orders the storage writes before any render pass
// recorded after it.
func (e *Engine) ComputePass() {
	gl.UseProgram(e.computeProgram)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, e.particleSSBO)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, 1, e.paramsUBO)

	groups := DispatchGroups(e.params.Count, e.workgroupSize)
	gl.DispatchCompute(groups, 1, 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)
}

// UpdateCamera writes the view-projection matrix into the camera uniform.
// Must be called before RenderPass in the same frame.
func (e *Engine) UpdateCamera(viewProj mgl32.Mat4) {
	gl.BindBuffer(gl.UNIFORM_BUFFER, e.cameraUBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, 16*4, gl.Ptr(&viewProj[0]))
}

// RenderPass draws every particle as a point. Runs every frame, paused or
// not: the view stays live while physics is frozen.
func (e *Engine) RenderPass() {
	gl.UseProgram(e.renderProgram)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, 0, e.cameraUBO)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 1, e.particleSSBO)

	gl.BindVertexArray(e.vao)
	gl.DrawArrays(gl.POINTS, 0, int32(e.params.Count))
	gl.BindVertexArray(0)
}

// Unload releases GPU resources.
func (e *Engine) Unload() {
	gl.DeleteBuffers(1, &e.particleSSBO)
	gl.DeleteBuffers(1, &e.paramsUBO)
	gl.DeleteBuffers(1, &e.cameraUBO)
	gl.DeleteVertexArrays(1, &e.vao)
	gl.DeleteProgram(e.computeProgram)
	gl.DeleteProgram(e.renderProgram)
}
