package sim

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/gravwell/config"
)

// Particle is the host-side layout of one point mass. After upload the GPU
// owns it exclusively; the host never reads particles back.
type Particle struct {
	Position [3]float32
	Velocity [3]float32
}

// GenerateField produces the initial particle population for the configured
// profile. Deterministic for a fixed seed.
func GenerateField(fc config.FieldConfig, count int, gm float64) []Particle {
	slog.Info("generating particle field",
		"profile", fc.Profile,
		"count", count,
		"seed", fc.Seed,
	)

	switch fc.Profile {
	case "infall-stream":
		return infallStream(fc, count, gm)
	default:
		return galaxyDisk(fc, count, gm)
	}
}

// galaxyDisk places particles in a flat annulus on near-circular orbits:
// tangential speed sqrt(GM/r) with a small fractional perturbation so the
// disk does not rotate as a rigid ring.
func galaxyDisk(fc config.FieldConfig, count int, gm float64) []Particle {
	src := rand.NewPCG(fc.Seed, 0)
	radius := distuv.Uniform{Min: fc.RMin, Max: fc.RMax, Src: src}
	angle := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}
	jitter := distuv.Uniform{Min: -fc.ZJitter, Max: fc.ZJitter, Src: src}
	perturb := distuv.Uniform{Min: -fc.Perturbation, Max: fc.Perturbation, Src: src}
	tilt := distuv.Uniform{Min: -0.02, Max: 0.02, Src: src}

	particles := make([]Particle, count)
	for i := range particles {
		r := radius.Rand()
		if r < fc.RMin {
			r = fc.RMin // orbital speed divides by r
		}
		theta := angle.Rand()

		sin, cos := math.Sincos(theta)
		x := r * cos
		y := r * sin
		z := jitter.Rand()

		speed := math.Sqrt(gm/r) * (1 + perturb.Rand())

		// Tangential direction with a slight out-of-plane tilt,
		// renormalized so the drawn speed is exact.
		dx, dy, dz := -sin, cos, tilt.Rand()
		norm := math.Sqrt(dx*dx + dy*dy + dz*dz)

		particles[i] = Particle{
			Position: [3]float32{float32(x), float32(y), float32(z)},
			Velocity: [3]float32{
				float32(dx / norm * speed),
				float32(dy / norm * speed),
				float32(dz / norm * speed),
			},
		}
	}
	return particles
}

// infallStream seeds a minority of stars near the center on slow circular
// orbits, then injects the rest as a parallel stream falling toward it.
func infallStream(fc config.FieldConfig, count int, gm float64) []Particle {
	src := rand.NewPCG(fc.Seed, 0)
	radius := distuv.Uniform{Min: fc.CloseRMin, Max: fc.CloseRMax, Src: src}
	angle := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}
	elevation := distuv.Uniform{Min: -0.5, Max: 0.5, Src: src}
	lateral := distuv.Uniform{Min: -fc.StreamHalfWidth, Max: fc.StreamHalfWidth, Src: src}

	particles := make([]Particle, count)

	closeStars := fc.CloseStars
	if closeStars > count {
		closeStars = count
	}

	for i := 0; i < closeStars; i++ {
		r := radius.Rand()
		if r < fc.CloseRMin {
			r = fc.CloseRMin
		}
		theta := angle.Rand()
		phi := elevation.Rand()

		sinT, cosT := math.Sincos(theta)
		cosP := math.Cos(phi)

		// Flattened shell: full radius in the plane, squashed vertically.
		x := r * cosT * cosP
		y := r * math.Sin(phi) * 0.3
		z := r * sinT * cosP

		speed := math.Sqrt(gm/r) * fc.CloseSpeedFactor

		particles[i] = Particle{
			Position: [3]float32{float32(x), float32(y), float32(z)},
			Velocity: [3]float32{float32(-sinT * speed), 0, float32(cosT * speed)},
		}
	}

	for i := closeStars; i < count; i++ {
		particles[i] = Particle{
			Position: [3]float32{
				float32(fc.StreamX),
				float32(lateral.Rand()),
				float32(fc.StreamZ),
			},
			Velocity: [3]float32{float32(fc.StreamSpeed), 0, 0},
		}
	}

	return particles
}

// PackParticles flattens particles into the std430 buffer layout the kernels
// expect: two vec4s per particle, xyz used and w zero.
func PackParticles(particles []Particle) []float32 {
	data := make([]float32, 0, len(particles)*8)
	for _, p := range particles {
		data = append(data,
			p.Position[0], p.Position[1], p.Position[2], 0,
			p.Velocity[0], p.Velocity[1], p.Velocity[2], 0,
		)
	}
	return data
}
