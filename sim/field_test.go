package sim

import (
	"math"
	"testing"

	"github.com/pthm-cable/gravwell/config"
)

func diskConfig() config.FieldConfig {
	return config.FieldConfig{
		Profile:      "galaxy-disk",
		Seed:         42,
		RMin:         50,
		RMax:         400,
		ZJitter:      4,
		Perturbation: 0.05,
	}
}

func streamConfig() config.FieldConfig {
	return config.FieldConfig{
		Profile:          "infall-stream",
		Seed:             42,
		CloseStars:       500,
		CloseRMin:        20,
		CloseRMax:        80,
		CloseSpeedFactor: 0.8,
		StreamX:          10,
		StreamZ:          100,
		StreamHalfWidth:  150,
		StreamSpeed:      150,
	}
}

const gm = 50000.0

func length3(v [3]float32) float64 {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	return math.Sqrt(x*x + y*y + z*z)
}

func dot3(a, b [3]float32) float64 {
	return float64(a[0])*float64(b[0]) + float64(a[1])*float64(b[1]) + float64(a[2])*float64(b[2])
}

func TestGalaxyDiskDeterministic(t *testing.T) {
	a := GenerateField(diskConfig(), 1000, gm)
	b := GenerateField(diskConfig(), 1000, gm)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs between identical seeds: %v vs %v", i, a[i], b[i])
		}
	}

	other := diskConfig()
	other.Seed = 43
	c := GenerateField(other, 1000, gm)
	same := 0
	for i := range a {
		if a[i] == c[i] {
			same++
		}
	}
	if same == len(a) {
		t.Error("different seeds produced identical fields")
	}
}

func TestGalaxyDiskOrbitalSpeeds(t *testing.T) {
	particles := GenerateField(diskConfig(), 4096, gm)

	for i, p := range particles {
		r := length3(p.Position)
		if r <= 0 {
			t.Fatalf("particle %d at zero radius", i)
		}

		kepler := math.Sqrt(gm / math.Hypot(float64(p.Position[0]), float64(p.Position[1])))
		speed := length3(p.Velocity)

		// Perturbation is at most 5%, plus a little slack for the
		// out-of-plane placement shifting r.
		if rel := math.Abs(speed-kepler) / kepler; rel > 0.06 {
			t.Fatalf("particle %d speed %f vs keplerian %f (rel %f)", i, speed, kepler, rel)
		}
	}
}

func TestGalaxyDiskVelocityPerpendicular(t *testing.T) {
	particles := GenerateField(diskConfig(), 4096, gm)

	for i, p := range particles {
		cos := dot3(p.Position, p.Velocity) / (length3(p.Position) * length3(p.Velocity))
		if math.Abs(cos) > 0.01 {
			t.Fatalf("particle %d velocity not perpendicular to radius: cos=%f", i, cos)
		}
	}
}

func TestGalaxyDiskRadiusRange(t *testing.T) {
	fc := diskConfig()
	particles := GenerateField(fc, 4096, gm)

	for i, p := range particles {
		planar := math.Hypot(float64(p.Position[0]), float64(p.Position[1]))
		if planar < fc.RMin-1e-3 || planar > fc.RMax+1e-3 {
			t.Fatalf("particle %d planar radius %f outside [%f, %f]", i, planar, fc.RMin, fc.RMax)
		}
		if math.Abs(float64(p.Position[2])) > fc.ZJitter+1e-3 {
			t.Fatalf("particle %d z %f exceeds jitter %f", i, p.Position[2], fc.ZJitter)
		}
	}
}

func TestInfallStreamPopulations(t *testing.T) {
	fc := streamConfig()
	particles := GenerateField(fc, 4096, gm)

	for i := 0; i < fc.CloseStars; i++ {
		p := particles[i]
		r := length3(p.Position)
		if r <= 0 {
			t.Fatalf("close star %d at zero radius", i)
		}
		if r > fc.CloseRMax+1e-3 {
			t.Fatalf("close star %d radius %f beyond %f", i, r, fc.CloseRMax)
		}
		// Sub-Keplerian so the stars spiral slowly inward.
		speed := length3(p.Velocity)
		if speed <= 0 {
			t.Fatalf("close star %d has no orbital speed", i)
		}
	}

	for i := fc.CloseStars; i < len(particles); i++ {
		p := particles[i]
		if p.Position[0] != float32(fc.StreamX) || p.Position[2] != float32(fc.StreamZ) {
			t.Fatalf("stream particle %d off entry plane: %v", i, p.Position)
		}
		if math.Abs(float64(p.Position[1])) > fc.StreamHalfWidth {
			t.Fatalf("stream particle %d lateral offset %f exceeds %f", i, p.Position[1], fc.StreamHalfWidth)
		}
		if p.Velocity != [3]float32{float32(fc.StreamSpeed), 0, 0} {
			t.Fatalf("stream particle %d velocity %v, want uniform forward", i, p.Velocity)
		}
	}
}

func TestInfallStreamCloseStarsCappedAtCount(t *testing.T) {
	fc := streamConfig()
	particles := GenerateField(fc, 100, gm)
	if len(particles) != 100 {
		t.Fatalf("expected 100 particles, got %d", len(particles))
	}
}

func TestPackParticlesLayout(t *testing.T) {
	particles := []Particle{
		{Position: [3]float32{1, 2, 3}, Velocity: [3]float32{4, 5, 6}},
		{Position: [3]float32{7, 8, 9}, Velocity: [3]float32{10, 11, 12}},
	}

	data := PackParticles(particles)
	want := []float32{1, 2, 3, 0, 4, 5, 6, 0, 7, 8, 9, 0, 10, 11, 12, 0}

	if len(data) != len(want) {
		t.Fatalf("packed length %d, want %d", len(data), len(want))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("data[%d] = %f, want %f", i, data[i], want[i])
		}
	}
}
