package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sizesOf(ps *ParticleSystem) []float64 {
	var out []float64
	for i := range ps.P {
		out = append(out, ps.P[i].Size)
	}
	return out
}

func TestParticleSystem_Add_OverwritesOldestWhenFull(t *testing.T) {
	ps := NewParticleSystem(3, 1)
	for _, sz := range []float64{1, 2, 3} {
		ps.Add(Particle{Size: sz, Life: 1, MaxLife: 1})
	}
	assert.Equal(t, []float64{1, 2, 3}, sizesOf(ps))

	ps.Add(Particle{Size: 4, Life: 1, MaxLife: 1})
	assert.Equal(t, []float64{4, 2, 3}, sizesOf(ps), "ring overwrite starts at the oldest slot")

	ps.Add(Particle{Size: 5, Life: 1, MaxLife: 1})
	assert.Equal(t, []float64{4, 5, 3}, sizesOf(ps))
}

func TestParticleSystem_Update_AgesMovesAndCompacts(t *testing.T) {
	ps := NewParticleSystem(10, 1)
	ps.Add(Particle{X: 10, Y: 0, VX: 100, VY: -40, Size: 2, Life: 0.1, MaxLife: 0.2})
	ps.Add(Particle{X: 50, Size: 3, Life: 0.04, MaxLife: 0.2})
	ps.Add(Particle{X: 90, Size: 4, Life: 0.3, MaxLife: 0.3})

	ps.Update(0.05)

	assert.Equal(t, []float64{2, 4}, sizesOf(ps), "expired particle compacts out in order")
	assert.InDelta(t, 15.0, ps.P[0].X, 1e-9)
	assert.InDelta(t, -2.0, ps.P[0].Y, 1e-9)
	assert.InDelta(t, 0.05, ps.P[0].Life, 1e-9)
}

func TestParticleSystem_SetBudget_ShrinkKeepsNewest(t *testing.T) {
	ps := NewParticleSystem(10, 1)
	for _, sz := range []float64{1, 2, 3, 4, 5, 6, 7} {
		ps.Add(Particle{Size: sz, Life: 1, MaxLife: 1})
	}

	ps.SetBudget(3)
	assert.Equal(t, []float64{5, 6, 7}, sizesOf(ps))
	assert.Equal(t, 3, ps.Max)

	ps.SetBudget(3)
	assert.Equal(t, []float64{5, 6, 7}, sizesOf(ps), "same budget is a no-op")
	ps.SetBudget(0)
	assert.Equal(t, 3, ps.Max, "non-positive budget is ignored")

	ps.SetBudget(8)
	ps.Add(Particle{Size: 8, Life: 1, MaxLife: 1})
	assert.Equal(t, []float64{5, 6, 7, 8}, sizesOf(ps), "growing re-opens appends")
}

func TestParticleSystem_RenderData_SplitsAndPremultiplies(t *testing.T) {
	ps := NewParticleSystem(10, 1)
	ps.Add(Particle{X: 10.6, Y: 20.4, Size: 4, Life: 0.5, MaxLife: 1,
		Col: RGB{R: 255}, Kind: ParticleTrail})
	ps.Add(Particle{X: -3.5, Y: 7.5, Size: 6, Life: 0.25, MaxLife: 1,
		Col: RGB{G: 255}, Kind: ParticleSpark})
	ps.Add(Particle{X: 0, Y: 0, Size: 2, Life: 0.1, MaxLife: 1,
		Col: RGB{B: 255}, Kind: ParticleSpark})
	ps.Add(Particle{X: 0, Y: 0, Size: 9, Life: 1, MaxLife: 0}) // malformed, skipped

	glow, plain := ps.RenderData(nil, nil)

	assert.Len(t, glow, 7, "one trail particle")
	assert.Len(t, plain, 14, "two spark particles")

	assert.InDeltaSlice(t, []float32{11, 20, 2, 0.5, 0, 0, 0.5}, glow, 1e-6,
		"glow rounds position, scales size by life, premultiplies color")
	assert.InDeltaSlice(t, []float32{-4, 8, 1.5, 0, 1, 0, 0.25}, plain[:7], 1e-6,
		"plain keeps straight alpha")
	assert.Equal(t, float32(1), plain[9], "point size never drops under a pixel")
}

func TestParticleSystem_RenderData_ReusesCallerBuffers(t *testing.T) {
	ps := NewParticleSystem(10, 1)
	ps.Add(Particle{Size: 3, Life: 1, MaxLife: 1, Kind: ParticleSpark})

	scratch := make([]float32, 0, 64)
	_, plain := ps.RenderData(nil, scratch)
	assert.Len(t, plain, 7)
	assert.Equal(t, 64, cap(plain), "caller capacity is kept")
}

func TestParticleSystem_SpawnCrashSparks_DeterministicCone(t *testing.T) {
	a := NewParticleSystem(64, 5)
	b := NewParticleSystem(64, 5)
	a.SpawnCrashSparks(451, 300)
	b.SpawnCrashSparks(451, 300)

	assert.Len(t, a.P, 18)
	assert.Equal(t, a.P, b.P, "same seed and impact point replay the burst")
	for i := range a.P {
		assert.Equal(t, ParticleSpark, a.P[i].Kind)
		assert.Equal(t, Palette.Spark, a.P[i].Col)
		assert.Negative(t, a.P[i].VY, "the cone points up-screen")
	}

	c := NewParticleSystem(64, 5)
	c.SpawnCrashSparks(450, 300)
	assert.NotEqual(t, a.P, c.P, "a different impact point reshuffles the burst")
}

func TestParticleSystem_SpawnShieldFlash_RingsTheCar(t *testing.T) {
	ps := NewParticleSystem(64, 5)
	ps.SpawnShieldFlash(100, 200)

	assert.Len(t, ps.P, 12)
	for i := range ps.P {
		p := ps.P[i]
		assert.Equal(t, ParticleTrail, p.Kind)
		assert.Equal(t, Palette.ShieldOrb, p.Col)
		assert.InDelta(t, 100, p.X, 30.0001, "ring hugs the car horizontally")
		assert.InDelta(t, 200, p.Y, 45.0001, "ring hugs the car vertically")
	}
}

func TestParticleSystem_Clear(t *testing.T) {
	ps := NewParticleSystem(2, 1)
	ps.Add(Particle{Size: 1, Life: 1, MaxLife: 1})
	ps.Add(Particle{Size: 2, Life: 1, MaxLife: 1})
	ps.Add(Particle{Size: 3, Life: 1, MaxLife: 1}) // wraps, ovrIdx now 1

	ps.Clear()
	assert.Empty(t, ps.P)

	ps.Add(Particle{Size: 4, Life: 1, MaxLife: 1})
	ps.Add(Particle{Size: 5, Life: 1, MaxLife: 1})
	ps.Add(Particle{Size: 6, Life: 1, MaxLife: 1})
	assert.Equal(t, []float64{6, 5}, sizesOf(ps), "overwrite restarts at slot zero")
}
