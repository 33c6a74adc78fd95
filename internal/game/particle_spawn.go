package game

import "math"

// SpawnCrashSparks throws the impact burst upward from the wreck: a cone of
// bright sparks around straight-up with the hit point jittered so the burst
// reads as debris rather than a point flash.
func (ps *ParticleSystem) SpawnCrashSparks(x, y float64) {
	r := NewRand(hash2D(ps.seed^0xC4A54, int(x), int(y)))

	for i := 0; i < 18; i++ {
		ang := -math.Pi/2 + r.RangeF(-0.6, 0.6)
		spd := r.RangeF(120, 420)
		life := r.RangeF(0.5, 1.0)
		ps.Add(Particle{
			X:       x + r.RangeF(-20, 20),
			Y:       y + r.RangeF(-20, 20),
			VX:      math.Cos(ang) * spd,
			VY:      math.Sin(ang) * spd,
			Size:    r.RangeF(2, 5),
			Life:    life,
			MaxLife: life,
			Col:     Palette.Spark,
			Kind:    ParticleSpark,
		})
	}
}

// SpawnShieldFlash rings the car with a short golden shimmer when a banked
// shield absorbs a hit.
func (ps *ParticleSystem) SpawnShieldFlash(x, y float64) {
	r := NewRand(hash2D(ps.seed^0x5A1E1D, int(x), int(y)))
	for i := 0; i < 12; i++ {
		ang := r.RangeF(0, 2*math.Pi)
		spd := r.RangeF(60, 160)
		life := r.RangeF(0.25, 0.5)
		ps.Add(Particle{
			X:       x + math.Cos(ang)*30,
			Y:       y + math.Sin(ang)*45,
			VX:      math.Cos(ang) * spd,
			VY:      math.Sin(ang) * spd,
			Size:    r.RangeF(2, 4),
			Life:    life,
			MaxLife: life,
			Col:     Palette.ShieldOrb,
			Kind:    ParticleTrail,
		})
	}
}
