package game

import "math"

type ParticleKind uint8

const (
	ParticleSpark ParticleKind = iota // crash debris, plain alpha blend
	ParticleTrail                     // nitro exhaust, additive glow
)

// Particle is a single short-lived point sprite. Life counts down; the
// fraction Life/MaxLife drives both fade and shrink.
type Particle struct {
	X, Y   float64
	VX, VY float64

	Size    float64 // full-life point size in px
	Life    float64 // seconds remaining
	MaxLife float64

	Col  RGB
	Kind ParticleKind
}

// ParticleSystem is a fixed-budget pool. When full, Add overwrites the
// oldest entries in ring order rather than dropping the newcomer.
type ParticleSystem struct {
	Max    int
	P      []Particle
	seed   uint64
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	if seed == 0 {
		seed = 1
	}
	return &ParticleSystem{
		Max:  maxParticles,
		P:    make([]Particle, 0, maxParticles),
		seed: seed,
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// SetBudget rescales the pool for the current detail level. When shrinking,
// the newest particles survive.
func (ps *ParticleSystem) SetBudget(max int) {
	if max <= 0 || max == ps.Max {
		return
	}
	ps.Max = max
	if len(ps.P) > max {
		copy(ps.P, ps.P[len(ps.P)-max:])
		ps.P = ps.P[:max]
	}
	ps.ovrIdx = 0
}

// Update ages and moves every particle, compacting dead ones out in place
// while preserving relative order.
func (ps *ParticleSystem) Update(dt float64) {
	out := ps.P[:0]
	for i := range ps.P {
		p := ps.P[i]
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		out = append(out, p)
	}
	ps.P = out
	if ps.ovrIdx >= len(ps.P) {
		ps.ovrIdx = 0
	}
}

// RenderData splits particles into glow (additive) and plain (alpha blend)
// buffers, reusing the caller's slices. Format: [x, y, size, r, g, b, a] * N.
func (ps *ParticleSystem) RenderData(glowBuf, plainBuf []float32) ([]float32, []float32) {
	glowBuf = glowBuf[:0]
	plainBuf = plainBuf[:0]

	for i := range ps.P {
		p := &ps.P[i]
		if p.MaxLife <= 0 {
			continue
		}
		f := clampF(p.Life/p.MaxLife, 0, 1)
		if f <= 0 {
			continue
		}

		rc := float32(p.Col.R) / 255.0
		gc := float32(p.Col.G) / 255.0
		bc := float32(p.Col.B) / 255.0
		ac := float32(f)

		size := p.Size * f
		if size < 1 {
			size = 1
		}

		sx := float32(math.Round(p.X))
		sy := float32(math.Round(p.Y))
		sz := float32(size)

		if p.Kind == ParticleTrail {
			// Additive: pre-multiply color by alpha.
			glowBuf = append(glowBuf, sx, sy, sz, rc*ac, gc*ac, bc*ac, ac)
		} else {
			plainBuf = append(plainBuf, sx, sy, sz, rc, gc, bc, ac)
		}
	}
	return glowBuf, plainBuf
}
