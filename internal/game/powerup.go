package game

import "math"

type PowerupKind uint8

const (
	PowerupNitro PowerupKind = iota
	PowerupShield

	powerupKindCount // must stay last
)

// Powerup is a floating pickup drifting down with the world.
type Powerup struct {
	Kind  PowerupKind
	Lane  int
	X, Y  float64
	Alive bool
	Phase float64 // pulse animation clock
}

func (u *Powerup) Rect() RectF {
	const half = PowerupSize / 2
	return RectF{X0: u.X - half, Y0: u.Y - half, X1: u.X + half, Y1: u.Y + half}
}

type PowerupSystem struct {
	Items     []Powerup
	RollTimer float64

	rand *Rand
	bal  *Balance
}

func NewPowerupSystem(bal *Balance, seed uint64) *PowerupSystem {
	return &PowerupSystem{
		RollTimer: bal.PowerupInterval,
		rand:      NewRand(seed ^ 0xB0057),
		bal:       bal,
	}
}

// Update ticks the pulse clocks, runs the periodic spawn roll, and drifts
// live pickups with the world.
func (ps *PowerupSystem) Update(dt float64, worldSpeed float64) {
	for i := range ps.Items {
		ps.Items[i].Phase += dt
	}

	ps.RollTimer -= dt
	if ps.RollTimer <= 0 {
		// One roll per window whether or not it spawns.
		ps.RollTimer = ps.bal.PowerupInterval
		if ps.rand.Float64() < ps.bal.PowerupChance {
			ps.spawn()
		}
	}

	for i := range ps.Items {
		u := &ps.Items[i]
		if !u.Alive {
			continue
		}
		u.Y += worldSpeed * dt * FrameRate
		if u.Y > TrafficDespawnY {
			u.Alive = false
		}
	}
}

func (ps *PowerupSystem) spawn() {
	kind := PowerupKind(ps.rand.Intn(int(powerupKindCount)))
	lane := ps.rand.Intn(LaneCount)
	ps.Items = append(ps.Items, Powerup{
		Kind:  kind,
		Lane:  lane,
		X:     laneCenterX(lane),
		Y:     -float64(ps.rand.Range(200, 1200)),
		Alive: true,
		Phase: ps.rand.RangeF(0, 1),
	})
}

// Collect applies pickup idx to the player and announces it on the bus.
func (ps *PowerupSystem) Collect(idx int, p *Player, bus *EventBus) {
	u := &ps.Items[idx]
	if !u.Alive {
		return
	}
	u.Alive = false

	switch u.Kind {
	case PowerupNitro:
		p.ApplyNitro()
	case PowerupShield:
		p.ApplyShield()
	}
	bus.Emit(Event{Type: EventPowerupTaken, X: u.X, Y: u.Y, Data: int(u.Kind)})
}

// RemoveDead compacts collected and despawned pickups, preserving order.
func (ps *PowerupSystem) RemoveDead() {
	out := ps.Items[:0]
	for i := range ps.Items {
		if ps.Items[i].Alive {
			out = append(out, ps.Items[i])
		}
	}
	ps.Items = out
}

func powerupColor(k PowerupKind) RGB {
	if k == PowerupNitro {
		return Palette.NitroOrb
	}
	return Palette.ShieldOrb
}

// RenderData fills point-sprite buffers for the pickups: a plain core orb
// and an additive halo behind it. Format: [x, y, size, r, g, b, a] * N.
func (ps *PowerupSystem) RenderData(coreBuf, glowBuf []float32) ([]float32, []float32) {
	coreBuf = coreBuf[:0]
	glowBuf = glowBuf[:0]

	for i := range ps.Items {
		u := &ps.Items[i]
		if !u.Alive {
			continue
		}
		pulse := 1.0 + 0.08*math.Sin(u.Phase*4.0)
		col := powerupColor(u.Kind)
		// Breathe toward white at the pulse peak.
		lit := lerpRGB(col, RGB{R: 255, G: 255, B: 255}, 0.25+0.25*math.Sin(u.Phase*4.0))

		x := float32(u.X)
		y := float32(u.Y)
		r := float32(lit.R) / 255
		g := float32(lit.G) / 255
		b := float32(lit.B) / 255

		coreBuf = append(coreBuf, x, y, float32(PowerupSize*pulse), r, g, b, 1)

		const haloAlpha = 0.35
		glowBuf = append(glowBuf, x, y, float32(PowerupSize*pulse*1.9),
			r*haloAlpha, g*haloAlpha, b*haloAlpha, haloAlpha)
	}
	return coreBuf, glowBuf
}
