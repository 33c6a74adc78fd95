package game

// Controls is one frame of driving input, decoupled from the window layer so
// the simulation can be driven headless.
type Controls struct {
	Throttle bool
	Brake    bool
	SteerL   bool
	SteerR   bool
}

// Player is the driver's car. Longitudinal speed is in world speed units,
// lateral position and velocity in screen pixels. Y never moves; the world
// scrolls past instead.
type Player struct {
	X, Y float64
	VX   float64 // lateral velocity, px/s

	Speed        float64
	DisplaySpeed float64 // smoothed copy for the HUD needle

	Lane         int
	LaneCooldown float64 // seconds until the next lane change is accepted

	startX       float64
	targetX      float64
	laneProgress float64 // 1 = settled, <1 = interpolating toward targetX

	Nitro  float64 // boost seconds remaining
	Shield int

	W, H float64

	bal   *Balance
	trail *Rand // jitter stream for the exhaust trail
}

// laneCenterX matches the integer-division lane centers the road is drawn
// with, so a settled car sits exactly on the paint.
func laneCenterX(lane int) float64 {
	return float64(LaneMargin + lane*LaneW + LaneW/2)
}

func NewPlayer(bal *Balance, seed uint64) *Player {
	lane := LaneCount / 2
	return &Player{
		X:            laneCenterX(lane),
		Y:            PlayerStartY,
		Lane:         lane,
		Speed:        bal.PlayerStartSpeed,
		DisplaySpeed: bal.PlayerStartSpeed,
		laneProgress: 1.0,
		W:            PlayerW,
		H:            PlayerH,
		bal:          bal,
		trail:        NewRand(seed ^ 0x7EA11),
	}
}

// BeginLaneChange starts an eased slide one lane left (dir < 0) or right
// (dir > 0). Rejected while the cooldown is armed or at the road edge; the
// cooldown arms only on acceptance. Returns whether the change started so
// the caller can run the near-miss check against the target lane.
func (p *Player) BeginLaneChange(dir int) bool {
	if p.LaneCooldown > 0 {
		return false
	}
	target := clamp(p.Lane+dir, 0, LaneCount-1)
	if target == p.Lane {
		return false
	}
	p.startX = p.X
	p.Lane = target
	p.targetX = laneCenterX(target)
	p.laneProgress = 0
	p.LaneCooldown = p.bal.LaneCooldown
	return true
}

// Update advances one simulation step. ps receives the nitro exhaust trail
// and may be nil in headless tests.
func (p *Player) Update(dt float64, ctl Controls, ps *ParticleSystem) {
	b := p.bal

	if p.LaneCooldown > 0 {
		p.LaneCooldown -= dt
		if p.LaneCooldown < 0 {
			p.LaneCooldown = 0
		}
	}

	// Longitudinal: throttle and brake fight it out as accelerations.
	accel := 0.0
	if ctl.Throttle {
		accel += b.PlayerAccel
	}
	if ctl.Brake {
		accel -= b.PlayerBrake
	}

	// Nitro raises the speed ceiling while it burns.
	boost := 0.0
	if p.Nitro > 0 {
		boost = b.NitroSpeedBoost
		p.Nitro -= dt
		if p.Nitro < 0 {
			p.Nitro = 0
		}
		p.emitTrail(ps)
	}

	denom := b.PlayerMaxSpeed
	if denom < 1.0 {
		denom = 1.0
	}
	drag := b.PlayerDrag * (p.Speed / denom)
	p.Speed += (accel - drag) * dt
	p.Speed = clampF(p.Speed, b.PlayerMinSpeed, b.PlayerMaxSpeed+boost)

	// Lateral: steering force, friction, integrate.
	force := 0.0
	if ctl.SteerL {
		force -= b.LateralAccel
	}
	if ctl.SteerR {
		force += b.LateralAccel
	}
	p.VX += force * dt
	p.VX -= p.VX * clampF(b.LateralFriction*dt, 0, 1)
	p.X += p.VX * dt

	// Soft spring toward the current lane center. Only near the center so a
	// hard steer can still drag the car across the paint.
	dx := laneCenterX(p.Lane) - p.X
	if absF(dx) < float64(LaneW)*0.9 {
		p.VX += dx * b.LaneSpringK * dt
	}

	// Never off the asphalt, whatever the inputs did.
	p.X = clampF(p.X, LaneMargin+RoadClampInset, LaneMargin+RoadW-RoadClampInset)

	// Eased lane-change interpolation on top of the free physics.
	if p.laneProgress < 1.0 {
		p.laneProgress += dt / p.bal.LaneChangeTime
		if p.laneProgress >= 1.0 {
			p.laneProgress = 1.0
			p.X = p.targetX
		} else {
			p.X = p.startX + (p.targetX-p.startX)*smoothstep(p.laneProgress)
		}
	}

	p.DisplaySpeed += (p.Speed - p.DisplaySpeed) * clampF(dt*6.0, 0, 1)
}

func (p *Player) emitTrail(ps *ParticleSystem) {
	if ps == nil {
		return
	}
	for i := 0; i < 2; i++ {
		ps.Add(Particle{
			X:       p.X + p.trail.RangeF(-8, 8),
			Y:       p.Y + p.H/2,
			VX:      p.trail.RangeF(-20, 20),
			VY:      p.trail.RangeF(40, 140),
			Size:    p.trail.RangeF(2, 5),
			Life:    0.4,
			MaxLife: 0.4,
			Col:     Palette.NitroFlame,
			Kind:    ParticleTrail,
		})
	}
}

// ApplyNitro starts (or restarts) the boost and kicks the current speed.
func (p *Player) ApplyNitro() {
	p.Nitro = p.bal.NitroDuration
	kicked := p.Speed + p.bal.NitroPickupKick
	ceiling := p.bal.PlayerMaxSpeed + NitroMaxOverMax
	if kicked > ceiling {
		kicked = ceiling
	}
	p.Speed = kicked
}

// ApplyShield banks one crash save.
func (p *Player) ApplyShield() {
	p.Shield++
}

// ConsumeShield spends a banked shield if one is available.
func (p *Player) ConsumeShield() bool {
	if p.Shield > 0 {
		p.Shield--
		return true
	}
	return false
}

// CollisionRect is the crash hitbox. Third person uses the full body;
// first person uses a wide, short hood box that tracks the player's lane
// position but sits near the screen bottom, where the hood is drawn.
func (p *Player) CollisionRect(firstPerson bool) RectF {
	if firstPerson {
		hw := p.W * 1.2 / 2
		hh := p.H * 0.35 / 2
		cy := float64(ScreenH) - p.H*0.45
		return RectF{X0: p.X - hw, Y0: cy - hh, X1: p.X + hw, Y1: cy + hh}
	}
	return RectF{X0: p.X - p.W/2, Y0: p.Y - p.H/2, X1: p.X + p.W/2, Y1: p.Y + p.H/2}
}

// BodyRect is the full body regardless of view, used for powerup pickup.
func (p *Player) BodyRect() RectF {
	return RectF{X0: p.X - p.W/2, Y0: p.Y - p.H/2, X1: p.X + p.W/2, Y1: p.Y + p.H/2}
}

// LeanAngle is the sprite lean in degrees, proportional to lateral slip.
func (p *Player) LeanAngle() float64 {
	return clampF(-p.VX*0.6, -12, 12)
}
