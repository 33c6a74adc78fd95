package game

type VehicleKind uint8

const (
	VehicleCar VehicleKind = iota
	VehicleTruck
	VehicleBus

	vehicleKindCount // must stay last
)

// vehicleSpecs are the per-kind dimensions, speed offsets from the traffic
// base speed, and spawn weights.
var vehicleSpecs = [vehicleKindCount]struct {
	W, H        float64
	SpeedOffset float64
	Weight      int
}{
	VehicleCar:   {W: 60, H: 120, SpeedOffset: 0, Weight: 70},
	VehicleTruck: {W: 90, H: 140, SpeedOffset: -1.2, Weight: 20},
	VehicleBus:   {W: 100, H: 140, SpeedOffset: -0.8, Weight: 10},
}

// TrafficCar is one vehicle ahead of the player. Y grows down-screen; cars
// spawn above the top edge and scroll past the player as the world moves.
type TrafficCar struct {
	Kind   VehicleKind
	Lane   int
	X, Y   float64
	Speed  float64
	W, H   float64
	Passed bool // pass bonus awarded
	Alive  bool
}

func (c *TrafficCar) Rect() RectF {
	return RectF{X0: c.X - c.W/2, Y0: c.Y - c.H/2, X1: c.X + c.W/2, Y1: c.Y + c.H/2}
}

type TrafficSystem struct {
	Cars       []TrafficCar
	SpawnTimer float64

	rand *Rand
	bal  *Balance
}

func NewTrafficSystem(bal *Balance, seed uint64) *TrafficSystem {
	return &TrafficSystem{
		Cars:       make([]TrafficCar, 0, TrafficCapHigh),
		SpawnTimer: bal.SpawnInterval,
		rand:       NewRand(seed ^ 0x7247F1C),
		bal:        bal,
	}
}

// rollKind picks a vehicle kind by spawn weight.
func (ts *TrafficSystem) rollKind() VehicleKind {
	total := 0
	for _, spec := range vehicleSpecs {
		total += spec.Weight
	}
	roll := ts.rand.Intn(total)
	for k, spec := range vehicleSpecs {
		roll -= spec.Weight
		if roll < 0 {
			return VehicleKind(k)
		}
	}
	return VehicleCar
}

// Update runs the spawn timer and moves every live car. Traffic motion is
// relative to the player: worldSpeed goes negative at low player speed, and
// cars crawl back up the screen.
func (ts *TrafficSystem) Update(dt float64, difficulty, worldSpeed float64) {
	ts.SpawnTimer -= dt
	if ts.SpawnTimer <= 0 {
		interval := ts.bal.SpawnInterval / difficulty
		if interval < ts.bal.SpawnMinGap {
			interval = ts.bal.SpawnMinGap
		}
		// The timer re-arms whether or not the candidate lands.
		ts.SpawnTimer = interval
		ts.trySpawn()
	}

	for i := range ts.Cars {
		c := &ts.Cars[i]
		if !c.Alive {
			continue
		}
		c.Y += (c.Speed + worldSpeed) * dt * FrameRate
		if c.Y > TrafficDespawnY {
			c.Alive = false
		}
	}
}

// trySpawn rolls one fully-formed candidate and discards it outright if it
// would land within LaneClearance of a live car in its lane. No retry: a
// crowded lane just skips this spawn window.
func (ts *TrafficSystem) trySpawn() {
	kind := ts.rollKind()
	spec := vehicleSpecs[kind]
	lane := ts.rand.Intn(LaneCount)
	cand := TrafficCar{
		Kind:  kind,
		Lane:  lane,
		X:     laneCenterX(lane),
		Y:     -float64(ts.rand.Range(100, 800)),
		Speed: ts.bal.TrafficBaseSpeed + spec.SpeedOffset + ts.rand.Float64()*2.0,
		W:     spec.W,
		H:     spec.H,
		Alive: true,
	}
	for i := range ts.Cars {
		c := &ts.Cars[i]
		if c.Alive && c.Lane == cand.Lane && absF(c.Y-cand.Y) < ts.bal.LaneClearance {
			return
		}
	}
	ts.Cars = append(ts.Cars, cand)
}

// RemoveDead compacts the list in place preserving spawn order, so painter's
// sorting and newest-first truncation stay deterministic.
func (ts *TrafficSystem) RemoveDead() {
	out := ts.Cars[:0]
	for i := range ts.Cars {
		if ts.Cars[i].Alive {
			out = append(out, ts.Cars[i])
		}
	}
	ts.Cars = out
}

// Truncate drops the oldest cars beyond max, keeping the most recent spawns.
func (ts *TrafficSystem) Truncate(max int) {
	if max <= 0 || len(ts.Cars) <= max {
		return
	}
	copy(ts.Cars, ts.Cars[len(ts.Cars)-max:])
	ts.Cars = ts.Cars[:max]
}
