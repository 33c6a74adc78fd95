package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestTrafficSystem_SpawnTimer_FloorsAtMinGap(t *testing.T) {
	bal := DefaultBalance()

	ts := NewTrafficSystem(bal, 5)
	ts.SpawnTimer = 0.0005
	ts.Update(0.001, 100.0, 0)
	assert.Equal(t, bal.SpawnMinGap, ts.SpawnTimer,
		"extreme difficulty must clamp the interval at the floor")

	ts = NewTrafficSystem(bal, 5)
	ts.SpawnTimer = 0.0005
	ts.Update(0.001, 1.5, 0)
	assert.InDelta(t, bal.SpawnInterval/1.5, ts.SpawnTimer, 1e-9)
}

func TestTrafficSystem_Spawn_LandsOnLaneCenter(t *testing.T) {
	bal := DefaultBalance()
	ts := NewTrafficSystem(bal, 42)
	ts.SpawnTimer = 0
	ts.Update(1e-6, 1.0, 0)

	assert.Len(t, ts.Cars, 1, "an empty road cannot reject the candidate")
	c := ts.Cars[0]
	assert.True(t, c.Alive)
	assert.False(t, c.Passed)
	assert.GreaterOrEqual(t, c.Lane, 0)
	assert.Less(t, c.Lane, LaneCount)
	assert.Equal(t, laneCenterX(c.Lane), c.X, "vehicles sit exactly on the paint")
	assert.GreaterOrEqual(t, c.Y, -801.0)
	assert.LessOrEqual(t, c.Y, -99.0)

	spec := vehicleSpecs[c.Kind]
	assert.Equal(t, spec.W, c.W)
	assert.Equal(t, spec.H, c.H)
	assert.GreaterOrEqual(t, c.Speed, bal.TrafficBaseSpeed+spec.SpeedOffset)
	assert.Less(t, c.Speed, bal.TrafficBaseSpeed+spec.SpeedOffset+2.0)
}

func TestTrafficSystem_TrySpawn_RejectsCrowdedLanes(t *testing.T) {
	ts := NewTrafficSystem(DefaultBalance(), 8)
	// Blanket every lane densely enough that any candidate y in the spawn
	// band lands within the clearance of an existing car.
	for lane := 0; lane < LaneCount; lane++ {
		for y := -800.0; y <= -100.0; y += 150 {
			ts.Cars = append(ts.Cars, TrafficCar{
				Lane: lane, X: laneCenterX(lane), Y: y, W: 60, H: 120, Alive: true,
			})
		}
	}
	before := len(ts.Cars)

	for i := 0; i < 50; i++ {
		ts.trySpawn()
	}
	assert.Len(t, ts.Cars, before, "every candidate must be discarded, no retries")
}

func TestTrafficSystem_Update_MovesAndDespawns(t *testing.T) {
	ts := NewTrafficSystem(DefaultBalance(), 1)
	ts.SpawnTimer = 1e9
	ts.Cars = append(ts.Cars,
		TrafficCar{Lane: 0, X: laneCenterX(0), Y: 100, Speed: 2, W: 60, H: 120, Alive: true},
		TrafficCar{Lane: 1, X: laneCenterX(1), Y: 795, Speed: 2, W: 60, H: 120, Alive: true},
	)

	ts.Update(0.25, 1.0, 3.0)

	assert.InDelta(t, 175.0, ts.Cars[0].Y, 1e-9, "y advances by (own+world)*dt*frame rate")
	assert.False(t, ts.Cars[1].Alive, "past the despawn line the car dies")

	ts.RemoveDead()
	assert.Len(t, ts.Cars, 1)
}

func TestTrafficSystem_NegativeWorldSpeed_MovesCarsUp(t *testing.T) {
	ts := NewTrafficSystem(DefaultBalance(), 1)
	ts.SpawnTimer = 1e9
	ts.Cars = append(ts.Cars,
		TrafficCar{Lane: 2, X: laneCenterX(2), Y: 400, Speed: 2, W: 60, H: 120, Alive: true})

	ts.Update(0.1, 1.0, -5.0)
	assert.InDelta(t, 382.0, ts.Cars[0].Y, 1e-9,
		"slow player means traffic pulls away up-screen")
}

func TestTrafficSystem_RemoveDead_PreservesOrder(t *testing.T) {
	ts := NewTrafficSystem(DefaultBalance(), 1)
	for _, y := range []float64{10, 20, 30, 40, 50} {
		ts.Cars = append(ts.Cars, TrafficCar{Y: y, Alive: true})
	}
	ts.Cars[1].Alive = false
	ts.Cars[3].Alive = false

	ts.RemoveDead()

	var ys []float64
	for _, c := range ts.Cars {
		ys = append(ys, c.Y)
	}
	assert.Equal(t, []float64{10, 30, 50}, ys)
}

func TestTrafficSystem_Truncate_KeepsNewestSpawns(t *testing.T) {
	ts := NewTrafficSystem(DefaultBalance(), 1)
	for _, y := range []float64{1, 2, 3, 4, 5, 6} {
		ts.Cars = append(ts.Cars, TrafficCar{Y: y, Alive: true})
	}

	ts.Truncate(4)
	var ys []float64
	for _, c := range ts.Cars {
		ys = append(ys, c.Y)
	}
	assert.Equal(t, []float64{3, 4, 5, 6}, ys)

	ts.Truncate(0)
	assert.Len(t, ts.Cars, 4, "non-positive cap is ignored")
	ts.Truncate(10)
	assert.Len(t, ts.Cars, 4, "a roomy cap changes nothing")
}

func TestTrafficSystem_KindWeights_RoughlyHold(t *testing.T) {
	ts := NewTrafficSystem(DefaultBalance(), 1)
	counts := map[VehicleKind]int{}
	const rolls = 3000
	for i := 0; i < rolls; i++ {
		counts[ts.rollKind()]++
	}

	assert.InDelta(t, 0.70, float64(counts[VehicleCar])/rolls, 0.08)
	assert.InDelta(t, 0.20, float64(counts[VehicleTruck])/rolls, 0.08)
	assert.InDelta(t, 0.10, float64(counts[VehicleBus])/rolls, 0.06)
}

func TestTrafficSystem_UpdateInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ts := NewTrafficSystem(DefaultBalance(), rapid.Uint64().Draw(rt, "seed"))
		steps := rapid.IntRange(1, 150).Draw(rt, "steps")

		for i := 0; i < steps; i++ {
			dt := rapid.Float64Range(0.001, 0.1).Draw(rt, "dt")
			diff := rapid.Float64Range(1, 5).Draw(rt, "difficulty")
			world := rapid.Float64Range(-10, 40).Draw(rt, "world")
			ts.Update(dt, diff, world)

			if ts.SpawnTimer <= 0 {
				rt.Fatalf("step %d: spawn timer %v not re-armed", i, ts.SpawnTimer)
			}
			for j := range ts.Cars {
				c := &ts.Cars[j]
				if !c.Alive {
					continue
				}
				if c.Lane < 0 || c.Lane >= LaneCount {
					rt.Fatalf("step %d: car %d lane %d out of range", i, j, c.Lane)
				}
				if c.X != laneCenterX(c.Lane) {
					rt.Fatalf("step %d: car %d drifted off its lane center", i, j)
				}
				if c.Y > TrafficDespawnY {
					rt.Fatalf("step %d: live car %d past the despawn line (y=%v)", i, j, c.Y)
				}
			}
		}
	})
}
