package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPowerupSystem_OneRollPerWindow(t *testing.T) {
	bal := DefaultBalance()
	bal.PowerupChance = 1.0
	ps := NewPowerupSystem(bal, 3)

	for i := 0; i < 5; i++ {
		ps.Update(1.0, 0)
	}
	assert.Empty(t, ps.Items, "the first window has not elapsed yet")

	ps.Update(1.0, 0)
	assert.Len(t, ps.Items, 1, "a certain roll spawns when the window closes")
	assert.Equal(t, bal.PowerupInterval, ps.RollTimer, "the window re-arms in full")

	// A long stall still burns only one roll.
	ps.Update(25.0, 0)
	assert.Len(t, ps.Items, 2)
}

func TestPowerupSystem_SpawnLandsInSpawnBand(t *testing.T) {
	bal := DefaultBalance()
	bal.PowerupChance = 1.0
	ps := NewPowerupSystem(bal, 3)
	ps.RollTimer = 0
	ps.Update(1e-9, 0)

	assert.Len(t, ps.Items, 1)
	u := ps.Items[0]
	assert.True(t, u.Alive)
	assert.GreaterOrEqual(t, u.Lane, 0)
	assert.Less(t, u.Lane, LaneCount)
	assert.Equal(t, laneCenterX(u.Lane), u.X)
	assert.GreaterOrEqual(t, u.Y, -1200.0)
	assert.LessOrEqual(t, u.Y, -200.0)
	assert.GreaterOrEqual(t, u.Phase, 0.0)
	assert.Less(t, u.Phase, 1.0)
	assert.Less(t, int(u.Kind), int(powerupKindCount))
}

func TestPowerupSystem_ZeroChanceNeverSpawns(t *testing.T) {
	bal := DefaultBalance()
	bal.PowerupChance = 0
	ps := NewPowerupSystem(bal, 3)

	for i := 0; i < 20; i++ {
		ps.Update(bal.PowerupInterval, 0)
	}
	assert.Empty(t, ps.Items)
}

func TestPowerupSystem_DriftAndDespawn(t *testing.T) {
	ps := NewPowerupSystem(DefaultBalance(), 1)
	ps.RollTimer = 1e9
	ps.Items = append(ps.Items,
		Powerup{Kind: PowerupNitro, Lane: 0, X: laneCenterX(0), Y: 100, Alive: true},
		Powerup{Kind: PowerupShield, Lane: 1, X: laneCenterX(1), Y: 795, Alive: true},
	)

	ps.Update(0.1, 5.0)

	assert.InDelta(t, 130.0, ps.Items[0].Y, 1e-9, "orbs drift with the world")
	assert.InDelta(t, 0.1, ps.Items[0].Phase, 1e-9, "pulse clock ticks with dt")
	assert.False(t, ps.Items[1].Alive, "past the despawn line the orb dies")

	ps.RemoveDead()
	assert.Len(t, ps.Items, 1)
}

func TestPowerupSystem_Collect_AppliesOnceAndAnnounces(t *testing.T) {
	ps := NewPowerupSystem(DefaultBalance(), 1)
	ps.Items = append(ps.Items,
		Powerup{Kind: PowerupNitro, Lane: 2, X: 542, Y: 400, Alive: true},
		Powerup{Kind: PowerupShield, Lane: 1, X: 357, Y: 300, Alive: true},
	)
	p := NewPlayer(DefaultBalance(), 1)
	bus := NewEventBus()
	var events []Event
	bus.Subscribe(EventPowerupTaken, func(e Event) { events = append(events, e) })

	ps.Collect(0, p, bus)
	assert.Equal(t, NitroDuration, p.Nitro)
	assert.False(t, ps.Items[0].Alive)
	assert.Len(t, events, 1)
	assert.Equal(t, int(PowerupNitro), events[0].Data)
	assert.Equal(t, 542.0, events[0].X)
	assert.Equal(t, 400.0, events[0].Y)

	ps.Collect(0, p, bus)
	assert.Len(t, events, 1, "a dead orb cannot be collected twice")

	ps.Collect(1, p, bus)
	assert.Equal(t, 1, p.Shield)
	assert.Equal(t, int(PowerupShield), events[1].Data)
}

func TestPowerupSystem_RenderData_CoreAndHalo(t *testing.T) {
	ps := NewPowerupSystem(DefaultBalance(), 1)
	ps.Items = append(ps.Items,
		Powerup{Kind: PowerupNitro, Lane: 2, X: 542, Y: 400, Alive: true, Phase: 0},
		Powerup{Kind: PowerupShield, Lane: 0, X: 172, Y: 500, Alive: false},
	)

	core, glow := ps.RenderData(nil, nil)

	assert.Len(t, core, 7, "dead orbs are skipped")
	assert.Len(t, glow, 7)

	assert.Equal(t, float32(542), core[0])
	assert.Equal(t, float32(400), core[1])
	assert.InDelta(t, float64(PowerupSize), float64(core[2]), 1e-6, "phase 0 is the pulse rest size")
	assert.Equal(t, float32(1), core[6])

	assert.InDelta(t, float64(core[2])*1.9, float64(glow[2]), 1e-4, "halo wraps the core")
	assert.InDelta(t, 0.35, float64(glow[6]), 1e-6)
	assert.Less(t, glow[3], core[3], "halo color is premultiplied down")
}
