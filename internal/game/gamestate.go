package game

import (
	"fmt"
	"os"
)

type GameState int

const (
	StateMenu GameState = iota
	StateInstructions
	StateHighscores
	StatePlaying
	StatePaused
	StateCrashing // brief wreck hold before game over
	StateGameOver
)

// Popup is a transient score label anchored where it was earned.
type Popup struct {
	Text string
	TTL  float64
	X, Y float64
}

// GameSession is the explicit context for one sitting of the game: the
// player, the entity systems, score and the values derived from it. Every
// tick reads and writes through this object; there is no package-level
// simulation state.
type GameSession struct {
	State GameState
	Seed  uint64

	Bal       *Balance
	Player    *Player
	Traffic   *TrafficSystem
	Powerups  *PowerupSystem
	Particles *ParticleSystem
	Detail    *DetailController
	Camera    *Camera
	Events    *EventBus
	Scores    *HighscoreTable

	Score      int
	Difficulty float64
	WorldSpeed float64

	NearCombo      int
	NearComboTimer float64 // seconds left to chain the next near miss

	Popups []Popup

	RoadScroll  float64
	FirstPerson bool

	CrashTimer float64
	RunTime    float64

	runSeq uint64 // bumped per run so a restart does not replay the last run
}

func NewGameSession(bal *Balance, seed uint64, scores *HighscoreTable) *GameSession {
	s := &GameSession{
		State:      StateMenu,
		Seed:       seed,
		Bal:        bal,
		Events:     NewEventBus(),
		Scores:     scores,
		Difficulty: 1.0,
	}
	s.wireEvents()
	return s
}

// wireEvents hooks scoring, popups and audio cues to the gameplay events.
// The handlers read the session's current subsystems, so they survive
// StartRun swapping those out.
func (s *GameSession) wireEvents() {
	s.Events.Subscribe(EventNearMiss, func(e Event) {
		s.Score += e.Data
		s.AddPopup(fmt.Sprintf("NEAR MISS x%d +%d", s.NearCombo, e.Data), e.X, e.Y-120)
		PlaySound(SoundNearMiss)
	})
	s.Events.Subscribe(EventCarPassed, func(e Event) {
		s.Score += e.Data
	})
	s.Events.Subscribe(EventPowerupTaken, func(e Event) {
		switch PowerupKind(e.Data) {
		case PowerupNitro:
			s.AddPopup("NITRO!", e.X, e.Y-40)
			PlaySound(SoundNitro)
		case PowerupShield:
			s.AddPopup("SHIELD +1", e.X, e.Y-40)
			PlaySound(SoundShield)
		}
	})
	s.Events.Subscribe(EventShieldSaved, func(e Event) {
		s.Particles.SpawnShieldFlash(e.X, e.Y)
		PlaySound(SoundShield)
	})
	s.Events.Subscribe(EventCrashed, func(e Event) {
		s.Particles.SpawnCrashSparks(e.X, e.Y)
		s.Camera.AddShake(14, CrashHoldSeconds)
		s.CrashTimer = CrashHoldSeconds
		s.State = StateCrashing
		PlaySound(SoundCrash)
	})
}

// StartRun resets everything for a fresh run and enters Playing.
func (s *GameSession) StartRun() {
	s.runSeq++
	runSeed := splitmix64(s.Seed ^ s.runSeq*0x9E3779B185EBCA87)

	s.Player = NewPlayer(s.Bal, runSeed^0xD01E)
	s.Traffic = NewTrafficSystem(s.Bal, runSeed^0xCAFE5EED)
	s.Powerups = NewPowerupSystem(s.Bal, runSeed^0xB0B5EED)
	s.Particles = NewParticleSystem(MaxParticles, runSeed^0xFA57)
	s.Detail = NewDetailController(s.Bal)
	s.Camera = &Camera{}

	s.Score = 0
	s.Difficulty = 1.0
	s.WorldSpeed = 0
	s.NearCombo = 0
	s.NearComboTimer = 0
	s.Popups = s.Popups[:0]
	s.RoadScroll = 0
	s.CrashTimer = 0
	s.RunTime = 0
	s.State = StatePlaying
}

// Update advances one frame of the Playing or Crashing state. laneCmd is -1,
// 0 or +1 for this frame's lane-change request.
func (s *GameSession) Update(dt float64, ctl Controls, laneCmd int) {
	switch s.State {
	case StateCrashing:
		s.Camera.UpdateShake(dt, s.Seed)
		s.Particles.Update(dt)
		s.CrashTimer -= dt
		if s.CrashTimer <= 0 {
			s.State = StateGameOver
			s.submitScore()
		}
		return
	case StatePlaying:
	default:
		return
	}

	s.RunTime += dt

	// Lane command first: the near-miss scan must see pre-move positions.
	if laneCmd != 0 {
		s.tryLaneChange(laneCmd)
	}

	// Pacing derived from score. The difficulty step is quantized per 1000
	// points, so 999 is still 1.0 and 1000 tips to 1.1.
	s.Difficulty = 1.0 + float64(s.Score/1000)*s.Bal.DifficultyStep
	s.WorldSpeed = (s.Player.Speed - 8.0) * (1.0 + float64(s.Score)/5000.0)

	if s.NearComboTimer > 0 {
		s.NearComboTimer -= dt
	}

	s.Traffic.Update(dt, s.Difficulty, s.WorldSpeed)
	s.Powerups.Update(dt, s.WorldSpeed)
	s.Player.Update(dt, ctl, s.Particles)

	s.RoadScroll += s.Player.Speed * dt * FrameRate * RoadScrollFactor
	if s.RoadScroll > ScreenH {
		s.RoadScroll -= ScreenH
	}

	s.Particles.Update(dt)

	s.checkCollisions()
	if s.State != StatePlaying {
		return // the crash ended this run mid-frame
	}
	s.checkPickups()

	s.Traffic.RemoveDead()
	s.Powerups.RemoveDead()

	// Adaptive detail: sample this frame, then enforce the current caps.
	if dt > 0 {
		s.Detail.AddSample(1.0 / dt)
	}
	s.Traffic.Truncate(s.Detail.TrafficCap())
	s.Particles.SetBudget(s.Detail.ParticleBudget())

	s.updatePopups(dt)
}

func (s *GameSession) AddPopup(text string, x, y float64) {
	s.Popups = append(s.Popups, Popup{Text: text, TTL: PopupDuration, X: x, Y: y})
}

func (s *GameSession) updatePopups(dt float64) {
	out := s.Popups[:0]
	for _, p := range s.Popups {
		p.TTL -= dt
		if p.TTL > 0 {
			out = append(out, p)
		}
	}
	s.Popups = out
}

func (s *GameSession) submitScore() {
	if s.Scores == nil {
		return
	}
	if err := s.Scores.Submit(s.Score); err != nil {
		fmt.Fprintf(os.Stderr, "highscores: %v\n", err)
	}
}
