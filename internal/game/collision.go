package game

// RectF is an axis-aligned rectangle in screen-pixel space.
type RectF struct {
	X0, Y0 float64
	X1, Y1 float64
}

func (r RectF) Intersects(o RectF) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Y0 < o.Y1 && r.Y1 > o.Y0
}

// tryLaneChange starts a lane change and, when accepted, scores a near miss
// against the first live car being skimmed in the target lane. At most one
// car scores per change.
func (s *GameSession) tryLaneChange(dir int) {
	if !s.Player.BeginLaneChange(dir) {
		return
	}
	lane := s.Player.Lane
	for i := range s.Traffic.Cars {
		c := &s.Traffic.Cars[i]
		if !c.Alive || c.Lane != lane {
			continue
		}
		if absF(c.Y-s.Player.Y) < s.Bal.NearMissDistance {
			s.scoreNearMiss()
			break
		}
	}
}

func (s *GameSession) scoreNearMiss() {
	if s.NearComboTimer > 0 {
		s.NearCombo = clamp(s.NearCombo+1, 1, s.Bal.NearMissMaxCombo)
	} else {
		s.NearCombo = 1
	}
	s.NearComboTimer = s.Bal.NearMissWindow

	bonus := int(float64(s.Bal.NearMissBonus) * (1.0 + float64(s.NearCombo-1)*s.Bal.NearMissComboMult))
	s.Events.Emit(Event{Type: EventNearMiss, X: s.Player.X, Y: s.Player.Y, Data: bonus})
}

// checkCollisions sweeps traffic against the player hitbox. A banked shield
// always wins over a crash; a crash stops the sweep because the run is over.
// The pass bonus is awarded here too, once per car, the first frame its
// center is below the player's.
func (s *GameSession) checkCollisions() {
	hit := s.Player.CollisionRect(s.FirstPerson)

	for i := range s.Traffic.Cars {
		c := &s.Traffic.Cars[i]
		if !c.Alive {
			continue
		}
		if c.Rect().Intersects(hit) {
			if s.Player.ConsumeShield() {
				c.Alive = false
				s.Events.Emit(Event{Type: EventShieldSaved, X: s.Player.X, Y: s.Player.Y})
				continue
			}
			s.Events.Emit(Event{Type: EventCrashed, X: s.Player.X, Y: s.Player.Y})
			return
		}
		if !c.Passed && c.Y > s.Player.Y {
			c.Passed = true
			s.Events.Emit(Event{Type: EventCarPassed, X: c.X, Y: c.Y, Data: s.Bal.PassBonus})
		}
	}
}

// checkPickups collects any powerup overlapping the full car body. Pickups
// use the body in both camera views so first person does not nerf them.
func (s *GameSession) checkPickups() {
	body := s.Player.BodyRect()
	for i := range s.Powerups.Items {
		u := &s.Powerups.Items[i]
		if u.Alive && u.Rect().Intersects(body) {
			s.Powerups.Collect(i, s.Player, s.Events)
		}
	}
}
