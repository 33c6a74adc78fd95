package game

import (
	"fmt"
	"math"
)

// Menu entries in selection order. RunDesktop maps the index back to a
// state change, so order matters.
var menuOptions = [...]string{"Start Game", "Instructions", "High Scores", "Quit"}

var instructionLines = [...]string{
	"HOW TO PLAY",
	"Up/W accelerates, Down/S brakes",
	"Left/Right or A/D change lanes",
	"Swerve close behind a car for a NEAR MISS bonus",
	"Chain near misses within the window to multiply it, up to x6",
	"Blue orbs grant nitro, gold orbs a one-hit shield",
	"P pauses the run, V toggles the hood camera",
	"Esc returns here - crashing ends the run",
}

// fontScale converts a glyph height in pixels to a font-atlas scale.
func fontScale(px float64) float32 { return float32(px / FontCellH) }

func (r *Renderer) drawCentered(text string, cx, y int, scale float32, col RGB) {
	r.DrawString(text, cx-TextWidth(text, scale)/2, y, scale, col)
}

func (r *Renderer) drawCenteredAlpha(text string, cx, y int, scale float32, col RGB, alpha float32) {
	r.DrawStringAlpha(text, cx-TextWidth(text, scale)/2, y, scale, col, alpha)
}

// RenderScene draws everything behind the text layer for the current state.
// The caller has already cleared the frame with the state's background color.
func RenderScene(r *Renderer, s *GameSession, now float64) {
	switch s.State {
	case StatePlaying, StatePaused, StateCrashing:
		if s.FirstPerson {
			renderWorldFirstPerson(r, s)
		} else {
			renderWorld(r, s)
		}
	case StateMenu:
		renderMenuBackdrop(r, now)
	case StateGameOver:
		renderWreckBackdrop(r, now)
	}
}

// renderWorld draws the chase-camera scene back to front: road, pickups,
// traffic, the player, lights, then particles on top.
func renderWorld(r *Renderer, s *GameSession) {
	ox, oy := s.Camera.Offset()

	r.DrawRoad(s)

	core, halo := s.Powerups.RenderData(r.plainBuf[:0], r.glowBuf[:0])
	r.plainBuf, r.glowBuf = core, halo
	r.DrawGlowSprites(halo, ox, oy)
	r.DrawPointSprites(core, ox, oy)

	r.DrawTraffic(s)
	r.DrawPlayerCar(s)
	r.DrawVehicleLights(s)

	glow, plain := s.Particles.RenderData(r.glowBuf[:0], r.plainBuf[:0])
	r.glowBuf, r.plainBuf = glow, plain
	r.DrawGlowSprites(glow, ox, oy)
	r.DrawPointSprites(plain, ox, oy)
}

// renderWorldFirstPerson draws the hood-camera scene. World-space sprites
// are pushed through the same projection as the road before drawing; the
// exhaust trail is skipped because it would sit inside the cabin.
func renderWorldFirstPerson(r *Renderer, s *GameSession) {
	ox, oy := s.Camera.Offset()

	r.DrawRoadFirstPerson(s)

	core, halo := s.Powerups.RenderData(r.plainBuf[:0], r.glowBuf[:0])
	core = fpTransformSprites(core)
	halo = fpTransformSprites(halo)
	r.plainBuf, r.glowBuf = core, halo
	r.DrawGlowSprites(halo, ox, oy)
	r.DrawPointSprites(core, ox, oy)

	r.DrawTrafficFirstPerson(s)

	_, plain := s.Particles.RenderData(r.glowBuf[:0], r.plainBuf[:0])
	plain = fpTransformSprites(plain)
	r.plainBuf = plain
	r.DrawPointSprites(plain, ox, oy)

	r.DrawHood(s)

	// Nitro flames lick over the hood corners while boost is burning.
	if s.Player.Nitro > 0 {
		flame := Palette.NitroFlame
		flicker := float32(0.55 + 0.35*math.Sin(s.RunTime*31))
		fr := float32(flame.R) / 255 * flicker
		fg := float32(flame.G) / 255 * flicker
		fb := float32(flame.B) / 255 * flicker
		buf := r.glowBuf[:0]
		buf = append(buf,
			float32(ScreenW/2-160), 560, 92, fr, fg, fb, flicker,
			float32(ScreenW/2+160), 560, 92, fr, fg, fb, flicker,
		)
		r.glowBuf = buf
		r.DrawGlowSprites(buf, ox, oy)
	}
}

// renderMenuBackdrop bobs the player's car under the title.
func renderMenuBackdrop(r *Renderer, now float64) {
	bobY := 160 + math.Sin(now*2)*6
	buf := appendTexQuadRot(r.spriteBuf[:0], ScreenW/2, bobY, 120, 240, 0,
		RGB{R: 255, G: 255, B: 255}, 1)
	r.spriteBuf = buf
	r.DrawTexturedQuads(buf, r.playerTex, 0, 0)
}

// renderWreckBackdrop pulses a warning beacon under the game-over text.
func renderWreckBackdrop(r *Renderer, now float64) {
	radius := 40 + math.Sin(now*6)*6
	buf := appendDisk(r.quadBuf[:0], ScreenW/2, 420, radius, Palette.WreckPulse, 1)
	r.quadBuf = buf
	r.DrawQuads(buf, 0, 0)
}

// RenderHUD draws the text and gauge layer for the current state. menuIndex
// is the highlighted entry while in the menu; fps is the smoothed frame rate
// shown during a run.
func RenderHUD(r *Renderer, s *GameSession, menuIndex, fps int, now float64) {
	switch s.State {
	case StateMenu:
		r.drawCentered("SPEED RUSH", ScreenW/2, 60, fontScale(48), Palette.Highlight)
		for i, opt := range menuOptions {
			col := Palette.Text
			if i == menuIndex {
				col = Palette.Highlight
			}
			r.drawCentered(opt, ScreenW/2, 300+i*54, fontScale(36), col)
		}
		footer := "Up/Down to choose - Enter to confirm"
		r.drawCentered(footer, ScreenW/2, ScreenH-40, fontScale(20), Palette.Text.Mul(170))

	case StateInstructions:
		for i, line := range instructionLines {
			size := 20.0
			col := Palette.Text
			if i == 0 {
				size = 26.0
				col = Palette.Highlight
			}
			r.DrawString(line, 40, 40+i*34, fontScale(size), col)
		}
		r.drawCentered("Esc to return", ScreenW/2, ScreenH-40, fontScale(20), Palette.Text.Mul(170))

	case StateHighscores:
		r.drawCentered("High Scores", ScreenW/2, 40, fontScale(48), Palette.Highlight)
		top := s.Scores.Top(10)
		if len(top) == 0 {
			r.drawCentered("No runs recorded yet", ScreenW/2, 140, fontScale(24), Palette.Text)
		}
		for i, sc := range top {
			entry := fmt.Sprintf("%2d. %07d", i+1, sc)
			r.drawCentered(entry, ScreenW/2, 120+i*36, fontScale(28), Palette.Text)
		}
		r.drawCentered("Esc to return", ScreenW/2, ScreenH-40, fontScale(20), Palette.Text.Mul(170))

	case StatePlaying, StateCrashing:
		drawDrivingHUD(r, s, fps)

	case StatePaused:
		drawDrivingHUD(r, s, fps)
		r.drawCentered("PAUSED - Press P to resume", ScreenW/2, ScreenH/2-18,
			fontScale(36), Palette.Highlight)

	case StateGameOver:
		red := RGB{R: 230, G: 60, B: 60}
		r.drawCentered("GAME OVER", ScreenW/2, 120, fontScale(72), red)
		r.drawCentered(fmt.Sprintf("Final Score: %07d", s.Score), ScreenW/2, 210,
			fontScale(36), Palette.Text)
		if top := s.Scores.Top(1); len(top) > 0 && s.Score > 0 && s.Score >= top[0] {
			pulse := float32(0.7 + 0.3*math.Sin(now*5))
			r.drawCenteredAlpha("NEW BEST RUN", ScreenW/2, 270, fontScale(24),
				Palette.Highlight, pulse)
		}
		r.drawCentered("Press Enter for the menu - Esc quits", ScreenW/2, 320,
			fontScale(20), Palette.Text.Mul(170))
	}

	r.FlushText()
}

// drawDrivingHUD draws the per-run overlay: score and status text, the nitro
// meter, the speedometer dial and any score popups. Gauges are quads and go
// out in one batch before the text layer.
func drawDrivingHUD(r *Renderer, s *GameSession, fps int) {
	buf := r.quadBuf[:0]
	buf = appendNitroMeter(buf, s.Player.Nitro, s.Bal.NitroDuration)
	buf = appendSpeedometer(buf, s.Player.DisplaySpeed)
	for i := range s.Popups {
		p := &s.Popups[i]
		boxAlpha := popupAlpha(p.TTL) / 2
		if boxAlpha < 80.0/255.0 {
			boxAlpha = 80.0 / 255.0
		}
		buf = appendQuad(buf, p.X-150, p.Y-18, 300, 36, RGB{R: 20, G: 20, B: 20}, boxAlpha)
	}
	r.quadBuf = buf
	r.DrawQuads(buf, 0, 0)

	r.DrawString(fmt.Sprintf("Score: %07d", s.Score), 12, 8, fontScale(28), Palette.Text)
	r.DrawString(fmt.Sprintf("FPS: %d", fps), ScreenW-120, 10, fontScale(18), Palette.Text.Mul(180))
	if s.Player.Shield > 0 {
		r.DrawString(fmt.Sprintf("Shield: %d", s.Player.Shield), ScreenW-260, 10,
			fontScale(18), Palette.ShieldOrb)
	}

	nitroLabel := "NITRO"
	labelScale := fontScale(12)
	r.DrawString(nitroLabel, 18+9-TextWidth(nitroLabel, labelScale)/2, ScreenH-20,
		labelScale, Palette.MeterFill)

	// Digital readout under the needle hub.
	kmh := fmt.Sprintf("%03d", int(s.Player.DisplaySpeed*10))
	r.drawCentered(kmh, ScreenW-110, ScreenH-80+dialRadius-18, fontScale(18), Palette.Text)

	for i := range s.Popups {
		p := &s.Popups[i]
		r.drawCenteredAlpha(p.Text, int(p.X), int(p.Y)-12, fontScale(24),
			Palette.PopupText, popupAlpha(p.TTL))
	}
}

// popupAlpha fades a popup out over its lifetime but keeps it legible until
// the moment it expires.
func popupAlpha(ttl float64) float32 {
	return float32(clampF(ttl/PopupDuration, 40.0/255.0, 1))
}

// appendNitroMeter appends the boost gauge: frame, dark well, and a fill bar
// growing up from the bottom.
func appendNitroMeter(buf []float32, nitro, duration float64) []float32 {
	const (
		x = 18.0
		w = 18.0
		h = 96.0
	)
	y := float64(ScreenH) - 120

	buf = appendQuad(buf, x, y, w, h, Palette.MeterFrame, 1)
	buf = appendQuad(buf, x+2, y+2, w-4, h-4, RGB{R: 15, G: 15, B: 18}, 1)

	fill := clampF(nitro/duration, 0, 1) * (h - 4)
	if fill > 0 {
		buf = appendQuad(buf, x+2, y+h-2-fill, w-4, fill, Palette.MeterFill, 1)
	}
	return buf
}

const dialRadius = 64.0

// appendSpeedometer appends the dial: face, tick marks every 18 degrees
// across the top semicircle, and a needle driven by the smoothed speed.
func appendSpeedometer(buf []float32, display float64) []float32 {
	cx := float64(ScreenW) - 110
	cy := float64(ScreenH) - 80

	buf = appendDisk(buf, cx, cy, dialRadius, Palette.DialFace, 1)
	buf = appendDisk(buf, cx, cy, dialRadius-4, Palette.DialInner, 1)

	for i := 0; i <= 10; i++ {
		ang := math.Pi + float64(i)*18*math.Pi/180
		sin, cos := math.Sincos(ang)
		buf = appendLine(buf,
			cx+cos*(dialRadius-6), cy+sin*(dialRadius-6),
			cx+cos*(dialRadius-16), cy+sin*(dialRadius-16),
			2, Palette.DialTick, 1)
	}

	pct := clampF((display-PlayerMinSpeed)/(PlayerMaxSpeed-PlayerMinSpeed), 0, 1.15)
	ang := math.Pi + pct*math.Pi
	sin, cos := math.Sincos(ang)
	buf = appendLine(buf, cx, cy, cx+cos*(dialRadius-20), cy+sin*(dialRadius-20),
		3, Palette.Needle, 1)
	buf = appendDisk(buf, cx, cy, 5, Palette.DialTick, 1)
	return buf
}

// appendDisk approximates a filled circle as a fan of triangles in quad
// vertex format.
func appendDisk(buf []float32, cx, cy, radius float64, col RGB, alpha float32) []float32 {
	const segments = 32
	cr := float32(col.R) / 255
	cg := float32(col.G) / 255
	cb := float32(col.B) / 255
	fx, fy := float32(cx), float32(cy)
	for i := 0; i < segments; i++ {
		a0 := float64(i) * 2 * math.Pi / segments
		a1 := float64(i+1) * 2 * math.Pi / segments
		s0, c0 := math.Sincos(a0)
		s1, c1 := math.Sincos(a1)
		buf = append(buf,
			fx, fy, cr, cg, cb, alpha,
			float32(cx+c0*radius), float32(cy+s0*radius), cr, cg, cb, alpha,
			float32(cx+c1*radius), float32(cy+s1*radius), cr, cg, cb, alpha,
		)
	}
	return buf
}

// appendLine appends a segment as a thin quad with the given width.
func appendLine(buf []float32, x0, y0, x1, y1, width float64, col RGB, alpha float32) []float32 {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return buf
	}
	px := -dy / length * width / 2
	py := dx / length * width / 2

	cr := float32(col.R) / 255
	cg := float32(col.G) / 255
	cb := float32(col.B) / 255

	ax, ay := float32(x0+px), float32(y0+py)
	bx, by := float32(x1+px), float32(y1+py)
	cx2, cy2 := float32(x1-px), float32(y1-py)
	dx2, dy2 := float32(x0-px), float32(y0-py)

	buf = append(buf,
		ax, ay, cr, cg, cb, alpha,
		bx, by, cr, cg, cb, alpha,
		cx2, cy2, cr, cg, cb, alpha,
		ax, ay, cr, cg, cb, alpha,
		cx2, cy2, cr, cg, cb, alpha,
		dx2, dy2, cr, cg, cb, alpha,
	)
	return buf
}
