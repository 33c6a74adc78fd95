package game

import (
	"math"
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// uploadRGBA uploads a pixel buffer as a NEAREST-filtered RGBA texture.
func uploadRGBA(pix []uint8, w, h int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return tex
}

// fillBands paints full-width horizontal bands top to bottom into an
// s-by-s pixel grid. Row 0 is the vehicle front.
func fillBands(pix []uint8, s int, bands []struct {
	h   int
	col RGB
}) {
	set := func(x, y int, col RGB) {
		i := (y*s + x) * 4
		pix[i+0] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = 255
	}
	y := 0
	for _, b := range bands {
		for row := 0; row < b.h && y < s; row++ {
			for x := 0; x < s; x++ {
				set(x, y, b.col)
			}
			y++
		}
	}
}

// jitter shifts each color channel by a small random amount so no two
// runs get identical paint jobs.
func jitter(col RGB, r *Rand, amount int) RGB {
	return col.Add(
		r.Range(-amount, amount),
		r.Range(-amount, amount),
		r.Range(-amount, amount),
	)
}

func makeVehicleTexture(kind VehicleKind, r *Rand) uint32 {
	const s = 8
	pix := make([]uint8, s*s*4)
	window := RGB{R: 130, G: 135, B: 140}

	switch kind {
	case VehicleTruck:
		body := jitter(Palette.TruckBody, r, 20)
		cargo := jitter(RGB{R: 150, G: 148, B: 140}, r, 12)
		fillBands(pix, s, []struct {
			h   int
			col RGB
		}{
			{1, body},   // bumper
			{1, body},   // hood
			{1, window}, // cab windshield
			{5, cargo},  // cargo box
		})
	case VehicleBus:
		body := jitter(Palette.BusBody, r, 20)
		roof := body.Mul(220)
		fillBands(pix, s, []struct {
			h   int
			col RGB
		}{
			{1, body},   // bumper
			{1, window}, // windshield
			{1, body},
			{1, roof}, // roof hatch stripe
			{1, body},
			{1, roof},
			{2, body},
		})
	default:
		body := jitter(Palette.CarBody, r, 30)
		roof := body.Mul(180)
		fillBands(pix, s, []struct {
			h   int
			col RGB
		}{
			{1, body},   // bumper
			{2, body},   // hood
			{1, window}, // windshield
			{2, roof},   // roof
			{1, window}, // rear window
			{1, body},   // trunk
		})
	}

	return uploadRGBA(pix, s, s)
}

// makePlayerTexture builds the player's car: green body with a pale
// racing stripe down the center.
func makePlayerTexture() uint32 {
	const s = 8
	pix := make([]uint8, s*s*4)
	body := Palette.PlayerBody
	window := RGB{R: 120, G: 140, B: 125}
	roof := body.Mul(180)
	stripe := RGB{R: 230, G: 230, B: 230}

	fillBands(pix, s, []struct {
		h   int
		col RGB
	}{
		{1, body},
		{2, body},
		{1, window},
		{2, roof},
		{1, window},
		{1, body},
	})

	// Stripe over the opaque body rows, skipping the glass.
	for _, y := range [4]int{0, 1, 2, 7} {
		for _, x := range [2]int{3, 4} {
			i := (y*s + x) * 4
			pix[i+0] = stripe.R
			pix[i+1] = stripe.G
			pix[i+2] = stripe.B
		}
	}

	return uploadRGBA(pix, s, s)
}

// makeShadowTexture builds a soft radial disc used under every vehicle.
func makeShadowTexture() uint32 {
	const s = 32
	pix := make([]uint8, s*s*4)
	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			dx := float64(x) - s/2 + 0.5
			dy := float64(y) - s/2 + 0.5
			d := math.Hypot(dx, dy) / (s / 2)
			fall := clampF(1-d, 0, 1)
			a := uint8(fall * fall * 255)
			i := (y*s + x) * 4
			pix[i+3] = a
		}
	}
	return uploadRGBA(pix, s, s)
}

// InitVehicleTextures creates all vehicle textures on the renderer.
func (r *Renderer) InitVehicleTextures() {
	rng := NewRand(0xD21FF)
	for kind := VehicleCar; kind < vehicleKindCount; kind++ {
		r.vehicleTex[kind] = makeVehicleTexture(kind, rng)
	}
	r.playerTex = makePlayerTexture()
	r.shadowTex = makeShadowTexture()
}

// DrawTraffic renders traffic shadows then bodies, batched per kind.
// Lane clearance keeps cars from overlapping so no depth sort is needed.
func (rend *Renderer) DrawTraffic(s *GameSession) {
	cars := s.Traffic.Cars
	if len(cars) == 0 {
		return
	}
	ox, oy := s.Camera.Offset()

	buf := rend.spriteBuf[:0]
	for i := range cars {
		c := &cars[i]
		if !c.Alive {
			continue
		}
		buf = appendTexQuadRot(buf, c.X+6, c.Y+10, c.W*1.15, c.H*1.05, 0, Palette.ShadowBlack, 0.4)
	}
	rend.spriteBuf = buf
	rend.DrawTexturedQuads(rend.spriteBuf, rend.shadowTex, ox, oy)

	for kind := VehicleCar; kind < vehicleKindCount; kind++ {
		buf = rend.spriteBuf[:0]
		for i := range cars {
			c := &cars[i]
			if !c.Alive || c.Kind != kind {
				continue
			}
			buf = appendTexQuadRot(buf, c.X, c.Y, c.W, c.H, 0, RGB{R: 255, G: 255, B: 255}, 1)
		}
		rend.spriteBuf = buf
		rend.DrawTexturedQuads(rend.spriteBuf, rend.vehicleTex[kind], ox, oy)
	}
}

// DrawPlayerCar renders the player's shadow and body, leaning into
// lateral motion.
func (rend *Renderer) DrawPlayerCar(s *GameSession) {
	p := s.Player
	ox, oy := s.Camera.Offset()
	lean := p.LeanAngle() * math.Pi / 180

	buf := rend.spriteBuf[:0]
	buf = appendTexQuadRot(buf, p.X+6, p.Y+10, p.W*1.15, p.H*1.05, lean, Palette.ShadowBlack, 0.4)
	rend.spriteBuf = buf
	rend.DrawTexturedQuads(rend.spriteBuf, rend.shadowTex, ox, oy)

	buf = rend.spriteBuf[:0]
	buf = appendTexQuadRot(buf, p.X, p.Y, p.W, p.H, lean, RGB{R: 255, G: 255, B: 255}, 1)
	rend.spriteBuf = buf
	rend.DrawTexturedQuads(rend.spriteBuf, rend.playerTex, ox, oy)
}

// DrawVehicleLights renders taillight and headlight glows over the car
// bodies. RGB is pre-multiplied for additive blending.
func (rend *Renderer) DrawVehicleLights(s *GameSession) {
	buf := rend.glowBuf[:0]

	addLights := func(x, y, w, h float64) {
		lx := w * 0.28
		// Taillights face the player.
		buf = append(buf,
			float32(x-lx), float32(y+h/2-3), 7, 0.55, 0.04, 0.04, 1,
			float32(x+lx), float32(y+h/2-3), 7, 0.55, 0.04, 0.04, 1,
		)
		// Headlights, mostly hidden by the body from this angle.
		buf = append(buf,
			float32(x-lx), float32(y-h/2+3), 5, 0.30, 0.29, 0.22, 1,
			float32(x+lx), float32(y-h/2+3), 5, 0.30, 0.29, 0.22, 1,
		)
	}

	for i := range s.Traffic.Cars {
		c := &s.Traffic.Cars[i]
		if !c.Alive {
			continue
		}
		addLights(c.X, c.Y, c.W, c.H)
	}
	addLights(s.Player.X, s.Player.Y, s.Player.W, s.Player.H)

	rend.glowBuf = buf
	ox, oy := s.Camera.Offset()
	rend.DrawGlowSprites(rend.glowBuf, ox, oy)
}

// DrawTrafficFirstPerson projects traffic into the windshield view and
// draws far-to-near, one car per call since lanes overlap on screen.
func (rend *Renderer) DrawTrafficFirstPerson(s *GameSession) {
	cars := s.Traffic.Cars
	if len(cars) == 0 {
		return
	}
	order := make([]int, 0, len(cars))
	for i := range cars {
		if cars[i].Alive {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(a, b int) bool {
		return cars[order[a]].Y < cars[order[b]].Y
	})

	ox, oy := s.Camera.Offset()
	for _, i := range order {
		c := &cars[i]
		sx, sy, scale := fpProject(c.X, c.Y)
		w := c.W * scale
		h := c.H * scale * 0.85

		buf := rend.spriteBuf[:0]
		buf = appendTexQuadRot(buf, sx, sy+h*0.1, w*1.1, h*0.5, 0, Palette.ShadowBlack, 0.35)
		rend.spriteBuf = buf
		rend.DrawTexturedQuads(rend.spriteBuf, rend.shadowTex, ox, oy)

		buf = rend.spriteBuf[:0]
		buf = appendTexQuadRot(buf, sx, sy, w, h, 0, RGB{R: 255, G: 255, B: 255}, 1)
		rend.spriteBuf = buf
		rend.DrawTexturedQuads(rend.spriteBuf, rend.vehicleTex[c.Kind], ox, oy)
	}
}

// DrawHood renders the player's hood and dashboard at the bottom of the
// windshield view, leaning with lateral motion.
func (rend *Renderer) DrawHood(s *GameSession) {
	ox, oy := s.Camera.Offset()
	lean := s.Player.LeanAngle()

	// The hood slides opposite the lean to sell the body roll.
	slide := -lean * 3

	buf := rend.quadBuf[:0]
	hoodTopW := 300.0
	hoodBotW := 640.0
	buf = appendTrapezoid(buf,
		ScreenW/2+slide-hoodTopW/2, ScreenW/2+slide+hoodTopW/2, fpHoodTopY,
		ScreenW/2+slide-hoodBotW/2, ScreenW/2+slide+hoodBotW/2, 540,
		Palette.PlayerBody, 1)
	// Center stripe.
	buf = appendTrapezoid(buf,
		ScreenW/2+slide-14, ScreenW/2+slide+14, fpHoodTopY,
		ScreenW/2+slide-22, ScreenW/2+slide+22, 540,
		RGB{R: 230, G: 230, B: 230}, 1)
	// Dashboard.
	buf = appendQuad(buf, 0, 540, ScreenW, ScreenH-540, RGB{R: 25, G: 25, B: 30}, 1)

	rend.quadBuf = buf
	rend.DrawQuads(rend.quadBuf, ox, oy)
}

// fpTransformSprites remaps a point-sprite buffer (stride 7) into the
// windshield view in place.
func fpTransformSprites(buf []float32) []float32 {
	for i := 0; i+6 < len(buf); i += 7 {
		sx, sy, scale := fpProject(float64(buf[i]), float64(buf[i+1]))
		buf[i] = float32(sx)
		buf[i+1] = float32(sy)
		buf[i+2] = float32(float64(buf[i+2]) * scale)
	}
	return buf
}
