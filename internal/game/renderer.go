package game

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	// MaxQuadRender caps colored quads per draw call (road, HUD, menus).
	MaxQuadRender = 2048
	// MaxSpriteRender caps textured quads per draw call (vehicles, shadows).
	MaxSpriteRender = 256
	// MaxParticleRender caps point sprites per draw call.
	MaxParticleRender = 4096
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	// Quad program: solid colored triangles.
	quadProg    uint32
	quadVAO     uint32
	quadVBO     uint32
	quadURes    int32
	quadUOrigin int32

	// Sprite program: textured quads.
	spriteProg    uint32
	spriteVAO     uint32
	spriteVBO     uint32
	spriteURes    int32
	spriteUOrigin int32
	spriteUTex    int32

	// Point program: soft-disc particles.
	pointProg    uint32
	pointVAO     uint32
	pointVBO     uint32
	pointURes    int32
	pointUOrigin int32
	pointUScale  int32

	// Glow program: additive light sprites — shares the point VAO.
	glowProg    uint32
	glowURes    int32
	glowUOrigin int32
	glowUScale  int32

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32

	// Procedural textures, built once at startup.
	vehicleTex [vehicleKindCount]uint32
	playerTex  uint32
	shadowTex  uint32

	// Logical-to-framebuffer scale for gl_PointSize on hi-DPI displays.
	pointScale float32

	// Reusable render buffers to avoid per-frame heap allocations.
	quadBuf   []float32
	spriteBuf []float32
	glowBuf   []float32
	plainBuf  []float32
}

func NewRenderer() (*Renderer, error) {
	quadProg, err := linkProgram(quadVertSrc, quadFragSrc)
	if err != nil {
		return nil, fmt.Errorf("quad program: %w", err)
	}
	spriteProg, err := linkProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		gl.DeleteProgram(quadProg)
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	pointProg, err := linkProgram(pointVertSrc, pointFragSrc)
	if err != nil {
		gl.DeleteProgram(quadProg)
		gl.DeleteProgram(spriteProg)
		return nil, fmt.Errorf("point program: %w", err)
	}
	glowProg, err := linkProgram(pointVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(quadProg)
		gl.DeleteProgram(spriteProg)
		gl.DeleteProgram(pointProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}

	r := &Renderer{
		quadProg:   quadProg,
		spriteProg: spriteProg,
		pointProg:  pointProg,
		glowProg:   glowProg,
		pointScale: 1,
	}

	// Quad VAO/VBO: streaming triangles, 6 floats per vertex (x, y, r, g, b, a).
	var qVAO, qVBO uint32
	gl.GenVertexArrays(1, &qVAO)
	gl.GenBuffers(1, &qVBO)
	gl.BindVertexArray(qVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, qVBO)
	qStride := int32(6 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxQuadRender*6*int(qStride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, qStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, qStride, glOffset(2*4))
	r.quadVAO = qVAO
	r.quadVBO = qVBO

	gl.UseProgram(quadProg)
	r.quadURes = gl.GetUniformLocation(quadProg, gl.Str("uResolution\x00"))
	r.quadUOrigin = gl.GetUniformLocation(quadProg, gl.Str("uOrigin\x00"))
	gl.Uniform2f(r.quadURes, float32(ScreenW), float32(ScreenH))
	gl.Uniform2f(r.quadUOrigin, 0, 0)

	// Sprite VAO/VBO: streaming triangles, 8 floats (x, y, u, v, r, g, b, a).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)
	sStride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxSpriteRender*6*int(sStride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, sStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, sStride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, sStride, glOffset(4*4))
	r.spriteVAO = sVAO
	r.spriteVBO = sVBO

	gl.UseProgram(spriteProg)
	r.spriteURes = gl.GetUniformLocation(spriteProg, gl.Str("uResolution\x00"))
	r.spriteUOrigin = gl.GetUniformLocation(spriteProg, gl.Str("uOrigin\x00"))
	r.spriteUTex = gl.GetUniformLocation(spriteProg, gl.Str("uTex\x00"))
	gl.Uniform2f(r.spriteURes, float32(ScreenW), float32(ScreenH))
	gl.Uniform2f(r.spriteUOrigin, 0, 0)
	gl.Uniform1i(r.spriteUTex, 1)

	// Point VAO/VBO: streaming point sprites, 7 floats (x, y, size, r, g, b, a).
	var pVAO, pVBO uint32
	gl.GenVertexArrays(1, &pVAO)
	gl.GenBuffers(1, &pVBO)
	gl.BindVertexArray(pVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, pVBO)
	pStride := int32(7 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxParticleRender*int(pStride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, pStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, pStride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, pStride, glOffset(3*4))
	r.pointVAO = pVAO
	r.pointVBO = pVBO

	gl.UseProgram(pointProg)
	r.pointURes = gl.GetUniformLocation(pointProg, gl.Str("uResolution\x00"))
	r.pointUOrigin = gl.GetUniformLocation(pointProg, gl.Str("uOrigin\x00"))
	r.pointUScale = gl.GetUniformLocation(pointProg, gl.Str("uPointScale\x00"))
	gl.Uniform2f(r.pointURes, float32(ScreenW), float32(ScreenH))
	gl.Uniform2f(r.pointUOrigin, 0, 0)
	gl.Uniform1f(r.pointUScale, 1)

	gl.UseProgram(glowProg)
	r.glowURes = gl.GetUniformLocation(glowProg, gl.Str("uResolution\x00"))
	r.glowUOrigin = gl.GetUniformLocation(glowProg, gl.Str("uOrigin\x00"))
	r.glowUScale = gl.GetUniformLocation(glowProg, gl.Str("uPointScale\x00"))
	gl.Uniform2f(r.glowURes, float32(ScreenW), float32(ScreenH))
	gl.Uniform2f(r.glowUOrigin, 0, 0)
	gl.Uniform1f(r.glowUScale, 1)

	gl.BindVertexArray(0)

	// Core profile: gl_PointSize in the vertex shader needs this enabled.
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.quadVBO, r.spriteVBO, r.pointVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.quadVAO, r.spriteVAO, r.pointVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.quadProg, r.spriteProg, r.pointProg, r.glowProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
	for _, id := range r.vehicleTex {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
	if r.playerTex != 0 {
		gl.DeleteTextures(1, &r.playerTex)
	}
	if r.shadowTex != 0 {
		gl.DeleteTextures(1, &r.shadowTex)
	}
}

// BeginFrame clears to the given color and refreshes the hi-DPI point scale.
func (r *Renderer) BeginFrame(fbW, fbH int, clear RGB) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(float32(clear.R)/255, float32(clear.G)/255, float32(clear.B)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	scale := float32(fbW) / float32(ScreenW)
	if scale <= 0 {
		scale = 1
	}
	if scale != r.pointScale {
		r.pointScale = scale
		gl.UseProgram(r.pointProg)
		gl.Uniform1f(r.pointUScale, scale)
		gl.UseProgram(r.glowProg)
		gl.Uniform1f(r.glowUScale, scale)
	}
}

// DrawQuads renders solid colored triangles.
// buf format: [x, y, r, g, b, a] * N vertices. ox/oy shift the whole batch
// (camera shake for world layers, zero for HUD).
func (r *Renderer) DrawQuads(buf []float32, ox, oy float64) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 6
	if count > MaxQuadRender*6 {
		count = MaxQuadRender * 6
	}

	gl.UseProgram(r.quadProg)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.Uniform2f(r.quadUOrigin, float32(ox), float32(oy))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*6*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawTexturedQuads renders textured triangles with the given texture.
// buf format: [x, y, u, v, r, g, b, a] * N vertices.
func (r *Renderer) DrawTexturedQuads(buf []float32, tex uint32, ox, oy float64) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 8
	if count > MaxSpriteRender*6 {
		count = MaxSpriteRender * 6
	}

	gl.UseProgram(r.spriteProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)
	gl.Uniform2f(r.spriteUOrigin, float32(ox), float32(oy))

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
	gl.Disable(gl.BLEND)

	gl.ActiveTexture(gl.TEXTURE0)
}

// DrawPointSprites renders soft-disc particles with alpha blending.
// buf format: [x, y, size, r, g, b, a] * N.
func (r *Renderer) DrawPointSprites(buf []float32, ox, oy float64) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 7
	if count > MaxParticleRender {
		count = MaxParticleRender
	}

	gl.UseProgram(r.pointProg)
	gl.BindVertexArray(r.pointVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.pointVBO)
	gl.Uniform2f(r.pointUOrigin, float32(ox), float32(oy))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*7*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawGlowSprites renders light sprites with additive blending and radial
// falloff. buf format: same as DrawPointSprites; RGB pre-multiplied by
// desired brightness.
func (r *Renderer) DrawGlowSprites(buf []float32, ox, oy float64) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 7
	if count > MaxParticleRender {
		count = MaxParticleRender
	}

	gl.UseProgram(r.glowProg)
	gl.BindVertexArray(r.pointVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.pointVBO)
	gl.Uniform2f(r.glowUOrigin, float32(ox), float32(oy))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)
	gl.BufferData(gl.ARRAY_BUFFER, count*7*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// appendQuad appends an axis-aligned rectangle as two triangles.
func appendQuad(buf []float32, x, y, w, h float64, col RGB, alpha float32) []float32 {
	x0, y0 := float32(x), float32(y)
	x1, y1 := float32(x+w), float32(y+h)
	cr := float32(col.R) / 255
	cg := float32(col.G) / 255
	cb := float32(col.B) / 255
	return append(buf,
		x0, y0, cr, cg, cb, alpha,
		x1, y0, cr, cg, cb, alpha,
		x1, y1, cr, cg, cb, alpha,
		x0, y0, cr, cg, cb, alpha,
		x1, y1, cr, cg, cb, alpha,
		x0, y1, cr, cg, cb, alpha,
	)
}

// appendQuadRot appends a rectangle rotated around its center by angle
// (radians), as two triangles.
func appendQuadRot(buf []float32, cx, cy, w, h, angle float64, col RGB, alpha float32) []float32 {
	s, c := math.Sincos(angle)
	hw, hh := w/2, h/2
	px := [4]float64{-hw, hw, hw, -hw}
	py := [4]float64{-hh, -hh, hh, hh}
	var vx, vy [4]float32
	for i := 0; i < 4; i++ {
		vx[i] = float32(cx + px[i]*c - py[i]*s)
		vy[i] = float32(cy + px[i]*s + py[i]*c)
	}
	cr := float32(col.R) / 255
	cg := float32(col.G) / 255
	cb := float32(col.B) / 255
	return append(buf,
		vx[0], vy[0], cr, cg, cb, alpha,
		vx[1], vy[1], cr, cg, cb, alpha,
		vx[2], vy[2], cr, cg, cb, alpha,
		vx[0], vy[0], cr, cg, cb, alpha,
		vx[2], vy[2], cr, cg, cb, alpha,
		vx[3], vy[3], cr, cg, cb, alpha,
	)
}

// appendTexQuadRot appends a rotated textured rectangle covering the full
// 0..1 UV range, tinted by col.
func appendTexQuadRot(buf []float32, cx, cy, w, h, angle float64, col RGB, alpha float32) []float32 {
	s, c := math.Sincos(angle)
	hw, hh := w/2, h/2
	px := [4]float64{-hw, hw, hw, -hw}
	py := [4]float64{-hh, -hh, hh, hh}
	us := [4]float32{0, 1, 1, 0}
	vs := [4]float32{0, 0, 1, 1}
	var vx, vy [4]float32
	for i := 0; i < 4; i++ {
		vx[i] = float32(cx + px[i]*c - py[i]*s)
		vy[i] = float32(cy + px[i]*s + py[i]*c)
	}
	cr := float32(col.R) / 255
	cg := float32(col.G) / 255
	cb := float32(col.B) / 255
	return append(buf,
		vx[0], vy[0], us[0], vs[0], cr, cg, cb, alpha,
		vx[1], vy[1], us[1], vs[1], cr, cg, cb, alpha,
		vx[2], vy[2], us[2], vs[2], cr, cg, cb, alpha,
		vx[0], vy[0], us[0], vs[0], cr, cg, cb, alpha,
		vx[2], vy[2], us[2], vs[2], cr, cg, cb, alpha,
		vx[3], vy[3], us[3], vs[3], cr, cg, cb, alpha,
	)
}
