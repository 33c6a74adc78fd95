package game

import "math"

// Dash placement period along a lane boundary.
const laneDashPeriod = LaneDashH + LaneDashGap

// First-person projection constants. Traffic at world y maps to a depth
// z in [0,1]; z=0 is the horizon, z=1 the near plane just past the hood.
const (
	fpHorizonY  = 60.0
	fpDepthBias = 400.0
	fpDepthSpan = 1400.0
	fpMinScale  = 0.45
	fpScaleSpan = 1.1
	fpXContract = 0.6
	fpHoodTopY  = 420.0
)

// fpDepth maps a world y to perspective depth.
func fpDepth(worldY float64) float64 {
	return clampF((worldY+fpDepthBias)/fpDepthSpan, 0, 1)
}

// fpProject maps a world position to first-person screen position and scale.
func fpProject(x, y float64) (sx, sy, scale float64) {
	z := fpDepth(y)
	scale = fpMinScale + fpScaleSpan*z
	contract := fpXContract + (1-fpXContract)*z
	sx = ScreenW/2 + (x-ScreenW/2)*contract
	sy = fpHorizonY + z*(PlayerStartY-180)
	return
}

// fpRowX returns the contracted x for a world x at a given screen row.
// Rows below the near plane keep full width.
func fpRowX(worldX, screenY float64) float64 {
	nearY := fpHorizonY + (PlayerStartY - 180)
	t := clampF((screenY-fpHorizonY)/(nearY-fpHorizonY), 0, 1)
	contract := fpXContract + (1-fpXContract)*t
	return ScreenW/2 + (worldX-ScreenW/2)*contract
}

// DrawRoad renders the chase-view highway: asphalt, edge strips, and lane
// dashes scrolling with the road. In low detail the dashes freeze in place.
func (rend *Renderer) DrawRoad(s *GameSession) {
	buf := rend.quadBuf[:0]

	roadX := float64(LaneMargin)
	buf = appendQuad(buf, roadX, 0, RoadW, ScreenH, Palette.Road, 1)
	buf = appendQuad(buf, roadX-RoadEdgeW, 0, RoadEdgeW, ScreenH, Palette.RoadEdge, 1)
	buf = appendQuad(buf, roadX+RoadW, 0, RoadEdgeW, ScreenH, Palette.RoadEdge, 1)

	scroll := 0.0
	if !s.Detail.Low() {
		scroll = s.RoadScroll
	}
	for lane := 1; lane < LaneCount; lane++ {
		lx := roadX + float64(lane*LaneW) - LaneDashW/2
		for base := 0.0; base < ScreenH; base += laneDashPeriod {
			dy := math.Mod(base+scroll, ScreenH)
			buf = appendQuad(buf, lx, dy, LaneDashW, LaneDashH, Palette.LaneDash, 0.85)
		}
	}

	rend.quadBuf = buf
	ox, oy := s.Camera.Offset()
	rend.DrawQuads(rend.quadBuf, ox, oy)
}

// DrawRoadFirstPerson renders the hood-view highway: sky band, converging
// road trapezoid, lane guides, and near-field scroll rungs.
func (rend *Renderer) DrawRoadFirstPerson(s *GameSession) {
	buf := rend.quadBuf[:0]

	nearY := fpHorizonY + (PlayerStartY - 180)
	leftW := float64(LaneMargin)
	rightW := float64(LaneMargin + RoadW)

	sky := Palette.Background.Mul(120)
	buf = appendQuad(buf, 0, 0, ScreenW, fpHorizonY, sky, 1)

	// Road trapezoid from horizon to the near plane, then full width below.
	buf = appendTrapezoid(buf,
		fpRowX(leftW, fpHorizonY), fpRowX(rightW, fpHorizonY), fpHorizonY,
		fpRowX(leftW, nearY), fpRowX(rightW, nearY), nearY,
		Palette.Road, 1)
	buf = appendQuad(buf, leftW, nearY, RoadW, ScreenH-nearY, Palette.Road, 1)

	// Edge strips follow the convergence.
	for _, wx := range [2]float64{leftW, rightW} {
		buf = appendTrapezoid(buf,
			fpRowX(wx-RoadEdgeW, fpHorizonY), fpRowX(wx, fpHorizonY), fpHorizonY,
			fpRowX(wx-RoadEdgeW, nearY), fpRowX(wx, nearY), nearY,
			Palette.RoadEdge, 1)
		buf = appendQuad(buf, wx-RoadEdgeW, nearY, RoadEdgeW, ScreenH-nearY, Palette.RoadEdge, 1)
	}

	// Faint converging lane guides.
	for lane := 1; lane < LaneCount; lane++ {
		wx := leftW + float64(lane*LaneW)
		buf = appendTrapezoid(buf,
			fpRowX(wx-LaneDashW/2, fpHorizonY), fpRowX(wx+LaneDashW/2, fpHorizonY), fpHorizonY,
			fpRowX(wx-LaneDashW/2, nearY), fpRowX(wx+LaneDashW/2, nearY), nearY,
			Palette.LaneDash, 0.35)
	}

	// Near-field rungs sell forward motion; frozen in low detail.
	scroll := 0.0
	if !s.Detail.Low() {
		scroll = s.RoadScroll
	}
	span := ScreenH - nearY
	for lane := 1; lane < LaneCount; lane++ {
		lx := leftW + float64(lane*LaneW) - LaneDashW/2
		for base := 0.0; base < span; base += laneDashPeriod {
			dy := nearY + math.Mod(base+scroll, span)
			buf = appendQuad(buf, lx, dy, LaneDashW, LaneDashH, Palette.LaneDash, 0.8)
		}
	}

	rend.quadBuf = buf
	ox, oy := s.Camera.Offset()
	rend.DrawQuads(rend.quadBuf, ox, oy)
}

// appendTrapezoid appends a vertically-oriented trapezoid as two triangles.
func appendTrapezoid(buf []float32, topX0, topX1, topY, botX0, botX1, botY float64, col RGB, alpha float32) []float32 {
	cr := float32(col.R) / 255
	cg := float32(col.G) / 255
	cb := float32(col.B) / 255
	tx0, tx1, ty := float32(topX0), float32(topX1), float32(topY)
	bx0, bx1, by := float32(botX0), float32(botX1), float32(botY)
	return append(buf,
		tx0, ty, cr, cg, cb, alpha,
		tx1, ty, cr, cg, cb, alpha,
		bx1, by, cr, cg, cb, alpha,
		tx0, ty, cr, cg, cb, alpha,
		bx1, by, cr, cg, cb, alpha,
		bx0, by, cr, cg, cb, alpha,
	)
}
