package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendQuad_TwoTrianglesWithColor(t *testing.T) {
	buf := appendQuad(nil, 10, 20, 30, 40, RGB{R: 255}, 0.5)

	assert.Len(t, buf, 36, "six vertices, stride six")

	// Triangle corners: TL, TR, BR, TL, BR, BL.
	wantXY := [][2]float32{{10, 20}, {40, 20}, {40, 60}, {10, 20}, {40, 60}, {10, 60}}
	for i, xy := range wantXY {
		assert.Equal(t, xy[0], buf[i*6+0], "vertex %d x", i)
		assert.Equal(t, xy[1], buf[i*6+1], "vertex %d y", i)
		assert.Equal(t, float32(1), buf[i*6+2], "vertex %d red", i)
		assert.Equal(t, float32(0), buf[i*6+3], "vertex %d green", i)
		assert.Equal(t, float32(0.5), buf[i*6+5], "vertex %d alpha", i)
	}
}

func TestAppendQuadRot_ZeroAngleMatchesPlainQuad(t *testing.T) {
	plain := appendQuad(nil, 40, 45, 20, 10, Palette.Text, 1)
	rot := appendQuadRot(nil, 50, 50, 20, 10, 0, Palette.Text, 1)
	assert.Equal(t, plain, rot)
}

func TestAppendQuadRot_QuarterTurnSwapsExtents(t *testing.T) {
	buf := appendQuadRot(nil, 50, 50, 20, 10, math.Pi/2, Palette.Text, 1)

	// Rotating (-10,-5) by 90 degrees lands at (5,-10) relative to center.
	assert.InDelta(t, 55, float64(buf[0]), 1e-4)
	assert.InDelta(t, 40, float64(buf[1]), 1e-4)
	// And (10,-5) lands at (5,10).
	assert.InDelta(t, 55, float64(buf[6]), 1e-4)
	assert.InDelta(t, 60, float64(buf[7]), 1e-4)
}

func TestAppendTexQuadRot_CoversFullUVRange(t *testing.T) {
	buf := appendTexQuadRot(nil, 0, 0, 10, 10, 0, Palette.Text, 1)

	assert.Len(t, buf, 48, "six vertices, stride eight")
	wantUV := [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 0}, {1, 1}, {0, 1}}
	for i, uv := range wantUV {
		assert.Equal(t, uv[0], buf[i*8+2], "vertex %d u", i)
		assert.Equal(t, uv[1], buf[i*8+3], "vertex %d v", i)
	}
}

func TestAppendDisk_FanAroundCenter(t *testing.T) {
	const r = 25.0
	buf := appendDisk(nil, 100, 200, r, Palette.DialFace, 1)

	assert.Len(t, buf, 32*3*6, "32 fan triangles")

	for tri := 0; tri < 32; tri++ {
		base := tri * 18
		assert.Equal(t, float32(100), buf[base+0], "triangle %d apex x", tri)
		assert.Equal(t, float32(200), buf[base+1], "triangle %d apex y", tri)

		for _, off := range []int{6, 12} {
			dx := float64(buf[base+off+0]) - 100
			dy := float64(buf[base+off+1]) - 200
			assert.InDelta(t, r, math.Hypot(dx, dy), 1e-3, "triangle %d rim vertex", tri)
		}
	}
}

func TestAppendLine_PerpendicularWidth(t *testing.T) {
	buf := appendLine(nil, 0, 0, 10, 0, 2, Palette.Needle, 1)

	assert.Len(t, buf, 36)
	for i := 0; i < 6; i++ {
		x := float64(buf[i*6+0])
		y := float64(buf[i*6+1])
		assert.True(t, x == 0 || x == 10, "vertex %d x=%v must sit on an endpoint", i, x)
		assert.InDelta(t, 1, math.Abs(y), 1e-9, "half the width on each side")
	}
}

func TestAppendLine_ZeroLengthAppendsNothing(t *testing.T) {
	buf := appendLine(nil, 5, 5, 5, 5, 2, Palette.Needle, 1)
	assert.Empty(t, buf)
}

func TestAppendNitroMeter_FillTracksCharge(t *testing.T) {
	empty := appendNitroMeter(nil, 0, NitroDuration)
	full := appendNitroMeter(nil, NitroDuration, NitroDuration)

	assert.Len(t, empty, 2*36, "frame and well only when drained")
	assert.Len(t, full, 3*36, "a fill bar appears with charge")
}

func TestAppendSpeedometer_NeedleFollowsSpeed(t *testing.T) {
	slow := appendSpeedometer(nil, PlayerMinSpeed)
	fast := appendSpeedometer(nil, PlayerMaxSpeed)
	assert.Equal(t, len(slow), len(fast), "geometry count does not depend on speed")

	// The needle is the second-to-last primitive: a 6-vertex quad before the
	// 576-float hub disk. At minimum speed it points left, at maximum right.
	needleTip := func(buf []float32) float64 {
		start := len(buf) - 576 - 36
		return float64(buf[start+6]) // second vertex x, at the tip side
	}
	cx := float64(ScreenW) - 110
	assert.Less(t, needleTip(slow), cx)
	assert.Greater(t, needleTip(fast), cx)
}
