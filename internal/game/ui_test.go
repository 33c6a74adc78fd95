package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFontScale_DerivedFromCellHeight(t *testing.T) {
	assert.Equal(t, float32(1), fontScale(13))
	assert.Equal(t, float32(2), fontScale(26))
	assert.Equal(t, float32(1.5), fontScale(19.5))
}

func TestTextWidth_CountsWidestLine(t *testing.T) {
	assert.Equal(t, 0, TextWidth("", 1))
	assert.Equal(t, 35, TextWidth("SPEED", 1), "five cells of seven pixels")
	assert.Equal(t, 14, TextWidth("A", 2))
	assert.Equal(t, 28, TextWidth("AB\nCDEF", 1), "multi-line text measures its widest line")
	assert.Equal(t, 14, TextWidth("HI\n", 1), "a trailing newline adds no width")
}

func TestPopupAlpha_FadesButStaysLegible(t *testing.T) {
	assert.Equal(t, float32(1), popupAlpha(PopupDuration))
	assert.Equal(t, float32(1), popupAlpha(5), "fresh popups are fully opaque")
	assert.Equal(t, float32(0.5), popupAlpha(PopupDuration/2))
	assert.InDelta(t, 40.0/255.0, float64(popupAlpha(0)), 1e-6, "never fades to invisible")
}

func TestMenuOptions_MatchTheStateMachine(t *testing.T) {
	assert.Equal(t, [...]string{"Start Game", "Instructions", "High Scores", "Quit"}, menuOptions)
	assert.NotEmpty(t, instructionLines)
	assert.Equal(t, "HOW TO PLAY", instructionLines[0])
}
