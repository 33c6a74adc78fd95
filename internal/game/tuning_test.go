package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeBalanceFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "balance.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadBalance_EmptyPathYieldsDefaults(t *testing.T) {
	bal, err := LoadBalance("")
	assert.NoError(t, err)
	assert.Equal(t, DefaultBalance(), bal)
}

func TestLoadBalance_MissingFileYieldsDefaults(t *testing.T) {
	bal, err := LoadBalance(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, DefaultBalance(), bal)
}

func TestLoadBalance_OverridesOnlyNamedKeys(t *testing.T) {
	path := writeBalanceFile(t, "player_max_speed: 44\npass_bonus: 250\n")

	bal, err := LoadBalance(path)
	assert.NoError(t, err)
	assert.Equal(t, 44.0, bal.PlayerMaxSpeed)
	assert.Equal(t, 250, bal.PassBonus)

	// Everything else keeps its default.
	bal.PlayerMaxSpeed = PlayerMaxSpeed
	bal.PassBonus = PassBonus
	assert.Equal(t, DefaultBalance(), bal)
}

func TestLoadBalance_MalformedFileErrors(t *testing.T) {
	path := writeBalanceFile(t, "player_min_speed: {")

	bal, err := LoadBalance(path)
	assert.Error(t, err)
	assert.Nil(t, bal)
}

func TestLoadBalance_SanitizeRepairsNonPositives(t *testing.T) {
	path := writeBalanceFile(t, "player_accel: -3\nspawn_interval: 0\nnear_miss_bonus: -1\n")

	bal, err := LoadBalance(path)
	assert.NoError(t, err)
	assert.Equal(t, PlayerAccel, bal.PlayerAccel)
	assert.Equal(t, TrafficSpawnInterval, bal.SpawnInterval)
	assert.Equal(t, NearMissBonus, bal.NearMissBonus)
}

func TestLoadBalance_SanitizeRepairsInvertedRanges(t *testing.T) {
	path := writeBalanceFile(t, "player_min_speed: 50\n")
	bal, err := LoadBalance(path)
	assert.NoError(t, err)
	assert.Equal(t, PlayerMinSpeed, bal.PlayerMinSpeed, "a floor above the ceiling resets both")
	assert.Equal(t, PlayerMaxSpeed, bal.PlayerMaxSpeed)

	path = writeBalanceFile(t, "low_detail_leave_fps: 10\n")
	bal, err = LoadBalance(path)
	assert.NoError(t, err)
	assert.Equal(t, bal.LowDetailEnterFPS, bal.LowDetailLeaveFPS,
		"the leave threshold can never sit below enter")

	path = writeBalanceFile(t, "traffic_cap_high: 2\n")
	bal, err = LoadBalance(path)
	assert.NoError(t, err)
	assert.Equal(t, bal.TrafficCapLow, bal.TrafficCapHigh)
}
