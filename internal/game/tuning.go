package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Balance holds the gameplay tuning knobs. Defaults mirror the constants in
// config.go; a YAML file named by SPEEDRUSH_BALANCE can override individual
// keys. Absent keys keep their defaults, and non-positive values are reset
// so a sparse or sloppy file cannot break the simulation math.
type Balance struct {
	PlayerMinSpeed   float64 `yaml:"player_min_speed"`
	PlayerMaxSpeed   float64 `yaml:"player_max_speed"`
	PlayerStartSpeed float64 `yaml:"player_start_speed"`
	PlayerAccel      float64 `yaml:"player_accel"`
	PlayerBrake      float64 `yaml:"player_brake"`
	PlayerDrag       float64 `yaml:"player_drag"`
	LateralAccel     float64 `yaml:"lateral_accel"`
	LateralFriction  float64 `yaml:"lateral_friction"`
	LaneSpringK      float64 `yaml:"lane_spring_k"`
	LaneChangeTime   float64 `yaml:"lane_change_time"`
	LaneCooldown     float64 `yaml:"lane_cooldown"`

	NitroDuration   float64 `yaml:"nitro_duration"`
	NitroSpeedBoost float64 `yaml:"nitro_speed_boost"`
	NitroPickupKick float64 `yaml:"nitro_pickup_kick"`

	TrafficBaseSpeed float64 `yaml:"traffic_base_speed"`
	SpawnInterval    float64 `yaml:"spawn_interval"`
	SpawnMinGap      float64 `yaml:"spawn_min_gap"`
	LaneClearance    float64 `yaml:"lane_clearance"`

	PowerupInterval float64 `yaml:"powerup_interval"`
	PowerupChance   float64 `yaml:"powerup_chance"`

	PassBonus         int     `yaml:"pass_bonus"`
	NearMissDistance  float64 `yaml:"near_miss_distance"`
	NearMissBonus     int     `yaml:"near_miss_bonus"`
	NearMissWindow    float64 `yaml:"near_miss_window"`
	NearMissMaxCombo  int     `yaml:"near_miss_max_combo"`
	NearMissComboMult float64 `yaml:"near_miss_combo_mult"`
	DifficultyStep    float64 `yaml:"difficulty_step"`

	LowDetailEnterFPS float64 `yaml:"low_detail_enter_fps"`
	LowDetailLeaveFPS float64 `yaml:"low_detail_leave_fps"`
	TrafficCapLow     int     `yaml:"traffic_cap_low"`
	TrafficCapHigh    int     `yaml:"traffic_cap_high"`
}

func DefaultBalance() *Balance {
	return &Balance{
		PlayerMinSpeed:   PlayerMinSpeed,
		PlayerMaxSpeed:   PlayerMaxSpeed,
		PlayerStartSpeed: PlayerStartSpeed,
		PlayerAccel:      PlayerAccel,
		PlayerBrake:      PlayerBrake,
		PlayerDrag:       PlayerDrag,
		LateralAccel:     PlayerLateralAccel,
		LateralFriction:  PlayerLateralFriction,
		LaneSpringK:      LaneSpringK,
		LaneChangeTime:   LaneChangeDuration,
		LaneCooldown:     LaneChangeCooldown,

		NitroDuration:   NitroDuration,
		NitroSpeedBoost: NitroSpeedBoost,
		NitroPickupKick: NitroPickupKick,

		TrafficBaseSpeed: TrafficBaseSpeed,
		SpawnInterval:    TrafficSpawnInterval,
		SpawnMinGap:      TrafficSpawnMinGap,
		LaneClearance:    TrafficLaneGap,

		PowerupInterval: PowerupRollInterval,
		PowerupChance:   PowerupSpawnChance,

		PassBonus:         PassBonus,
		NearMissDistance:  NearMissDistance,
		NearMissBonus:     NearMissBonus,
		NearMissWindow:    NearMissWindow,
		NearMissMaxCombo:  NearMissMaxCombo,
		NearMissComboMult: NearMissComboMult,
		DifficultyStep:    DifficultyStep,

		LowDetailEnterFPS: LowDetailEnter,
		LowDetailLeaveFPS: LowDetailLeave,
		TrafficCapLow:     TrafficCapLow,
		TrafficCapHigh:    TrafficCapHigh,
	}
}

// LoadBalance reads a YAML override on top of the defaults. An empty path or
// a missing file yields the defaults; a present but malformed file is an
// error so typos do not silently ship a broken game.
func LoadBalance(path string) (*Balance, error) {
	bal := DefaultBalance()
	if path == "" {
		return bal, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return bal, nil
		}
		return nil, fmt.Errorf("read balance file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, bal); err != nil {
		return nil, fmt.Errorf("parse balance file %s: %w", path, err)
	}
	bal.sanitize()
	return bal, nil
}

func posF(v *float64, def float64) {
	if *v <= 0 {
		*v = def
	}
}

func posI(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

func (b *Balance) sanitize() {
	d := DefaultBalance()
	posF(&b.PlayerMinSpeed, d.PlayerMinSpeed)
	posF(&b.PlayerMaxSpeed, d.PlayerMaxSpeed)
	posF(&b.PlayerStartSpeed, d.PlayerStartSpeed)
	posF(&b.PlayerAccel, d.PlayerAccel)
	posF(&b.PlayerBrake, d.PlayerBrake)
	posF(&b.PlayerDrag, d.PlayerDrag)
	posF(&b.LateralAccel, d.LateralAccel)
	posF(&b.LateralFriction, d.LateralFriction)
	posF(&b.LaneSpringK, d.LaneSpringK)
	posF(&b.LaneChangeTime, d.LaneChangeTime)
	posF(&b.LaneCooldown, d.LaneCooldown)
	posF(&b.NitroDuration, d.NitroDuration)
	posF(&b.NitroSpeedBoost, d.NitroSpeedBoost)
	posF(&b.NitroPickupKick, d.NitroPickupKick)
	posF(&b.TrafficBaseSpeed, d.TrafficBaseSpeed)
	posF(&b.SpawnInterval, d.SpawnInterval)
	posF(&b.SpawnMinGap, d.SpawnMinGap)
	posF(&b.LaneClearance, d.LaneClearance)
	posF(&b.PowerupInterval, d.PowerupInterval)
	posF(&b.PowerupChance, d.PowerupChance)
	posI(&b.PassBonus, d.PassBonus)
	posF(&b.NearMissDistance, d.NearMissDistance)
	posI(&b.NearMissBonus, d.NearMissBonus)
	posF(&b.NearMissWindow, d.NearMissWindow)
	posI(&b.NearMissMaxCombo, d.NearMissMaxCombo)
	posF(&b.NearMissComboMult, d.NearMissComboMult)
	posF(&b.DifficultyStep, d.DifficultyStep)
	posF(&b.LowDetailEnterFPS, d.LowDetailEnterFPS)
	posF(&b.LowDetailLeaveFPS, d.LowDetailLeaveFPS)
	posI(&b.TrafficCapLow, d.TrafficCapLow)
	posI(&b.TrafficCapHigh, d.TrafficCapHigh)
	if b.PlayerMaxSpeed <= b.PlayerMinSpeed {
		b.PlayerMinSpeed = d.PlayerMinSpeed
		b.PlayerMaxSpeed = d.PlayerMaxSpeed
	}
	if b.LowDetailLeaveFPS < b.LowDetailEnterFPS {
		b.LowDetailLeaveFPS = b.LowDetailEnterFPS
	}
	if b.TrafficCapHigh < b.TrafficCapLow {
		b.TrafficCapHigh = b.TrafficCapLow
	}
}
