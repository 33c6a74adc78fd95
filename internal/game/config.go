package game

// Window and road geometry (in screen pixels). The highway is a fixed
// 4-lane strip centered horizontally with a shoulder of LaneMargin on
// each side.
const (
	ScreenW = 900
	ScreenH = 600

	LaneCount  = 4
	LaneMargin = 80
	RoadW      = ScreenW - 2*LaneMargin // 740
	LaneW      = RoadW / LaneCount      // 185
)

// FrameRate is the reference simulation rate. Traffic motion and road
// scroll are tuned in px/frame at this rate and scaled by dt*FrameRate;
// player physics are true px/s and use plain dt.
const FrameRate = 60.0

// Road dressing.
const (
	RoadEdgeW   = 10
	LaneDashW   = 6
	LaneDashH   = 30
	LaneDashGap = 40
	// Scroll advances at half the reference rate per speed unit.
	RoadScrollFactor = 0.5
)

// Player car.
const (
	PlayerW      = 60
	PlayerH      = 120
	PlayerStartY = ScreenH - 140

	PlayerMinSpeed   = 6.0
	PlayerMaxSpeed   = 30.0
	PlayerStartSpeed = 12.0

	PlayerAccel = 18.0
	PlayerBrake = 36.0
	PlayerDrag  = 6.0

	PlayerLateralAccel    = 2200.0
	PlayerLateralFriction = 8.0
	LaneSpringK           = 8.0

	LaneChangeDuration = 0.20
	LaneChangeCooldown = 0.18

	// The car body stays this far inside the asphalt edges.
	RoadClampInset = 10
)

// Nitro.
const (
	NitroDuration   = 3.0  // seconds per pickup
	NitroSpeedBoost = 10.0 // extra speed headroom while burning
	NitroPickupKick = 4.0  // immediate speed bump on pickup
	NitroMaxOverMax = 6.0  // pickup kick never exceeds PlayerMaxSpeed+this
)

// Traffic.
const (
	TrafficBaseSpeed     = 6.0
	TrafficSpawnInterval = 0.900 // seconds, shrinks with difficulty
	TrafficSpawnMinGap   = 0.220 // spawn interval floor
	TrafficLaneGap       = 200.0 // same-lane vertical clearance for a spawn
	TrafficDespawnY      = ScreenH + 200
)

// Powerups.
const (
	PowerupSize         = 48
	PowerupRollInterval = 6.0 // seconds between spawn rolls
	PowerupSpawnChance  = 0.2
)

// HUD floaters (near-miss and pickup labels).
const PopupDuration = 1.2

// Scoring.
const (
	PassBonus         = 100
	NearMissDistance  = 180.0
	NearMissBonus     = 250
	NearMissWindow    = 1.5 // seconds to chain a combo
	NearMissMaxCombo  = 6
	NearMissComboMult = 0.25
	DifficultyStep    = 0.1 // per 1000 points
)

// Adaptive detail.
const (
	FPSSampleCount   = 30
	LowDetailEnter   = 40.0 // rolling average FPS
	LowDetailLeave   = 45.0
	TrafficCapLow    = 8
	TrafficCapHigh   = 28
	MaxParticles     = 4096
	MaxParticlesLow  = 1024
	CrashHoldSeconds = 0.35
)

// Font atlas layout, rasterized from basicfont.Face7x13 at startup
// (ASCII 32-126, one row of cells).
const (
	FontCellW  = 7
	FontCellH  = 13
	FontGlyphs = 95
	FontAtlasW = FontCellW * FontGlyphs // 665
	FontAtlasH = FontCellH
)
