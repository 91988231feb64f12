package game

// Window defaults.
const (
	WindowWidth  = 1024
	WindowHeight = 768
)

// Course layout (world units; downhill is decreasing z).
const (
	StartZ           = 0.0
	FirstGateZ       = -150.0
	GateSpacing      = 150.0
	DefaultGateCount = 10
	FinishOffset     = 60.0 // finish line this far past the last gate
	SkiPathHalfWidth = 40.0
	GateWeaveMax     = 22.0 // max lateral offset of a gate from course center
	GateWeaveStep    = 14.0 // max lateral change between consecutive gates
)

// Gate geometry.
const (
	GateWidth         = 18.0 // inner pole to inner pole
	BannerWidth       = 4.0  // inner pole to outer pole, per side
	PoleRadius        = 0.35
	PoleHeight        = 3.2
	GrazeMargin       = 1.2
	GateTriggerTrail  = 3.0 // trailing z window past the gate line
	GateTriggerBuffer = 2.0 // lateral slack beyond half-width
	FlagWindowZ       = 2.5 // z half-window for pole/banner checks
)

// Terrain.
const (
	SlopeGrade      = 0.22
	NoiseAmplitude  = 1.8
	NoiseFrequency  = 0.021
	NoiseOctaves    = 3
	NoiseLacunarity = 2.0
	NoiseGain       = 0.5
	EdgeRiseCoeff   = 0.012 // quadratic rise beyond the ski path
)

// Obstacles.
const (
	ObstacleMargin   = 6.0 // obstacles keep this far from gate pole lines
	DefaultObstacles = 90
	TreeRadiusMin    = 0.9
	TreeRadiusMax    = 1.6
	RockRadiusMin    = 0.7
	RockRadiusMax    = 1.3
)

// Skier physics.
const (
	PlayerRadius          = 0.8
	MaxSpeed              = 38.0
	MaxTurnAngle          = 1.1 // radians
	TurnAccel             = 9.0 // rad/s^2 at max speed (1x reference rate)
	LowSpeedTurnBonus     = 3.0 // turn responsiveness multiplier at zero speed
	AngularFriction       = 6.0 // exponential decay rate on angular velocity
	StraightSpeedBonus    = 1.15
	MinTurnSpeedFactor    = 0.45
	SharpTurnPenaltyScale = 0.12 // speed-factor reduction per rad/s of angular velocity
	SharpTurnPenaltyFloor = 0.7
	Gravity               = 14.0 // downhill pull, units/s^2
	BoostAccel            = 10.0
	BrakeDecay            = 2.2 // multiplicative velocity decay rate while braking
	UphillSpeedCap        = 2.0
	LeanRatio             = 0.55 // visual lean per radian of turn angle
)

// Crash and tumble recovery.
const (
	CrashRecoverySec   = 2.5
	TumbleRecoverySec  = 1.6
	CrashRespawnBehind = 12.0 // z offset uphill from the hit gate
	TumbleFriction     = 1.8  // exponential velocity bleed while tumbling
	TumbleGravityFrac  = 0.35
	FallBlendRate      = 4.5 // fall-orientation blend-in rate, 1/s
	ObstacleDamping    = 0.55
)

// Spatial index.
const SpatialCellSize = 50.0

// Scoring and penalties.
const (
	CorrectAnswerScore  = 100
	CrashScorePenalty   = 50
	TumbleScorePenalty  = 25
	CrashTimePenaltyMs  = 5000
	TumbleTimePenaltyMs = 2500
	WrongTimePenaltyMs  = 3000
)
