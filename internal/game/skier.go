package game

import "math"

type MotionState int

const (
	MotionIdle MotionState = iota
	MotionNormal
	MotionTumbling
	MotionCrashed
)

// InputFrame is the per-frame input snapshot consumed by the skier. Left and
// right are mutually exclusive at the input-translation boundary, not here.
type InputFrame struct {
	SteerLeft  bool
	SteerRight bool
	Accelerate bool
	Brake      bool
}

// Skier owns position, velocity, and the turn/motion state machine. Elevation
// is derived: Y is recomputed from the terrain at (X,Z) every step, never
// integrated. Positive TurnAngle carves toward -x.
type Skier struct {
	X, Y, Z    float64
	VX, VZ     float64 // VZ negative while moving downhill
	TurnAngle  float64
	AngularVel float64
	Motion     MotionState
	LeanAngle  float64 // presentation only, derived from TurnAngle

	// Crash/tumble animation state: a rotation blend toward a randomized
	// fall orientation.
	FallYaw   float64
	FallRoll  float64
	FallBlend float64

	recoverTimer float64
	respawnZ     float64

	terrain HeightProvider
	rng     *Rand
}

func NewSkier(terrain HeightProvider, rng *Rand) *Skier {
	s := &Skier{
		X:       0,
		Z:       StartZ,
		Motion:  MotionIdle,
		terrain: terrain,
		rng:     rng,
	}
	s.Y = terrain.Height(s.X, s.Z)
	return s
}

// Speed returns the current downhill speed magnitude.
func (s *Skier) Speed() float64 { return absF(s.VZ) }

// Update advances the skier one frame. Idle holds position until the first
// forward input; Crashed and Tumbling ignore steering and gravity input and
// only run their recovery timers.
func (s *Skier) Update(dt float64, in InputFrame) {
	if dt <= 0 {
		return
	}
	switch s.Motion {
	case MotionIdle:
		if !in.Accelerate {
			return
		}
		s.Motion = MotionNormal
		s.update(dt, in)
	case MotionNormal:
		s.update(dt, in)
	case MotionCrashed:
		s.FallBlend = approach(s.FallBlend, 1, FallBlendRate*dt)
		s.recoverTimer -= dt
		if s.recoverTimer <= 0 {
			s.recoverAt(0, s.respawnZ)
		}
	case MotionTumbling:
		s.FallBlend = approach(s.FallBlend, 1, FallBlendRate*dt)
		s.tumbleStep(dt)
		s.recoverTimer -= dt
		if s.recoverTimer <= 0 {
			// Momentum carried the skier somewhere; recover in place.
			s.recoverAt(s.X, s.Z)
		}
	}
}

func (s *Skier) update(dt float64, in InputFrame) {
	// Turn responsiveness: highest at standstill, 1x at max speed.
	speedRatio := clampF(s.Speed()/MaxSpeed, 0, 1)
	rate := lerpF(LowSpeedTurnBonus, 1, speedRatio)

	steer := 0.0
	if in.SteerLeft {
		steer = 1
	} else if in.SteerRight {
		steer = -1
	}
	s.AngularVel += steer * TurnAccel * rate * dt
	s.AngularVel *= math.Exp(-AngularFriction * dt)
	s.TurnAngle += s.AngularVel * dt
	if s.TurnAngle > MaxTurnAngle {
		s.TurnAngle = MaxTurnAngle
		s.AngularVel = 0
	} else if s.TurnAngle < -MaxTurnAngle {
		s.TurnAngle = -MaxTurnAngle
		s.AngularVel = 0
	}

	// Carving trades speed for lateral displacement: straight running earns a
	// bonus, hard angles bleed speed, and fast flicks pay a sharp-turn tax.
	turnRatio := absF(s.TurnAngle) / MaxTurnAngle
	speedFactor := lerpF(StraightSpeedBonus, MinTurnSpeedFactor, turnRatio)
	speedFactor *= clampF(1-SharpTurnPenaltyScale*absF(s.AngularVel), SharpTurnPenaltyFloor, 1)

	s.VZ -= Gravity * speedFactor * dt
	if in.Accelerate {
		s.VZ -= BoostAccel * dt
	}
	if in.Brake {
		s.VZ *= math.Exp(-BrakeDecay * dt)
	}
	s.VZ = clampF(s.VZ, -MaxSpeed*speedFactor, UphillSpeedCap)

	s.VX = -math.Sin(s.TurnAngle) * absF(s.VZ)

	s.X = clampF(s.X+s.VX*dt, -SkiPathHalfWidth, SkiPathHalfWidth)
	s.Z += s.VZ * dt
	s.Y = s.terrain.Height(s.X, s.Z)

	s.LeanAngle = s.TurnAngle * LeanRatio
}

// tumbleStep keeps the skier sliding downhill under reduced gravity while the
// tumble plays out.
func (s *Skier) tumbleStep(dt float64) {
	s.VZ -= Gravity * TumbleGravityFrac * dt
	decay := math.Exp(-TumbleFriction * dt)
	s.VZ *= decay
	s.VX *= decay
	s.X = clampF(s.X+s.VX*dt, -SkiPathHalfWidth, SkiPathHalfWidth)
	s.Z += s.VZ * dt
	s.Y = s.terrain.Height(s.X, s.Z)
}

// EnterCrash hard-stops the skier. Recovery relocates to the course center at
// an offset uphill from the gate that was hit.
func (s *Skier) EnterCrash(gateZ float64) {
	s.Motion = MotionCrashed
	s.recoverTimer = CrashRecoverySec
	s.respawnZ = gateZ + CrashRespawnBehind
	s.VX = 0
	s.VZ = 0
	s.rollFall()
}

// EnterTumble keeps the skier's momentum; recovery happens wherever it
// carried them.
func (s *Skier) EnterTumble() {
	s.Motion = MotionTumbling
	s.recoverTimer = TumbleRecoverySec
	s.rollFall()
}

func (s *Skier) rollFall() {
	s.FallYaw = s.rng.RangeF(-math.Pi, math.Pi)
	s.FallRoll = s.rng.RangeF(math.Pi/3, math.Pi/2)
	if s.rng.Float64() < 0.5 {
		s.FallRoll = -s.FallRoll
	}
	s.FallBlend = 0
}

func (s *Skier) recoverAt(x, z float64) {
	s.Motion = MotionNormal
	s.X = x
	s.Z = z
	s.Y = s.terrain.Height(x, z)
	s.VX = 0
	s.VZ = 0
	s.TurnAngle = 0
	s.AngularVel = 0
	s.LeanAngle = 0
	s.FallBlend = 0
}

// ApplyPushback shifts the skier out of an obstacle and damps velocity. The
// pushback vector comes from ObstacleField.CheckCollision.
func (s *Skier) ApplyPushback(pushX, pushZ float64) {
	s.X = clampF(s.X+pushX, -SkiPathHalfWidth, SkiPathHalfWidth)
	s.Z += pushZ
	s.Y = s.terrain.Height(s.X, s.Z)
	s.VX *= ObstacleDamping
	s.VZ *= ObstacleDamping
}
