package game

import "math"

type GateState int

const (
	GatePending GateState = iota
	GateTriggered
	GatePassed
)

type GateColor int

const (
	GateRed GateColor = iota
	GateBlue
)

// Gate is a paired-pole checkpoint. Each side of the opening carries an inner
// and an outer pole with a banner stretched between them. Position is fixed at
// course init; State only ever advances Pending -> Triggered -> Passed.
type Gate struct {
	Index int
	X, Z  float64
	Y     float64 // terrain height at the gate center
	Width float64 // inner pole to inner pole
	Color GateColor
	State GateState
}

// FlagKind classifies a flag-pole collision, in escalating severity.
type FlagKind int

const (
	FlagNone FlagKind = iota
	FlagGraze
	FlagTumble
	FlagCrash
)

// FlagCollisionResult is transient: recomputed every frame, no persisted
// identity. GateIndex is -1 when Kind is FlagNone.
type FlagCollisionResult struct {
	Kind      FlagKind
	GateIndex int
}

// GateSequence owns the ordered gate list, the flag collision classifier, and
// finish-line detection.
type GateSequence struct {
	Gates   []Gate
	Passed  int
	FinishZ float64
}

// NewGateSequence lays out count gates on a seeded weaving line, alternating
// red and blue, elevations sampled from the shared terrain.
func NewGateSequence(terrain HeightProvider, rng *Rand, count int) *GateSequence {
	gs := &GateSequence{Gates: make([]Gate, 0, count)}
	x := 0.0
	z := FirstGateZ
	for i := 0; i < count; i++ {
		x = clampF(x+rng.RangeF(-GateWeaveStep, GateWeaveStep), -GateWeaveMax, GateWeaveMax)
		color := GateRed
		if i%2 == 1 {
			color = GateBlue
		}
		gs.Gates = append(gs.Gates, Gate{
			Index: i,
			X:     x,
			Z:     z,
			Y:     terrain.Height(x, z),
			Width: GateWidth,
			Color: color,
		})
		z -= GateSpacing
	}
	gs.FinishZ = z + GateSpacing - FinishOffset
	return gs
}

// CheckCollision reports the index of a gate whose trigger line the player has
// just crossed, or -1. A gate triggers when the player's z has reached or
// passed the gate line (within a trailing window) and the lateral distance to
// the gate center is inside the opening plus a buffer. A gate fires exactly
// once: anything not Pending can never trigger again.
func (gs *GateSequence) CheckCollision(px, pz float64) int {
	for i := range gs.Gates {
		g := &gs.Gates[i]
		if g.State != GatePending {
			continue
		}
		if pz > g.Z || pz < g.Z-GateTriggerTrail {
			continue
		}
		if absF(px-g.X) > g.Width/2+GateTriggerBuffer {
			continue
		}
		g.State = GateTriggered
		return g.Index
	}
	return -1
}

// CheckFlagCollision classifies pole contact for gates near the player's z.
// Per pole pair the checks run Crash, then Tumble, then Graze; the first
// qualifying gate and pair wins, so a position dead on a pole center is always
// a Crash even though it degenerately sits "between" the pair.
func (gs *GateSequence) CheckFlagCollision(px, pz, playerRadius float64) FlagCollisionResult {
	for i := range gs.Gates {
		g := &gs.Gates[i]
		if absF(pz-g.Z) > FlagWindowZ {
			continue
		}
		for _, side := range [2]float64{-1, 1} {
			innerX := g.X + side*g.Width/2
			outerX := g.X + side*(g.Width/2+BannerWidth)

			dInner := math.Hypot(px-innerX, pz-g.Z)
			dOuter := math.Hypot(px-outerX, pz-g.Z)
			if dInner < playerRadius+PoleRadius || dOuter < playerRadius+PoleRadius {
				return FlagCollisionResult{Kind: FlagCrash, GateIndex: g.Index}
			}

			lo, hi := innerX, outerX
			if lo > hi {
				lo, hi = hi, lo
			}
			if px > lo && px < hi {
				return FlagCollisionResult{Kind: FlagTumble, GateIndex: g.Index}
			}

			margin := playerRadius + PoleRadius + GrazeMargin
			if dInner < margin || dOuter < margin {
				return FlagCollisionResult{Kind: FlagGraze, GateIndex: g.Index}
			}
		}
	}
	return FlagCollisionResult{Kind: FlagNone, GateIndex: -1}
}

// PassGate advances the single Triggered gate to Passed. Returns the passed
// gate index, or -1 if no gate was awaiting resolution.
func (gs *GateSequence) PassGate() int {
	for i := range gs.Gates {
		g := &gs.Gates[i]
		if g.State == GateTriggered {
			g.State = GatePassed
			gs.Passed++
			return g.Index
		}
	}
	return -1
}

// CheckFinishLine reports whether the player has reached the finish band. The
// band is deliberately wide (anything at or past the line) so frame-time
// variance cannot skip the detection.
func (gs *GateSequence) CheckFinishLine(pz float64) bool {
	return pz <= gs.FinishZ
}

// nearGateLine reports whether (x,z) is within margin of any gate's pole line.
// Used to keep obstacle placement out of the gate corridor.
func (gs *GateSequence) nearGateLine(x, z, margin float64) bool {
	for i := range gs.Gates {
		g := &gs.Gates[i]
		if absF(z-g.Z) > margin {
			continue
		}
		if absF(x-g.X) < g.Width/2+BannerWidth+margin {
			return true
		}
	}
	return false
}
