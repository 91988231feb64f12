package game

import "math"

type ObstacleKind int

const (
	ObstacleTree ObstacleKind = iota
	ObstacleRock
)

// Obstacle is a static circular blocker. Immutable after placement.
type Obstacle struct {
	X, Y, Z float64
	Radius  float64
	Kind    ObstacleKind
}

// ObstacleField owns the static obstacle set and answers overlap queries
// through a spatial index built once at course init.
type ObstacleField struct {
	terrain   HeightProvider
	index     *SpatialIndex
	obstacles []Obstacle
	maxRadius float64

	queryBuf []int
}

func NewObstacleField(terrain HeightProvider) *ObstacleField {
	return &ObstacleField{
		terrain: terrain,
		index:   NewSpatialIndex(SpatialCellSize),
	}
}

// AddObstacle places one obstacle at (x,z), sampling its elevation from the
// terrain, and registers it in the spatial index.
func (f *ObstacleField) AddObstacle(x, z, radius float64, kind ObstacleKind) {
	id := len(f.obstacles)
	f.obstacles = append(f.obstacles, Obstacle{
		X: x, Y: f.terrain.Height(x, z), Z: z,
		Radius: radius,
		Kind:   kind,
	})
	f.index.Insert(id, x, z, radius)
	if radius > f.maxRadius {
		f.maxRadius = radius
	}
}

// Populate scatters trees and rocks along the course, keeping clear of the
// gate corridor so a clean line through every gate is always skiable.
func (f *ObstacleField) Populate(rng *Rand, count int, gates *GateSequence) {
	lastZ := FirstGateZ - float64(DefaultGateCount)*GateSpacing
	if gates != nil && len(gates.Gates) > 0 {
		lastZ = gates.Gates[len(gates.Gates)-1].Z
	}
	for i := 0; i < count; i++ {
		x := rng.RangeF(-SkiPathHalfWidth, SkiPathHalfWidth)
		z := rng.RangeF(lastZ-FinishOffset, FirstGateZ*0.2)
		if gates != nil && gates.nearGateLine(x, z, ObstacleMargin) {
			continue
		}
		if rng.Float64() < 0.65 {
			f.AddObstacle(x, z, rng.RangeF(TreeRadiusMin, TreeRadiusMax), ObstacleTree)
		} else {
			f.AddObstacle(x, z, rng.RangeF(RockRadiusMin, RockRadiusMax), ObstacleRock)
		}
	}
}

// CheckCollision reports whether the player circle overlaps any obstacle.
// The first overlapping obstacle in query order wins; the returned pushback
// points from the obstacle center toward the player, scaled by overlap depth.
// Pure query: the caller applies the pushback and any velocity damping.
func (f *ObstacleField) CheckCollision(px, pz, playerRadius float64) (pushX, pushZ float64, hit bool) {
	f.queryBuf = f.index.Query(px, pz, playerRadius+f.maxRadius, f.queryBuf[:0])
	for _, id := range f.queryBuf {
		o := &f.obstacles[id]
		dx := px - o.X
		dz := pz - o.Z
		dist := math.Hypot(dx, dz)
		reach := playerRadius + o.Radius
		if dist >= reach {
			continue
		}
		overlap := reach - dist
		if dist < 1e-9 {
			// Degenerate dead-center overlap: push straight right.
			return overlap, 0, true
		}
		return dx / dist * overlap, dz / dist * overlap, true
	}
	return 0, 0, false
}

// Obstacles exposes the placed set for rendering.
func (f *ObstacleField) Obstacles() []Obstacle { return f.obstacles }
