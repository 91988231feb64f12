package game

import (
	"math"
	"testing"
)

var flatTerrain = HeightFunc(func(x, z float64) float64 { return 0 })

func TestObstacleCollisionApproach(t *testing.T) {
	f := NewObstacleField(flatTerrain)
	f.AddObstacle(10, -50, 1.5, ObstacleTree)

	// Ten units away: no contact.
	if _, _, hit := f.CheckCollision(10, -40, PlayerRadius); hit {
		t.Fatal("collision reported at distance 10")
	}

	// Approach from uphill along -z until the circles overlap.
	reach := PlayerRadius + 1.5
	for z := -45.0; z > -55; z -= 0.1 {
		pushX, pushZ, hit := f.CheckCollision(10, z, PlayerRadius)
		dist := math.Abs(z - (-50))
		if dist >= reach {
			if hit {
				t.Fatalf("collision at distance %v, reach %v", dist, reach)
			}
			continue
		}
		if !hit {
			t.Fatalf("no collision at distance %v, reach %v", dist, reach)
		}
		if pushZ <= 0 {
			t.Fatalf("pushback should point uphill toward the player, got pushZ=%v", pushZ)
		}
		if math.Abs(pushX) > 1e-9 {
			t.Fatalf("head-on approach should have no lateral pushback, got %v", pushX)
		}
		wantMag := reach - dist
		if math.Abs(math.Hypot(pushX, pushZ)-wantMag) > 1e-9 {
			t.Fatalf("pushback magnitude %v, want overlap depth %v", math.Hypot(pushX, pushZ), wantMag)
		}
		return
	}
	t.Fatal("never reached overlap")
}

func TestObstacleFirstMatchWins(t *testing.T) {
	f := NewObstacleField(flatTerrain)
	f.AddObstacle(0, 0, 2, ObstacleRock)
	f.AddObstacle(0.5, 0, 2, ObstacleRock)

	// Both overlap; only one collision is resolved per frame.
	pushX, _, hit := f.CheckCollision(0.2, 0, PlayerRadius)
	if !hit {
		t.Fatal("expected a collision")
	}
	if pushX == 0 {
		t.Fatal("expected a lateral pushback from the first matching obstacle")
	}
}

func TestObstacleElevationFromTerrain(t *testing.T) {
	tr := HeightFunc(func(x, z float64) float64 { return 3 * x })
	f := NewObstacleField(tr)
	f.AddObstacle(4, -20, 1, ObstacleTree)
	if got := f.Obstacles()[0].Y; got != 12 {
		t.Fatalf("obstacle elevation %v, want terrain height 12", got)
	}
}

func TestPopulateKeepsGateCorridorClear(t *testing.T) {
	rng := NewRand(99)
	gates := NewGateSequence(flatTerrain, rng, 8)
	f := NewObstacleField(flatTerrain)
	f.Populate(NewRand(123), 200, gates)

	if len(f.Obstacles()) == 0 {
		t.Fatal("populate placed no obstacles")
	}
	for _, o := range f.Obstacles() {
		if gates.nearGateLine(o.X, o.Z, ObstacleMargin) {
			t.Fatalf("obstacle at (%v,%v) inside the gate corridor", o.X, o.Z)
		}
	}
}
