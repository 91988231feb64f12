package game

import "math"

// HeightProvider maps (x,z) world coordinates to surface elevation. It is the
// single height source for the whole course: skier, obstacle placement, and
// gate placement all sample the same function so every entity sits on the
// same surface.
type HeightProvider interface {
	Height(x, z float64) float64
}

// HeightFunc adapts a plain function to HeightProvider.
type HeightFunc func(x, z float64) float64

func (f HeightFunc) Height(x, z float64) float64 { return f(x, z) }

// CourseTerrain is the production slope: a linear downhill grade plus layered
// value noise, with a quadratic rise beyond the ski path edges. Deterministic
// for a fixed seed.
type CourseTerrain struct {
	seed uint64
}

func NewCourseTerrain(seed uint64) *CourseTerrain {
	return &CourseTerrain{seed: seed}
}

func (t *CourseTerrain) Height(x, z float64) float64 {
	h := z * SlopeGrade

	// Fractal sum of lattice value noise.
	amp := NoiseAmplitude
	freq := NoiseFrequency
	for o := 0; o < NoiseOctaves; o++ {
		h += t.valueNoise(x*freq, z*freq, uint64(o)) * amp
		amp *= NoiseGain
		freq *= NoiseLacunarity
	}

	// Off-path terrain rises quadratically, funneling the run.
	if edge := absF(x) - SkiPathHalfWidth; edge > 0 {
		h += EdgeRiseCoeff * edge * edge
	}
	return h
}

// valueNoise samples bilinear-interpolated lattice noise in [-1,1].
func (t *CourseTerrain) valueNoise(x, z float64, octave uint64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	fx := smoothstep(x - x0)
	fz := smoothstep(z - z0)
	ix := int(x0)
	iz := int(z0)

	seed := t.seed ^ splitmix64(octave^0x5EED0C7A)
	n00 := latticeValue(seed, ix, iz)
	n10 := latticeValue(seed, ix+1, iz)
	n01 := latticeValue(seed, ix, iz+1)
	n11 := latticeValue(seed, ix+1, iz+1)

	return lerpF(lerpF(n00, n10, fx), lerpF(n01, n11, fx), fz)
}

// latticeValue maps a lattice point to a deterministic value in [-1,1].
func latticeValue(seed uint64, x, z int) float64 {
	return float64(hash2D(seed, x, z)>>11)*(2.0/(1<<53)) - 1.0
}
