package game

import "math"

// Camera view parameters for the behind-the-skier projection.
const (
	CamBack      = 14.0  // camera distance uphill of the skier
	CamHeight    = 6.0   // camera height above the skier
	CamFocal     = 560.0 // projection focal length in pixels
	CamNear      = 1.0
	ViewDistance = 280.0 // draw distance downhill
	HorizonFrac  = 0.40  // horizon height as a fraction of the framebuffer
)

// CourseView projects world-space course entities into the renderer's
// screen-space sprite stream. Buffers are reused across frames.
type CourseView struct {
	terrain HeightProvider

	camX, camY, camZ float64
	fbW, fbH         int

	buf     []float32
	glowBuf []float32
}

func NewCourseView(terrain HeightProvider) *CourseView {
	return &CourseView{terrain: terrain}
}

// BeginFrame positions the camera behind and above the skier.
func (v *CourseView) BeginFrame(s *Skier, fbW, fbH int) {
	v.camX = s.X
	v.camY = s.Y + CamHeight
	v.camZ = s.Z + CamBack
	v.fbW = fbW
	v.fbH = fbH
	v.buf = v.buf[:0]
	v.glowBuf = v.glowBuf[:0]
}

// Buffers returns the solid and glow sprite streams built this frame.
func (v *CourseView) Buffers() (solid, glow []float32) { return v.buf, v.glowBuf }

// project maps a world point to screen pixels and a perspective scale.
// ok is false behind the near plane or past the draw distance.
func (v *CourseView) project(x, y, z float64) (sx, sy, scale float64, ok bool) {
	depth := v.camZ - z
	if depth < CamNear || depth > ViewDistance {
		return 0, 0, 0, false
	}
	scale = CamFocal / depth
	sx = float64(v.fbW)/2 + (x-v.camX)*scale
	sy = float64(v.fbH)*HorizonFrac - (y-v.camY)*scale
	return sx, sy, scale, true
}

func (v *CourseView) sprite(x, y, z, size float64, cr, cg, cb, ca float32) {
	sx, sy, scale, ok := v.project(x, y, z)
	if !ok {
		return
	}
	v.buf = append(v.buf, float32(sx), float32(sy), float32(size*scale), cr, cg, cb, ca, 0)
}

func (v *CourseView) glow(x, y, z, size float64, cr, cg, cb float32) {
	sx, sy, scale, ok := v.project(x, y, z)
	if !ok {
		return
	}
	v.glowBuf = append(v.glowBuf, float32(sx), float32(sy), float32(size*scale), cr, cg, cb, 1, 0)
}

// AddTerrain lays a dot field over the slope ahead of the camera, shaded by
// local relief so bumps read through the snow.
func (v *CourseView) AddTerrain() {
	zStart := math.Floor(v.camZ/6) * 6
	for z := zStart; z > v.camZ-ViewDistance; z -= 6 {
		for x := -SkiPathHalfWidth - 18; x <= SkiPathHalfWidth+18; x += 6 {
			h := v.terrain.Height(x, z)
			relief := clampF((h-z*SlopeGrade)/(NoiseAmplitude*2)+0.5, 0, 1)
			shade := float32(0.82 + 0.18*relief)
			b := shade
			if absF(x) > SkiPathHalfWidth {
				// Off-path snow reads slightly warmer.
				b *= 0.92
			}
			v.sprite(x, h, z, 1.6, shade*0.95, shade*0.97, b, 1)
		}
	}
}

// AddGates draws each gate's two pole pairs and banners, colored by gate
// color and dimmed once passed.
func (v *CourseView) AddGates(gs *GateSequence) {
	for i := range gs.Gates {
		g := &gs.Gates[i]
		var cr, cg, cb float32
		if g.Color == GateRed {
			cr, cg, cb = 0.92, 0.15, 0.12
		} else {
			cr, cg, cb = 0.15, 0.35, 0.95
		}
		alpha := float32(1.0)
		switch g.State {
		case GatePassed:
			alpha = 0.35
		case GateTriggered:
			v.glow(g.X, g.Y+PoleHeight/2, g.Z, 10, cr*0.8, cg*0.8, cb*0.8)
		}

		for _, side := range [2]float64{-1, 1} {
			innerX := g.X + side*g.Width/2
			outerX := g.X + side*(g.Width/2+BannerWidth)
			v.addPole(innerX, g.Z, cr, cg, cb, alpha)
			v.addPole(outerX, g.Z, cr, cg, cb, alpha)
			// Banner between the pair, hung from the upper pole section.
			bannerY := v.terrain.Height((innerX+outerX)/2, g.Z) + PoleHeight*0.72
			for t := 0.15; t <= 0.85; t += 0.14 {
				bx := lerpF(innerX, outerX, t)
				v.sprite(bx, bannerY, g.Z, 0.9, cr, cg, cb, alpha)
			}
		}
	}
}

func (v *CourseView) addPole(x, z float64, cr, cg, cb, alpha float32) {
	base := v.terrain.Height(x, z)
	for h := 0.0; h <= PoleHeight; h += 0.55 {
		v.sprite(x, base+h, z, PoleRadius*2.4, cr, cg, cb, alpha)
	}
}

// AddObstacles draws trees as stacked canopy sprites over a trunk, rocks as
// squat gray blobs.
func (v *CourseView) AddObstacles(f *ObstacleField) {
	for i := range f.Obstacles() {
		o := &f.Obstacles()[i]
		if o.Z > v.camZ || o.Z < v.camZ-ViewDistance {
			continue
		}
		if o.Kind == ObstacleTree {
			v.sprite(o.X, o.Y+0.5, o.Z, 0.7, 0.35, 0.22, 0.10, 1)
			for layer := 0; layer < 3; layer++ {
				ly := o.Y + 1.1 + float64(layer)*0.9
				size := o.Radius * (2.4 - float64(layer)*0.6)
				v.sprite(o.X, ly, o.Z, size, 0.08, 0.38+float32(layer)*0.06, 0.12, 1)
			}
		} else {
			v.sprite(o.X, o.Y+o.Radius*0.4, o.Z, o.Radius*2.0, 0.45, 0.45, 0.48, 1)
			v.sprite(o.X, o.Y+o.Radius*0.8, o.Z, o.Radius*1.2, 0.55, 0.55, 0.58, 1)
		}
	}
}

// AddSkier draws the skier with lean applied, blending toward the fall
// orientation while crashed or tumbling.
func (v *CourseView) AddSkier(s *Skier) {
	rot := s.LeanAngle
	if s.Motion == MotionCrashed || s.Motion == MotionTumbling {
		rot = lerpF(rot, s.FallRoll, s.FallBlend)
	}
	sx, sy, scale, ok := v.project(s.X, s.Y, s.Z)
	if !ok {
		return
	}
	// Skis.
	skiSpread := 0.35 * scale
	c, sn := math.Cos(rot), math.Sin(rot)
	for _, side := range [2]float64{-1, 1} {
		ox := side * skiSpread
		v.buf = append(v.buf,
			float32(sx+ox*c), float32(sy+ox*sn), float32(1.7*scale),
			0.95, 0.55, 0.1, 1, float32(rot))
	}
	// Body and head.
	v.buf = append(v.buf,
		float32(sx), float32(sy-0.9*scale), float32(1.1*scale),
		0.85, 0.1, 0.15, 1, float32(rot))
	v.buf = append(v.buf,
		float32(sx), float32(sy-1.7*scale), float32(0.55*scale),
		0.95, 0.8, 0.65, 1, float32(rot))
}

// AddHUD draws gate progress pips across the top and a speed bar along the
// bottom in screen space.
func (v *CourseView) AddHUD(rc *RaceController) {
	n := len(rc.Gates.Gates)
	startX := float64(v.fbW)/2 - float64(n-1)*11
	for i := range rc.Gates.Gates {
		g := &rc.Gates.Gates[i]
		x := float32(startX + float64(i)*22)
		var cr, cg, cb float32
		switch g.State {
		case GatePassed:
			cr, cg, cb = 0.2, 0.85, 0.3
		case GateTriggered:
			cr, cg, cb = 0.95, 0.85, 0.2
		default:
			cr, cg, cb = 0.75, 0.75, 0.78
		}
		v.buf = append(v.buf, x, 22, 12, cr, cg, cb, 0.9, 0)
	}

	frac := clampF(rc.Skier.Speed()/(MaxSpeed*StraightSpeedBonus), 0, 1)
	segs := 24
	for i := 0; i < segs; i++ {
		if float64(i)/float64(segs) > frac {
			break
		}
		x := float32(20 + i*14)
		heat := float32(float64(i) / float64(segs))
		v.buf = append(v.buf, x, float32(v.fbH-24), 10, 0.2+heat*0.8, 0.9-heat*0.7, 0.2, 0.85, 0)
	}
}
