package collision

import "math"

// CurveControlPoints describes a quadratic Bezier slur/tie: endpoints
// plus one control point whose vertical offset from the chord line is
// adjusted to clear obstacles.
type CurveControlPoints struct {
	Start, End Point
	ControlOffset float64 // perpendicular offset from the Start-End chord
	Above         bool    // true = control point pushes the curve upward (away from notes below)
}

// Point is a 2D point in whatever unit the caller is working in
// (typically staff spaces once placement begins).
type Point struct{ X, Y float64 }

// sampleCount is the fixed number of parameter samples taken along the
// curve per resolution attempt.
const sampleCount = 9

// ResolveCurve samples the curve at fixed parameter intervals and tests
// each sample against obstacles; on any collision, it increases the
// control-point offset (in the direction away from obstacles) and
// re-tests, bounded by maxIterations (spec.md §4.6, and the open question
// in spec.md §9: this spec prescribes a configured maximum iteration
// count). On non-convergence it returns the last adjusted curve, which may
// still collide, and reports no error.
func ResolveCurve(curve CurveControlPoints, obstacles []Rect, step float64, maxIterations int) CurveControlPoints {
	current := curve
	for i := 0; i < maxIterations; i++ {
		if !curveCollides(current, obstacles) {
			return current
		}
		if current.Above {
			current.ControlOffset += step
		} else {
			current.ControlOffset -= step
		}
	}
	return current
}

func curveCollides(curve CurveControlPoints, obstacles []Rect) bool {
	for i := 0; i <= sampleCount; i++ {
		t := float64(i) / float64(sampleCount)
		p := samplePoint(curve, t)
		point := Rect{X: p.X, Y: p.Y, Width: 0, Height: 0}
		for _, o := range obstacles {
			if point.Intersects(o, 0) {
				return true
			}
		}
	}
	return false
}

// samplePoint evaluates the quadratic Bezier at parameter t, with the
// implicit control point placed at the chord midpoint offset
// perpendicular to the Start-End line by ControlOffset.
func samplePoint(curve CurveControlPoints, t float64) Point {
	mx := (curve.Start.X + curve.End.X) / 2
	my := (curve.Start.Y + curve.End.Y) / 2
	dx := curve.End.X - curve.Start.X
	dy := curve.End.Y - curve.Start.Y
	length := math.Hypot(dx, dy)
	var nx, ny float64
	if length > 0 {
		nx, ny = dy/length, -dx/length
	}
	cx := mx + nx*curve.ControlOffset
	cy := my + ny*curve.ControlOffset

	u := 1 - t
	x := u*u*curve.Start.X + 2*u*t*cx + t*t*curve.End.X
	y := u*u*curve.Start.Y + 2*u*t*cy + t*t*curve.End.Y
	return Point{X: x, Y: y}
}
