package collision

// DynamicPlacement is the resolved anchor point and side for a dynamic
// marking (e.g. "mf", a hairpin).
type DynamicPlacement struct {
	X, Y  float64
	Above bool
}

// PlaceDynamic resolves spec.md §4.6's dynamic-placement policy: try the
// preferred side first; if obstacle-free, use it; else try the other
// side; then nudge outward (in steps of `nudge`) until free, bounded by
// maxNudges.
func PlaceDynamic(anchorX, staffTop, staffBottom float64, box Rect, obstacles []Rect, preferAbove bool, gap, nudge float64, maxNudges int) DynamicPlacement {
	place := func(above bool, offset float64) Rect {
		b := box
		b.X = anchorX - b.Width/2
		if above {
			b.Y = staffTop - gap - b.Height - offset
		} else {
			b.Y = staffBottom + gap + offset
		}
		return b
	}

	sides := []bool{preferAbove, !preferAbove}
	for _, above := range sides {
		if r := place(above, 0); free(r, obstacles) {
			return DynamicPlacement{X: r.X, Y: r.Y, Above: above}
		}
	}

	above := preferAbove
	offset := 0.0
	for i := 0; i < maxNudges; i++ {
		offset += nudge
		r := place(above, offset)
		if free(r, obstacles) {
			return DynamicPlacement{X: r.X, Y: r.Y, Above: above}
		}
	}
	r := place(above, offset)
	return DynamicPlacement{X: r.X, Y: r.Y, Above: above}
}

func free(r Rect, obstacles []Rect) bool {
	for _, o := range obstacles {
		if r.Intersects(o, 0) {
			return false
		}
	}
	return true
}
