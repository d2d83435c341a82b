package collision

// ArticulationPlacement is a resolved y-position for one articulation
// mark, stacking outward from the note.
type ArticulationPlacement struct {
	Y float64
}

// StackArticulations places articulations above or below a note's bounds,
// stacking outward with a configured gap, in insertion order (spec.md
// §4.6): above stacks with monotonically decreasing Y, below stacks with
// monotonically increasing Y.
func StackArticulations(noteBounds Rect, count int, above bool, markHeight, gap float64) []ArticulationPlacement {
	out := make([]ArticulationPlacement, count)
	if above {
		y := noteBounds.Top() - gap - markHeight
		for i := 0; i < count; i++ {
			out[i] = ArticulationPlacement{Y: y}
			y -= gap + markHeight
		}
	} else {
		y := noteBounds.Bottom() + gap
		for i := 0; i < count; i++ {
			out[i] = ArticulationPlacement{Y: y}
			y += gap + markHeight
		}
	}
	return out
}
