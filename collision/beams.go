package collision

// BeamDisplacement returns the minimum vertical displacement, in the
// direction away from the stems, needed to clear every notehead in the
// group (spec.md §4.6): if the beam's bounding rectangle intersects any
// listed notehead, the beam is pushed further from the stem-attachment
// side until clear.
func BeamDisplacement(beamBounds Rect, noteheads []Rect, stemsPointUp bool, padding float64) float64 {
	displacement := 0.0
	for {
		rect := beamBounds
		if stemsPointUp {
			rect.Y -= displacement
		} else {
			rect.Y += displacement
		}
		extended := false
		for _, n := range noteheads {
			if rect.Intersects(n, padding) {
				var needed float64
				if stemsPointUp {
					needed = rect.Bottom() - n.Top() + padding
				} else {
					needed = n.Bottom() - rect.Top() + padding
				}
				if needed > displacement {
					displacement = needed
					extended = true
				}
			}
		}
		if !extended {
			break
		}
	}
	return displacement
}
