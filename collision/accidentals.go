package collision

import "sort"

// AccidentalKind is the printed glyph; only the bounds matter to stacking,
// but the kind is carried through for callers that want it.
type AccidentalKind int

// Accidental is one accidental attached to a chord, with its glyph bounds
// (width/height only matter; position is resolved by StackAccidentals)
// and its staff position (higher value = higher pitch).
type Accidental struct {
	Width         float64
	NoteheadWidth float64
	StaffPosition float64
	Kind          AccidentalKind
}

// StackAccidentals assigns a negative x-offset to each accidental so
// that no two overlap vertically within padding (spec.md §4.6). Sorted
// from the top pitch down (outermost first); each accidental is placed
// at the leftmost x not colliding with any already-placed accidental's
// vertical extent, offset further left by gap. The first accidental
// (closest to the notehead) sits at
// -(accidentalWidth + noteheadWidth/2 + gap).
//
// Returns offsets in the same order as the input slice (not the sorted
// order), so callers can zip them back onto their originating notes.
func StackAccidentals(accidentals []Accidental, gap float64) []float64 {
	n := len(accidentals)
	offsets := make([]float64, n)
	if n == 0 {
		return offsets
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return accidentals[order[i]].StaffPosition > accidentals[order[j]].StaffPosition
	})

	type placed struct {
		leftEdge, rightEdge, staffPosition float64
	}
	var placedList []placed

	for _, idx := range order {
		a := accidentals[idx]
		available := -(a.Width + a.NoteheadWidth/2 + gap)
		for {
			collides := false
			for _, p := range placedList {
				if verticalOverlap(a.StaffPosition, p.staffPosition) {
					// shift further left of this placed accidental's left edge
					candidate := p.leftEdge - a.Width - gap
					if candidate < available {
						available = candidate
						collides = true
					}
				}
			}
			if !collides {
				break
			}
		}
		offsets[idx] = available
		placedList = append(placedList, placed{
			leftEdge:      available,
			rightEdge:     available + a.Width,
			staffPosition: a.StaffPosition,
		})
	}
	return offsets
}

// verticalOverlap is a simple proximity test: two accidentals "overlap
// vertically within padding" when their staff positions are within one
// staff space of each other, a reasonable default in the absence of
// per-accidental bounding-box heights (callers with real glyph metrics
// should instead compare BoundingBox extents directly via Rect.Intersects).
func verticalOverlap(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1.0
}
