package collision

import "math"

// cellKey is a spatial hash bucket coordinate.
type cellKey struct {
	cx, cy int
}

// SpatialHash is a uniform grid keyed on (floor(x/cellSize), floor(y/cellSize))
// for fast broad-phase overlap queries (spec.md §4.6). Its bucket-array
// structure mirrors the teacher's fretboard [][]bool occupancy grid
// (display/fretboard.go), generalized from a fixed string/fret grid to an
// open hash keyed by floating-point cell coordinates.
type SpatialHash struct {
	cellSize float64
	buckets  map[cellKey][]int
	rects    []Rect
}

// NewSpatialHash creates a hash with the given cell size, which should be
// approximately the largest expected glyph bounding box (spec.md §4.6).
func NewSpatialHash(cellSize float64) *SpatialHash {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &SpatialHash{cellSize: cellSize, buckets: make(map[cellKey][]int)}
}

// Insert adds a rectangle, returning its index. Insertion writes the
// index into every cell the rectangle's bounding box overlaps.
func (h *SpatialHash) Insert(r Rect) int {
	idx := len(h.rects)
	h.rects = append(h.rects, r)
	minCX := int(math.Floor(r.Left() / h.cellSize))
	maxCX := int(math.Floor(r.Right() / h.cellSize))
	minCY := int(math.Floor(r.Top() / h.cellSize))
	maxCY := int(math.Floor(r.Bottom() / h.cellSize))
	for cx := minCX; cx <= maxCX; cx++ {
		for cy := minCY; cy <= maxCY; cy++ {
			key := cellKey{cx, cy}
			h.buckets[key] = append(h.buckets[key], idx)
		}
	}
	return idx
}

// Query returns the union of indices in every cell the query rectangle
// overlaps: a superset of true collisions. Callers verify with a direct
// Rect.Intersects test (spec.md §4.6).
func (h *SpatialHash) Query(q Rect) []int {
	minCX := int(math.Floor(q.Left() / h.cellSize))
	maxCX := int(math.Floor(q.Right() / h.cellSize))
	minCY := int(math.Floor(q.Top() / h.cellSize))
	maxCY := int(math.Floor(q.Bottom() / h.cellSize))

	seen := make(map[int]bool)
	var out []int
	for cx := minCX; cx <= maxCX; cx++ {
		for cy := minCY; cy <= maxCY; cy++ {
			for _, idx := range h.buckets[cellKey{cx, cy}] {
				if !seen[idx] {
					seen[idx] = true
					out = append(out, idx)
				}
			}
		}
	}
	return out
}

// Rect returns the rectangle stored at index i.
func (h *SpatialHash) Rect(i int) Rect {
	return h.rects[i]
}

// QueryIntersecting returns only the indices whose stored rectangle
// actually intersects q (the verified, non-superset form of Query).
func (h *SpatialHash) QueryIntersecting(q Rect, padding float64) []int {
	candidates := h.Query(q)
	var out []int
	for _, idx := range candidates {
		if h.rects[idx].Intersects(q, padding) {
			out = append(out, idx)
		}
	}
	return out
}
