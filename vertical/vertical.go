// Package vertical implements the Vertical Spacing Engine (spec.md
// §4.4): staff placement within a system and system placement within a
// page, plus the collision-driven clearance adjustment between adjacent
// staves. The staff-then-system two-level accumulation mirrors the
// teacher's display/fretboard.go grid layout (accumulating row offsets
// down a fixed-width column one string/fret at a time).
package vertical

// StaffInfo describes one staff to be placed, in system order.
type StaffInfo struct {
	PartIndex             int
	StaffNumber           int
	Height                float64
	StaffDistanceOverride float64 // 0 = use Config.StaffDistance
}

// Config bundles the tunables named in spec.md §6.
type Config struct {
	StaffDistance        float64 // gap between staves within the same part
	PartDistance         float64 // gap between staves crossing a part boundary
	SystemDistance       float64 // gap between systems on a page
	TopSystemDistance    float64 // gap above the first system on a page
	MinimumStaffClearance float64
}

// Placement is a staff's resolved vertical extent within its system.
type Placement struct {
	Top, Bottom, CenterLineY float64
}

// PlaceStaves allocates [y, y+height) for each staff in order, starting
// at startY, advancing by height plus the within-part staff distance or
// the crossing-part distance, per spec.md §4.4 step 1-3.
func PlaceStaves(staves []StaffInfo, startY float64, cfg Config) []Placement {
	out := make([]Placement, len(staves))
	y := startY
	for i, s := range staves {
		top := y
		bottom := top + s.Height
		out[i] = Placement{Top: top, Bottom: bottom, CenterLineY: (top + bottom) / 2}
		y = bottom
		if i == len(staves)-1 {
			continue
		}
		next := staves[i+1]
		if next.PartIndex == s.PartIndex {
			gap := cfg.StaffDistance
			if s.StaffDistanceOverride > 0 {
				gap = s.StaffDistanceOverride
			}
			y += gap
		} else {
			y += cfg.PartDistance
		}
	}
	return out
}

// Extent is the amount of content (ledger lines, high notes, articulation
// marks) escaping a staff's box: Upper is how far above the staff top the
// content reaches (as a positive distance), Lower is how far below the
// staff bottom.
type Extent struct {
	Upper, Lower float64
}

// ResolveClearance enforces spec.md §4.4's inter-staff collision rule:
// when upperBoundsOf(staff i+1) - lowerBoundsOf(staff i) < minimumClearance,
// push staff i+1 and everything below it down by the deficit. Placements
// and extents must be the same length and in system order; the result is
// a new slice with adjusted Top/Bottom/CenterLineY.
func ResolveClearance(placements []Placement, extents []Extent, cfg Config) []Placement {
	out := make([]Placement, len(placements))
	copy(out, placements)
	cumulativeShift := 0.0
	for i := 0; i < len(out); i++ {
		out[i].Top += cumulativeShift
		out[i].Bottom += cumulativeShift
		out[i].CenterLineY += cumulativeShift
		if i == 0 {
			continue
		}
		prevLower := out[i-1].Bottom + extents[i-1].Lower
		curUpper := out[i].Top - extents[i].Upper
		clearance := curUpper - prevLower
		if clearance < cfg.MinimumStaffClearance {
			deficit := cfg.MinimumStaffClearance - clearance
			out[i].Top += deficit
			out[i].Bottom += deficit
			out[i].CenterLineY += deficit
			cumulativeShift += deficit
		}
	}
	return out
}

// SystemPlacement is a system's resolved vertical extent within a page.
type SystemPlacement struct {
	Top, Bottom float64
}

// PlaceSystems computes cumulative y-positions for each system on a page
// from the top margin, using topSystemDistance before the first system
// and systemDistance between subsequent ones (spec.md §4.4 step 2: only
// asserts ordering and no overlap, never centers or vertically
// justifies).
func PlaceSystems(heights []float64, topMargin float64, cfg Config) []SystemPlacement {
	out := make([]SystemPlacement, len(heights))
	y := topMargin
	for i, h := range heights {
		if i == 0 {
			y += cfg.TopSystemDistance
		} else {
			y += cfg.SystemDistance
		}
		out[i] = SystemPlacement{Top: y, Bottom: y + h}
		y += h
	}
	return out
}

// TotalPageSpan returns the sum of system heights plus the inter-system
// gaps (including the top gap), the quantity spec.md §8 requires to stay
// within pageHeight for non-final pages.
func TotalPageSpan(heights []float64, cfg Config) float64 {
	if len(heights) == 0 {
		return 0
	}
	total := cfg.TopSystemDistance
	for i, h := range heights {
		if i > 0 {
			total += cfg.SystemDistance
		}
		total += h
	}
	return total
}
