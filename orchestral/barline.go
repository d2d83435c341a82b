package orchestral

// Segment is one vertical barline stroke within a system, spanning
// [TopY, BottomY] at the measure's barline X.
type Segment struct {
	TopY, BottomY float64
}

// SystemBarline is the full set of vertical segments for one barline
// column (one x-position, typically a measure boundary) across an entire
// system, assembled from each group's chosen connection.
type SystemBarline struct {
	Segments []Segment
}

// BuildSystemBarline emits the segments for one group according to its
// barline connection, given the resolved [top, bottom] y-extent of each
// staff in the group's range (spec.md §4.5): a "connected" barline yields
// one additional vertical segment spanning the gap between each pair of
// adjacent staves in the group, on top of each staff's own barline
// segment; a "mensurstrich" connection yields only the between-staff
// segments and no segments across the staff boxes themselves.
func BuildSystemBarline(g Grouping, staffTops, staffBottoms []float64) SystemBarline {
	var segments []Segment
	switch g.Connection {
	case ConnectionConnected:
		for i := g.TopStaffIndex; i <= g.BottomStaffIndex; i++ {
			segments = append(segments, Segment{TopY: staffTops[i], BottomY: staffBottoms[i]})
			if i < g.BottomStaffIndex {
				segments = append(segments, Segment{TopY: staffBottoms[i], BottomY: staffTops[i+1]})
			}
		}
	case ConnectionMensurstrich:
		for i := g.TopStaffIndex; i < g.BottomStaffIndex; i++ {
			segments = append(segments, Segment{TopY: staffBottoms[i], BottomY: staffTops[i+1]})
		}
	case ConnectionNone:
		for i := g.TopStaffIndex; i <= g.BottomStaffIndex; i++ {
			segments = append(segments, Segment{TopY: staffTops[i], BottomY: staffBottoms[i]})
		}
	}
	return SystemBarline{Segments: segments}
}
