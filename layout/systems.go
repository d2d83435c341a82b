package layout

import (
	"score-engraver/orchestral"
	"score-engraver/score"
	"score-engraver/vertical"
)

// buildStaffInfos expands every part's staves into one flat per-system
// staff list, in part order (spec.md §4.4/§4.5: systems share one staff
// list across the whole piece since this core assumes constant
// instrumentation).
func buildStaffInfos(parts []score.Part, staffHeight float64) []vertical.StaffInfo {
	var out []vertical.StaffInfo
	for pi, p := range parts {
		count := p.StaffCount
		if count < 1 {
			count = 1
		}
		for s := 1; s <= count; s++ {
			out = append(out, vertical.StaffInfo{PartIndex: pi, StaffNumber: s, Height: staffHeight})
		}
	}
	return out
}

// buildStaffRefs mirrors buildStaffInfos but in orchestral's StaffRef
// shape, carrying name/family for grouping and family inference.
func buildStaffRefs(parts []score.Part) []orchestral.StaffRef {
	var out []orchestral.StaffRef
	for pi, p := range parts {
		count := p.StaffCount
		if count < 1 {
			count = 1
		}
		for s := 1; s <= count; s++ {
			out = append(out, orchestral.StaffRef{PartIndex: pi, StaffNumber: s, Family: p.Family, PartName: p.Name})
		}
	}
	return out
}

// staffCountsAndNames extracts the parallel arrays orchestral.PartGroups
// expects.
func staffCountsAndNames(parts []score.Part) (counts []int, names, abbrevs []string) {
	for _, p := range parts {
		c := p.StaffCount
		if c < 1 {
			c = 1
		}
		counts = append(counts, c)
		names = append(names, p.Name)
		abbrevs = append(abbrevs, p.Abbreviation)
	}
	return
}

// staffIndexOf finds a flat staff-list index for a given part/staff pair.
func staffIndexOf(infos []vertical.StaffInfo, partIndex, staffNumber int) int {
	for i, s := range infos {
		if s.PartIndex == partIndex && s.StaffNumber == staffNumber {
			return i
		}
	}
	return 0
}

// systemExtents estimates each staff's above/below ambitus within a
// measure range, from the diatonic range of notes actually present, so
// vertical.ResolveClearance has something real to work with instead of
// always assuming notes stay within the staff (spec.md §4.4 step 3).
func systemExtents(parts []score.Part, infos []vertical.StaffInfo, timelines [][]score.ClefSign, startMeasure, endMeasure int) []vertical.Extent {
	extents := make([]vertical.Extent, len(infos))
	for pi, p := range parts {
		count := p.StaffCount
		if count < 1 {
			count = 1
		}
		for mi := startMeasure; mi < endMeasure && mi < len(p.Measures); mi++ {
			for _, el := range p.Measures[mi].Elements {
				if el.Kind != score.ElementNote {
					continue
				}
				staffNum := el.Note.Staff
				if staffNum < 1 {
					staffNum = 1
				}
				clef := clefForStaff(timelines[pi], mi, staffNum, count)
				offset := pitchOffsetStaffSpaces(el.Note.Pitch, clef)
				idx := staffIndexOf(infos, pi, staffNum)
				if offset > 2 && offset-2 > extents[idx].Upper {
					extents[idx].Upper = offset - 2
				}
				if offset < -2 && -offset-2 > extents[idx].Lower {
					extents[idx].Lower = -offset - 2
				}
			}
		}
	}
	return extents
}
