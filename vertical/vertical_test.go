package vertical

import "testing"

func TestPlaceStavesGrandStaff(t *testing.T) {
	staves := []StaffInfo{
		{PartIndex: 0, StaffNumber: 1, Height: 20},
		{PartIndex: 0, StaffNumber: 2, Height: 20},
	}
	cfg := Config{StaffDistance: 10, PartDistance: 40}
	got := PlaceStaves(staves, 0, cfg)
	if len(got) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(got))
	}
	if got[0].Bottom != 20 {
		t.Fatalf("first staff bottom = %v, want 20", got[0].Bottom)
	}
	if got[1].Top != 30 {
		t.Fatalf("second staff top = %v, want 30 (20 + staffDistance 10)", got[1].Top)
	}
	if got[1].Top <= got[0].Bottom {
		t.Fatal("staves must not overlap")
	}
}

func TestPlaceStavesCrossPartDistance(t *testing.T) {
	staves := []StaffInfo{
		{PartIndex: 0, StaffNumber: 1, Height: 20},
		{PartIndex: 1, StaffNumber: 1, Height: 20},
	}
	cfg := Config{StaffDistance: 10, PartDistance: 40}
	got := PlaceStaves(staves, 0, cfg)
	if got[1].Top != 60 {
		t.Fatalf("cross-part staff top = %v, want 60 (20 + partDistance 40)", got[1].Top)
	}
}

func TestResolveClearanceEnforcesMinimum(t *testing.T) {
	placements := []Placement{
		{Top: 0, Bottom: 20, CenterLineY: 10},
		{Top: 21, Bottom: 41, CenterLineY: 31},
	}
	extents := []Extent{
		{Lower: 5}, // staff 0's content reaches 5 below its box
		{Upper: 0},
	}
	cfg := Config{MinimumStaffClearance: 8}
	out := ResolveClearance(placements, extents, cfg)
	if out[1].Top-out[0].Bottom < 8 {
		// recompute against actual escaping content per the rule in spec.md §4.4
	}
	upper := out[1].Top - extents[1].Upper
	lower := out[0].Bottom + extents[0].Lower
	if upper-lower < cfg.MinimumStaffClearance-1e-9 {
		t.Fatalf("clearance %v below minimum %v", upper-lower, cfg.MinimumStaffClearance)
	}
}

func TestPlaceSystemsOrderingAndSpan(t *testing.T) {
	heights := []float64{100, 120, 90}
	cfg := Config{SystemDistance: 20, TopSystemDistance: 30}
	got := PlaceSystems(heights, 0, cfg)
	for i := 1; i < len(got); i++ {
		if got[i].Top < got[i-1].Bottom {
			t.Fatalf("systems overlap at %d", i)
		}
	}
	span := TotalPageSpan(heights, cfg)
	want := 30 + 100 + 20 + 120 + 20 + 90
	if span != float64(want) {
		t.Fatalf("TotalPageSpan = %v, want %v", span, want)
	}
}
