package breaking

import "testing"

func TestEmptySystemBreak(t *testing.T) {
	got := Greedy(nil, 500, Config{})
	if len(got) != 0 {
		t.Fatalf("expected no partitions for empty input, got %d", len(got))
	}
}

func TestSingleFitGreedyBreak(t *testing.T) {
	got := Greedy([]float64{100, 100, 100}, 500, Config{})
	if len(got) != 1 {
		t.Fatalf("expected 1 partition, got %d", len(got))
	}
	p := got[0]
	if p.Start != 0 || p.End != 3 || p.NaturalTotal != 300 {
		t.Fatalf("got %+v, want {0 3 300}", p)
	}
}

func TestGreedyRespectsMaxPerGroup(t *testing.T) {
	got := Greedy([]float64{10, 10, 10, 10}, 1000, Config{MaximumPerGroup: 2})
	if len(got) != 2 {
		t.Fatalf("expected 2 groups of at most 2, got %d", len(got))
	}
	for _, p := range got {
		if p.End-p.Start > 2 {
			t.Fatalf("group exceeds maximumPerGroup: %+v", p)
		}
	}
}

func TestProportionalStretch(t *testing.T) {
	adjusted, ratio, stretched, compressed, unchanged := JustifyWidths([]float64{100, 200}, 450)
	if ratio != 1.5 {
		t.Fatalf("ratio = %v, want 1.5", ratio)
	}
	if adjusted[0] != 150 || adjusted[1] != 300 {
		t.Fatalf("adjusted = %v, want [150 300]", adjusted)
	}
	if !stretched || compressed || unchanged {
		t.Fatalf("expected stretched=true compressed=false unchanged=false, got %v %v %v", stretched, compressed, unchanged)
	}
}

func TestJustifyWidthsIdentity(t *testing.T) {
	adjusted, ratio, _, _, unchanged := JustifyWidths([]float64{50, 50}, 100)
	if !unchanged || ratio != 1 {
		t.Fatalf("expected identity justification, got ratio=%v unchanged=%v", ratio, unchanged)
	}
	if adjusted[0] != 50 || adjusted[1] != 50 {
		t.Fatalf("adjusted = %v, want [50 50]", adjusted)
	}
}

func TestDPPartitionsCoverWholeRange(t *testing.T) {
	sizes := []float64{80, 90, 70, 100, 60, 85, 95, 40}
	cfg := Config{StretchPenalty: 10, CompressPenalty: 10, MinimumPerGroup: 1, MaximumPerGroup: 4}
	groups := DP(sizes, 200, cfg, nil)
	if len(groups) == 0 {
		t.Fatal("expected at least one group")
	}
	pos := 0
	for _, g := range groups {
		if g.Start != pos {
			t.Fatalf("groups not contiguous: expected start %d, got %+v", pos, g)
		}
		pos = g.End
	}
	if pos != len(sizes) {
		t.Fatalf("groups do not cover full range: ended at %d, want %d", pos, len(sizes))
	}
	if !groups[len(groups)-1].IsFinal {
		t.Fatal("last group should be marked final")
	}
}

func TestDPRequiredBreakHint(t *testing.T) {
	sizes := []float64{50, 50, 50, 50, 50, 50}
	cfg := Config{StretchPenalty: 1, CompressPenalty: 1, MinimumPerGroup: 1, MaximumPerGroup: 6}
	hints := []Hint{{Index: 3, Kind: HintRequired}}
	groups := DP(sizes, 1000, cfg, hints)
	foundBoundary := false
	for _, g := range groups {
		if g.End == 3 || g.Start == 3 {
			foundBoundary = true
		}
	}
	if !foundBoundary {
		t.Fatalf("expected a group boundary at the required break index 3, got %+v", groups)
	}
}

func TestDPRejectsOverCompressedGroups(t *testing.T) {
	sizes := make([]float64, 10)
	for i := range sizes {
		sizes[i] = 150
	}
	cfg := Config{
		StretchPenalty:          10,
		CompressPenalty:         10,
		MinimumCompressionRatio: 0.8,
		MinimumPerGroup:         1,
		MaximumPerGroup:         12,
	}
	const capacity = 468.0
	groups := DP(sizes, capacity, cfg, nil)
	if len(groups) < 2 {
		t.Fatalf("expected a dense score to split across multiple systems rather than overflow one, got %+v", groups)
	}
	for _, g := range groups {
		if g.NaturalTotal > capacity && g.End-g.Start > 1 {
			if ratio := capacity / g.NaturalTotal; ratio < cfg.MinimumCompressionRatio {
				t.Fatalf("group %+v compresses to %v, past the configured floor %v", g, ratio, cfg.MinimumCompressionRatio)
			}
		}
	}
}

func TestAdjustFirstGroupShrinks(t *testing.T) {
	sizes := []float64{100, 100, 100, 100}
	n := AdjustFirstGroup(sizes, 300, 50)
	if n >= 4 {
		t.Fatalf("expected first group to shrink below full count, got %d", n)
	}
}
