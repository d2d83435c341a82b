package spacing

import (
	"testing"

	"score-engraver/units"
)

func defaultConfig() Config {
	return Config{
		QuarterNoteSpacing:      30,
		SpacingExponent:         0.6,
		MinimumNoteSpacing:      5,
		MaximumNoteSpacing:      200,
		MinimumCompressionRatio: 0.6,
	}
}

func elementAt(q int64) SpacingElement {
	return SpacingElement{Position: units.NewRational(q, 1), Type: ElementTypeNote}
}

func TestComputeColumnsEmpty(t *testing.T) {
	res := ComputeColumns(nil, defaultConfig(), LeadingAttributes{})
	if len(res.Columns) != 0 {
		t.Fatalf("expected no columns, got %d", len(res.Columns))
	}
	if res.NaturalWidth != 0 {
		t.Fatalf("expected zero width for empty input with no leading attrs, got %v", res.NaturalWidth)
	}
}

func TestComputeColumnsMonotonicAndLeading(t *testing.T) {
	cfg := defaultConfig()
	elements := []SpacingElement{elementAt(0), elementAt(1), elementAt(2), elementAt(3)}
	leading := LeadingAttributes{HasClef: true, HasKeySignature: true}
	res := ComputeColumns(elements, cfg, leading)
	if len(res.Columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(res.Columns))
	}
	wantLeading := cfg.LeadingOffset(leading)
	if res.Columns[0].X != wantLeading {
		t.Fatalf("first column x = %v, want leading offset %v", res.Columns[0].X, wantLeading)
	}
	for i := 1; i < len(res.Columns); i++ {
		if res.Columns[i].X <= res.Columns[i-1].X {
			t.Fatalf("columns not strictly increasing at %d", i)
		}
	}
}

func TestComputeColumnsIdempotentMerge(t *testing.T) {
	cfg := defaultConfig()
	elements := []SpacingElement{elementAt(0), elementAt(0), elementAt(1)}
	res := ComputeColumns(elements, cfg, LeadingAttributes{})
	if len(res.Columns) != 2 {
		t.Fatalf("expected duplicate positions to merge into 1 column, got %d columns", len(res.Columns))
	}
}

func TestDurationSpacingMonotonicity(t *testing.T) {
	cfg := Config{QuarterNoteSpacing: 30, SpacingExponent: 0.6, MaximumNoteSpacing: 1e9}
	gap1 := idealSpacing(units.NewRational(1, 1), cfg)
	gap2 := idealSpacing(units.NewRational(2, 1), cfg)
	gap4 := idealSpacing(units.NewRational(4, 1), cfg)
	if !(gap1 < gap2 && gap2 < gap4) {
		t.Fatalf("expected strictly increasing spacing for increasing duration gaps: %v %v %v", gap1, gap2, gap4)
	}
}

func TestJustifyIdentity(t *testing.T) {
	cfg := defaultConfig()
	res := ComputeColumns([]SpacingElement{elementAt(0), elementAt(1)}, cfg, LeadingAttributes{})
	j := Justify(res.Columns, res.NaturalWidth, res.NaturalWidth, cfg)
	if !j.IsUnchanged {
		t.Fatal("justify(natural, natural) should be identity")
	}
	if j.TotalWidth != res.NaturalWidth {
		t.Fatalf("TotalWidth = %v, want %v", j.TotalWidth, res.NaturalWidth)
	}
}

func TestJustifyStretchAndCompressFlags(t *testing.T) {
	cfg := defaultConfig()
	res := ComputeColumns([]SpacingElement{elementAt(0), elementAt(1), elementAt(2)}, cfg, LeadingAttributes{})
	stretched := Justify(res.Columns, res.NaturalWidth, res.NaturalWidth*2, cfg)
	if !stretched.IsStretched {
		t.Fatal("expected IsStretched when target > natural")
	}
	compressed := Justify(res.Columns, res.NaturalWidth, res.NaturalWidth*0.9, cfg)
	if !compressed.IsCompressed {
		t.Fatal("expected IsCompressed when target < natural")
	}
}

func TestInterpolateX(t *testing.T) {
	columns := []Column{
		{Position: units.NewRational(0, 1), X: 0},
		{Position: units.NewRational(2, 1), X: 20},
	}
	mid := InterpolateX(columns, units.NewRational(1, 1))
	if mid != 10 {
		t.Fatalf("InterpolateX midpoint = %v, want 10", mid)
	}
}
