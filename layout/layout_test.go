package layout

import (
	"testing"

	"score-engraver/engraved"
	"score-engraver/glyphmetrics"
	"score-engraver/score"
	"score-engraver/units"
)

// fakeMetricsProvider supplies a fixed stem anchor for noteheadBlack, so
// tests can confirm buildNoteElement actually consults Anchor() instead of
// always stemming from the raw notehead position.
type fakeMetricsProvider struct{}

func (fakeMetricsProvider) BoundingBox(glyphName string) glyphmetrics.BoundingBox {
	return glyphmetrics.BoundingBox{}
}

func (fakeMetricsProvider) AdvanceWidth(glyphName string) units.StaffSpace {
	return 1.3
}

func (fakeMetricsProvider) Anchor(glyphName string, kind glyphmetrics.AnchorKind) (glyphmetrics.Point, bool) {
	if glyphName == "noteheadBlack" && kind == glyphmetrics.AnchorStemUpSE {
		return glyphmetrics.Point{X: 1.0, Y: -0.5}, true
	}
	return glyphmetrics.Point{}, false
}

func quarterNote(position int64, step score.DiatonicStep, octave int) score.MeasureElement {
	n := &score.Note{
		Position:  units.NewRational(position, 1),
		Base:      units.Quarter,
		Voice:     1,
		Staff:     1,
		Pitch:     score.Pitch{Step: step, Octave: octave},
		Stem:      score.StemUp,
		Notehead:  score.NoteheadNormal,
		BeamRoles: []score.BeamRole{score.BeamNone},
	}
	return score.MeasureElement{Kind: score.ElementNote, Note: n}
}

func simpleMeasure(number int, notes ...score.MeasureElement) score.Measure {
	return score.Measure{Number: number, Elements: notes}
}

func attributesMeasure(number int) score.Measure {
	clef := &score.Clef{Sign: score.ClefG, Line: 2}
	key := &score.KeySignature{Fifths: 0}
	time := &score.TimeSignature{Beats: 4, BeatType: 4}
	attrs := &score.Attributes{Clef: clef, Key: key, Time: time}
	el := score.MeasureElement{Kind: score.ElementAttributes, Attributes: attrs}
	return score.Measure{Number: number, Elements: []score.MeasureElement{
		el,
		quarterNote(0, score.StepC, 4),
		quarterNote(1, score.StepE, 4),
		quarterNote(2, score.StepG, 4),
		quarterNote(3, score.StepC, 5),
	}}
}

func testContext() Context {
	return Context{
		PageSize:      PageSize{Width: 612, Height: 792},
		Margins:       Margins{Top: 72, Left: 72, Bottom: 72, Right: 72},
		StaffHeight:   32,
		LinesPerStaff: 5,
		FontName:      "Bravura",
	}
}

func TestLayoutSingleMeasure(t *testing.T) {
	sc := score.Score{Parts: []score.Part{
		{Name: "Piano", Abbreviation: "Pno.", StaffCount: 1, Measures: []score.Measure{
			attributesMeasure(1),
		}},
	}}

	out := Layout(sc, testContext(), DefaultConfig(), nil)

	if len(out.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(out.Pages))
	}
	page := out.Pages[0]
	if len(page.Systems) != 1 {
		t.Fatalf("expected 1 system, got %d", len(page.Systems))
	}
	sys := page.Systems[0]
	if len(sys.Staves) != 1 {
		t.Fatalf("expected 1 staff, got %d", len(sys.Staves))
	}
	if len(sys.Measures) != 1 {
		t.Fatalf("expected 1 measure, got %d", len(sys.Measures))
	}
	m := sys.Measures[0]
	notes := m.ElementsByStaff[0]
	if len(notes) == 0 {
		t.Fatalf("expected notes/attributes on staff 0, got none")
	}
	barlines := m.ElementsByStaff[-1]
	if len(barlines) != 1 || barlines[0].Kind != engraved.ElementBarline {
		t.Fatalf("expected exactly one barline on the -1 sentinel key")
	}
}

func TestLayoutRejectsMismatchedMeasureCounts(t *testing.T) {
	sc := score.Score{Parts: []score.Part{
		{Name: "A", StaffCount: 1, Measures: []score.Measure{attributesMeasure(1)}},
		{Name: "B", StaffCount: 1, Measures: []score.Measure{attributesMeasure(1), simpleMeasure(2)}},
	}}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for mismatched measure counts")
		}
	}()
	Layout(sc, testContext(), DefaultConfig(), nil)
}

func TestLayoutBreaksManyMeasuresAcrossSystems(t *testing.T) {
	var measures []score.Measure
	measures = append(measures, attributesMeasure(1))
	for i := 2; i <= 30; i++ {
		measures = append(measures, simpleMeasure(i,
			quarterNote(0, score.StepC, 4),
			quarterNote(1, score.StepD, 4),
			quarterNote(2, score.StepE, 4),
			quarterNote(3, score.StepF, 4),
		))
	}
	sc := score.Score{Parts: []score.Part{
		{Name: "Violin", StaffCount: 1, Measures: measures},
	}}

	cfg := DefaultConfig()
	out := Layout(sc, testContext(), cfg, nil)

	total := 0
	for _, p := range out.Pages {
		for _, s := range p.Systems {
			total += len(s.Measures)
		}
	}
	if total != len(measures) {
		t.Fatalf("expected all %d measures placed, got %d", len(measures), total)
	}
	if len(out.Pages) == 0 {
		t.Fatalf("expected at least one page")
	}
	sawMultiMeasureSystem := false
	for _, p := range out.Pages {
		for _, s := range p.Systems {
			if len(s.Measures) > 1 {
				sawMultiMeasureSystem = true
			}
		}
	}
	if !sawMultiMeasureSystem {
		t.Fatalf("expected at least one system to hold more than one measure")
	}
}

func TestLayoutChordProducesStackedAccidentals(t *testing.T) {
	lead := &score.Note{
		Position:   units.NewRational(0, 1),
		Base:       units.Quarter,
		Staff:      1,
		Pitch:      score.Pitch{Step: score.StepC, Octave: 4},
		Stem:       score.StemUp,
		Accidental: score.AccidentalSharp,
	}
	tone := &score.Note{
		Position:    units.NewRational(0, 1),
		Base:        units.Quarter,
		Staff:       1,
		Pitch:       score.Pitch{Step: score.StepD, Octave: 4},
		IsChordTone: true,
		Stem:        score.StemUp,
		Accidental:  score.AccidentalFlat,
	}
	m := score.Measure{Number: 1, Elements: []score.MeasureElement{
		{Kind: score.ElementNote, Note: lead},
		{Kind: score.ElementNote, Note: tone},
	}}
	sc := score.Score{Parts: []score.Part{
		{Name: "Piano", StaffCount: 1, Measures: []score.Measure{m}},
	}}

	out := Layout(sc, testContext(), DefaultConfig(), nil)
	elems := out.Pages[0].Systems[0].Measures[0].ElementsByStaff[0]
	var chord *engraved.Element
	for i, e := range elems {
		if e.Kind == engraved.ElementChord {
			chord = &elems[i]
		}
	}
	if chord == nil {
		t.Fatalf("expected a chord element on staff 0")
	}
	if len(chord.Chord.Notes) != 2 {
		t.Fatalf("expected 2 stacked notes in chord, got %d", len(chord.Chord.Notes))
	}
	if chord.Chord.Notes[0].AccidentalPosition.X == chord.Chord.Notes[1].AccidentalPosition.X {
		t.Fatalf("expected stacked accidentals to land at different x positions")
	}
}

func TestLayoutBeamGroupSpansConsecutiveEighths(t *testing.T) {
	beamed := func(pos int64, step score.DiatonicStep, role score.BeamRole) score.MeasureElement {
		n := &score.Note{
			Position:  units.NewRational(pos, 2),
			Base:      units.Eighth,
			Staff:     1,
			Pitch:     score.Pitch{Step: step, Octave: 4},
			Stem:      score.StemUp,
			BeamRoles: []score.BeamRole{role},
		}
		return score.MeasureElement{Kind: score.ElementNote, Note: n}
	}
	m := score.Measure{Number: 1, Elements: []score.MeasureElement{
		beamed(0, score.StepC, score.BeamBegin),
		beamed(1, score.StepD, score.BeamEnd),
	}}
	sc := score.Score{Parts: []score.Part{
		{Name: "Flute", StaffCount: 1, Measures: []score.Measure{m}},
	}}

	out := Layout(sc, testContext(), DefaultConfig(), nil)
	groups := out.Pages[0].Systems[0].Measures[0].BeamGroups
	if len(groups) != 1 {
		t.Fatalf("expected 1 beam group, got %d", len(groups))
	}
	g := groups[0]
	if g.PrimaryEnd.X <= g.PrimaryStart.X {
		t.Fatalf("expected beam to span forward: start=%v end=%v", g.PrimaryStart, g.PrimaryEnd)
	}
}

func TestLayoutStemAnchorsAtGlyphAnchor(t *testing.T) {
	sc := score.Score{Parts: []score.Part{
		{Name: "Oboe", StaffCount: 1, Measures: []score.Measure{attributesMeasure(1)}},
	}}
	out := Layout(sc, testContext(), DefaultConfig(), fakeMetricsProvider{})
	elems := out.Pages[0].Systems[0].Measures[0].ElementsByStaff[0]
	var note *engraved.Element
	for i, e := range elems {
		if e.Kind == engraved.ElementNote {
			note = &elems[i]
			break
		}
	}
	if note == nil || note.Note.Stem == nil {
		t.Fatalf("expected a note with a stem")
	}
	stem := note.Note.Stem
	if stem.Start == note.Note.NoteheadPosition {
		t.Fatalf("expected the stem start to be offset by the glyph's stem anchor, got it anchored at the raw notehead position")
	}
}

func TestLayoutWithNilMetricsProvider(t *testing.T) {
	sc := score.Score{Parts: []score.Part{
		{Name: "Oboe", StaffCount: 1, Measures: []score.Measure{attributesMeasure(1)}},
	}}
	out := Layout(sc, testContext(), DefaultConfig(), nil)
	if out.Scaling.PointsPerStaffSpace <= 0 {
		t.Fatalf("expected a positive points-per-staff-space scaling factor")
	}
}
