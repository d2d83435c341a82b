package layout

import (
	"math"
	"strconv"

	"score-engraver/collision"
	"score-engraver/engraved"
	"score-engraver/glyphmetrics"
	"score-engraver/orchestral"
	"score-engraver/pitch"
	"score-engraver/score"
	"score-engraver/units"
)

// clefTimeline returns, per measure index, the clef in effect on the
// part's first staff, carrying the prior value forward across measures
// that don't change it (spec.md §3 Attributes semantics: a zero/absent
// field means "inherit"). Attributes in this data model name one clef per
// occurrence; a second staff (piano grand staff, say) is assumed to carry
// treble/bass by the usual convention rather than tracked independently,
// since score.Attributes carries no per-staff clef field.
func clefTimeline(part score.Part) []score.ClefSign {
	out := make([]score.ClefSign, len(part.Measures))
	current := score.ClefG
	for i, m := range part.Measures {
		for _, el := range m.Elements {
			if el.Kind == score.ElementAttributes && el.Attributes.Clef != nil {
				current = el.Attributes.Clef.Sign
			}
		}
		out[i] = current
	}
	return out
}

// clefForStaff applies the grand-staff convention: staff 2 of a
// multi-staff part defaults to bass clef unless the part is single-staff,
// in which case the tracked timeline applies directly.
func clefForStaff(timeline []score.ClefSign, measureIndex, staffNumber, staffCount int) score.ClefSign {
	if staffCount >= 2 && staffNumber == 2 {
		return score.ClefF
	}
	if measureIndex < len(timeline) {
		return timeline[measureIndex]
	}
	return score.ClefG
}

// pitchOffsetStaffSpaces returns a pitch's vertical offset from the
// staff's center line, in staff spaces (positive = above center).
func pitchOffsetStaffSpaces(p score.Pitch, clef score.ClefSign) float64 {
	diatonic := pitch.DiatonicNumber(p)
	center := pitch.StaffCenterOffset(clef)
	return float64(diatonic-center) * 0.5
}

// ledgerLines returns the ledger-line set needed for a notehead at the
// given offset (staff spaces from center, staff lines at -2..2), centered
// at noteX with the given notehead width (spec.md §4.6 ledger-line
// generation is a layout, not a glyph-metrics, concern).
func ledgerLines(offset, centerY, pointsPerSpace, noteX, noteheadWidth float64) []engraved.LedgerLine {
	half := noteheadWidth * 0.7
	var lines []engraved.LedgerLine
	if offset > 2 {
		count := int(math.Floor(offset)) - 2
		for i := 1; i <= count; i++ {
			y := centerY - float64(2+i)*pointsPerSpace
			lines = append(lines, engraved.LedgerLine{Y: y, Left: noteX - half, Right: noteX + half})
		}
	} else if offset < -2 {
		count := int(math.Floor(-offset)) - 2
		for i := 1; i <= count; i++ {
			y := centerY + float64(2+i)*pointsPerSpace
			lines = append(lines, engraved.LedgerLine{Y: y, Left: noteX - half, Right: noteX + half})
		}
	}
	return lines
}

func noteheadGlyph(kind score.NoteheadType) string {
	switch kind {
	case score.NoteheadX:
		return "noteheadX"
	case score.NoteheadDiamond:
		return "noteheadDiamond"
	case score.NoteheadTriangle:
		return "noteheadTriangleUp"
	case score.NoteheadSlash:
		return "noteheadSlash"
	case score.NoteheadNone:
		return ""
	default:
		return "noteheadBlack"
	}
}

func accidentalGlyph(a score.AccidentalDisplay) string {
	switch a {
	case score.AccidentalSharp:
		return "accidentalSharp"
	case score.AccidentalFlat:
		return "accidentalFlat"
	case score.AccidentalNatural:
		return "accidentalNatural"
	case score.AccidentalDoubleSharp:
		return "accidentalDoubleSharp"
	case score.AccidentalDoubleFlat:
		return "accidentalDoubleFlat"
	case score.AccidentalCourtesy:
		return "accidentalParensLeft"
	default:
		return ""
	}
}

func clefGlyph(sign score.ClefSign) string {
	switch sign {
	case score.ClefF:
		return "fClef"
	case score.ClefC:
		return "cClef"
	case score.ClefPercussion:
		return "unpitchedPercussionClef1"
	case score.ClefTAB:
		return "6stringTabClef"
	default:
		return "gClef"
	}
}

// restGlyph picks a rest glyph from the duration's relation to a whole
// note; this core does not track a dedicated rest base-duration type
// (spec.md §3 models Rest.Duration as the exact value directly).
func restGlyph(d units.Rational) string {
	f := d.Float64()
	switch {
	case f >= 1:
		return "restWhole"
	case f >= 0.5:
		return "restHalf"
	case f >= 0.25:
		return "restQuarter"
	case f >= 0.125:
		return "rest8th"
	case f >= 0.0625:
		return "rest16th"
	default:
		return "rest32nd"
	}
}

// noteGeometryInputs bundles what buildNoteElement needs beyond the note
// itself: absolute x, the active clef, staff center y, and the glyph
// metrics provider through which every width is resolved rather than
// hard-coded (spec.md §9: metrics are injected, never assumed).
type noteGeometryInputs struct {
	x, centerY     float64
	clef           score.ClefSign
	scaling        units.ScalingContext
	metrics        glyphmetrics.Provider
	defaultStemLen units.StaffSpace
}

func (in noteGeometryInputs) glyphWidthPoints(glyph string) float64 {
	return float64(in.scaling.ToPoints(in.metrics.AdvanceWidth(glyph)))
}

// buildNoteElement resolves one note's absolute geometry: notehead
// position, stem, accidental slot (unstacked; StackAccidentals runs
// separately across a chord), ledger lines, dot placement.
func buildNoteElement(n score.Note, in noteGeometryInputs) engraved.Element {
	pointsPerSpace := in.scaling.PointsPerStaffSpace()
	offset := pitchOffsetStaffSpaces(n.Pitch, in.clef)
	y := in.centerY - offset*pointsPerSpace
	glyph := noteheadGlyph(n.Notehead)
	noteheadWidth := in.glyphWidthPoints(glyph)
	if noteheadWidth == 0 {
		noteheadWidth = pointsPerSpace * 1.3
	}

	geom := &engraved.NoteGeometry{
		NoteheadPosition: engraved.Point{X: in.x, Y: y},
		GlyphName:        glyph,
		LedgerLines:      ledgerLines(offset, in.centerY, pointsPerSpace, in.x, noteheadWidth),
	}
	if n.Stem != score.StemNone {
		up := n.Stem == score.StemUp
		stemLen := float64(in.scaling.ToPoints(in.defaultStemLen))
		anchorKind := glyphmetrics.AnchorStemDownNW
		if up {
			anchorKind = glyphmetrics.AnchorStemUpSE
		}
		startX, startY := in.x, y
		if pt, ok := in.metrics.Anchor(glyph, anchorKind); ok {
			startX += float64(in.scaling.ToPoints(pt.X))
			startY -= float64(in.scaling.ToPoints(pt.Y))
		}
		end := startY - stemLen
		if !up {
			end = startY + stemLen
		}
		geom.Stem = &engraved.StemGeometry{
			Start: engraved.Point{X: startX, Y: startY},
			End:   engraved.Point{X: startX, Y: end},
			Up:    up,
		}
	}
	if n.Accidental != score.AccidentalNone {
		geom.HasAccidental = true
		geom.AccidentalGlyph = accidentalGlyph(n.Accidental)
		geom.AccidentalPosition = engraved.Point{X: in.x - noteheadWidth, Y: y}
	}
	for d := 0; d < n.Dots; d++ {
		geom.DotPositions = append(geom.DotPositions, engraved.Point{
			X: in.x + noteheadWidth*0.8 + float64(d)*noteheadWidth*0.4,
			Y: y,
		})
	}

	bounds := engraved.Rect{X: in.x - noteheadWidth/2, Y: y - pointsPerSpace/2, Width: noteheadWidth, Height: pointsPerSpace}
	return engraved.Element{Kind: engraved.ElementNote, Bounds: bounds, Layer: engraved.ZLayerNoteheads, Note: geom}
}

// stackChordAccidentals re-positions the accidentals of a group of
// simultaneous notes (one non-chord-tone lead note plus its chord tones)
// using collision.StackAccidentals, overwriting each element's
// AccidentalPosition in place. pointsPerSpace converts each notehead's
// absolute y back to staff spaces, the unit collision.StackAccidentals'
// vertical-overlap test expects.
func stackChordAccidentals(elems []engraved.Element, noteheadWidth, gap, pointsPerSpace float64) {
	type slot struct {
		elemIndex int
		staffPos  float64
	}
	var slots []slot
	for i, e := range elems {
		if e.Kind == engraved.ElementNote && e.Note.HasAccidental {
			slots = append(slots, slot{elemIndex: i, staffPos: -e.Note.NoteheadPosition.Y / pointsPerSpace})
		}
	}
	if len(slots) < 2 {
		return
	}
	accs := make([]collision.Accidental, len(slots))
	for i, s := range slots {
		accs[i] = collision.Accidental{Width: noteheadWidth, NoteheadWidth: noteheadWidth, StaffPosition: s.staffPos}
	}
	offsets := collision.StackAccidentals(accs, gap)
	for i, s := range slots {
		elems[s.elemIndex].Note.AccidentalPosition.X = elems[s.elemIndex].Note.NoteheadPosition.X + offsets[i]
	}
}

func buildRestElement(r score.Rest, x, centerY float64) engraved.Element {
	geom := &engraved.RestGeometry{Position: engraved.Point{X: x, Y: centerY}, GlyphName: restGlyph(r.Duration)}
	return engraved.Element{
		Kind:   engraved.ElementRest,
		Bounds: engraved.Rect{X: x, Y: centerY, Width: 1, Height: 1},
		Layer:  engraved.ZLayerNoteheads,
		Rest:   geom,
	}
}

func buildClefElement(sign score.ClefSign, x, centerY float64) engraved.Element {
	geom := &engraved.ClefGeometry{Position: engraved.Point{X: x, Y: centerY}, GlyphName: clefGlyph(sign)}
	return engraved.Element{Kind: engraved.ElementClef, Bounds: engraved.Rect{X: x, Y: centerY, Width: 2, Height: 4}, Layer: engraved.ZLayerNoteheads, Clef: geom}
}

func buildKeySignatureElement(k score.KeySignature, x, centerY, pointsPerSpace float64) engraved.Element {
	geom := &engraved.KeySignatureGeometry{}
	glyph := "accidentalSharp"
	if k.Fifths < 0 {
		glyph = "accidentalFlat"
	}
	count := k.Fifths
	if count < 0 {
		count = -count
	}
	for i := 0; i < count; i++ {
		geom.AccidentalGlyphs = append(geom.AccidentalGlyphs, glyph)
		geom.AccidentalPositions = append(geom.AccidentalPositions, engraved.Point{X: x + float64(i)*pointsPerSpace*0.8, Y: centerY})
	}
	return engraved.Element{Kind: engraved.ElementKeySignature, Bounds: engraved.Rect{X: x, Y: centerY, Width: float64(count) * pointsPerSpace, Height: pointsPerSpace * 4}, Layer: engraved.ZLayerNoteheads, KeySignature: geom}
}

func buildTimeSignatureElement(t score.TimeSignature, x, centerY, pointsPerSpace float64) engraved.Element {
	geom := &engraved.TimeSignatureGeometry{
		NumeratorPosition:   engraved.Point{X: x, Y: centerY - pointsPerSpace},
		DenominatorPosition: engraved.Point{X: x, Y: centerY + pointsPerSpace},
		NumeratorText:       strconv.Itoa(t.Beats),
		DenominatorText:     strconv.Itoa(t.BeatType),
	}
	return engraved.Element{Kind: engraved.ElementTimeSignature, Bounds: engraved.Rect{X: x, Y: centerY - pointsPerSpace*2, Width: pointsPerSpace, Height: pointsPerSpace * 4}, Layer: engraved.ZLayerNoteheads, TimeSignature: geom}
}

func buildDirectionElement(d score.Direction, x, staffTop, staffBottom float64) engraved.Element {
	y := staffTop - 4
	if d.Placement == score.PlacementBelow {
		y = staffBottom + 4
	}
	geom := &engraved.DirectionGeometry{Position: engraved.Point{X: x, Y: y}, Text: d.Text}
	return engraved.Element{Kind: engraved.ElementDirection, Bounds: engraved.Rect{X: x, Y: y, Width: float64(len(d.Text)) * 4, Height: 8}, Layer: engraved.ZLayerText, Direction: geom}
}

func buildBarlineElement(x float64, segments []orchestral.Segment) engraved.Element {
	geom := &engraved.BarlineGeometry{X: x, Segments: segments}
	var top, bottom float64
	if len(segments) > 0 {
		top, bottom = segments[0].TopY, segments[0].BottomY
		for _, s := range segments {
			if s.TopY < top {
				top = s.TopY
			}
			if s.BottomY > bottom {
				bottom = s.BottomY
			}
		}
	}
	return engraved.Element{Kind: engraved.ElementBarline, Bounds: engraved.Rect{X: x, Y: top, Width: 0.5, Height: bottom - top}, Layer: engraved.ZLayerStaffLines, Barline: geom}
}
