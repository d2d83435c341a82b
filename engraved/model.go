// Package engraved is the pure, immutable output data model (spec.md
// §3): pages -> systems -> staves + measures -> elements, with bounding
// boxes and z-layer hints. It is produced once per layout() call, fully
// materialized, and never mutated afterward (spec.md §3 Lifecycle).
package engraved

import (
	"score-engraver/collision"
	"score-engraver/orchestral"
)

// Rect is re-exported from collision so callers of this package never
// need to import collision just to read a bounding box.
type Rect = collision.Rect

// EngravedScore is the sole output of layout() (spec.md §6).
type EngravedScore struct {
	Pages     []Page
	Scaling   ScalingSummary
	Advisories []Advisory
}

// ScalingSummary carries the scaling context's parameters into the output
// tree so a downstream renderer never has to re-derive them.
type ScalingSummary struct {
	PointsPerStaffSpace float64
	TenthsPerStaffSpace float64
}

// Page is one numbered page.
type Page struct {
	Number  int
	Frame   Rect
	Credits []TextLabel
	Systems []System
}

// System is one horizontal line of music across all instruments.
type System struct {
	Frame          Rect
	Staves         []Staff
	Measures       []Measure
	SystemBarlines []orchestral.SystemBarline
	Groupings      []orchestral.Grouping
	Labels         []TextLabel
	MeasureRange   [2]int // [start, end) measure indices into the part's measure list
}

// Staff is one staff line's resolved geometry within a system.
type Staff struct {
	PartIndex    int
	StaffNumber  int
	Frame        Rect
	CenterLineY  float64
	LineCount    int
	StaffHeight  float64
}

// Measure is one measure's resolved geometry, with elements grouped by
// staff.
type Measure struct {
	Number          int
	Frame           Rect
	LeftBarlineX    float64
	RightBarlineX   float64
	ElementsByStaff map[int][]Element
	BeamGroups      []BeamGroup
}

// ElementKind tags the Element variant.
type ElementKind int

const (
	ElementNote ElementKind = iota
	ElementChord
	ElementRest
	ElementClef
	ElementKeySignature
	ElementTimeSignature
	ElementBarline
	ElementDirection
)

// ZLayer is a rendering-order hint; a downstream renderer draws lower
// layers first.
type ZLayer int

const (
	ZLayerStaffLines ZLayer = iota
	ZLayerBeamsStems
	ZLayerNoteheads
	ZLayerAccidentals
	ZLayerArticulations
	ZLayerText
	ZLayerCurves
)

// Element is a tagged variant (closed set, spec.md §3): note, chord,
// rest, clef, keySignature, timeSignature, barline, direction. Expressed
// as one struct with a Kind discriminant and typed child geometry fields,
// mirroring score.MeasureElement's own tagged-union shape.
type Element struct {
	Kind   ElementKind
	Bounds Rect
	Layer  ZLayer

	Note          *NoteGeometry
	Chord         *ChordGeometry
	Rest          *RestGeometry
	Clef          *ClefGeometry
	KeySignature  *KeySignatureGeometry
	TimeSignature *TimeSignatureGeometry
	Barline       *BarlineGeometry
	Direction     *DirectionGeometry
}

// Point is a 2D point in points (the final, physical coordinate space).
type Point struct{ X, Y float64 }

// StemGeometry is a stem's resolved endpoints.
type StemGeometry struct {
	Start, End Point
	Up         bool
}

// NoteGeometry is one note's absolute placement.
type NoteGeometry struct {
	NoteheadPosition Point
	GlyphName        string
	Stem             *StemGeometry
	DotPositions     []Point
	AccidentalGlyph   string
	AccidentalPosition Point
	HasAccidental     bool
	LedgerLines       []LedgerLine
	ArticulationPositions []Point
}

// LedgerLine is one short horizontal segment extending the staff.
type LedgerLine struct {
	Y          float64
	Left, Right float64
}

// ChordGeometry groups the note geometries of simultaneous tones sharing
// one stem.
type ChordGeometry struct {
	Notes []NoteGeometry
	Stem  *StemGeometry
}

// RestGeometry is a rest glyph's absolute placement.
type RestGeometry struct {
	Position  Point
	GlyphName string
}

// ClefGeometry is a clef glyph's absolute placement.
type ClefGeometry struct {
	Position  Point
	GlyphName string
}

// KeySignatureGeometry is a key signature's accidental glyph run.
type KeySignatureGeometry struct {
	AccidentalPositions []Point
	AccidentalGlyphs    []string
}

// TimeSignatureGeometry is a time signature's numeral pair.
type TimeSignatureGeometry struct {
	NumeratorPosition, DenominatorPosition Point
	NumeratorText, DenominatorText         string
}

// BarlineGeometry is a barline's vertical segment(s), possibly more than
// one when it is part of a system-spanning connection (spec.md §4.5).
type BarlineGeometry struct {
	X            float64
	Segments     []orchestral.Segment
}

// DirectionGeometry is a text/dynamic direction's resolved anchor.
type DirectionGeometry struct {
	Position Point
	Text     string
}

// BeamGroup is a set of consecutive notes joined by one or more beams at
// their stem ends (spec.md §3).
type BeamGroup struct {
	PrimaryStart, PrimaryEnd Point
	Thickness                float64
	Slope                    float64
	StemsUp                  bool
	Secondary                []SecondaryBeam
}

// SecondaryBeam is a beam segment at a level above the primary beam,
// attaching only to the in-range stems it spans.
type SecondaryBeam struct {
	Start, End Point
	Level      int
}

// TextLabel is a page credit or group-name label, left/center/right
// aligned (spec.md §1 Non-goals: no internationalized shaping beyond
// this).
type TextLabel struct {
	Position Point
	Text     string
	Align    TextAlign
}

// TextAlign is left, center, or right alignment of a short label.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// AdvisoryKind tags a class-2 layout advisory (spec.md §7).
type AdvisoryKind int

const (
	AdvisoryOverWideMeasure AdvisoryKind = iota
	AdvisoryUnresolvedCollision
	AdvisoryBreakHintConflict
)

// Advisory is a non-fatal annotation attached to the offending engraved
// element; layout proceeds with the best available approximation.
type Advisory struct {
	Kind          AdvisoryKind
	PageNumber    int
	MeasureNumber int
	Message       string
}
