// Package glyphmetrics defines the read-only provider interface the core
// consumes for glyph geometry, injected at construction the way the
// teacher's display package takes a PlayerController interface rather
// than reaching for a process-wide singleton (spec.md §9).
package glyphmetrics

import "score-engraver/units"

// AnchorKind names a point on a glyph, relative to its origin, in staff
// spaces.
type AnchorKind int

const (
	AnchorStemUpSE AnchorKind = iota
	AnchorStemDownNW
	AnchorStemUpNW
	AnchorStemDownSW
	AnchorOpticalCenter
	AnchorNoteheadOrigin
	AnchorCutOutNE
	AnchorCutOutNW
	AnchorCutOutSE
	AnchorCutOutSW
	AnchorNumeralTop
	AnchorNumeralBottom
)

// Point is a 2D point in staff spaces.
type Point struct {
	X, Y units.StaffSpace
}

// BoundingBox is the southwest/northeast corners of a glyph's bounding
// box in staff spaces, relative to its origin.
type BoundingBox struct {
	SW, NE Point
}

// Width returns the box's horizontal extent.
func (b BoundingBox) Width() units.StaffSpace {
	return b.NE.X - b.SW.X
}

// Height returns the box's vertical extent.
func (b BoundingBox) Height() units.StaffSpace {
	return b.NE.Y - b.SW.Y
}

// Provider is the read-only glyph metrics interface the core consumes. It
// is safe to call concurrently (spec.md §5 shared-resource policy).
type Provider interface {
	BoundingBox(glyphName string) BoundingBox
	AdvanceWidth(glyphName string) units.StaffSpace
	Anchor(glyphName string, kind AnchorKind) (Point, bool)
}

// DefaultBoxSize is the configured default rectangle substituted when a
// glyph's metrics are missing (spec.md §7: "a missing glyph metric falls
// back to a configured default rectangle of one staff space").
const DefaultBoxSize units.StaffSpace = 1

// Fallback wraps a Provider and substitutes a DefaultBoxSize-sized box for
// any glyph whose box the inner provider reports as empty, and a
// DefaultBoxSize advance width when there is no inner provider, instead
// of propagating a missing-metric failure.
type Fallback struct {
	Inner Provider
}

// BoundingBox returns the inner provider's box, or a one-staff-space
// default box if the inner provider is nil or reports an empty box.
func (f Fallback) BoundingBox(glyphName string) BoundingBox {
	if f.Inner != nil {
		box := f.Inner.BoundingBox(glyphName)
		if box.NE != box.SW {
			return box
		}
	}
	return BoundingBox{
		SW: Point{X: 0, Y: 0},
		NE: Point{X: DefaultBoxSize, Y: DefaultBoxSize},
	}
}

// AdvanceWidth returns the inner provider's advance width, or the
// fallback box's width if the inner provider is nil.
func (f Fallback) AdvanceWidth(glyphName string) units.StaffSpace {
	if f.Inner != nil {
		return f.Inner.AdvanceWidth(glyphName)
	}
	return DefaultBoxSize
}

// Anchor returns the inner provider's anchor, or (zero point, false) when
// the inner provider is nil or doesn't know the glyph.
func (f Fallback) Anchor(glyphName string, kind AnchorKind) (Point, bool) {
	if f.Inner != nil {
		return f.Inner.Anchor(glyphName, kind)
	}
	return Point{}, false
}
