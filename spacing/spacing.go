// Package spacing implements the Horizontal Spacing Engine (spec.md
// §4.2): per measure, from ordered rhythmic events, compute column
// x-positions and the measure's natural width, then justify that width
// against a target. The duration-gap-to-spacing math mirrors the
// tick-accumulation style of the teacher's midi/rhythm.go (walking a
// cursor forward by the duration of each event and accumulating ticks),
// generalized from MIDI ticks to exact Rational quarter-note positions.
package spacing

import (
	"math"
	"sort"

	"score-engraver/units"
)

// ElementType tags what kind of rhythmic event a spacing element is.
type ElementType int

const (
	ElementTypeNote ElementType = iota
	ElementTypeRest
	ElementTypeAttribute
	ElementTypeGrace
	ElementTypeChordTone
)

// SpacingElement is one rhythmic event within a measure: a rhythmic
// position (in quarter notes) and a type tag.
type SpacingElement struct {
	Position units.Rational
	Type     ElementType
}

// Config bundles the tunables named in spec.md §6.
type Config struct {
	QuarterNoteSpacing  float64 // base spacing of a quarter note
	SpacingExponent     float64 // exponent in (0, 1]
	MinimumNoteSpacing  float64
	MaximumNoteSpacing  float64
	ClefWidth           float64
	KeySignatureWidth   float64
	TimeSignatureWidth  float64
	TrailingPad         float64
	RightBarlineWidth   float64
	MinimumCompressionRatio float64
}

// LeadingAttributes describes which start-of-measure attribute glyphs are
// present, each reserving its configured width.
type LeadingAttributes struct {
	HasClef          bool
	HasKeySignature  bool
	HasTimeSignature bool
}

// LeadingOffset returns the sum of the reserved widths for whichever
// attributes are present.
func (c Config) LeadingOffset(a LeadingAttributes) float64 {
	offset := 0.0
	if a.HasClef {
		offset += c.ClefWidth
	}
	if a.HasKeySignature {
		offset += c.KeySignatureWidth
	}
	if a.HasTimeSignature {
		offset += c.TimeSignatureWidth
	}
	return offset
}

// Column is the set of elements sharing one rhythmic position, resolved
// to an absolute x.
type Column struct {
	Position units.Rational
	X        float64
}

// Result is the output of ComputeColumns: the resolved columns, in
// increasing rhythmic-position order, and the measure's natural width.
type Result struct {
	Columns      []Column
	NaturalWidth float64
}

// ComputeColumns implements the "ideal spacing" algorithm of spec.md
// §4.2: collapse same-position elements into columns, compute each
// column's ideal spacing from the previous column as
// base * duration_gap^exponent clamped to [min, max], and accumulate.
//
// Empty input returns an empty column list with width equal to the
// leading offset (spec.md §4.2 error modes). Duplicate rhythmic positions
// collapse into one column (idempotent merge).
func ComputeColumns(elements []SpacingElement, cfg Config, leading LeadingAttributes) Result {
	leadingOffset := cfg.LeadingOffset(leading)
	if len(elements) == 0 {
		return Result{Columns: nil, NaturalWidth: leadingOffset}
	}

	positions := collapsePositions(elements)

	columns := make([]Column, len(positions))
	cumulative := leadingOffset
	for i, pos := range positions {
		if i == 0 {
			columns[i] = Column{Position: pos, X: leadingOffset}
			continue
		}
		gap := pos.Sub(positions[i-1])
		spacing := idealSpacing(gap, cfg)
		cumulative += spacing
		columns[i] = Column{Position: pos, X: cumulative}
	}

	natural := cumulative + cfg.TrailingPad + cfg.RightBarlineWidth
	if len(columns) == 1 {
		natural = leadingOffset + cfg.TrailingPad + cfg.RightBarlineWidth
	}
	return Result{Columns: columns, NaturalWidth: natural}
}

// collapsePositions sorts and deduplicates rhythmic positions, merging
// chord tones and simultaneous voices that share a position into one
// column.
func collapsePositions(elements []SpacingElement) []units.Rational {
	seen := make([]units.Rational, 0, len(elements))
	for _, e := range elements {
		seen = append(seen, e.Position)
	}
	sort.Slice(seen, func(i, j int) bool { return seen[i].Less(seen[j]) })

	out := seen[:0:0]
	for i, p := range seen {
		if i == 0 || !p.Equal(seen[i-1]) {
			out = append(out, p)
		}
	}
	return out
}

// idealSpacing is spacing_i = base * duration_gap_i^exponent, clamped to
// [minimumNoteSpacing, maximumNoteSpacing] (Gourlay/Ross-style sub-linear
// growth, spec.md §4.2 step 2-3).
func idealSpacing(gap units.Rational, cfg Config) float64 {
	g := gap.Float64()
	if g <= 0 {
		g = 0
	}
	exponent := cfg.SpacingExponent
	if exponent <= 0 {
		exponent = 1
	}
	spacing := cfg.QuarterNoteSpacing * math.Pow(g, exponent)
	if cfg.MinimumNoteSpacing > 0 && spacing < cfg.MinimumNoteSpacing {
		spacing = cfg.MinimumNoteSpacing
	}
	if cfg.MaximumNoteSpacing > 0 && spacing > cfg.MaximumNoteSpacing {
		spacing = cfg.MaximumNoteSpacing
	}
	return spacing
}

// JustifyResult is the outcome of Justify: the per-column adjusted
// x-positions, the stretch ratio applied, and derived flags.
type JustifyResult struct {
	AdjustedX     []float64
	TotalWidth    float64
	StretchRatio  float64
	IsStretched   bool
	IsCompressed  bool
	IsUnchanged   bool
}

// Justify scales the gaps within a measure so the total width equals
// target, per spec.md §4.2. The leading attribute block (the first
// column's x) is preserved unchanged; surplus or deficit is distributed
// proportionally across the remaining gaps. If target < natural and
// compression would fall below cfg.MinimumCompressionRatio, the natural
// widths are returned unchanged instead.
func Justify(columns []Column, naturalWidth, target float64, cfg Config) JustifyResult {
	if len(columns) == 0 {
		return JustifyResult{TotalWidth: target, StretchRatio: 1, IsUnchanged: true}
	}
	leading := columns[0].X
	span := naturalWidth - leading
	adjusted := make([]float64, len(columns))
	adjusted[0] = leading

	if span <= 0 || naturalWidth == target {
		for i, c := range columns {
			adjusted[i] = c.X
		}
		return JustifyResult{AdjustedX: adjusted, TotalWidth: naturalWidth, StretchRatio: 1, IsUnchanged: true}
	}

	ratio := (target - leading) / span
	if ratio < 1 {
		minRatio := cfg.MinimumCompressionRatio
		if minRatio > 0 && ratio < minRatio {
			for i, c := range columns {
				adjusted[i] = c.X
			}
			return JustifyResult{AdjustedX: adjusted, TotalWidth: naturalWidth, StretchRatio: 1, IsUnchanged: true}
		}
	}

	for i := 1; i < len(columns); i++ {
		adjusted[i] = leading + (columns[i].X-leading)*ratio
	}

	return JustifyResult{
		AdjustedX:    adjusted,
		TotalWidth:   target,
		StretchRatio: ratio,
		IsStretched:  ratio > 1,
		IsCompressed: ratio < 1,
		IsUnchanged:  ratio == 1,
	}
}

// InterpolateX linearly interpolates, in rhythmic-position space, the x
// of a position p that falls between two known columns. p before the
// first column returns the first column's x; p after the last returns
// the last column's x.
func InterpolateX(columns []Column, p units.Rational) float64 {
	if len(columns) == 0 {
		return 0
	}
	if p.Cmp(columns[0].Position) <= 0 {
		return columns[0].X
	}
	last := columns[len(columns)-1]
	if p.Cmp(last.Position) >= 0 {
		return last.X
	}
	for i := 1; i < len(columns); i++ {
		if p.Cmp(columns[i].Position) <= 0 {
			prev := columns[i-1]
			cur := columns[i]
			span := cur.Position.Sub(prev.Position)
			if span.IsZero() {
				return prev.X
			}
			frac := p.Sub(prev.Position).Float64() / span.Float64()
			return prev.X + frac*(cur.X-prev.X)
		}
	}
	return last.X
}
