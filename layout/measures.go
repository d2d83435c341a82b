package layout

import (
	"score-engraver/breaking"
	"score-engraver/score"
	"score-engraver/spacing"
	"score-engraver/units"
)

// measureSpacing is one part's resolved spacing within one measure: the
// column x-positions for every rhythmic event, keyed by position, plus
// which leading attributes reserved room at the start of the measure.
type measureSpacing struct {
	result  spacing.Result
	leading spacing.LeadingAttributes
}

// columnX looks up the resolved x-position for a rhythmic position,
// falling back to the leading offset (the first column, or 0 if the
// measure has none) for events sharing the measure's start.
func (m measureSpacing) columnX(pos units.Rational) float64 {
	for _, c := range m.result.Columns {
		if c.Position.Equal(pos) {
			return c.X
		}
	}
	if len(m.result.Columns) > 0 {
		return m.result.Columns[0].X
	}
	return 0
}

// computePartMeasureSpacing walks one part's measures, producing one
// measureSpacing per measure via spacing.ComputeColumns (spec.md §4.2).
func computePartMeasureSpacing(part score.Part, cfg spacing.Config) []measureSpacing {
	out := make([]measureSpacing, len(part.Measures))
	for mi, measure := range part.Measures {
		var elems []spacing.SpacingElement
		leading := spacing.LeadingAttributes{}
		for _, el := range measure.Elements {
			switch el.Kind {
			case score.ElementNote:
				if el.Note.IsChordTone {
					continue
				}
				elems = append(elems, spacing.SpacingElement{Position: el.Note.Position, Type: spacing.ElementTypeNote})
			case score.ElementRest:
				elems = append(elems, spacing.SpacingElement{Position: el.Rest.Position, Type: spacing.ElementTypeRest})
			case score.ElementAttributes:
				if el.Attributes.Clef != nil {
					leading.HasClef = true
				}
				if el.Attributes.Key != nil {
					leading.HasKeySignature = true
				}
				if el.Attributes.Time != nil {
					leading.HasTimeSignature = true
				}
			}
		}
		out[mi] = measureSpacing{
			result:  spacing.ComputeColumns(elems, cfg, leading),
			leading: leading,
		}
	}
	return out
}

// naturalMeasureWidths returns, per measure index, the widest natural
// width any part needs (spec.md §4.3: all parts share one measure width
// so barlines align across the system).
func naturalMeasureWidths(perPart [][]measureSpacing) []float64 {
	if len(perPart) == 0 {
		return nil
	}
	n := len(perPart[0])
	widths := make([]float64, n)
	for _, part := range perPart {
		for i := 0; i < n && i < len(part); i++ {
			if w := part[i].result.NaturalWidth; w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// gatherBreakHints merges every part's PrintHint elements into one hint
// list keyed by measure index: a forbidden or required hint from any part
// takes precedence over a merely preferred one from another, matching
// spec.md §4.3's conservative union of caller guidance across parts.
func gatherBreakHints(parts []score.Part) []breaking.Hint {
	kindByIndex := make(map[int]breaking.HintKind)
	rank := func(k breaking.HintKind) int {
		switch k {
		case breaking.HintForbidden:
			return 3
		case breaking.HintRequired:
			return 2
		case breaking.HintPreferred:
			return 1
		default:
			return 0
		}
	}
	for _, part := range parts {
		for mi, measure := range part.Measures {
			for _, el := range measure.Elements {
				if el.Kind != score.ElementPrintHint {
					continue
				}
				h := el.PrintHint
				kind := breaking.HintNone
				switch {
				case h.NewPage, h.NewSystem, h.BreakHint == score.BreakHintRequired:
					kind = breaking.HintRequired
				case h.BreakHint == score.BreakHintPreferred:
					kind = breaking.HintPreferred
				case h.BreakHint == score.BreakHintForbidden:
					kind = breaking.HintForbidden
				}
				if kind == breaking.HintNone {
					continue
				}
				if rank(kind) > rank(kindByIndex[mi]) {
					kindByIndex[mi] = kind
				}
			}
		}
	}
	hints := make([]breaking.Hint, 0, len(kindByIndex))
	for idx, kind := range kindByIndex {
		hints = append(hints, breaking.Hint{Index: idx + 1, Kind: kind})
	}
	return hints
}
