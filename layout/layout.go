package layout

import (
	"math"

	"score-engraver/breaking"
	"score-engraver/collision"
	"score-engraver/engraved"
	"score-engraver/glyphmetrics"
	"score-engraver/orchestral"
	"score-engraver/score"
	"score-engraver/spacing"
	"score-engraver/units"
	"score-engraver/vertical"
)

// systemBuild is one resolved system: its measure range, per-measure
// adjusted widths (after breaking.JustifyWidths), and staff placements
// relative to the system's own top (not yet shifted onto a page).
type systemBuild struct {
	partition      breaking.Partition
	adjustedWidths []float64
	placements     []vertical.Placement
	height         float64
}

// Layout runs the full pipeline of spec.md §2: per-measure horizontal
// spacing, system breaking and justification, vertical placement and
// clearance, orchestral grouping, element placement, and the collision
// passes, producing one immutable EngravedScore. metrics may be nil, in
// which case every glyph falls back to a default one-staff-space box
// (spec.md §7).
func Layout(sc score.Score, ctx Context, cfg Config, metrics glyphmetrics.Provider) engraved.EngravedScore {
	if len(sc.Parts) == 0 {
		return engraved.EngravedScore{}
	}
	measureCount := len(sc.Parts[0].Measures)
	for _, p := range sc.Parts {
		if len(p.Measures) != measureCount {
			panic("layout: parts do not share a common measure count")
		}
	}

	provider := glyphmetrics.Fallback{Inner: metrics}
	scaling := units.NewScalingContext(0, ctx.StaffHeight, ctx.LinesPerStaff)

	timelines := make([][]score.ClefSign, len(sc.Parts))
	perPartSpacing := make([][]measureSpacing, len(sc.Parts))
	for pi, p := range sc.Parts {
		timelines[pi] = clefTimeline(p)
		perPartSpacing[pi] = computePartMeasureSpacing(p, cfg.spacingConfig())
	}

	naturalWidths := naturalMeasureWidths(perPartSpacing)
	hints := gatherBreakHints(sc.Parts)

	capacity := ctx.SystemWidth()
	if cfg.SystemWidthOverride > 0 {
		capacity = cfg.SystemWidthOverride
	}

	var systemPartitions []breaking.Partition
	if measureCount > 0 {
		if cfg.UseDynamicProgramming {
			systemPartitions = breaking.DP(naturalWidths, capacity, cfg.breakingConfig(), hints)
		} else {
			systemPartitions = breaking.Greedy(naturalWidths, capacity, cfg.breakingConfig())
		}
	}

	staffInfos := buildStaffInfos(sc.Parts, ctx.StaffHeight)
	staffRefs := buildStaffRefs(sc.Parts)
	staffCounts, partNames, partAbbrevs := staffCountsAndNames(sc.Parts)

	var advisories []engraved.Advisory
	systems := make([]systemBuild, 0, len(systemPartitions))
	for _, part := range systemPartitions {
		widths := naturalWidths[part.Start:part.End]
		var adjusted []float64
		if part.IsFinal {
			adjusted = append([]float64(nil), widths...)
		} else {
			adjusted, _, _, _, _ = breaking.JustifyWidths(widths, capacity)
		}
		if part.Overflow {
			advisories = append(advisories, engraved.Advisory{
				Kind:          engraved.AdvisoryOverWideMeasure,
				MeasureNumber: sc.Parts[0].Measures[part.Start].Number,
				Message:       "system natural width exceeds the configured system width",
			})
		}

		extents := systemExtents(sc.Parts, staffInfos, timelines, part.Start, part.End)
		placements := vertical.PlaceStaves(staffInfos, 0, cfg.verticalConfig())
		placements = vertical.ResolveClearance(placements, extents, cfg.verticalConfig())
		height := 0.0
		if len(placements) > 0 {
			height = placements[len(placements)-1].Bottom - placements[0].Top
		}
		systems = append(systems, systemBuild{partition: part, adjustedWidths: adjusted, placements: placements, height: height})
	}

	pagePartitions := paginate(systems, ctx, cfg)

	var pages []engraved.Page
	for pageIdx, pagePart := range pagePartitions {
		heights := make([]float64, 0, pagePart.End-pagePart.Start)
		for i := pagePart.Start; i < pagePart.End; i++ {
			heights = append(heights, systems[i].height)
		}
		placements := vertical.PlaceSystems(heights, ctx.Margins.Top, cfg.verticalConfig())

		page := engraved.Page{
			Number: pageIdx + 1,
			Frame:  engraved.Rect{X: 0, Y: 0, Width: ctx.PageSize.Width, Height: ctx.PageSize.Height},
		}

		for li, si := range rangeIndices(pagePart.Start, pagePart.End) {
			sys := systems[si]
			sysTop := placements[li].Top
			page.Systems = append(page.Systems, buildSystem(
				sc, perPartSpacing, timelines, staffInfos, staffRefs,
				staffCounts, partNames, partAbbrevs,
				sys, sysTop, li == 0, ctx, cfg, scaling, provider,
			))
		}
		pages = append(pages, page)
	}

	return engraved.EngravedScore{
		Pages:   pages,
		Advisories: advisories,
		Scaling: engraved.ScalingSummary{
			PointsPerStaffSpace: scaling.PointsPerStaffSpace(),
			TenthsPerStaffSpace: scaling.TenthsPerStaffSpace,
		},
	}
}

// rangeIndices is a small helper producing [start, end) as a slice, so
// callers can pair a page-local index with the underlying system index.
func rangeIndices(start, end int) []int {
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

// paginate groups systems onto pages with breaking.Greedy (the DP
// partitioner is not used for pages), treating each system's height plus its
// inter-system gap as one "size" and the page's usable content height as
// capacity (spec.md §4.4 step 2, extended to full pages).
func paginate(systems []systemBuild, ctx Context, cfg Config) []breaking.Partition {
	if len(systems) == 0 {
		return nil
	}
	sizes := make([]float64, len(systems))
	for i, s := range systems {
		sizes[i] = s.height + cfg.SystemDistance
	}
	capacity := ctx.PageContentHeight() - cfg.TopSystemDistance
	pageCfg := breaking.Config{MinimumPerGroup: 1, MaximumPerGroup: len(systems)}
	return breaking.Greedy(sizes, capacity, pageCfg)
}

// buildSystem assembles one system's full geometry: orchestral grouping,
// barlines, labels, and every measure's placed elements.
func buildSystem(
	sc score.Score,
	perPartSpacing [][]measureSpacing,
	timelines [][]score.ClefSign,
	staffInfos []vertical.StaffInfo,
	staffRefs []orchestral.StaffRef,
	staffCounts []int, partNames, partAbbrevs []string,
	sys systemBuild, sysTop float64, isFirstOnPage bool,
	ctx Context, cfg Config, scaling units.ScalingContext, provider glyphmetrics.Provider,
) engraved.System {
	abs := make([]vertical.Placement, len(sys.placements))
	for i, p := range sys.placements {
		abs[i] = vertical.Placement{Top: p.Top + sysTop, Bottom: p.Bottom + sysTop, CenterLineY: p.CenterLineY + sysTop}
	}

	var staves []engraved.Staff
	for i, info := range staffInfos {
		staves = append(staves, engraved.Staff{
			PartIndex:   info.PartIndex,
			StaffNumber: info.StaffNumber,
			Frame:       engraved.Rect{X: ctx.Margins.Left, Y: abs[i].Top, Width: 0, Height: abs[i].Bottom - abs[i].Top},
			CenterLineY: abs[i].CenterLineY,
			LineCount:   ctx.LinesPerStaff,
			StaffHeight: ctx.StaffHeight,
		})
	}

	partGroups := orchestral.PartGroups(staffCounts, partNames, partAbbrevs, cfg.orchestralConfig())
	familyGroups := orchestral.FamilyGroups(staffRefs, cfg.orchestralConfig())

	staffTops := make([]float64, len(abs))
	staffBottoms := make([]float64, len(abs))
	for i, p := range abs {
		staffTops[i], staffBottoms[i] = p.Top, p.Bottom
	}

	var barlineSegments []orchestral.Segment
	for _, g := range partGroups {
		sb := orchestral.BuildSystemBarline(g, staffTops, staffBottoms)
		barlineSegments = append(barlineSegments, sb.Segments...)
	}

	var labels []engraved.TextLabel
	for _, g := range append(append([]orchestral.Grouping{}, partGroups...), familyGroups...) {
		lbl := orchestral.BuildLabel(g, isFirstOnPage, staffTops[g.TopStaffIndex], staffBottoms[g.BottomStaffIndex])
		labels = append(labels, engraved.TextLabel{
			Position: engraved.Point{X: ctx.Margins.Left + g.X, Y: lbl.Y},
			Text:     lbl.Text,
			Align:    engraved.AlignRight,
		})
	}

	system := engraved.System{
		Frame:          engraved.Rect{X: ctx.Margins.Left, Y: abs[0].Top, Width: ctx.SystemWidth(), Height: sys.height},
		Staves:         staves,
		SystemBarlines: []orchestral.SystemBarline{{Segments: barlineSegments}},
		Groupings:      append(partGroups, familyGroups...),
		Labels:         labels,
		MeasureRange:   [2]int{sys.partition.Start, sys.partition.End},
	}

	cursor := ctx.Margins.Left
	for offset, mi := range rangeIndices(sys.partition.Start, sys.partition.End) {
		width := sys.adjustedWidths[offset]
		m := buildMeasure(sc, perPartSpacing, timelines, staffInfos, mi, cursor, width, barlineSegments, abs, cfg, scaling, provider)
		system.Measures = append(system.Measures, m)
		cursor += width
	}
	return system
}

// buildMeasure places every part's elements for one measure: attribute
// glyphs at the leading edge, notes/chords/rests at their justified
// column x, directions relative to their staff, beam groups for runs of
// beamed notes, and the trailing barline.
func buildMeasure(
	sc score.Score,
	perPartSpacing [][]measureSpacing,
	timelines [][]score.ClefSign,
	staffInfos []vertical.StaffInfo,
	mi int, leftX, width float64,
	barlineSegmentsTemplate []orchestral.Segment,
	abs []vertical.Placement,
	cfg Config, scaling units.ScalingContext, provider glyphmetrics.Provider,
) engraved.Measure {
	measure := engraved.Measure{
		Number:          sc.Parts[0].Measures[mi].Number,
		Frame:           engraved.Rect{X: leftX, Y: 0, Width: width, Height: 0},
		LeftBarlineX:    leftX,
		RightBarlineX:   leftX + width,
		ElementsByStaff: make(map[int][]engraved.Element),
	}

	for pi, part := range sc.Parts {
		count := part.StaffCount
		if count < 1 {
			count = 1
		}
		ms := part.Measures[mi]
		ps := perPartSpacing[pi][mi]
		justified := spacingColumnsJustify(ps, width, cfg)

		centerYFor := func(staffNum int) float64 {
			idx := staffIndexOf(staffInfos, pi, staffNum)
			return abs[idx].CenterLineY
		}
		boundsFor := func(staffNum int) (top, bottom float64) {
			idx := staffIndexOf(staffInfos, pi, staffNum)
			return abs[idx].Top, abs[idx].Bottom
		}
		clefFor := func(staffNum int) score.ClefSign {
			return clefForStaff(timelines[pi], mi, staffNum, count)
		}

		placeAttributes(&measure, staffInfos, pi, count, ms, leftX, justified.leadingX, centerYFor, clefFor, scaling)
		placeNotesRestsDirections(&measure, staffInfos, pi, ms, leftX, justified, centerYFor, boundsFor, clefFor, scaling, provider, cfg)
	}

	segments := make([]orchestral.Segment, len(barlineSegmentsTemplate))
	copy(segments, barlineSegmentsTemplate)
	barlineEl := buildBarlineElement(measure.RightBarlineX, segments)
	// -1 is not a staff index; it's the sentinel key for elements that
	// span the whole system rather than belonging to one staff.
	measure.ElementsByStaff[-1] = append(measure.ElementsByStaff[-1], barlineEl)

	return measure
}

// justifiedColumns pairs each part-measure's resolved column positions
// (absolute within-measure, leading offset preserved) with a lookup by
// rhythmic position.
type justifiedColumns struct {
	byPosition map[string]float64
	leadingX   float64
}

func spacingColumnsJustify(ps measureSpacing, targetWidth float64, cfg Config) justifiedColumns {
	result := spacing.Justify(ps.result.Columns, ps.result.NaturalWidth, targetWidth, cfg.spacingConfig())
	out := justifiedColumns{byPosition: make(map[string]float64, len(ps.result.Columns))}
	for i, c := range ps.result.Columns {
		if i < len(result.AdjustedX) {
			out.byPosition[c.Position.String()] = result.AdjustedX[i]
		}
	}
	if len(result.AdjustedX) > 0 {
		out.leadingX = result.AdjustedX[0]
	}
	return out
}

func (j justifiedColumns) xFor(pos units.Rational) float64 {
	if x, ok := j.byPosition[pos.String()]; ok {
		return x
	}
	return j.leadingX
}

func placeAttributes(
	measure *engraved.Measure, staffInfos []vertical.StaffInfo, pi, staffCount int,
	ms score.Measure, leftX, leadingX float64,
	centerYFor func(int) float64, clefFor func(int) score.ClefSign, scaling units.ScalingContext,
) {
	pointsPerSpace := scaling.PointsPerStaffSpace()
	x := leftX + leadingX
	for _, el := range ms.Elements {
		if el.Kind != score.ElementAttributes {
			continue
		}
		a := el.Attributes
		for s := 1; s <= staffCount; s++ {
			idx := staffIndexOf(staffInfos, pi, s)
			centerY := centerYFor(s)
			if a.Clef != nil {
				measure.ElementsByStaff[idx] = append(measure.ElementsByStaff[idx], buildClefElement(clefFor(s), x, centerY))
			}
			if a.Key != nil {
				measure.ElementsByStaff[idx] = append(measure.ElementsByStaff[idx], buildKeySignatureElement(*a.Key, x, centerY, pointsPerSpace))
			}
			if a.Time != nil {
				measure.ElementsByStaff[idx] = append(measure.ElementsByStaff[idx], buildTimeSignatureElement(*a.Time, x, centerY, pointsPerSpace))
			}
		}
	}
}

func placeNotesRestsDirections(
	measure *engraved.Measure, staffInfos []vertical.StaffInfo, pi int,
	ms score.Measure, leftX float64, justified justifiedColumns,
	centerYFor func(int) float64, boundsFor func(int) (float64, float64), clefFor func(int) score.ClefSign,
	scaling units.ScalingContext, provider glyphmetrics.Provider, cfg Config,
) {
	var pendingNotes []score.Note
	var pendingStaff int
	flush := func() {
		if len(pendingNotes) == 0 {
			return
		}
		staffNum := pendingStaff
		if staffNum < 1 {
			staffNum = 1
		}
		idx := staffIndexOf(staffInfos, pi, staffNum)
		x := leftX + justified.xFor(pendingNotes[0].Position)
		el := buildChordElement(pendingNotes, noteGeometryInputs{
			x: x, centerY: centerYFor(staffNum), clef: clefFor(staffNum),
			scaling: scaling, metrics: provider, defaultStemLen: 3.5,
		}, cfg.AccidentalNoteheadGap)
		measure.ElementsByStaff[idx] = append(measure.ElementsByStaff[idx], el)
		pendingNotes = nil
	}

	for _, el := range ms.Elements {
		switch el.Kind {
		case score.ElementNote:
			if el.Note.IsChordTone && len(pendingNotes) > 0 {
				pendingNotes = append(pendingNotes, *el.Note)
				continue
			}
			flush()
			pendingNotes = []score.Note{*el.Note}
			pendingStaff = el.Note.Staff
		case score.ElementRest:
			flush()
			staffNum := el.Rest.Staff
			if staffNum < 1 {
				staffNum = 1
			}
			idx := staffIndexOf(staffInfos, pi, staffNum)
			x := leftX + justified.xFor(el.Rest.Position)
			measure.ElementsByStaff[idx] = append(measure.ElementsByStaff[idx], buildRestElement(*el.Rest, x, centerYFor(staffNum)))
		case score.ElementDirection:
			flush()
			staffNum := el.Direction.Staff
			if staffNum < 1 {
				staffNum = 1
			}
			idx := staffIndexOf(staffInfos, pi, staffNum)
			top, bottom := boundsFor(staffNum)
			measure.ElementsByStaff[idx] = append(measure.ElementsByStaff[idx], buildDirectionElement(*el.Direction, leftX+justified.leadingX, top, bottom))
		}
	}
	flush()

	buildBeamGroups(measure, staffInfos, pi, ms, leftX, justified, centerYFor, clefFor, scaling, provider, cfg)
}

// buildChordElement builds either a single-note element or, for more than
// one simultaneous tone, a chord element with stacked accidentals.
func buildChordElement(notes []score.Note, in noteGeometryInputs, gap float64) engraved.Element {
	if len(notes) == 1 {
		return buildNoteElement(notes[0], in)
	}
	built := make([]engraved.Element, len(notes))
	for i, n := range notes {
		built[i] = buildNoteElement(n, in)
	}
	noteheadWidth := in.glyphWidthPoints(noteheadGlyph(notes[0].Notehead))
	stackChordAccidentals(built, noteheadWidth, gap, in.scaling.PointsPerStaffSpace())

	bounds := built[0].Bounds
	var stem *engraved.StemGeometry
	geoms := make([]engraved.NoteGeometry, len(built))
	for i, e := range built {
		geoms[i] = *e.Note
		bounds = bounds.Union(e.Bounds)
		if stem == nil && e.Note.Stem != nil {
			stem = e.Note.Stem
		}
	}
	return engraved.Element{Kind: engraved.ElementChord, Bounds: bounds, Layer: engraved.ZLayerNoteheads, Chord: &engraved.ChordGeometry{Notes: geoms, Stem: stem}}
}

// buildBeamGroups scans a part's lead notes (non-chord-tones) in measure
// order and groups runs sharing a nonzero primary beam role into one
// BeamGroup each, nudged clear of intervening noteheads via
// collision.BeamDisplacement (spec.md §4.6).
func buildBeamGroups(
	measure *engraved.Measure, staffInfos []vertical.StaffInfo, pi int,
	ms score.Measure, leftX float64, justified justifiedColumns,
	centerYFor func(int) float64, clefFor func(int) score.ClefSign,
	scaling units.ScalingContext, provider glyphmetrics.Provider, cfg Config,
) {
	type runNote struct {
		x, y       float64
		stemUp     bool
		roles      []score.BeamRole
	}
	var run []runNote
	flushRun := func() {
		if len(run) < 2 {
			run = nil
			return
		}
		var noteheads []collision.Rect
		for _, n := range run {
			noteheads = append(noteheads, collision.Rect{X: n.x - 1, Y: n.y - 0.5, Width: 2, Height: 1})
		}
		stemsUp := run[0].stemUp
		thickness := cfg.StemWidth * 4
		first, last := run[0], run[len(run)-1]
		beamRect := collision.Rect{X: first.x, Y: math.Min(first.y, last.y), Width: last.x - first.x, Height: thickness}
		displacement := collision.BeamDisplacement(beamRect, noteheads, stemsUp, cfg.BeamClearance)
		dir := 1.0
		if stemsUp {
			dir = -1
		}
		startY := first.y + dir*displacement
		endY := last.y + dir*displacement
		bg := engraved.BeamGroup{
			PrimaryStart: engraved.Point{X: first.x, Y: startY},
			PrimaryEnd:   engraved.Point{X: last.x, Y: endY},
			Thickness:    thickness,
			Slope:        (endY - startY) / math.Max(1, last.x-first.x),
			StemsUp:      stemsUp,
		}
		maxLevel := 0
		for _, n := range run {
			if len(n.roles) > maxLevel {
				maxLevel = len(n.roles)
			}
		}
		for level := 1; level < maxLevel; level++ {
			start := -1
			for i, n := range run {
				present := level < len(n.roles) && n.roles[level] != score.BeamNone
				if present && start == -1 {
					start = i
				}
				if (!present || i == len(run)-1) && start != -1 {
					end := i
					if present {
						end = i
					} else {
						end = i - 1
					}
					if end > start {
						bg.Secondary = append(bg.Secondary, engraved.SecondaryBeam{
							Start: engraved.Point{X: run[start].x, Y: run[start].y + dir*displacement + dir*float64(level)*thickness*1.8},
							End:   engraved.Point{X: run[end].x, Y: run[end].y + dir*displacement + dir*float64(level)*thickness*1.8},
							Level: level,
						})
					}
					start = -1
				}
			}
		}
		measure.BeamGroups = append(measure.BeamGroups, bg)
		run = nil
	}

	for _, el := range ms.Elements {
		if el.Kind != score.ElementNote || el.Note.IsChordTone {
			if el.Kind == score.ElementRest {
				flushRun()
			}
			continue
		}
		n := el.Note
		if len(n.BeamRoles) == 0 || n.BeamRoles[0] == score.BeamNone {
			flushRun()
			continue
		}
		staffNum := n.Staff
		if staffNum < 1 {
			staffNum = 1
		}
		x := leftX + justified.xFor(n.Position)
		offset := pitchOffsetStaffSpaces(n.Pitch, clefFor(staffNum))
		y := centerYFor(staffNum) - offset*scaling.PointsPerStaffSpace()
		run = append(run, runNote{x: x, y: y, stemUp: n.Stem == score.StemUp, roles: n.BeamRoles})
		if n.BeamRoles[0] == score.BeamEnd {
			flushRun()
		}
	}
	flushRun()
}
