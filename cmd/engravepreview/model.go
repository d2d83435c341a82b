// Command engravepreview is a downstream terminal previewer over an
// EngravedScore: it never touches layout(), only reads the geometry tree
// and draws a coarse ASCII approximation of it, the way the teacher's
// display.TUIModel reads a parser.Track and drives a live terminal view
// with bubbletea/lipgloss rather than a GUI.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"score-engraver/config"
	"score-engraver/engraved"
	"score-engraver/layout"
	"score-engraver/score"
	"score-engraver/units"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	staffLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

// flatSystem pairs a system with the page it belongs to, so the viewer
// can scroll through every system in the score as one sequence.
type flatSystem struct {
	pageNumber  int
	systemIndex int
	systemCount int
	system      engraved.System
}

// previewModel is the Bubbletea model driving the scrollable preview.
type previewModel struct {
	systems []flatSystem
	cursor  int
	width   int
	height  int
	quitting bool
}

func newPreviewModel(sc engraved.EngravedScore) *previewModel {
	var flat []flatSystem
	for _, page := range sc.Pages {
		for i, sys := range page.Systems {
			flat = append(flat, flatSystem{
				pageNumber:  page.Number,
				systemIndex: i,
				systemCount: len(page.Systems),
				system:      sys,
			})
		}
	}
	return &previewModel{systems: flat, width: 100, height: 30}
}

func (m *previewModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "down", "j", " ":
			if m.cursor < len(m.systems)-1 {
				m.cursor++
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			m.cursor = m.nextPageStart()
		case "left", "h":
			m.cursor = m.prevPageStart()
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.cursor = len(m.systems) - 1
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *previewModel) nextPageStart() int {
	if len(m.systems) == 0 {
		return 0
	}
	page := m.systems[m.cursor].pageNumber
	for i := m.cursor + 1; i < len(m.systems); i++ {
		if m.systems[i].pageNumber != page {
			return i
		}
	}
	return m.cursor
}

func (m *previewModel) prevPageStart() int {
	if m.cursor == 0 {
		return 0
	}
	page := m.systems[m.cursor].pageNumber
	i := m.cursor - 1
	for i > 0 && m.systems[i].pageNumber == page {
		i--
	}
	target := m.systems[i].pageNumber
	for i > 0 && m.systems[i-1].pageNumber == target {
		i--
	}
	return i
}

func (m *previewModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.systems) == 0 {
		return "(empty score)\n"
	}

	cur := m.systems[m.cursor]
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("  Page %d", cur.pageNumber)))
	b.WriteString(headerStyle.Render(fmt.Sprintf("   system %d/%d   measures %d-%d",
		cur.systemIndex+1, cur.systemCount, cur.system.MeasureRange[0]+1, cur.system.MeasureRange[1])))
	b.WriteString("\n\n")
	b.WriteString(renderSystem(cur.system, m.width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  ↑/↓ system   ←/→ page   g/G first/last   q quit"))
	return b.String()
}

// renderSystem draws one staff line per staff, with noteheads, rests,
// and barlines placed at the terminal column their absolute x maps to.
func renderSystem(sys engraved.System, width int) string {
	cols := width - 4
	if cols < 20 {
		cols = 20
	}
	toCol := func(x float64) int {
		if sys.Frame.Width <= 0 {
			return 0
		}
		c := int((x - sys.Frame.X) / sys.Frame.Width * float64(cols))
		if c < 0 {
			c = 0
		}
		if c >= cols {
			c = cols - 1
		}
		return c
	}

	var b strings.Builder
	for _, staff := range sys.Staves {
		line := make([]rune, cols)
		for i := range line {
			line[i] = '-'
		}
		for _, m := range sys.Measures {
			for idx, elems := range m.ElementsByStaff {
				if idx != staffRefIndex(sys, staff) && idx != -1 {
					continue
				}
				for _, e := range elems {
					placeGlyph(line, toCol(glyphX(e)), e.Kind)
				}
			}
		}
		b.WriteString(staffLineStyle.Render(fmt.Sprintf("  %2d| ", staff.StaffNumber)))
		b.WriteString(string(line))
		b.WriteString("\n")
	}
	return b.String()
}

// staffRefIndex recovers the flat staff-list index a Staff value
// occupies within its system, matching the ordering layout.buildStaffInfos
// produces (system.Staves is built in that same order).
func staffRefIndex(sys engraved.System, staff engraved.Staff) int {
	for i, s := range sys.Staves {
		if s.PartIndex == staff.PartIndex && s.StaffNumber == staff.StaffNumber {
			return i
		}
	}
	return -1
}

func glyphX(e engraved.Element) float64 {
	switch e.Kind {
	case engraved.ElementNote:
		return e.Note.NoteheadPosition.X
	case engraved.ElementChord:
		if len(e.Chord.Notes) > 0 {
			return e.Chord.Notes[0].NoteheadPosition.X
		}
	case engraved.ElementRest:
		return e.Rest.Position.X
	case engraved.ElementClef:
		return e.Clef.Position.X
	case engraved.ElementKeySignature:
		if len(e.KeySignature.AccidentalPositions) > 0 {
			return e.KeySignature.AccidentalPositions[0].X
		}
	case engraved.ElementTimeSignature:
		return e.TimeSignature.NumeratorPosition.X
	case engraved.ElementBarline:
		return e.Barline.X
	case engraved.ElementDirection:
		return e.Direction.Position.X
	}
	return e.Bounds.X
}

func placeGlyph(line []rune, col int, kind engraved.ElementKind) {
	if col < 0 || col >= len(line) {
		return
	}
	var r rune
	switch kind {
	case engraved.ElementNote, engraved.ElementChord:
		r = '•' // •
	case engraved.ElementRest:
		r = 'z'
	case engraved.ElementClef:
		r = 'C'
	case engraved.ElementKeySignature:
		r = 'K'
	case engraved.ElementTimeSignature:
		r = 'T'
	case engraved.ElementBarline:
		r = '|'
	case engraved.ElementDirection:
		r = '>'
	default:
		r = '?'
	}
	line[col] = r
}

func main() {
	configPath := flag.String("config", "", "engraving configuration YAML file")
	flag.Parse()

	cfg := layout.DefaultConfig()
	ctx := layout.Context{
		PageSize:      layout.PageSize{Width: 612, Height: 792},
		Margins:       layout.Margins{Top: 72, Left: 72, Bottom: 72, Right: 72},
		StaffHeight:   32,
		LinesPerStaff: 5,
		FontName:      "Bravura",
	}
	if *configPath != "" {
		doc, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "engravepreview: loading config: %v\n", err)
			os.Exit(1)
		}
		ctx = doc.Context()
		cfg = doc.LayoutConfig()
	}

	sc := demoScore()
	out := layout.Layout(sc, ctx, cfg, nil)

	m := newPreviewModel(out)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "engravepreview: %v\n", err)
		os.Exit(1)
	}
}

// demoScore builds a small placeholder score so the previewer has
// something to show when run without a real score-ingestion
// collaborator wired in yet (score ingestion is out of scope per
// spec.md §1).
func demoScore() score.Score {
	clef := &score.Clef{Sign: score.ClefG, Line: 2}
	key := &score.KeySignature{Fifths: 0}
	timeSig := &score.TimeSignature{Beats: 4, BeatType: 4}
	attrs := &score.Attributes{Clef: clef, Key: key, Time: timeSig}

	note := func(pos int64, step score.DiatonicStep, octave int) score.MeasureElement {
		return score.MeasureElement{Kind: score.ElementNote, Note: &score.Note{
			Position: units.NewRational(pos, 1),
			Base:     units.Quarter,
			Staff:    1,
			Pitch:    score.Pitch{Step: step, Octave: octave},
			Stem:     score.StemUp,
			Notehead: score.NoteheadNormal,
		}}
	}

	measures := make([]score.Measure, 0, 8)
	measures = append(measures, score.Measure{Number: 1, Elements: []score.MeasureElement{
		{Kind: score.ElementAttributes, Attributes: attrs},
		note(0, score.StepC, 4),
		note(1, score.StepE, 4),
		note(2, score.StepG, 4),
		note(3, score.StepC, 5),
	}})
	steps := []score.DiatonicStep{score.StepD, score.StepE, score.StepF, score.StepG}
	for i := 2; i <= 8; i++ {
		var elems []score.MeasureElement
		for p, st := range steps {
			elems = append(elems, note(int64(p), st, 4))
		}
		measures = append(measures, score.Measure{Number: i, Elements: elems})
	}
	return score.Score{Parts: []score.Part{
		{Name: "Piano", Abbreviation: "Pno.", StaffCount: 1, Measures: measures},
	}}
}
