package orchestral

import "testing"

func TestGrandStaffGrouping(t *testing.T) {
	groups := PartGroups([]int{2}, []string{"Piano"}, []string{"Pno."}, Config{BracketOffset: -10})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.Symbol != SymbolBrace {
		t.Fatalf("expected brace, got %v", g.Symbol)
	}
	if g.Connection != ConnectionConnected {
		t.Fatalf("expected connected barline, got %v", g.Connection)
	}
	if g.TopStaffIndex != 0 || g.BottomStaffIndex != 1 {
		t.Fatalf("expected staves [0,1], got [%d,%d]", g.TopStaffIndex, g.BottomStaffIndex)
	}
}

func TestSingleStaffPartHasNoBracket(t *testing.T) {
	groups := PartGroups([]int{1}, []string{"Flute"}, []string{"Fl."}, Config{})
	if groups[0].Symbol != SymbolNone {
		t.Fatalf("expected no bracket for single-staff part, got %v", groups[0].Symbol)
	}
}

func TestFamilyInferenceAmbiguousBassPrefersVoices(t *testing.T) {
	if got := InferFamily("Bass"); got != FamilyVoices {
		t.Fatalf("InferFamily(\"Bass\") = %v, want FamilyVoices (precedence order)", got)
	}
}

func TestFamilyInferenceWoodwinds(t *testing.T) {
	if got := InferFamily("Clarinet in Bb"); got != FamilyWoodwinds {
		t.Fatalf("InferFamily(clarinet) = %v, want FamilyWoodwinds", got)
	}
}

func TestFamilyGroupsRequireTwoMembers(t *testing.T) {
	staves := []StaffRef{
		{PartName: "Flute"},
		{PartName: "Oboe"},
		{PartName: "Violin"},
	}
	groups := FamilyGroups(staves, Config{FamilyBracketOffset: -20})
	if len(groups) != 1 {
		t.Fatalf("expected 1 family group (woodwinds pair), got %d: %+v", len(groups), groups)
	}
	if groups[0].TopStaffIndex != 0 || groups[0].BottomStaffIndex != 1 {
		t.Fatalf("expected woodwind group over staves [0,1], got [%d,%d]", groups[0].TopStaffIndex, groups[0].BottomStaffIndex)
	}
}

func TestBuildSystemBarlineConnected(t *testing.T) {
	g := Grouping{Connection: ConnectionConnected, TopStaffIndex: 0, BottomStaffIndex: 1}
	tops := []float64{0, 30}
	bottoms := []float64{20, 50}
	sb := BuildSystemBarline(g, tops, bottoms)
	// 2 staff-box segments + 1 connecting segment between them.
	if len(sb.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(sb.Segments))
	}
}

func TestBuildSystemBarlineMensurstrich(t *testing.T) {
	g := Grouping{Connection: ConnectionMensurstrich, TopStaffIndex: 0, BottomStaffIndex: 1}
	tops := []float64{0, 30}
	bottoms := []float64{20, 50}
	sb := BuildSystemBarline(g, tops, bottoms)
	if len(sb.Segments) != 1 {
		t.Fatalf("expected only the between-staff segment, got %d", len(sb.Segments))
	}
	if sb.Segments[0].TopY != 20 || sb.Segments[0].BottomY != 30 {
		t.Fatalf("expected gap segment [20,30], got %+v", sb.Segments[0])
	}
}

func TestBuildLabelFirstSystemUsesFullName(t *testing.T) {
	g := Grouping{FullName: "Violin I", Abbreviation: "Vln. I"}
	label := BuildLabel(g, true, 0, 20)
	if label.Text != "Violin I" {
		t.Fatalf("expected full name on first system, got %q", label.Text)
	}
}

func TestBuildLabelSubsequentSystemUsesAbbreviation(t *testing.T) {
	g := Grouping{FullName: "Violin I", Abbreviation: "Vln. I"}
	label := BuildLabel(g, false, 0, 20)
	if label.Text != "Vln. I" {
		t.Fatalf("expected abbreviation on subsequent system, got %q", label.Text)
	}
}

func TestBuildLabelFallsBackToFullNameWhenNoAbbreviation(t *testing.T) {
	g := Grouping{FullName: "Violin I"}
	label := BuildLabel(g, false, 0, 20)
	if label.Text != "Violin I" {
		t.Fatalf("expected fallback to full name, got %q", label.Text)
	}
}
