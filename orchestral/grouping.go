package orchestral

// GroupSymbol names the visual connector drawn to the left of a staff
// group.
type GroupSymbol int

const (
	SymbolNone GroupSymbol = iota
	SymbolBrace
	SymbolBracket
	SymbolLine
	SymbolSquare
)

// BarlineConnection is how barlines connect across a group's staves.
type BarlineConnection int

const (
	ConnectionNone BarlineConnection = iota
	ConnectionConnected   // a single line through all staves
	ConnectionMensurstrich // lines only in the gaps between staves
)

// StaffRef identifies one staff within a system's flat staff list.
type StaffRef struct {
	PartIndex   int
	StaffNumber int
	Family      string // explicit family override from score.Part.Family; "" triggers inference
	PartName    string
}

// Grouping is one emitted group: a brace/bracket/line/square connecting
// staves [TopStaffIndex, BottomStaffIndex] (inclusive, indices into the
// system's flat staff list) at a given x offset.
type Grouping struct {
	Symbol          GroupSymbol
	Connection      BarlineConnection
	TopStaffIndex   int
	BottomStaffIndex int
	X               float64
	FullName        string
	Abbreviation    string
}

// Config bundles the bracket-geometry tunables of spec.md §6.
type Config struct {
	BracketOffset       float64 // negative = left of system origin
	FamilyBracketOffset float64 // further left than BracketOffset
	BracketThickness    float64
	BraceThickness      float64
}

// PartGroups builds one group per part: parts with StaffCount >= 2 form a
// brace group with a connected barline; single-staff parts form a
// symbol-less self-group (spec.md §4.5). staffCounts and names/abbrevs
// are parallel, one entry per part; staffCounts sums to the system's
// total staff count.
func PartGroups(staffCounts []int, names, abbreviations []string, cfg Config) []Grouping {
	var groups []Grouping
	staffIndex := 0
	for i, count := range staffCounts {
		top := staffIndex
		bottom := staffIndex + count - 1
		symbol := SymbolNone
		connection := ConnectionNone
		if count >= 2 {
			symbol = SymbolBrace
			connection = ConnectionConnected
		}
		groups = append(groups, Grouping{
			Symbol:           symbol,
			Connection:       connection,
			TopStaffIndex:    top,
			BottomStaffIndex: bottom,
			X:                cfg.BracketOffset,
			FullName:         names[i],
			Abbreviation:     abbreviations[i],
		})
		staffIndex += count
	}
	return groups
}

// FamilyGroups computes square-bracket groups for consecutive staves
// sharing a family (explicit StaffRef.Family, or inferred from PartName
// when empty), drawn further left than part brackets via
// cfg.FamilyBracketOffset. A family run needs >= 2 member staves to
// qualify (spec.md §4.5).
func FamilyGroups(staves []StaffRef, cfg Config) []Grouping {
	if len(staves) == 0 {
		return nil
	}
	families := make([]Family, len(staves))
	for i, s := range staves {
		if s.Family != "" {
			families[i] = familyFromName(s.Family)
		} else {
			families[i] = InferFamily(s.PartName)
		}
	}

	var groups []Grouping
	i := 0
	for i < len(families) {
		j := i
		for j < len(families) && families[j] == families[i] {
			j++
		}
		if j-i >= 2 {
			groups = append(groups, Grouping{
				Symbol:           SymbolSquare,
				Connection:       ConnectionNone,
				TopStaffIndex:    i,
				BottomStaffIndex: j - 1,
				X:                cfg.FamilyBracketOffset,
				FullName:         FamilyName(families[i]),
			})
		}
		i = j
	}
	return groups
}

func familyFromName(name string) Family {
	switch name {
	case "voices":
		return FamilyVoices
	case "keyboards":
		return FamilyKeyboards
	case "percussion":
		return FamilyPercussion
	case "woodwinds":
		return FamilyWoodwinds
	case "brass":
		return FamilyBrass
	case "strings":
		return FamilyStrings
	default:
		return FamilyOther
	}
}
