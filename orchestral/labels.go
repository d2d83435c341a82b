package orchestral

// Label is a group-name text record, centered at the group's vertical
// midline.
type Label struct {
	Text    string
	Y       float64
	StaffTop, StaffBottom float64
}

// BuildLabel emits a group's label: the full name on the first system of
// a page, the abbreviation (falling back to the full name if absent) on
// subsequent systems (spec.md §4.5).
func BuildLabel(g Grouping, isFirstSystemOnPage bool, groupTopY, groupBottomY float64) Label {
	text := g.Abbreviation
	if isFirstSystemOnPage || text == "" {
		text = g.FullName
	}
	return Label{
		Text:         text,
		Y:            (groupTopY + groupBottomY) / 2,
		StaffTop:     groupTopY,
		StaffBottom:  groupBottomY,
	}
}
