package units

import "testing"

func TestPointsPerStaffSpace(t *testing.T) {
	c := NewScalingContext(7.0, 28.0, 5)
	got := c.PointsPerStaffSpace()
	want := 28.0 / 4.0
	if got != want {
		t.Fatalf("PointsPerStaffSpace() = %v, want %v", got, want)
	}
}

func TestToPointsFromTenths(t *testing.T) {
	c := NewScalingContext(7.0, 28.0, 5)
	// 40 tenths = 1 staff space = 7 points here.
	got := c.ToPointsFromTenths(40)
	if got != Points(7.0) {
		t.Fatalf("ToPointsFromTenths(40) = %v, want 7", got)
	}
}

func TestRationalArithmetic(t *testing.T) {
	half := NewRational(1, 2)
	quarter := NewRational(1, 4)
	sum := half.Add(quarter)
	if !sum.Equal(NewRational(3, 4)) {
		t.Fatalf("1/2 + 1/4 = %v, want 3/4", sum)
	}
	if half.Cmp(quarter) <= 0 {
		t.Fatalf("1/2 should compare greater than 1/4")
	}
}

func TestDotMultiplier(t *testing.T) {
	cases := []struct {
		dots int
		want Rational
	}{
		{0, NewRational(1, 1)},
		{1, NewRational(3, 2)},
		{2, NewRational(7, 4)},
	}
	for _, c := range cases {
		if got := DotMultiplier(c.dots); !got.Equal(c.want) {
			t.Errorf("DotMultiplier(%d) = %v, want %v", c.dots, got, c.want)
		}
	}
}

func TestNoteValueMonotonic(t *testing.T) {
	quarter := NoteValue(Quarter, 0, NewRational(1, 1))
	half := NoteValue(Half, 0, NewRational(1, 1))
	whole := NoteValue(Whole, 0, NewRational(1, 1))
	if !(quarter.Less(half) && half.Less(whole)) {
		t.Fatalf("expected quarter < half < whole, got %v, %v, %v", quarter, half, whole)
	}
}

func TestTupletRatio(t *testing.T) {
	triplet := TupletRatio(3, 2)
	if !triplet.Equal(NewRational(2, 3)) {
		t.Fatalf("TupletRatio(3,2) = %v, want 2/3", triplet)
	}
}
