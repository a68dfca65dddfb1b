package coord

import "testing"

func TestIsInRangeIsExact(t *testing.T) {
	c := New(2, 2)
	cases := []struct {
		to   Coord
		r    int8
		want bool
	}{
		{New(2, 3), 1, true},
		{New(2, 4), 1, false},
		{New(3, 3), 1, false}, // diagonal, distance 2, not adjacent
		{New(3, 3), 2, true},
		{New(2, 2), 0, true},
	}
	for _, tc := range cases {
		if got := c.IsInRange(tc.to, tc.r); got != tc.want {
			t.Errorf("IsInRange(%v,%d) = %v, want %v", tc.to, tc.r, got, tc.want)
		}
	}
}

func TestNeighborsRowMajorSet(t *testing.T) {
	c := New(2, 2)
	want := map[Coord]bool{
		New(1, 2): true,
		New(2, 1): true,
		New(2, 3): true,
		New(3, 2): true,
	}
	got := map[Coord]bool{}
	for n := range c.Neighbors() {
		got[n] = true
	}
	if len(got) != len(want) {
		t.Fatalf("got %d neighbors, want %d", len(got), len(want))
	}
	for k := range want {
		if !got[k] {
			t.Errorf("missing neighbor %v", k)
		}
	}
}

func TestRectAroundInclusive(t *testing.T) {
	c := New(2, 2)
	p := c.RectAround(1)
	if p.From != New(1, 1) || p.To != New(3, 3) {
		t.Fatalf("RectAround(1) = %+v", p)
	}
	var coords []Coord
	for cc := range p.RectIter() {
		coords = append(coords, cc)
	}
	if len(coords) != 9 {
		t.Fatalf("RectIter yielded %d coords, want 9", len(coords))
	}
	if coords[0] != New(1, 1) || coords[len(coords)-1] != New(3, 3) {
		t.Fatalf("RectIter not row-major: first=%v last=%v", coords[0], coords[len(coords)-1])
	}
}

func TestRowColIterReversed(t *testing.T) {
	p := NewPair(New(3, 3), New(1, 1))
	var rows []int8
	for r := range p.RowIter() {
		rows = append(rows, r)
	}
	if len(rows) != 3 || rows[0] != 3 || rows[2] != 1 {
		t.Fatalf("RowIter reversed = %v", rows)
	}
}

func TestAddSubNeg(t *testing.T) {
	a := New(1, 2)
	b := New(3, -1)
	if got := a.Add(b); got != New(4, 1) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != New(-2, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Neg(); got != New(-1, -2) {
		t.Errorf("Neg = %v", got)
	}
}

func TestIsValid(t *testing.T) {
	if !New(0, 0).IsValid(5) {
		t.Error("(0,0) should be valid in dim=5")
	}
	if New(5, 0).IsValid(5) {
		t.Error("(5,0) should be invalid in dim=5")
	}
	if New(-1, 0).IsValid(5) {
		t.Error("(-1,0) should be invalid")
	}
}

func TestStringLetterRow(t *testing.T) {
	if got := New(0, 5).String(); got != "A5" {
		t.Errorf("String() = %q, want A5", got)
	}
	if got := New(26, 6).String(); got != "a6" {
		t.Errorf("String() = %q, want a6", got)
	}
}
