package board

import (
	"testing"

	"aiwargame/internal/coord"
	"aiwargame/internal/unit"
)

func TestSetGetRemove(t *testing.T) {
	b := New(5)
	c := coord.New(2, 2)
	if !b.Get(c).Empty() {
		t.Fatal("new board should be empty")
	}
	b.Set(c, NewCell(Attacker, unit.New(unit.Virus)))
	cell := b.Get(c)
	if !cell.Occupied() || cell.Owner != Attacker || cell.Unit.Kind != unit.Virus {
		t.Fatalf("unexpected cell after Set: %+v", cell)
	}
	b.Remove(c)
	if !b.Get(c).Empty() {
		t.Fatal("cell should be empty after Remove")
	}
}

func TestGetTwoMutRejectsInvalidPairs(t *testing.T) {
	b := New(5)
	a := coord.New(0, 0)
	c := coord.New(0, 1)
	b.Set(a, NewCell(Attacker, unit.New(unit.Program)))

	if _, _, ok := b.GetTwoMut(a, a); ok {
		t.Error("GetTwoMut should reject a==b")
	}
	if _, _, ok := b.GetTwoMut(a, c); ok {
		t.Error("GetTwoMut should reject an empty target")
	}
	b.Set(c, NewCell(Defender, unit.New(unit.Firewall)))
	ua, uc, ok := b.GetTwoMut(a, c)
	if !ok {
		t.Fatal("GetTwoMut should succeed for two occupied distinct cells")
	}
	ua.Health = 1
	uc.Health = 2
	if b.Get(a).Unit.Health != 1 || b.Get(c).Unit.Health != 2 {
		t.Fatal("GetTwoMut pointers should alias the board's storage")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(5)
	c := coord.New(1, 1)
	b.Set(c, NewCell(Attacker, unit.New(unit.Tech)))
	clone := b.Clone()
	clone.Remove(c)
	if b.Get(c).Empty() {
		t.Fatal("mutating the clone must not affect the original")
	}
}

func TestIterationIsRowMajor(t *testing.T) {
	b := New(4)
	b.Set(coord.New(0, 1), NewCell(Attacker, unit.New(unit.Program)))
	b.Set(coord.New(2, 0), NewCell(Defender, unit.New(unit.Program)))
	b.Set(coord.New(2, 3), NewCell(Attacker, unit.New(unit.Program)))

	var got []coord.Coord
	for c := range b.UnitCoords() {
		got = append(got, c)
	}
	want := []coord.Coord{coord.New(0, 1), coord.New(2, 0), coord.New(2, 3)}
	if len(got) != len(want) {
		t.Fatalf("got %d coords, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("coord %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPlayerFilters(t *testing.T) {
	b := New(4)
	b.Set(coord.New(0, 0), NewCell(Attacker, unit.New(unit.AI)))
	b.Set(coord.New(3, 3), NewCell(Defender, unit.New(unit.AI)))

	count := 0
	for range b.PlayerUnits(Attacker) {
		count++
	}
	if count != 1 {
		t.Fatalf("PlayerUnits(Attacker) yielded %d, want 1", count)
	}

	emptyCount := 0
	for range b.EmptyCoords() {
		emptyCount++
	}
	if emptyCount != 16-2 {
		t.Fatalf("EmptyCoords yielded %d, want %d", emptyCount, 16-2)
	}
}

func TestPlayerNextAndLetters(t *testing.T) {
	if Attacker.Next() != Defender || Defender.Next() != Attacker {
		t.Fatal("Next should alternate")
	}
	if Attacker.Letter() != 'a' || Defender.Letter() != 'd' {
		t.Fatal("unexpected player letters")
	}
}
