package unit

import "testing"

func TestDamageTableMatchesSpec(t *testing.T) {
	cases := []struct {
		src, tgt Kind
		want     Health
	}{
		{AI, AI, 3}, {AI, Virus, 3}, {AI, Tech, 3}, {AI, Firewall, 1}, {AI, Program, 3},
		{Virus, AI, 9}, {Virus, Virus, 1}, {Virus, Tech, 6}, {Virus, Firewall, 1}, {Virus, Program, 6},
		{Tech, AI, 1}, {Tech, Virus, 6}, {Tech, Tech, 1}, {Tech, Firewall, 1}, {Tech, Program, 1},
		{Firewall, AI, 1}, {Firewall, Virus, 1}, {Firewall, Tech, 1}, {Firewall, Firewall, 1}, {Firewall, Program, 1},
		{Program, AI, 3}, {Program, Virus, 3}, {Program, Tech, 3}, {Program, Firewall, 1}, {Program, Program, 3},
	}
	for _, c := range cases {
		if got := Damage(c.src, c.tgt); got != c.want {
			t.Errorf("Damage(%v,%v) = %d, want %d", c.src, c.tgt, got, c.want)
		}
	}
}

func TestRepairTableMatchesSpec(t *testing.T) {
	cases := []struct {
		src, tgt Kind
		want     Health
	}{
		{Tech, AI, 3}, {Tech, Firewall, 3}, {Tech, Program, 3}, {Tech, Virus, 0}, {Tech, Tech, 0},
		{AI, Virus, 1}, {AI, Tech, 1}, {AI, AI, 0}, {AI, Firewall, 0}, {AI, Program, 0},
		{Virus, AI, 0}, {Firewall, AI, 0}, {Program, AI, 0},
	}
	for _, c := range cases {
		if got := Repair(c.src, c.tgt); got != c.want {
			t.Errorf("Repair(%v,%v) = %d, want %d", c.src, c.tgt, got, c.want)
		}
	}
}

func TestMovementTraits(t *testing.T) {
	for _, k := range []Kind{Virus, Tech} {
		if !k.CanMoveBack() || !k.CanMoveWhileEngaged() {
			t.Errorf("%v should permit backward/engaged movement", k)
		}
	}
	for _, k := range []Kind{AI, Firewall, Program} {
		if k.CanMoveBack() || k.CanMoveWhileEngaged() {
			t.Errorf("%v should not permit backward/engaged movement", k)
		}
	}
}

func TestSaturatingArithmetic(t *testing.T) {
	u := New(Program) // health 9
	dead := u.ApplyDamage(20)
	if dead.Health != 0 {
		t.Fatalf("ApplyDamage overkill = %d, want 0", dead.Health)
	}
	full := u.ApplyRepair(5)
	if full.Health != InitialHealth {
		t.Fatalf("ApplyRepair above cap = %d, want %d", full.Health, InitialHealth)
	}
	if !full.IsFullHealth() {
		t.Fatal("expected full health")
	}
	if !dead.IsDead() {
		t.Fatal("expected dead unit")
	}
}
