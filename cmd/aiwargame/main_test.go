package main

import (
	"strings"
	"testing"

	"aiwargame/internal/coord"
	"aiwargame/internal/game"
)

func TestParseCoordPairAcceptsLooseSyntax(t *testing.T) {
	cases := []string{"A5 B6", "(A,5);(B,6)", "A5,B6", "[A 5] [B 6]"}
	want := coord.NewPair(coord.New(0, 5), coord.New(1, 6))
	for _, in := range cases {
		got, ok := parseCoordPair(in)
		if !ok {
			t.Fatalf("parseCoordPair(%q) failed to match", in)
		}
		if got != want {
			t.Fatalf("parseCoordPair(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestParseCoordPairLowercaseRowIsShiftedBy26(t *testing.T) {
	got, ok := parseCoordPair("a0 b1")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.From.Row != 26 || got.To.Row != 27 {
		t.Fatalf("lowercase rows must map to 26-51, got %+v", got)
	}
}

func TestParseCoordPairRejectsGarbage(t *testing.T) {
	if _, ok := parseCoordPair("not a move"); ok {
		t.Fatal("garbage input must not parse")
	}
}

func TestParsePlayModeAcceptsAliases(t *testing.T) {
	for _, in := range []string{"attack", "attacker"} {
		m, err := parsePlayMode(in)
		if err != nil || m != playAttacker {
			t.Fatalf("parsePlayMode(%q) = %v, %v; want playAttacker", in, m, err)
		}
	}
	if _, err := parsePlayMode("nonsense"); err == nil {
		t.Fatal("unknown play mode must error")
	}
}

func TestRenderBoardShowsBothHomeCorners(t *testing.T) {
	s := game.New(8, game.DefaultRules())
	out := renderBoard(s)
	if len(out) == 0 {
		t.Fatal("renderBoard must not be empty")
	}
	if !strings.Contains(out, "dA9") || !strings.Contains(out, "aA9") {
		t.Fatalf("renderBoard must show both AIs in their home corners:\n%s", out)
	}
}

func TestHeuristicsForKnownPresets(t *testing.T) {
	for _, preset := range []string{"e1", "e2", "e3e4"} {
		if _, err := heuristicsFor(preset); err != nil {
			t.Fatalf("preset %q must be recognized: %v", preset, err)
		}
	}
	if _, err := heuristicsFor("nope"); err == nil {
		t.Fatal("unknown preset must error")
	}
}
