package heuristic

import (
	"testing"

	"aiwargame/internal/board"
	"aiwargame/internal/game"
)

func TestAlgebraCombinators(t *testing.T) {
	s := game.New(8, game.DefaultRules())
	a := ConstantValue(3)
	b := ConstantValue(4)

	if got := Add(a, b)(s, board.Attacker); got != 7 {
		t.Fatalf("Add = %d, want 7", got)
	}
	if got := Sub(a, b)(s, board.Attacker); got != -1 {
		t.Fatalf("Sub = %d, want -1", got)
	}
	if got := Neg(a)(s, board.Attacker); got != -3 {
		t.Fatalf("Neg = %d, want -3", got)
	}
	if got := Scale(a, 5)(s, board.Attacker); got != 15 {
		t.Fatalf("Scale = %d, want 15", got)
	}
	if got := Mul(a, b)(s, board.Attacker); got != 12 {
		t.Fatalf("Mul = %d, want 12", got)
	}
}

func TestUnitsScoreHealthWeightsBiasIsAntisymmetric(t *testing.T) {
	s := game.New(8, game.DefaultRules())
	h := UnitsScoreHealthWeightsBias(1, 1, 0, 1, DefaultUnitScore)
	attackerView := h(s, board.Attacker)
	defenderView := h(s, board.Defender)
	if attackerView != -defenderView {
		t.Fatalf("symmetric starting position must score as exact negatives: %d vs %d", attackerView, defenderView)
	}
}

func TestGameMovesIsPerspectiveIndependent(t *testing.T) {
	s := game.New(8, game.DefaultRules())
	s.TotalMoves = 7
	h := GameMoves()
	if h(s, board.Attacker) != 7 || h(s, board.Defender) != 7 {
		t.Fatal("game_moves must not depend on perspective")
	}
}

func TestDefaultHeuristicsWireAllFourSlots(t *testing.T) {
	h := DefaultHeuristics()
	s := game.New(8, game.DefaultRules())

	// attacker_max and defender_min must be the same underlying evaluator.
	if h.Slot(true, true)(s, board.Attacker) != h.Slot(false, false)(s, board.Attacker) {
		t.Fatal("attacker_max and defender_min must be set from the same attack heuristic")
	}
	if h.Slot(false, true)(s, board.Defender) != h.Slot(true, false)(s, board.Defender) {
		t.Fatal("defender_max and attacker_min must be set from the same defense heuristic")
	}
}

func TestLocalCombatSkipsUnengagedUnits(t *testing.T) {
	s := game.New(8, game.DefaultRules())
	// The opening position has no adjacent enemies (squads start in opposite
	// corners), so local_combat must contribute nothing either way.
	if got := LocalCombat()(s, board.Attacker); got != 0 {
		t.Fatalf("local_combat on the opening position = %d, want 0", got)
	}
}
