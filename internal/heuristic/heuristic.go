// Package heuristic implements the composable scoring algebra the search
// engine evaluates leaves with: a value-typed function of (state,
// perspective) that can be combined by addition, subtraction, negation,
// scaling, and pointwise product, plus the four-slot evaluator the search
// selects from by (perspective side, maximizing/minimizing).
package heuristic

import (
	"math/rand"

	"aiwargame/internal/board"
	"aiwargame/internal/coord"
	"aiwargame/internal/game"
	"aiwargame/internal/unit"
)

// Score is the heuristic value type, matching the i32 range the search's
// leaf-score sentinels (math.MaxInt32 - total_moves, etc.) are drawn from.
type Score = int32

// Heuristic scores a state from one player's point of view. It is a plain
// function value, so it is trivially shareable across concurrent search
// workers: nothing about evaluating a heuristic mutates it.
type Heuristic func(s *game.State, perspective board.Player) Score

// Add returns a heuristic that sums a and b pointwise.
func Add(a, b Heuristic) Heuristic {
	return func(s *game.State, p board.Player) Score { return a(s, p) + b(s, p) }
}

// Sub returns a heuristic that subtracts b from a pointwise.
func Sub(a, b Heuristic) Heuristic {
	return func(s *game.State, p board.Player) Score { return a(s, p) - b(s, p) }
}

// Neg returns the pointwise negation of a.
func Neg(a Heuristic) Heuristic {
	return func(s *game.State, p board.Player) Score { return -a(s, p) }
}

// Scale returns a heuristic that multiplies a's value by a constant factor.
func Scale(a Heuristic, factor Score) Heuristic {
	return func(s *game.State, p board.Player) Score { return factor * a(s, p) }
}

// Mul returns the pointwise product of a and b.
func Mul(a, b Heuristic) Heuristic {
	return func(s *game.State, p board.Player) Score { return a(s, p) * b(s, p) }
}

// ScoreFn maps a unit kind to its base material value.
type ScoreFn func(unit.Kind) Score

// DefaultUnitScore is the base material value table used by the built-in
// defaults. Not specified upstream; the AI is weighted well above the rest
// since its loss ends the game outright, and Firewall lowest since it can
// neither move freely nor repair anything.
func DefaultUnitScore(k unit.Kind) Score {
	switch k {
	case unit.AI:
		return 100
	case unit.Firewall:
		return 10
	default:
		return 30
	}
}

// UnitsScoreHealthWeightsBias sums, over every occupied cell, signed
// score_fn(kind)*(bias + wH*health): +weightFriend for perspective's own
// units, -weightOpponent for the other side's.
func UnitsScoreHealthWeightsBias(weightFriend, weightOpponent, bias, wH Score, scoreFn ScoreFn) Heuristic {
	return func(s *game.State, perspective board.Player) Score {
		var total Score
		for cell := range s.Board.Units() {
			base := scoreFn(cell.Unit.Kind) * (bias + wH*Score(cell.Unit.Health))
			if cell.Owner == perspective {
				total += weightFriend * base
			} else {
				total -= weightOpponent * base
			}
		}
		return total
	}
}

// GameMoves returns the total number of moves played so far, independent
// of perspective. Combined with a negative scale it prefers faster wins
// and slower losses.
func GameMoves() Heuristic {
	return func(s *game.State, _ board.Player) Score { return Score(s.TotalMoves) }
}

// ConstantValue always returns v.
func ConstantValue(v Score) Heuristic {
	return func(_ *game.State, _ board.Player) Score { return v }
}

// RandomValue returns a uniformly distributed value in [lo, hi] on every
// call. This is the one heuristic primitive that is not pure, and using it
// forfeits the search's bit-for-bit determinism guarantee.
func RandomValue(lo, hi Score) Heuristic {
	return func(_ *game.State, _ board.Player) Score {
		if hi <= lo {
			return lo
		}
		return lo + Score(rand.Int63n(int64(hi-lo+1)))
	}
}

// AIDistance rewards threatening the opponent's AI and penalizes the
// opponent threatening perspective's own AI. For every ordered pair of
// occupied cells (from, to) on opposite sides where "to" holds an AI and
// "from" is neither an AI nor a Tech (the two kinds that cannot damage an
// AI meaningfully in this formulation mirrors the original), the pair
// contributes damage(from->to) / Manhattan_distance(from,to), weighted by
// weightFriend when perspective holds the attacking unit and
// -weightOpponent when the opponent does.
func AIDistance(weightFriend, weightOpponent Score) Heuristic {
	return func(s *game.State, perspective board.Player) Score {
		var total Score
		for from := range s.Board.UnitCoords() {
			fromCell := s.Board.Get(from)
			if fromCell.Unit.Kind == unit.AI || fromCell.Unit.Kind == unit.Tech {
				continue
			}
			for to := range s.Board.UnitCoords() {
				if from == to {
					continue
				}
				toCell := s.Board.Get(to)
				if toCell.Unit.Kind != unit.AI || toCell.Owner == fromCell.Owner {
					continue
				}
				dmg := unit.Damage(fromCell.Unit.Kind, toCell.Unit.Kind)
				if dmg <= 0 {
					continue
				}
				dist := Score(manhattan(from.Row, from.Col, to.Row, to.Col))
				if dist == 0 {
					continue
				}
				contribution := Score(dmg) / dist
				if fromCell.Owner == perspective {
					total += weightFriend * contribution
				} else {
					total -= weightOpponent * contribution
				}
			}
		}
		return total
	}
}

func manhattan(r0, c0, r1, c1 int8) int {
	return int(abs8(r0-r1)) + int(abs8(c0-c1))
}

func abs8(v int8) int8 {
	if v < 0 {
		return -v
	}
	return v
}

// LocalCombat credits a unit's kind score, signed by allegiance, whenever
// it would outlast every one of its enemy 4-neighbors: for each enemy
// neighbor it compares rounds-to-kill them against rounds-to-be-killed,
// rounding up: ceil(target_health / damage). A side that cannot damage a
// neighbor at all never outlasts it (infinite rounds-to-kill). Units with
// no enemy neighbors contribute nothing; they are not "in local combat".
func LocalCombat() Heuristic {
	return func(s *game.State, perspective board.Player) Score {
		var total Score
		for c := range s.Board.UnitCoords() {
			cell := s.Board.Get(c)
			enemies := enemyNeighbors(s, c, cell.Owner)
			if len(enemies) == 0 {
				continue
			}
			if outlastsAll(cell.Unit, enemies) {
				score := DefaultUnitScore(cell.Unit.Kind)
				if cell.Owner == perspective {
					total += score
				} else {
					total -= score
				}
			}
		}
		return total
	}
}

func enemyNeighbors(s *game.State, c coord.Coord, owner board.Player) []unit.Unit {
	var out []unit.Unit
	for n := range c.Neighbors() {
		if !s.Board.InBounds(n) {
			continue
		}
		nc := s.Board.Get(n)
		if nc.Occupied() && nc.Owner != owner {
			out = append(out, nc.Unit)
		}
	}
	return out
}

func outlastsAll(u unit.Unit, enemies []unit.Unit) bool {
	for _, e := range enemies {
		roundsToKillEnemy := roundsToKill(u.Kind, e.Kind, e.Health)
		roundsToDie := roundsToKill(e.Kind, u.Kind, u.Health)
		if roundsToKillEnemy > roundsToDie {
			return false
		}
	}
	return true
}

func roundsToKill(attacker, defender unit.Kind, defenderHealth unit.Health) int {
	dmg := unit.Damage(attacker, defender)
	if dmg <= 0 {
		return 1<<31 - 1
	}
	rounds := int(defenderHealth) / int(dmg)
	if int(defenderHealth)%int(dmg) != 0 {
		rounds++
	}
	if rounds == 0 {
		rounds = 1
	}
	return rounds
}

// Heuristics bundles the four evaluator slots the search selects from by
// (perspective_is_attacker, is_maximizing).
type Heuristics struct {
	AttackerMax Heuristic
	AttackerMin Heuristic
	DefenderMax Heuristic
	DefenderMin Heuristic
}

// Slot selects the evaluator for the given perspective side and search
// polarity.
func (h *Heuristics) Slot(perspectiveIsAttacker, maximizing bool) Heuristic {
	switch {
	case perspectiveIsAttacker && maximizing:
		return h.AttackerMax
	case perspectiveIsAttacker && !maximizing:
		return h.AttackerMin
	case !perspectiveIsAttacker && maximizing:
		return h.DefenderMax
	default:
		return h.DefenderMin
	}
}

// SetAttackHeuristics installs h as both the attacking side's maximizing
// evaluator and the defending side's minimizing evaluator, mirroring the
// symmetric role a single "how good is this for the attacker" function
// plays at both polarities.
func (h *Heuristics) SetAttackHeuristics(he Heuristic) {
	h.AttackerMax = he
	h.DefenderMin = he
}

// SetDefenseHeuristics is SetAttackHeuristics' mirror for the defending
// side.
func (h *Heuristics) SetDefenseHeuristics(he Heuristic) {
	h.DefenderMax = he
	h.AttackerMin = he
}

// DefaultAttacker is the out-of-the-box attacking evaluator:
// material*10 + local_combat*5 + ai_distance(5,1) - game_moves*10.
func DefaultAttacker() Heuristic {
	material := UnitsScoreHealthWeightsBias(1, 1, 50, 1, DefaultUnitScore)
	return Sub(
		Add(
			Add(Scale(material, 10), Scale(LocalCombat(), 5)),
			AIDistance(5, 1),
		),
		Scale(GameMoves(), 10),
	)
}

// DefaultDefender is the out-of-the-box defending evaluator: pure material
// with a smaller health bias than the attacker's.
func DefaultDefender() Heuristic {
	return UnitsScoreHealthWeightsBias(1, 1, 10, 1, DefaultUnitScore)
}

// DefaultHeuristics wires DefaultAttacker/DefaultDefender into all four
// slots the way set_attack_heuristics/set_defense_heuristics do upstream.
func DefaultHeuristics() *Heuristics {
	h := &Heuristics{}
	h.SetAttackHeuristics(DefaultAttacker())
	h.SetDefenseHeuristics(DefaultDefender())
	return h
}
