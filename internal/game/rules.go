package game

import (
	"aiwargame/internal/board"
	"aiwargame/internal/coord"
	"aiwargame/internal/unit"
)

// IsValidPosition reports whether c lies on the board.
func (s *State) IsValidPosition(c coord.Coord) bool {
	return s.Board.InBounds(c)
}

// AreInRange reports whether from and to are both valid positions and
// their Manhattan distance is exactly r (see coord.Coord.IsInRange: this
// is distance-equals, not distance-at-most).
func (s *State) AreInRange(from, to coord.Coord, r int8) bool {
	return s.IsValidPosition(from) && s.IsValidPosition(to) && from.IsInRange(to, r)
}

// actionRangeOK is the "range<=1" gate action derivation starts from: it
// accepts adjacency (distance 1) and the unit's own square (distance 0,
// the self-destruct case), unlike AreInRange which tests exact distance.
func (s *State) actionRangeOK(from, to coord.Coord) bool {
	if !s.IsValidPosition(from) || !s.IsValidPosition(to) {
		return false
	}
	return from == to || from.IsInRange(to, 1)
}

// IsEngaged reports whether the unit at c has at least one enemy among its
// 4-neighbors.
func (s *State) IsEngaged(c coord.Coord) bool {
	cell := s.Board.Get(c)
	if !cell.Occupied() {
		return false
	}
	for n := range c.Neighbors() {
		if !s.Board.InBounds(n) {
			continue
		}
		nc := s.Board.Get(n)
		if nc.Occupied() && nc.Owner != cell.Owner {
			return true
		}
	}
	return false
}

// IsFullHealth reports whether the unit at c is at its kind's initial
// health.
func (s *State) IsFullHealth(c coord.Coord) bool {
	cell := s.Board.Get(c)
	return cell.Occupied() && cell.Unit.IsFullHealth()
}

// IsMovingForward reports whether moving from "from" to "to" is forward
// for the current player. Preserved exactly as specified: for Attacker,
// from.Row > to.Row OR from.Col > to.Col; for Defender, each comparison is
// sign-flipped rather than the whole expression negated, so moving
// sideways on the secondary axis still counts as forward. This asymmetry
// is intentional; see the design notes before "fixing" it.
func (s *State) IsMovingForward(from, to coord.Coord) bool {
	if s.Player == board.Attacker {
		return from.Row > to.Row || from.Col > to.Col
	}
	return from.Row < to.Row || from.Col < to.Col
}

// IsValidMove reports whether moving the current player's unit from "from"
// to "to" is legal: adjacency, an empty destination, ownership of the
// source, the engagement rule, and (if enabled) the forward-only rule.
func (s *State) IsValidMove(from, to coord.Coord) bool {
	if !s.AreInRange(from, to, 1) {
		return false
	}
	if !s.Board.Get(to).Empty() {
		return false
	}
	srcCell := s.Board.Get(from)
	if !srcCell.Occupied() || srcCell.Owner != s.Player {
		return false
	}

	engaged := s.IsEngaged(from)
	engagementOK := srcCell.Unit.Kind.CanMoveWhileEngaged() ||
		!engaged ||
		(s.Rules.MoveWhileEngagedFullHealth && s.IsFullHealth(from))
	if !engagementOK {
		return false
	}

	if s.Rules.MoveOnlyForward {
		if !srcCell.Unit.Kind.CanMoveBack() && !s.IsMovingForward(from, to) {
			return false
		}
	}
	return true
}

// ActionFromCoords derives the action implied by acting from "from" on
// "to": SelfDestruct if they're equal, Move if the move is legal, Attack
// if "to" holds an enemy unit this source can damage, Repair if "to" holds
// a friendly unit this source can repair and that isn't already full.
// Otherwise it fails with a kind-specific error.
func (s *State) ActionFromCoords(from, to coord.Coord) (Action, error) {
	if !s.actionRangeOK(from, to) {
		return Action{}, ErrOutOfRange
	}
	srcCell := s.Board.Get(from)
	if !srcCell.Occupied() {
		return Action{}, ErrEmptySource
	}
	if srcCell.Owner != s.Player {
		return Action{}, ErrNotYourUnit
	}

	if from == to {
		return Action{Kind: SelfDestruct, From: from, To: to}, nil
	}
	if s.IsValidMove(from, to) {
		return Action{Kind: Move, From: from, To: to}, nil
	}

	tgtCell := s.Board.Get(to)
	if !tgtCell.Occupied() {
		return Action{}, ErrIllegalMove
	}
	if tgtCell.Owner != srcCell.Owner {
		if unit.Damage(srcCell.Unit.Kind, tgtCell.Unit.Kind) > 0 {
			return Action{Kind: Attack, From: from, To: to}, nil
		}
		return Action{}, ErrCannotDamage
	}
	if unit.Repair(srcCell.Unit.Kind, tgtCell.Unit.Kind) > 0 && !s.IsFullHealth(to) {
		return Action{Kind: Repair, From: from, To: to}, nil
	}
	return Action{}, ErrCannotRepair
}

// Execute applies a's mutation to the board and returns its outcome. It
// does not advance the turn; callers that want the full turn contract use
// PlayTurnFromAction.
func (s *State) Execute(a Action) (Outcome, error) {
	switch a.Kind {
	case Pass:
		return Outcome{Kind: Pass}, nil
	case Move:
		return s.executeMove(a)
	case Attack:
		return s.executeAttack(a)
	case Repair:
		return s.executeRepair(a)
	case SelfDestruct:
		return s.executeSelfDestruct(a)
	default:
		return Outcome{}, ErrInvalidAction
	}
}

func (s *State) executeMove(a Action) (Outcome, error) {
	if !s.IsValidMove(a.From, a.To) {
		return Outcome{}, ErrIllegalMove
	}
	cell := s.Board.Get(a.From)
	s.Board.Remove(a.From)
	s.Board.Set(a.To, cell)
	return Outcome{Kind: Move, Delta: a.To.Sub(a.From)}, nil
}

func (s *State) executeAttack(a Action) (Outcome, error) {
	srcCell := s.Board.Get(a.From)
	tgtCell := s.Board.Get(a.To)
	if !srcCell.Occupied() || !tgtCell.Occupied() || srcCell.Owner == tgtCell.Owner {
		return Outcome{}, ErrInvalidAction
	}
	dmgToTarget := unit.Damage(srcCell.Unit.Kind, tgtCell.Unit.Kind)
	if dmgToTarget <= 0 {
		return Outcome{}, ErrCannotDamage
	}
	var dmgToSource unit.Health
	if s.Rules.MutualDamage {
		dmgToSource = unit.Damage(tgtCell.Unit.Kind, srcCell.Unit.Kind)
	}

	srcU, tgtU, ok := s.Board.GetTwoMut(a.From, a.To)
	if !ok {
		return Outcome{}, ErrInvalidAction
	}
	*tgtU = tgtU.ApplyDamage(dmgToTarget)
	*srcU = srcU.ApplyDamage(dmgToSource)

	s.removeDeadAt(a.To)
	s.removeDeadAt(a.From)

	return Outcome{Kind: Attack, ToSource: dmgToSource, ToTarget: dmgToTarget}, nil
}

func (s *State) executeRepair(a Action) (Outcome, error) {
	srcCell := s.Board.Get(a.From)
	tgtCell := s.Board.Get(a.To)
	if !srcCell.Occupied() || !tgtCell.Occupied() || srcCell.Owner != tgtCell.Owner {
		return Outcome{}, ErrInvalidAction
	}
	amount := unit.Repair(srcCell.Unit.Kind, tgtCell.Unit.Kind)
	if amount <= 0 {
		return Outcome{}, ErrCannotRepair
	}

	_, tgtU, ok := s.Board.GetTwoMut(a.From, a.To)
	if !ok {
		return Outcome{}, ErrInvalidAction
	}
	before := tgtU.Health
	*tgtU = tgtU.ApplyRepair(amount)
	return Outcome{Kind: Repair, Amount: tgtU.Health - before}, nil
}

func (s *State) executeSelfDestruct(a Action) (Outcome, error) {
	srcCell := s.Board.Get(a.From)
	if !srcCell.Occupied() || srcCell.Owner != s.Player {
		return Outcome{}, ErrInvalidAction
	}

	var total unit.Health
	for c := range a.From.RectAround(1).RectIter() {
		if c == a.From || !s.Board.InBounds(c) {
			continue
		}
		cell := s.Board.Get(c)
		if !cell.Occupied() {
			continue
		}
		total += min(unit.SelfDestructAmount, cell.Unit.Health)
		s.Board.Set(c, board.NewCell(cell.Owner, cell.Unit.ApplyDamage(unit.SelfDestructAmount)))
		s.removeDeadAt(c)
	}

	s.Board.Remove(a.From)
	if srcCell.Unit.Kind == unit.AI {
		s.refreshAIFlag(srcCell.Owner)
	}

	return Outcome{Kind: SelfDestruct, Amount: total}, nil
}

// PlayTurnFromAction executes a and, on success, advances the turn:
// player alternates exactly once and TotalMoves increments in lockstep.
// On failure the state is left untouched and the turn does not advance.
func (s *State) PlayTurnFromAction(a Action) (board.Player, Action, Outcome, error) {
	mover := s.Player
	outcome, err := s.Execute(a)
	if err != nil {
		return mover, a, Outcome{}, err
	}
	s.Player = s.Player.Next()
	s.TotalMoves++
	return mover, a, outcome, nil
}
