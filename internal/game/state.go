// Package game implements the deterministic state model, action legality,
// outcome resolution, end-of-game detection, and action enumeration that
// the search engine in internal/search drives.
package game

import (
	"aiwargame/internal/board"
	"aiwargame/internal/coord"
	"aiwargame/internal/unit"
)

// Rules bundles the legality toggles referenced by move validation and
// end-of-game detection. A *Rules is shared, read-only configuration: the
// same instance is held by every clone a search makes of a State.
type Rules struct {
	// MoveOnlyForward requires non-Virus/Tech units to move toward the
	// opponent's corner.
	MoveOnlyForward bool
	// MoveWhileEngagedFullHealth lets an engaged unit move anyway when it
	// is at full health, even if its kind otherwise forbids it.
	MoveWhileEngagedFullHealth bool
	// MutualDamage makes Attack apply damage(tgt->src) as well as
	// damage(src->tgt).
	MutualDamage bool
	// MaxMoves is the total-move cap; zero means unset (no cap).
	MaxMoves int
}

// DefaultRules mirrors the classic tournament configuration: forward-only
// movement, mutual combat damage, and no move cap.
func DefaultRules() *Rules {
	return &Rules{
		MoveOnlyForward:            true,
		MoveWhileEngagedFullHealth: false,
		MutualDamage:               true,
		MaxMoves:                   0,
	}
}

// State is the full game position: whose turn it is, the board, the move
// counter, the deadlock flag, and the two AI-alive flags (maintained as
// derived state rather than recomputed on every query).
type State struct {
	Player        board.Player
	Board         *board.Board
	TotalMoves    int
	Deadlock      bool
	AttackerHasAI bool
	DefenderHasAI bool
	Rules         *Rules
}

// squadOffset is one unit of the fixed L-shaped starting squad, expressed
// as an offset from the Defender's home corner (0,0).
type squadOffset struct {
	row, col int8
	kind     unit.Kind
}

var startingSquad = [6]squadOffset{
	{0, 0, unit.AI},
	{0, 1, unit.Virus},
	{1, 0, unit.Tech},
	{0, 2, unit.Firewall},
	{2, 0, unit.Firewall},
	{1, 1, unit.Program},
}

// New builds the initial position on a dim x dim board: the L-shaped squad
// at the Defender's (0,0) corner, mirrored at the Attacker's
// (dim-1,dim-1) corner. Player starts as Attacker, TotalMoves at 0,
// Deadlock false, both AI flags true.
func New(dim int8, rules *Rules) *State {
	b := board.New(dim)
	md := dim - 1
	for _, s := range startingSquad {
		b.Set(coord.New(s.row, s.col), board.NewCell(board.Defender, unit.New(s.kind)))
		b.Set(coord.New(md-s.row, md-s.col), board.NewCell(board.Attacker, unit.New(s.kind)))
	}
	return &State{
		Player:        board.Attacker,
		Board:         b,
		TotalMoves:    0,
		Deadlock:      false,
		AttackerHasAI: true,
		DefenderHasAI: true,
		Rules:         rules,
	}
}

// Clone returns an independent copy: the board is deep-copied, the shared
// Rules pointer is reused, and all scalar fields are duplicated. Search
// recursion always operates on clones, never on the caller's State.
func (s *State) Clone() *State {
	return &State{
		Player:        s.Player,
		Board:         s.Board.Clone(),
		TotalMoves:    s.TotalMoves,
		Deadlock:      s.Deadlock,
		AttackerHasAI: s.AttackerHasAI,
		DefenderHasAI: s.DefenderHasAI,
		Rules:         s.Rules,
	}
}

// HasAI reports the AI-alive flag for player p.
func (s *State) HasAI(p board.Player) bool {
	if p == board.Attacker {
		return s.AttackerHasAI
	}
	return s.DefenderHasAI
}

// refreshAIFlag recomputes player p's AI-alive flag from the board. Called
// after any removal that could have killed an AI unit.
func (s *State) refreshAIFlag(p board.Player) {
	alive := false
	for cell := range s.Board.PlayerUnits(p) {
		if cell.Unit.Kind == unit.AI {
			alive = true
			break
		}
	}
	if p == board.Attacker {
		s.AttackerHasAI = alive
	} else {
		s.DefenderHasAI = alive
	}
}

// removeDeadAt clears the cell at c if its unit has died, updating AI
// flags if the removed unit belonged to either side's AI.
func (s *State) removeDeadAt(c coord.Coord) {
	cell := s.Board.Get(c)
	if !cell.Occupied() || !cell.Unit.IsDead() {
		return
	}
	owner := cell.Owner
	wasAI := cell.Unit.Kind == unit.AI
	s.Board.Remove(c)
	if wasAI {
		s.refreshAIFlag(owner)
	}
}
