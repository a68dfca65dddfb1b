package game

import "aiwargame/internal/board"

// Status is the terminal classification of a position, or Ongoing if the
// game has not ended. Every terminal state names a winning side; this
// game has no drawn outcome.
type Status int

const (
	Ongoing Status = iota
	AttackerWins
	DefenderWins
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "Ongoing"
	case AttackerWins:
		return "AttackerWins"
	case DefenderWins:
		return "DefenderWins"
	default:
		return "Unknown"
	}
}

func statusFor(p board.Player) Status {
	if p == board.Attacker {
		return AttackerWins
	}
	return DefenderWins
}

// Result is the outcome of an end-of-game check: a status plus a short
// human-readable reason.
type Result struct {
	Status Status
	Reason string
}

// EndGameResult checks, in order: a declared deadlock (the player to move
// had no legal action; the other player wins), the move cap (Defender
// wins, since the Attacker failed to finish the game in time), and the two
// AI-alive flags (losing your own AI loses the game; if both are down,
// Defender wins — the Attacker needed a kill it didn't convert into
// survival). ok is false while the game is still Ongoing.
func (s *State) EndGameResult() (Result, bool) {
	if s.Deadlock {
		return Result{Status: statusFor(s.Player.Next()), Reason: "the player to move had no legal action"}, true
	}
	if s.Rules.MaxMoves > 0 && s.TotalMoves >= s.Rules.MaxMoves {
		return Result{Status: DefenderWins, Reason: "move cap reached"}, true
	}
	switch {
	case !s.AttackerHasAI && !s.DefenderHasAI:
		return Result{Status: DefenderWins, Reason: "both AIs destroyed"}, true
	case !s.AttackerHasAI:
		return Result{Status: DefenderWins, Reason: "attacker's AI destroyed"}, true
	case !s.DefenderHasAI:
		return Result{Status: AttackerWins, Reason: "defender's AI destroyed"}, true
	}
	return Result{Status: Ongoing}, false
}

// IsOver is a convenience wrapper around EndGameResult for callers that
// only need the boolean.
func (s *State) IsOver() bool {
	_, over := s.EndGameResult()
	return over
}
