package game

import (
	"errors"
	"fmt"

	"aiwargame/internal/coord"
	"aiwargame/internal/unit"
)

// Sentinel errors for the semantic kinds in the action-legality contract.
// All are recovered locally by callers (the CLI driver retries or reports);
// none propagate into the search, which only ever enumerates legal actions.
var (
	ErrInvalidCoordinate = errors.New("game: invalid coordinate")
	ErrOutOfRange        = errors.New("game: from/to not within range 1")
	ErrNotYourUnit       = errors.New("game: source is not your unit")
	ErrEmptySource       = errors.New("game: source cell is empty")
	ErrIllegalMove       = errors.New("game: illegal move")
	ErrCannotDamage      = errors.New("game: cannot damage that target")
	ErrCannotRepair      = errors.New("game: cannot repair that target")
	ErrInvalidAction     = errors.New("game: invalid action")
)

// Kind enumerates the five possible actions a turn can consist of.
type Kind int

const (
	Pass Kind = iota
	Move
	Attack
	Repair
	SelfDestruct
)

func (k Kind) String() string {
	switch k {
	case Pass:
		return "Pass"
	case Move:
		return "Move"
	case Attack:
		return "Attack"
	case Repair:
		return "Repair"
	case SelfDestruct:
		return "SelfDestruct"
	default:
		return "Unknown"
	}
}

// Action is a value-typed description of one unit's turn. From/To are
// meaningless for Pass; From==To for SelfDestruct.
type Action struct {
	Kind Kind
	From coord.Coord
	To   coord.Coord
}

func (a Action) String() string {
	switch a.Kind {
	case Pass:
		return "passes"
	case Move:
		return fmt.Sprintf("moves from %s to %s", a.From, a.To)
	case Attack:
		return fmt.Sprintf("attacks from %s to %s", a.From, a.To)
	case Repair:
		return fmt.Sprintf("repairs from %s to %s", a.From, a.To)
	case SelfDestruct:
		return fmt.Sprintf("self-destructs at %s", a.From)
	default:
		return "unknown action"
	}
}

// Outcome records what actually happened when an Action was executed. Its
// Kind always matches the Action.Kind that produced it.
type Outcome struct {
	Kind Kind

	// Moved
	Delta coord.Coord

	// Attack
	ToSource unit.Health
	ToTarget unit.Health

	// Repair: amount actually added (may be 0 if already full).
	// SelfDestruct: total damage dealt to all affected neighbors.
	Amount unit.Health
}

func (o Outcome) String() string {
	switch o.Kind {
	case Pass:
		return "passed"
	case Move:
		return fmt.Sprintf("moved by (%d,%d)", o.Delta.Row, o.Delta.Col)
	case Attack:
		return fmt.Sprintf("combat damage: to source = %d, to target = %d", o.ToSource, o.ToTarget)
	case Repair:
		return fmt.Sprintf("repaired %d health points", o.Amount)
	case SelfDestruct:
		return fmt.Sprintf("self-destructed for %d total damage", o.Amount)
	default:
		return "unknown outcome"
	}
}
