// Package unit holds the unit kind catalog: the compile-time damage,
// repair, and movement tables shared by every unit in the game.
package unit

// Health is the type used for unit health and for damage/repair amounts.
type Health = int8

// Kind enumerates the five unit kinds.
type Kind int

const (
	AI Kind = iota
	Virus
	Tech
	Firewall
	Program
)

// All lists every Kind in declaration order, the order tables are printed
// and iterated in.
var All = [5]Kind{AI, Virus, Tech, Firewall, Program}

func (k Kind) String() string {
	switch k {
	case AI:
		return "AI"
	case Virus:
		return "Virus"
	case Tech:
		return "Tech"
	case Firewall:
		return "Firewall"
	case Program:
		return "Program"
	default:
		return "Unknown"
	}
}

// Letter returns the single uppercase letter used in compact board
// rendering (e.g. "aV6" for an Attacker Virus at 6 health).
func (k Kind) Letter() byte {
	return k.String()[0]
}

// InitialHealth is 9 for every kind.
const InitialHealth Health = 9

// SelfDestructAmount is the damage a self-destruct deals to each affected
// neighbor, regardless of source or target kind.
const SelfDestructAmount Health = 2

// damageTable[src][tgt] is Health dealt by src attacking tgt.
var damageTable = [5][5]Health{
	// tgt:     AI  Virus Tech Firewall Program
	AI:       {3, 3, 3, 1, 3},
	Virus:    {9, 1, 6, 1, 6},
	Tech:     {1, 6, 1, 1, 1},
	Firewall: {1, 1, 1, 1, 1},
	Program:  {3, 3, 3, 1, 3},
}

// repairTable[src][tgt] is Health restored by src repairing tgt.
var repairTable = [5][5]Health{
	AI:       {0, 1, 1, 0, 0},
	Virus:    {0, 0, 0, 0, 0},
	Tech:     {3, 0, 0, 3, 3},
	Firewall: {0, 0, 0, 0, 0},
	Program:  {0, 0, 0, 0, 0},
}

// Damage returns the damage src deals to tgt in an Attack.
func Damage(src, tgt Kind) Health {
	return damageTable[src][tgt]
}

// Repair returns the health src restores to tgt in a Repair.
func Repair(src, tgt Kind) Health {
	return repairTable[src][tgt]
}

// CanMoveBack reports whether a unit of this kind may move toward its own
// home corner (only Virus and Tech).
func (k Kind) CanMoveBack() bool {
	return k == Virus || k == Tech
}

// CanMoveWhileEngaged reports whether a unit of this kind may move while
// adjacent to an enemy (only Virus and Tech).
func (k Kind) CanMoveWhileEngaged() bool {
	return k == Virus || k == Tech
}

// DamageTable renders the damage table as a row-major grid of strings
// headed by the kind names, for CLI/debug display, grounded on the
// original's stats_table helper.
func DamageTable() [][]string {
	return statsTable(Damage)
}

// RepairTable renders the repair table the same way.
func RepairTable() [][]string {
	return statsTable(Repair)
}

func statsTable(fn func(src, tgt Kind) Health) [][]string {
	header := make([]string, 0, len(All)+1)
	header = append(header, "")
	for _, t := range All {
		header = append(header, t.String())
	}
	rows := [][]string{header}
	for _, src := range All {
		row := make([]string, 0, len(All)+1)
		row = append(row, src.String())
		var sum Health
		for _, tgt := range All {
			sum += fn(src, tgt)
		}
		if sum == 0 {
			continue
		}
		for _, tgt := range All {
			row = append(row, itoa(int(fn(src, tgt))))
		}
		rows = append(rows, row)
	}
	return rows
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [8]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Unit is a value-typed (kind, health) pair.
type Unit struct {
	Kind   Kind
	Health Health
}

// New builds a Unit at full health for the given kind.
func New(k Kind) Unit {
	return Unit{Kind: k, Health: InitialHealth}
}

// IsDead reports whether the unit's health has reached zero.
func (u Unit) IsDead() bool {
	return u.Health <= 0
}

// IsFullHealth reports whether the unit is at its kind's initial health.
func (u Unit) IsFullHealth() bool {
	return u.Health >= InitialHealth
}

// ApplyDamage subtracts d from the unit's health, saturating at zero.
func (u Unit) ApplyDamage(d Health) Unit {
	h := u.Health - d
	if h < 0 {
		h = 0
	}
	return Unit{Kind: u.Kind, Health: h}
}

// ApplyRepair adds r to the unit's health, saturating at InitialHealth.
func (u Unit) ApplyRepair(r Health) Unit {
	h := u.Health + r
	if h > InitialHealth {
		h = InitialHealth
	}
	return Unit{Kind: u.Kind, Health: h}
}
