package filter

// Movement is the direction selector of the ledger endpoints.
type Movement string

const (
	MovementIn     Movement = "in"
	MovementOut    Movement = "out"
	MovementReport Movement = "report"
	MovementAll    Movement = "all"
)

// ListingMode resolves the movement listing selector. Only in, out and
// report select a listing; ok is false for anything else, which callers
// answer with an empty list.
func ListingMode(raw string) (Movement, bool) {
	switch m := Movement(raw); m {
	case MovementIn, MovementOut, MovementReport:
		return m, true
	default:
		return "", false
	}
}

// Directions says which sides of the ledger a per-product breakdown reads.
type Directions struct {
	In  bool
	Out bool
}

// ParseDirections resolves the breakdown selector. Empty and "all" read both
// sides; an unrecognized value reads neither.
func ParseDirections(raw string) Directions {
	switch Movement(raw) {
	case "", MovementAll:
		return Directions{In: true, Out: true}
	case MovementIn:
		return Directions{In: true}
	case MovementOut:
		return Directions{Out: true}
	default:
		return Directions{}
	}
}

// None reports whether no side is read.
func (d Directions) None() bool {
	return !d.In && !d.Out
}
