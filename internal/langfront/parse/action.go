// Package parse materializes the ACTION/GOTO tables from a grammar's
// canonical LR(1) collection (§4.6) and drives the table-based stack
// automaton over a terminal sequence (§4.7). Grounded on the shape of
// dekarrin/tunaq's internal/ictiobus/parse package (LRAction, the
// canonicalLR1Table builder) and on npillmayer/gorgo's lr package for the
// gods-backed stack used by the driver.
package parse

import (
	"fmt"

	"github.com/dekarrin/langfront/internal/langfront/grammar"
)

// ActionKind distinguishes the three productive LR actions (GLOSSARY:
// Shift/Reduce/Accept). The zero value, NoAction, marks an ACTION entry that
// was never set — callers see this as "not found" via Tables.Action's ok
// return rather than as an explicit value.
type ActionKind int

const (
	NoAction ActionKind = iota
	Shift
	Reduce
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "none"
	}
}

// Action is one ACTION table entry: either a shift destination state, a
// reduce's left-hand side and production, or a bare accept (§3).
type Action struct {
	Kind  ActionKind
	State int
	LHS   string
	RHS   grammar.Production
}

// Equal reports whether two actions describe the same move, used by the
// table builder to detect when a proposed action would conflict with one
// already recorded.
func (a Action) Equal(o Action) bool {
	if a.Kind != o.Kind {
		return false
	}
	switch a.Kind {
	case Shift:
		return a.State == o.State
	case Reduce:
		return a.LHS == o.LHS && a.RHS.Equal(o.RHS)
	default:
		return true
	}
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %s -> %s", a.LHS, a.RHS.String())
	case Accept:
		return "accept"
	default:
		return ""
	}
}
