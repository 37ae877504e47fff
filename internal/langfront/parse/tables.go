package parse

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/langfront/internal/icterrors"
	"github.com/dekarrin/langfront/internal/langfront/automaton"
	"github.com/dekarrin/langfront/internal/langfront/grammar"
)

// Conflict records a shift/reduce conflict resolved in favor of the shift,
// for the trace package to surface to the user (§4.6: "a shift/reduce
// conflict is resolved by preferring shift, and is logged, not fatal").
type Conflict struct {
	State  int
	Symbol string
	Reduce Action
}

// Tables is the compiled ACTION/GOTO table pair for a grammar's canonical
// LR(1) collection (§3, §4.6). It is immutable once built.
type Tables struct {
	g         grammar.Grammar
	action    map[int]map[string]Action
	gotoTable map[int]map[string]int
	numStates int
	start     int
	conflicts []Conflict
}

// BuildTables constructs the canonical LR(1) ACTION/GOTO tables for g,
// augmenting it first (§4.6). Grounded on the structure of dekarrin/tunaq's
// internal/ictiobus/parse/clr1.go:constructCanonicalLR1ParseTable, with one
// deliberate policy change: that teacher treats every shift/reduce conflict
// as fatal along with reduce/reduce, where this package resolves
// shift/reduce in favor of the shift and only fails construction on
// reduce/reduce (§4.6, §7).
func BuildTables(g grammar.Grammar) (*Tables, *automaton.Collection, error) {
	aug := g.Augmented()
	first := grammar.ComputeFirstSets(aug)
	coll := automaton.BuildCanonicalCollection(aug, first)

	t := &Tables{
		g:         aug,
		action:    map[int]map[string]Action{},
		gotoTable: map[int]map[string]int{},
		numStates: len(coll.States),
		start:     coll.Start,
	}

	startProd := aug.ProductionsFor(aug.StartSymbol())[0]

	for i, state := range coll.States {
		for sym, j := range coll.Goto[i] {
			if aug.IsNonTerminal(sym) {
				if t.gotoTable[i] == nil {
					t.gotoTable[i] = map[string]int{}
				}
				t.gotoTable[i][sym] = j
			} else {
				if err := t.setAction(i, sym, Action{Kind: Shift, State: j}, state); err != nil {
					return nil, nil, err
				}
			}
		}

		for _, it := range state.Slice() {
			if !it.Complete() {
				continue
			}
			if it.LHS == aug.StartSymbol() && it.RHS.Equal(startProd) && it.Lookahead == grammar.End {
				if err := t.setAction(i, grammar.End, Action{Kind: Accept}, state); err != nil {
					return nil, nil, err
				}
				continue
			}
			if err := t.setAction(i, it.Lookahead, Action{Kind: Reduce, LHS: it.LHS, RHS: it.RHS}, state); err != nil {
				return nil, nil, err
			}
		}
	}

	return t, coll, nil
}

// setAction records action as the ACTION table entry for (state, symbol),
// applying §4.6's conflict policy when an entry is already present.
func (t *Tables) setAction(state int, symbol string, action Action, stateItems automaton.ItemSet) error {
	if t.action[state] == nil {
		t.action[state] = map[string]Action{}
	}
	existing, ok := t.action[state][symbol]
	if !ok {
		t.action[state][symbol] = action
		return nil
	}
	if existing.Equal(action) {
		return nil
	}

	switch {
	case existing.Kind == Shift && action.Kind == Reduce:
		t.conflicts = append(t.conflicts, Conflict{State: state, Symbol: symbol, Reduce: action})
		return nil
	case existing.Kind == Reduce && action.Kind == Shift:
		t.conflicts = append(t.conflicts, Conflict{State: state, Symbol: symbol, Reduce: existing})
		t.action[state][symbol] = action
		return nil
	case existing.Kind == Reduce && action.Kind == Reduce:
		return icterrors.NewReduceReduceConflict(
			strconv.Itoa(state), symbol, existing.String(), action.String(),
		)
	default:
		// two accepts, or an accept alongside a shift/reduce on $: cannot
		// happen for a grammar with a single augmented start production.
		return fmt.Errorf("state %d: unresolvable conflict on %q between %s and %s", state, symbol, existing, action)
	}
}

// Action returns the ACTION table entry for (state, symbol), and whether one
// exists.
func (t *Tables) Action(state int, symbol string) (Action, bool) {
	row, ok := t.action[state]
	if !ok {
		return Action{}, false
	}
	a, ok := row[symbol]
	return a, ok
}

// Goto returns the GOTO table entry for (state, nonTerminal), and whether
// one exists.
func (t *Tables) Goto(state int, nonTerminal string) (int, bool) {
	row, ok := t.gotoTable[state]
	if !ok {
		return 0, false
	}
	j, ok := row[nonTerminal]
	return j, ok
}

// Start returns the initial parser state.
func (t *Tables) Start() int { return t.start }

// NumStates returns the number of states in the canonical collection.
func (t *Tables) NumStates() int { return t.numStates }

// Conflicts returns every shift/reduce conflict encountered during
// construction, in table-building order.
func (t *Tables) Conflicts() []Conflict { return t.conflicts }

// ExpectedTerminals returns the terminals with a defined ACTION entry at
// state, sorted. The driver uses this to annotate a parse failure with what
// would have been accepted, without touching §6's fixed error-string
// contract (the returned SyntaxError's Error() never changes; this is
// extra, optional detail for verbose diagnostics only).
func (t *Tables) ExpectedTerminals(state int) []string {
	row, ok := t.action[state]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(row))
	for sym := range row {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// String renders the ACTION/GOTO tables as a single rosed-formatted table
// with one row per state and one column per terminal and non-terminal, in
// the style of dekarrin/tunaq's canonicalLR1Table.String()
// (internal/ictiobus/parse/clr1.go).
func (t *Tables) String() string {
	terms := append(append([]string{}, t.g.Terminals()...), grammar.End)
	nonTerms := t.g.NonTerminals()

	header := append([]string{"STATE"}, terms...)
	header = append(header, nonTerms...)

	data := [][]string{header}
	for i := 0; i < t.numStates; i++ {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(i))
		for _, term := range terms {
			if a, ok := t.Action(i, term); ok {
				row = append(row, a.String())
			} else {
				row = append(row, "")
			}
		}
		for _, nt := range nonTerms {
			if j, ok := t.Goto(i, nt); ok {
				row = append(row, strconv.Itoa(j))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
