package parse

import (
	"strings"

	"github.com/emirpasic/gods/stack/arraystack"

	"github.com/dekarrin/langfront/internal/icterrors"
	"github.com/dekarrin/langfront/internal/langfront/grammar"
	"github.com/dekarrin/langfront/internal/langfront/types"
	"github.com/dekarrin/langfront/internal/util"
)

// Step is one iteration of the parse loop, recorded for the trace emitter
// (§4.9: "the per-step parse trace (state, current token, stack, remaining
// input, chosen action)").
type Step struct {
	StateBefore int
	Token       grammar.InputSymbol
	Stack       []int
	Remaining   int
	Action      Action
}

// Result is the outcome of a single Driver.Parse call.
type Result struct {
	Tree  *types.ParseTree
	Trace []Step
	// Expected holds the terminals with a defined ACTION at the state where
	// parsing failed on an unexpected token, for composing an optional
	// "expected a/an X" verbose diagnostic alongside Err. It is nil on
	// success and on the "invalid action" failure mode, where no single
	// state's expected set applies.
	Expected []string
	Err      error
}

// Accepted reports whether the parse completed without error.
func (r Result) Accepted() bool { return r.Err == nil }

// Driver executes the table-driven LR(1) stack automaton (§4.7). Grounded on
// the driver loop shape of dekarrin/tunaq's internal/tunascript
// LL1PredictiveParse, adapted from LL(1) expansion to LR(1) shift/reduce,
// and on the state stack from npillmayer/gorgo's lr package, which likewise
// drives table-based parsing off an emirpasic/gods stack.
type Driver struct {
	tables *Tables
}

// NewDriver returns a Driver over the given compiled tables.
func NewDriver(tables *Tables) *Driver {
	return &Driver{tables: tables}
}

// Parse runs the stack automaton over input, a terminal sequence as produced
// by the token-bridge (§4.8). If input does not already end with the
// end-of-input marker, one is appended using the line of the last symbol
// (§4.7: "Input is the terminal sequence from §4.8 with a terminating $").
//
// On success, Result.Tree holds the derivation tree implicit in the
// reduction sequence and Result.Err is nil. On failure, parsing stops at the
// first unresolvable action and Result.Err carries the single diagnostic
// (§4.7: "no more than one error per parse; it does not attempt recovery").
func (d *Driver) Parse(input []grammar.InputSymbol) Result {
	input = ensureTerminated(input)

	states := arraystack.New()
	states.Push(d.tables.Start())

	var nodes util.Stack[*types.ParseTree]

	var trace []Step
	ip := 0

	for {
		sRaw, _ := states.Peek()
		s := sRaw.(int)
		cur := input[ip]

		action, ok := d.tables.Action(s, cur.Terminal)
		trace = append(trace, Step{
			StateBefore: s,
			Token:       cur,
			Stack:       stateSnapshot(states),
			Remaining:   len(input) - ip,
			Action:      action,
		})
		if !ok {
			// the message wraps the symbol in quotes itself, so a quoted
			// literal terminal is reported without its own quotes
			sym := cur.Terminal
			if len(sym) >= 2 && strings.HasPrefix(sym, "'") && strings.HasSuffix(sym, "'") {
				sym = sym[1 : len(sym)-1]
			}
			return Result{
				Trace:    trace,
				Expected: d.tables.ExpectedTerminals(s),
				Err:      icterrors.NewUnexpectedToken(cur.Line, sym),
			}
		}

		switch action.Kind {
		case Shift:
			states.Push(action.State)
			nodes.Push(&types.ParseTree{
				Symbol:   cur.Terminal,
				Terminal: true,
				Source:   types.Token{Line: cur.Line, Lexeme: cur.Lexeme},
			})
			ip++

		case Reduce:
			k := len(action.RHS)
			children := make([]*types.ParseTree, k)
			for i := k - 1; i >= 0; i-- {
				states.Pop()
				children[i] = nodes.Pop()
			}

			topRaw, _ := states.Peek()
			top := topRaw.(int)
			next, ok := d.tables.Goto(top, action.LHS)
			if !ok {
				return Result{Trace: trace, Err: icterrors.NewInvalidAction(cur.Line)}
			}
			states.Push(next)
			nodes.Push(&types.ParseTree{Symbol: action.LHS, Children: children})

		case Accept:
			return Result{Tree: nodes.Peek(), Trace: trace, Err: nil}
		}
	}
}

// ensureTerminated returns input with a trailing end-of-input symbol, adding
// one at the line of the final existing symbol (or line 1, for empty input)
// if the caller did not already include it.
func ensureTerminated(input []grammar.InputSymbol) []grammar.InputSymbol {
	if len(input) > 0 && input[len(input)-1].Terminal == grammar.End {
		return input
	}

	line := 1
	if len(input) > 0 {
		line = input[len(input)-1].Line
	}
	out := make([]grammar.InputSymbol, len(input), len(input)+1)
	copy(out, input)
	return append(out, grammar.InputSymbol{Terminal: grammar.End, Line: line})
}

// stateSnapshot returns the current contents of the state stack, top first,
// for use in a Step's trace record.
func stateSnapshot(states *arraystack.Stack) []int {
	values := states.Values()
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = v.(int)
	}
	return out
}
