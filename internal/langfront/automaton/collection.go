package automaton

import "github.com/dekarrin/langfront/internal/langfront/grammar"

// Closure computes the closure of an item set (§4.5): repeatedly, for each
// item "A -> α . B β, a" in the set with B a non-terminal, add "B -> . γ, b"
// for every production B -> γ and every b in FIRST(βa), until no new item is
// added.
func Closure(g grammar.Grammar, first grammar.FirstSets, items ItemSet) ItemSet {
	result := NewItemSet()
	for _, it := range items.Slice() {
		result.Add(it)
	}

	changed := true
	for changed {
		changed = false
		for _, it := range result.Slice() {
			b, ok := it.NextSymbol()
			if !ok || !g.IsNonTerminal(b) {
				continue
			}

			beta := it.RHS[it.Dot+1:]
			seq := make([]string, 0, len(beta)+1)
			seq = append(seq, beta...)
			seq = append(seq, it.Lookahead)
			lookaheads := first.First(seq)

			for _, prod := range g.ProductionsFor(b) {
				for _, la := range lookaheads.Slice() {
					if la == grammar.Epsilon {
						continue
					}
					newItem := Item{LHS: b, RHS: prod, Dot: 0, Lookahead: la}
					if !result.Has(newItem) {
						result.Add(newItem)
						changed = true
					}
				}
			}
		}
	}

	return result
}

// Goto computes goto(I, X) (§4.5): advance the dot over X in every item of I
// that has X immediately after its dot, then close the result. Returns an
// empty set if no item of I has X after its dot.
func Goto(g grammar.Grammar, first grammar.FirstSets, items ItemSet, x string) ItemSet {
	moved := NewItemSet()
	for _, it := range items.Slice() {
		sym, ok := it.NextSymbol()
		if ok && sym == x {
			moved.Add(it.Advance())
		}
	}
	if moved.Len() == 0 {
		return moved
	}
	return Closure(g, first, moved)
}

// Collection is the canonical LR(1) collection of item sets for a grammar,
// together with the goto transitions between them (§4.5). States are
// indexed in order of first discovery (§3, and §5's determinism guarantee).
type Collection struct {
	States []ItemSet
	Goto   map[int]map[string]int
	Start  int
}

// BuildCanonicalCollection builds the canonical LR(1) collection for the
// already-augmented grammar g (callers are expected to have called
// g.Augmented() first, per the Design Notes: the accept condition should not
// depend on whether the grammar file's own first rule happens to already be
// an augmented start rule). The initial state is the closure of the item for
// g's sole start production, with the end-of-input marker as lookahead.
//
// Per §4.5, states and transitions are discovered breadth-first in the order
// states are appended; within a state, symbols are processed in sorted order
// so the resulting numbering is deterministic across runs on the same
// grammar (§8 property 5, §5's ordering guarantee).
func BuildCanonicalCollection(g grammar.Grammar, first grammar.FirstSets) *Collection {
	startProds := g.ProductionsFor(g.StartSymbol())
	startItem := Item{LHS: g.StartSymbol(), RHS: startProds[0], Dot: 0, Lookahead: grammar.End}
	initial := Closure(g, first, NewItemSet(startItem))

	coll := &Collection{
		States: []ItemSet{initial},
		Goto:   map[int]map[string]int{},
		Start:  0,
	}
	seen := map[string]int{initial.Key(): 0}

	for i := 0; i < len(coll.States); i++ {
		state := coll.States[i]
		for _, x := range state.SymbolsAfterDot() {
			next := Goto(g, first, state, x)
			if next.Len() == 0 {
				continue
			}

			key := next.Key()
			j, ok := seen[key]
			if !ok {
				j = len(coll.States)
				coll.States = append(coll.States, next)
				seen[key] = j
			}

			if coll.Goto[i] == nil {
				coll.Goto[i] = map[string]int{}
			}
			coll.Goto[i][x] = j
		}
	}

	return coll
}
