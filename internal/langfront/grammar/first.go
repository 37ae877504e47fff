package grammar

import "github.com/dekarrin/langfront/internal/util"

// FirstSets is the memoized FIRST(X) table for every terminal and
// non-terminal of a Grammar (§4.4). Terminals map to the singleton set
// containing themselves; non-terminals are computed by fixed-point
// iteration over the grammar's productions.
type FirstSets map[string]util.StringSet

// ComputeFirstSets computes FIRST(X) for every symbol of g by the standard
// fixed-point algorithm (repeatedly apply the FIRST rules until no set
// grows), matching the textbook formulation the teacher's automaton package
// assumes but never implements directly — grounded here from scratch for
// this grammar's production representation.
func ComputeFirstSets(g Grammar) FirstSets {
	sets := FirstSets{}
	for _, t := range g.Terminals() {
		sets[t] = util.NewStringSet()
		sets[t].Add(t)
	}
	sets[End] = util.NewStringSet()
	sets[End].Add(End)

	for _, nt := range g.NonTerminals() {
		sets[nt] = util.NewStringSet()
	}

	changed := true
	for changed {
		changed = false
		for _, r := range g.productions {
			before := sets[r.lhs].Len()
			addFirstOfSequence(sets, g, r.rhs, sets[r.lhs])
			if sets[r.lhs].Len() != before {
				changed = true
			}
		}
	}

	return sets
}

// addFirstOfSequence adds FIRST(seq) to dest, per the standard rule: walk
// the sequence's symbols left to right, adding each symbol's non-epsilon
// FIRST members and stopping at the first symbol whose FIRST set does not
// contain ε; if every symbol's FIRST set contains ε (including the empty
// sequence), ε itself is added to dest.
func addFirstOfSequence(sets FirstSets, g Grammar, seq Production, dest util.StringSet) {
	allNullable := true
	for _, sym := range seq {
		symFirst := sets[sym]
		for _, m := range symFirst.Slice() {
			if m != Epsilon {
				dest.Add(m)
			}
		}
		if !symFirst.Has(Epsilon) {
			allNullable = false
			break
		}
	}
	if allNullable {
		dest.Add(Epsilon)
	}
}

// First computes FIRST for an arbitrary symbol sequence (a production's
// rhs, or the remainder of one during closure computation) given a
// precomputed FirstSets table.
func (fs FirstSets) First(seq []string) util.StringSet {
	dest := util.NewStringSet()
	allNullable := true
	for _, sym := range seq {
		symFirst := fs[sym]
		if symFirst == nil {
			// unknown symbol; treat as contributing nothing and not nullable
			allNullable = false
			break
		}
		for _, m := range symFirst.Slice() {
			if m != Epsilon {
				dest.Add(m)
			}
		}
		if !symFirst.Has(Epsilon) {
			allNullable = false
			break
		}
	}
	if allNullable {
		dest.Add(Epsilon)
	}
	return dest
}
