// Package automaton builds the canonical collection of LR(1) item sets for a
// grammar: closure, goto, and the discovery-ordered state collection that
// backs the table builder (§4.5). Grounded on the closure/goto shape of
// dekarrin/tunaq's internal/ictiobus/automaton package, rewritten directly
// against LR(1) items with explicit lookaheads instead of that package's
// generic DFA/NFA machinery — this spec's canonical collection has no need
// for the teacher's NFA-to-DFA subset construction, since closure and goto
// are defined straight on item sets.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/langfront/internal/langfront/grammar"
)

// Item is a single LR(1) item: a production with a dot position and a
// single-terminal lookahead (§3). It is a value type; two items with the
// same fields are the same item.
type Item struct {
	LHS       string
	RHS       grammar.Production
	Dot       int
	Lookahead string
}

// Complete reports whether the dot has reached the end of the production.
func (it Item) Complete() bool {
	return it.Dot >= len(it.RHS)
}

// NextSymbol returns the symbol immediately after the dot, if the item is
// not complete.
func (it Item) NextSymbol() (string, bool) {
	if it.Complete() {
		return "", false
	}
	return it.RHS[it.Dot], true
}

// Advance returns the item with its dot moved one position to the right,
// i.e. the result of "shifting" NextSymbol().
func (it Item) Advance() Item {
	return Item{LHS: it.LHS, RHS: it.RHS, Dot: it.Dot + 1, Lookahead: it.Lookahead}
}

// String renders the item in the textbook "A -> α . β, a" form. It also
// doubles as the item's content-hash key, since §3 requires items to be
// hashable with structural equality.
func (it Item) String() string {
	alpha := strings.Join([]string(it.RHS[:it.Dot]), " ")
	beta := strings.Join([]string(it.RHS[it.Dot:]), " ")
	return fmt.Sprintf("%s -> %s . %s, %s", it.LHS, alpha, beta, it.Lookahead)
}

// ItemSet is a finite set of LR(1) items, keyed by their String() form so
// that membership and set-equality are structural rather than dependent on
// insertion order (§3: "two sets with the same items are the same state").
type ItemSet map[string]Item

// NewItemSet builds an ItemSet from the given items.
func NewItemSet(items ...Item) ItemSet {
	s := ItemSet{}
	for _, it := range items {
		s[it.String()] = it
	}
	return s
}

func (s ItemSet) Add(it Item)      { s[it.String()] = it }
func (s ItemSet) Has(it Item) bool { _, ok := s[it.String()]; return ok }
func (s ItemSet) Len() int         { return len(s) }

// Slice returns the set's items sorted by their String() form, for
// deterministic iteration and stable debug dumps (Design Notes: "sort items
// for a stable debug dump, but hashing must not depend on insertion order").
func (s ItemSet) Slice() []Item {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Item, len(keys))
	for i, k := range keys {
		out[i] = s[k]
	}
	return out
}

// Key returns a deterministic content-hash of the set: two ItemSets holding
// the same items produce the same Key regardless of insertion order. This
// is what lets the canonical collection builder recognize a goto result as
// an already-discovered state (§3, §4.5).
func (s ItemSet) Key() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\x1f")
}

// SymbolsAfterDot returns, in sorted order, every symbol that appears
// immediately after the dot in some item of the set (§4.5: goto is computed
// "for each symbol that appears immediately after the dot in some item,
// processed in sorted symbol order for determinism").
func (s ItemSet) SymbolsAfterDot() []string {
	seen := map[string]bool{}
	for _, it := range s {
		if sym, ok := it.NextSymbol(); ok {
			seen[sym] = true
		}
	}

	out := make([]string, 0, len(seen))
	for sym := range seen {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// String renders every item of the set, one per line, in sorted order.
func (s ItemSet) String() string {
	var sb strings.Builder
	for i, it := range s.Slice() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(it.String())
	}
	return sb.String()
}
