package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/langfront/internal/langfront/grammar"
)

func loadArith(t *testing.T) grammar.Grammar {
	t.Helper()
	g, err := grammar.Load("../grammar/testdata/arith.cfg")
	require.NoError(t, err)
	return g.Augmented()
}

func Test_BuildCanonicalCollection_Deterministic(t *testing.T) {
	g := loadArith(t)
	first := grammar.ComputeFirstSets(g)

	c1 := BuildCanonicalCollection(g, first)
	c2 := BuildCanonicalCollection(g, first)

	require.Equal(t, len(c1.States), len(c2.States))
	for i := range c1.States {
		assert.Equal(t, c1.States[i].Key(), c2.States[i].Key(), "state %d should be identical across runs", i)
	}
	assert.Equal(t, c1.Goto, c2.Goto)
}

func Test_BuildCanonicalCollection_InitialStateHasAugmentedItem(t *testing.T) {
	g := loadArith(t)
	first := grammar.ComputeFirstSets(g)
	c := BuildCanonicalCollection(g, first)

	initial := c.States[c.Start]
	found := false
	for _, it := range initial.Slice() {
		if it.LHS == g.StartSymbol() && it.Dot == 0 && it.Lookahead == grammar.End {
			found = true
		}
	}
	assert.True(t, found, "initial state must contain the augmented start item with dot=0, lookahead=$")
}

func Test_Closure_ExpandsNonTerminals(t *testing.T) {
	g := loadArith(t)
	first := grammar.ComputeFirstSets(g)

	startProd := g.ProductionsFor(g.StartSymbol())[0]
	seed := NewItemSet(Item{LHS: g.StartSymbol(), RHS: startProd, Dot: 0, Lookahead: grammar.End})

	closed := Closure(g, first, seed)

	// closure of [S' -> . E, $] must pull in items for every production of
	// E, T, and F since E is nullable-free and leftmost in every chain down
	// to F.
	var sawE, sawT, sawF bool
	for _, it := range closed.Slice() {
		switch it.LHS {
		case "E":
			sawE = true
		case "T":
			sawT = true
		case "F":
			sawF = true
		}
	}
	assert.True(t, sawE)
	assert.True(t, sawT)
	assert.True(t, sawF)
}

func Test_Goto_EmptyWhenNoMatchingItem(t *testing.T) {
	g := loadArith(t)
	first := grammar.ComputeFirstSets(g)
	c := BuildCanonicalCollection(g, first)

	result := Goto(g, first, c.States[c.Start], "'*'")
	assert.Equal(t, 0, result.Len())
}
