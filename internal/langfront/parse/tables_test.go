package parse

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
	return g
}

func Test_BuildTables_Arith_NoConflicts(t *testing.T) {
	g := loadArith(t)

	tables, coll, err := BuildTables(g)
	require.NoError(t, err)
	assert.Empty(t, tables.Conflicts(), "this grammar is unambiguous and should build without conflicts")
	assert.Equal(t, len(coll.States), tables.NumStates())
}

func Test_BuildTables_Arith_StartStateShiftsOnID(t *testing.T) {
	g := loadArith(t)
	tables, _, err := BuildTables(g)
	require.NoError(t, err)

	a, ok := tables.Action(tables.Start(), "ID")
	require.True(t, ok, "the start state must have a shift action on ID")
	assert.Equal(t, Shift, a.Kind)
}

func Test_BuildTables_ReduceReduceConflictIsFatal(t *testing.T) {
	// an ambiguous grammar where both "A -> x" and "B -> x" can complete
	// with the same lookahead: this must fail table construction (§4.6, §7).
	var g grammar.Grammar
	g.AddTerm("'x'")
	g.AddRule("S", grammar.Production{"A"})
	g.AddRule("S", grammar.Production{"B"})
	g.AddRule("A", grammar.Production{"'x'"})
	g.AddRule("B", grammar.Production{"'x'"})

	_, _, err := BuildTables(g)
	require.Error(t, err)
}

func Test_Tables_String_RendersHeaderAndTerminals(t *testing.T) {
	g := loadArith(t)
	tables, _, err := BuildTables(g)
	require.NoError(t, err)

	out := tables.String()
	assert.Contains(t, out, "STATE")
	assert.Contains(t, out, "ID")
}
