package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ComputeFirstSets(t *testing.T) {
	g, err := Load("testdata/arith.cfg")
	require.NoError(t, err)

	sets := ComputeFirstSets(g)

	for _, nt := range []string{"E", "T", "F"} {
		first := sets[nt]
		assert.True(t, first.Has("ID"), "FIRST(%s) should contain ID", nt)
		assert.True(t, first.Has("'('"), "FIRST(%s) should contain '('", nt)
		assert.False(t, first.Has(Epsilon), "FIRST(%s) should not be nullable", nt)
	}

	assert.False(t, sets["E"].Has("'+'"), "FIRST(E) should not contain '+' since it's never a leading symbol")
}

func Test_ComputeFirstSets_Nullable(t *testing.T) {
	g := Grammar{}
	g.AddTerm("'a'")
	g.AddRule("S", Production{"A", "'a'"})
	g.AddRule("A", Production{})

	sets := ComputeFirstSets(g)

	assert.True(t, sets["A"].Has(Epsilon))
	assert.True(t, sets["S"].Has("'a'"), "FIRST(S) must include FIRST('a') since A is nullable")
}
