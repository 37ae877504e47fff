package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/langfront/internal/langfront/grammar"
)

func Test_Tables_BinaryRoundTrip(t *testing.T) {
	g := loadArith(t)
	tables, _, err := BuildTables(g)
	require.NoError(t, err)

	data, err := tables.MarshalBinary()
	require.NoError(t, err)

	var restored Tables
	require.NoError(t, restored.UnmarshalBinary(data))

	assert.Equal(t, tables.Start(), restored.Start())
	assert.Equal(t, tables.NumStates(), restored.NumStates())

	for state := 0; state < tables.NumStates(); state++ {
		for _, term := range append(g.Terminals(), grammar.End) {
			want, wantOk := tables.Action(state, term)
			got, gotOk := restored.Action(state, term)
			assert.Equal(t, wantOk, gotOk, "state %d symbol %s", state, term)
			if wantOk {
				assert.True(t, want.Equal(got), "state %d symbol %s: want %v got %v", state, term, want, got)
			}
		}
		for _, nt := range g.NonTerminals() {
			want, wantOk := tables.Goto(state, nt)
			got, gotOk := restored.Goto(state, nt)
			assert.Equal(t, wantOk, gotOk)
			assert.Equal(t, want, got)
		}
	}
}
