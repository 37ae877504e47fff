package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/langfront/internal/langfront/grammar"
)

func reduceSequence(trace []Step) []string {
	var out []string
	for _, s := range trace {
		if s.Action.Kind == Reduce {
			out = append(out, s.Action.LHS)
		}
	}
	return out
}

// Test_Driver_Parse_Success covers spec scenario S5: "ID '+' ID '*' ID"
// against the minimal arithmetic grammar parses successfully, and its
// reduction trace is the textbook canonical-LR(1) trace for this input
// (the classic "id+id*id" worked example, with '+' and '*' swapped from the
// dragon book's "id*id+id" presentation): id1 closes out to E before the
// second operand is read, since the state reached after reducing T->F has no
// shift action on '+' and so must reduce E->T immediately on that lookahead.
func Test_Driver_Parse_Success(t *testing.T) {
	g := loadArith(t)
	tables, _, err := BuildTables(g)
	require.NoError(t, err)

	driver := NewDriver(tables)
	input := []grammar.InputSymbol{
		{Terminal: "ID", Line: 1, Lexeme: "a"},
		{Terminal: "'+'", Line: 1, Lexeme: "+"},
		{Terminal: "ID", Line: 1, Lexeme: "b"},
		{Terminal: "'*'", Line: 1, Lexeme: "*"},
		{Terminal: "ID", Line: 1, Lexeme: "c"},
	}

	result := driver.Parse(input)
	require.NoError(t, result.Err)
	require.NotNil(t, result.Tree)
	assert.Equal(t, "E", result.Tree.Symbol)

	assert.Equal(t, []string{"F", "T", "E", "F", "T", "F", "T", "E"}, reduceSequence(result.Trace))

	leaves := result.Tree.Leaves()
	require.Len(t, leaves, 5)
	assert.Equal(t, "a", leaves[0].Lexeme)
	assert.Equal(t, "c", leaves[4].Lexeme)
}

// Test_Driver_Parse_Failure covers spec scenario S6: "ID '+' '+' ID" fails
// with the fixed syntax-error message, reporting the line of the offending
// token and stopping at the first error without attempting recovery.
func Test_Driver_Parse_Failure(t *testing.T) {
	g := loadArith(t)
	tables, _, err := BuildTables(g)
	require.NoError(t, err)

	driver := NewDriver(tables)
	input := []grammar.InputSymbol{
		{Terminal: "ID", Line: 1, Lexeme: "a"},
		{Terminal: "'+'", Line: 1, Lexeme: "+"},
		{Terminal: "'+'", Line: 1, Lexeme: "+"},
		{Terminal: "ID", Line: 1, Lexeme: "b"},
	}

	result := driver.Parse(input)
	require.Error(t, result.Err)
	assert.Equal(t, "Line 1: Syntax error, unexpected token '+'", result.Err.Error())
	assert.Nil(t, result.Tree)
	assert.NotEmpty(t, result.Expected, "a failed parse should report what the state would have accepted")
	assert.NotContains(t, result.Expected, "'+'", "the terminal that caused the failure should not itself be 'expected'")
}

func Test_Driver_Parse_AppendsEndMarkerIfMissing(t *testing.T) {
	g := loadArith(t)
	tables, _, err := BuildTables(g)
	require.NoError(t, err)

	driver := NewDriver(tables)
	input := []grammar.InputSymbol{{Terminal: "ID", Line: 3, Lexeme: "z"}}

	result := driver.Parse(input)
	require.NoError(t, result.Err)
	require.NotNil(t, result.Tree)
}
