package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/langfront/internal/langfront/grammar"
	"github.com/dekarrin/langfront/internal/langfront/parse"
)

func Test_Writer_Flush_WritesAllFourArtifacts(t *testing.T) {
	g, err := grammar.Load("../grammar/testdata/arith.cfg")
	require.NoError(t, err)

	tables, coll, err := parse.BuildTables(g)
	require.NoError(t, err)

	driver := parse.NewDriver(tables)
	input := []grammar.InputSymbol{
		{Terminal: "ID", Line: 1, Lexeme: "a"},
		{Terminal: "'+'", Line: 1, Lexeme: "+"},
		{Terminal: "ID", Line: 1, Lexeme: "b"},
	}
	result := driver.Parse(input)
	require.NoError(t, result.Err)

	dir := t.TempDir()
	w := NewWriter(dir)
	w.RecordStates(coll)
	w.RecordTables(tables)
	w.RecordSteps(result.Trace)

	require.NoError(t, w.Flush())

	for _, name := range []string{StatesFile, TablesFile, ProcessFile, ErrorsFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s to exist", name)
	}

	states, err := os.ReadFile(filepath.Join(dir, StatesFile))
	require.NoError(t, err)
	assert.Contains(t, string(states), "I0:")

	process, err := os.ReadFile(filepath.Join(dir, ProcessFile))
	require.NoError(t, err)
	assert.Contains(t, string(process), "action=shift")
}

func Test_Writer_RecordError_WritesErrorsFile(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	w.RecordError("Line 1: Syntax error, unexpected token '+'")

	require.NoError(t, w.Flush())

	data, err := os.ReadFile(filepath.Join(dir, ErrorsFile))
	require.NoError(t, err)
	assert.Equal(t, "Line 1: Syntax error, unexpected token '+'", string(data))
}
