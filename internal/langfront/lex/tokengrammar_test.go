package lex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadTokenGrammar(t *testing.T) {
	tg, err := LoadTokenGrammar("testdata/tokens.grm")
	require.NoError(t, err)

	assert.True(t, tg.Keywords.Has("int"))
	assert.True(t, tg.Keywords.Has("if"))
	assert.True(t, tg.Keywords.Has("else"))
	assert.True(t, tg.Keywords.Has("return"))
	assert.False(t, tg.Keywords.Has("while"), "while was never declared a keyword")
}

func Test_LoadTokenGrammar_MissingFile(t *testing.T) {
	_, err := LoadTokenGrammar("testdata/does-not-exist.grm")
	require.Error(t, err)
}

func Test_LoadTokenGrammar_MalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.grm")
	require.NoError(t, os.WriteFile(path, []byte("Keyword 'int'\n"), 0o644))

	_, err := LoadTokenGrammar(path)
	require.Error(t, err)
}

func Test_LoadTokenGrammar_CommentsAndBlanksIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commented.grm")
	require.NoError(t, os.WriteFile(path, []byte("# a comment\n\nKeyword → 'foo'\n"), 0o644))

	tg, err := LoadTokenGrammar(path)
	require.NoError(t, err)
	assert.True(t, tg.Keywords.Has("foo"))
}

// Test_LoadTokenGrammar_CategoryRule checks that the fixture's DELIMITER
// category compiles into one category recognizer.
func Test_LoadTokenGrammar_CategoryRule(t *testing.T) {
	tg, err := LoadTokenGrammar("testdata/tokens.grm")
	require.NoError(t, err)

	require.Len(t, tg.Categories, 1)
	assert.Equal(t, "DELIMITER", tg.Categories[0].Name)
}

// Test_TranslatePattern_EscapesBareDot is the regression test for §4.1's
// "literal ." dialect feature: a bare `.` must match only a literal dot, not
// any character, per the original work1.py build_regex this dialect is
// lifted from.
func Test_TranslatePattern_EscapesBareDot(t *testing.T) {
	assert.Equal(t, `a\.b`, translatePattern("a.b"))
}

// Test_TranslatePattern_LeavesClassesAndEscapesAlone checks that the bare-dot
// escape doesn't disturb a `.` that is already inside a character class or
// already escaped.
func Test_TranslatePattern_LeavesClassesAndEscapesAlone(t *testing.T) {
	assert.Equal(t, `[.]`, translatePattern("[.]"))
	assert.Equal(t, `\.`, translatePattern(`\.`))
	assert.Equal(t, `\d+\.\d+`, translatePattern(`\d+.\d+`))
}
