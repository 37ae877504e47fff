package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/langfront/internal/langfront/grammar"
	"github.com/dekarrin/langfront/internal/langfront/parse"
)

func Test_Cache_MissThenHit(t *testing.T) {
	grammarPath := "../grammar/testdata/arith.cfg"
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "tables.cache")

	_, ok, err := Load(cachePath, grammarPath)
	require.NoError(t, err)
	assert.False(t, ok, "no cache file written yet")

	g, err := grammar.Load(grammarPath)
	require.NoError(t, err)
	tables, _, err := parse.BuildTables(g)
	require.NoError(t, err)

	require.NoError(t, Store(cachePath, grammarPath, tables))

	restored, ok, err := Load(cachePath, grammarPath)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tables.NumStates(), restored.NumStates())
	assert.Equal(t, tables.Start(), restored.Start())
}

func Test_Cache_Load_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Load(filepath.Join(dir, "nope.cache"), "../grammar/testdata/arith.cfg")
	require.NoError(t, err)
	assert.False(t, ok)
}
