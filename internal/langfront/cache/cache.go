// Package cache persists compiled parser Tables to disk keyed by the CFG
// file's modification time, so repeated runs against an unchanged grammar
// can reuse the ACTION/GOTO tables instead of building them again. Grounded on
// dekarrin/tunaq's use of github.com/dekarrin/rezi in
// server/dao/sqlite/sqlite.go (rezi.EncBinary / rezi.DecBinary wrapping a
// type's encoding.BinaryMarshaler), applied here to a file on disk instead
// of a database column.
package cache

import (
	"fmt"
	"os"
	"time"

	"github.com/dekarrin/rezi"

	"github.com/dekarrin/langfront/internal/langfront/parse"
)

// entry is the on-disk cache record: the source CFG's mtime at the time the
// tables were built, followed by the rezi-encoded Tables. A mismatched
// mtime on Load invalidates the cache rather than trusting stale tables.
type entry struct {
	GrammarModTime int64
	Tables         *parse.Tables
}

func (e *entry) MarshalBinary() ([]byte, error) {
	data := rezi.EncBinary(e.GrammarModTime)
	data = append(data, rezi.EncBinary(e.Tables)...)
	return data, nil
}

func (e *entry) UnmarshalBinary(data []byte) error {
	var modTime int64
	n, err := rezi.DecBinary(data, &modTime)
	if err != nil {
		return fmt.Errorf("decoding cached grammar mod time: %w", err)
	}
	data = data[n:]

	tables := &parse.Tables{}
	if _, err := rezi.DecBinary(data, tables); err != nil {
		return fmt.Errorf("decoding cached tables: %w", err)
	}

	e.GrammarModTime = modTime
	e.Tables = tables
	return nil
}

// Load reads a previously-cached Tables from cachePath, returning ok=false
// (with no error) if no cache file exists yet or the cached tables were
// built from a version of grammarPath older or newer than the file now on
// disk — either way, the caller should fall back to BuildTables.
func Load(cachePath, grammarPath string) (tables *parse.Tables, ok bool, err error) {
	info, statErr := os.Stat(grammarPath)
	if statErr != nil {
		return nil, false, fmt.Errorf("stat grammar file: %w", statErr)
	}

	data, readErr := os.ReadFile(cachePath)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cache file: %w", readErr)
	}

	var e entry
	if err := e.UnmarshalBinary(data); err != nil {
		// a corrupt or format-incompatible cache is not fatal: treat it as
		// a cache miss so the caller rebuilds.
		return nil, false, nil
	}

	if e.GrammarModTime != info.ModTime().UnixNano() {
		return nil, false, nil
	}

	return e.Tables, true, nil
}

// Store writes tables to cachePath, tagged with grammarPath's current
// modification time so a future Load can detect whether the grammar file
// has changed since.
func Store(cachePath, grammarPath string, tables *parse.Tables) error {
	info, err := os.Stat(grammarPath)
	if err != nil {
		return fmt.Errorf("stat grammar file: %w", err)
	}

	e := &entry{GrammarModTime: info.ModTime().UnixNano(), Tables: tables}
	data, err := e.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}
