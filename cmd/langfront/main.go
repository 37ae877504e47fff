/*
Langfront tokenizes and parses a source file against an external lexical
grammar and context-free grammar pair.

It reads a grammar-of-tokens file and a CFG file, builds the DFA scanner and
LR(1) ACTION/GOTO tables, then lexes and parses the given source file. It
prints a pass/fail summary to stdout and writes the four trace artifacts
(states.txt, parsing_tables.txt, parsing_process.txt, syntax_errors.txt)
plus a token dump to the output directory.

Usage:

	langfront [flags] SOURCE

The flags are:

	-t, --tokens FILE
		Grammar-of-tokens file (§4.1). Defaults to "tokens.grm".

	-g, --grammar FILE
		Context-free grammar file (§4.3). Defaults to "grammar.cfg".

	-o, --out DIR
		Directory to write trace artifacts and the token dump to. Defaults
		to the current directory.

	-c, --cache
		Cache compiled parser tables alongside the grammar file and reuse
		them on a later run if the grammar file has not changed since.

	-v, --verbose
		Print a loaded-grammar summary (terminal/non-terminal/production
		counts) before parsing, and, on a failed parse, which terminals
		would have been accepted at the point of failure.

	--version
		Print the version and exit.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/repr"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"

	"github.com/dekarrin/langfront/internal/langfront/automaton"
	"github.com/dekarrin/langfront/internal/langfront/cache"
	"github.com/dekarrin/langfront/internal/langfront/grammar"
	"github.com/dekarrin/langfront/internal/langfront/lex"
	"github.com/dekarrin/langfront/internal/langfront/parse"
	"github.com/dekarrin/langfront/internal/langfront/trace"
	"github.com/dekarrin/langfront/internal/langfront/types"
	"github.com/dekarrin/langfront/internal/util"
)

const version = "0.1.0"

const (
	// ExitSuccess indicates the source parsed without error.
	ExitSuccess = iota

	// ExitGrammarError indicates the token grammar or CFG could not be
	// loaded or failed to compile into tables. It is also returned when the
	// token dump or the trace artifacts cannot be written.
	ExitGrammarError

	// ExitParseError indicates the source was lexed and parsed but the
	// parse did not succeed.
	ExitParseError

	// ExitUsageError indicates a problem with the invocation itself.
	ExitUsageError
)

var (
	flagVersion  = pflag.Bool("version", false, "Print the version and exit")
	tokenGrammar = pflag.StringP("tokens", "t", "tokens.grm", "Grammar-of-tokens file")
	cfgGrammar   = pflag.StringP("grammar", "g", "grammar.cfg", "Context-free grammar file")
	outDir       = pflag.StringP("out", "o", ".", "Directory to write trace artifacts to")
	useCache     = pflag.BoolP("cache", "c", false, "Cache compiled parser tables alongside the grammar file")
	verbose      = pflag.BoolP("verbose", "v", false, "Print a loaded-grammar summary before parsing")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Println(version)
		os.Exit(ExitSuccess)
	}

	if pflag.NArg() != 1 {
		pterm.Error.Println("expected exactly one positional argument: the source file to parse")
		os.Exit(ExitUsageError)
	}
	sourcePath := pflag.Arg(0)

	os.Exit(run(sourcePath))
}

func run(sourcePath string) int {
	tg, err := lex.LoadTokenGrammar(*tokenGrammar)
	if err != nil {
		pterm.Error.Printf("loading token grammar: %s\n", err)
		return ExitGrammarError
	}

	g, err := grammar.Load(*cfgGrammar)
	if err != nil {
		pterm.Error.Printf("loading CFG: %s\n", err)
		return ExitGrammarError
	}
	if err := g.Validate(); err != nil {
		pterm.Error.Printf("invalid grammar: %s\n", err)
		return ExitGrammarError
	}

	if *verbose {
		pterm.Info.Printf(
			"loaded grammar: %d productions, %d terminals, %d non-terminals, start=%s\n",
			len(g.Productions()), len(g.Terminals()), len(g.NonTerminals()), g.StartSymbol(),
		)
	}

	tables, coll, err := compileTables(g)
	if err != nil {
		pterm.Error.Printf("building parse tables: %s\n", err)
		return ExitGrammarError
	}
	if len(tables.Conflicts()) > 0 {
		pterm.Warning.Printf("%d shift/reduce conflict(s) resolved in favor of shift\n", len(tables.Conflicts()))
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		pterm.Error.Printf("reading source file: %s\n", err)
		return ExitUsageError
	}

	tokens := lex.Scan(tg, string(source))
	if err := writeTokenDump(tokens); err != nil {
		pterm.Error.Printf("writing token dump: %s\n", err)
		return ExitGrammarError
	}

	if *verbose {
		for _, t := range tokens {
			if t.Kind == types.ERROR {
				pterm.Warning.Println(repr.String(t, repr.Indent(" ")))
			}
		}
	}

	input := lex.BridgeAll(tokens)
	result := parse.NewDriver(tables).Parse(input)

	tw := trace.NewWriter(*outDir)
	tw.RecordStates(coll)
	tw.RecordTables(tables)
	tw.RecordSteps(result.Trace)
	if !result.Accepted() {
		tw.RecordError(result.Err.Error())
	}
	if err := tw.Flush(); err != nil {
		pterm.Error.Printf("writing trace artifacts: %s\n", err)
		return ExitGrammarError
	}

	if !result.Accepted() {
		pterm.Error.Println(result.Err.Error())
		if *verbose && len(result.Expected) > 0 {
			pterm.Info.Printf("expected %s\n", expectedList(result.Expected))
		}
		return ExitParseError
	}

	pterm.Success.Printf("parsed %d token(s) successfully\n", len(tokens))
	return ExitSuccess
}

// compileTables builds the ACTION/GOTO tables for g, consulting the
// on-disk cache first if useCache is set (§5: tables are immutable once
// built, so a cache hit is always safe to reuse as long as the grammar file
// is unchanged).
func compileTables(g grammar.Grammar) (*parse.Tables, *automaton.Collection, error) {
	var cachePath string
	if *useCache {
		cachePath = *cfgGrammar + ".tables.cache"
		if cached, ok, err := cache.Load(cachePath, *cfgGrammar); err == nil && ok {
			aug := g.Augmented()
			first := grammar.ComputeFirstSets(aug)
			return cached, automaton.BuildCanonicalCollection(aug, first), nil
		}
	}

	tables, coll, err := parse.BuildTables(g)
	if err != nil {
		return nil, nil, err
	}

	if *useCache {
		if err := cache.Store(cachePath, *cfgGrammar, tables); err != nil {
			pterm.Warning.Printf("could not write table cache: %s\n", err)
		}
	}

	return tables, coll, nil
}

// expectedList renders the terminals a failed parse would have accepted as
// an "a X, an Y, or a Z"-style phrase, for the verbose diagnostic that
// accompanies (but never replaces) §6's fixed syntax-error string.
func expectedList(terminals []string) string {
	withArticles := make([]string, len(terminals))
	for i, sym := range terminals {
		withArticles[i] = util.ArticleFor(sym, false) + " " + sym
	}
	return util.MakeTextList(withArticles)
}

func writeTokenDump(tokens []types.Token) error {
	path := filepath.Join(*outDir, "tokens.txt")
	var out []byte
	for _, t := range tokens {
		out = append(out, []byte(t.DumpLine())...)
		out = append(out, '\n')
	}
	return os.WriteFile(path, out, 0o644)
}
