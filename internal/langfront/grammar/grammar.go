// Package grammar loads the parser's context-free grammar file (§4.3),
// represents it as a Grammar of Productions over terminal and non-terminal
// Symbols, and computes FIRST sets over it (§4.4). It is grounded on the
// Grammar API implied by dekarrin/tunaq's internal/ictiobus/grammar package
// (AddTerm/AddRule/Validate, as exercised by that package's grammar_test.go)
// and on the semantics of the Python reference implementation's
// work2.py:Grammar._load_grammar.
package grammar

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/langfront/internal/icterrors"
	"github.com/dekarrin/langfront/internal/util"
)

// End and Epsilon are the two reserved pseudo-terminals used by FIRST-set
// computation and the parse tables: the end-of-input marker and the
// empty-string marker (§3's Symbol definition).
const (
	End     = "$"
	Epsilon = "ε"
)

// Production is the right-hand side of a grammar rule: an ordered sequence
// of symbols, empty to denote an ε-production.
type Production []string

func (p Production) String() string {
	if len(p) == 0 {
		return Epsilon
	}
	return strings.Join([]string(p), " ")
}

// Equal reports structural equality, per §3's "Value type; equality is
// structural" invariant on Production.
func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Rule pairs a left-hand non-terminal with its alternative productions.
// Grammar.AddRule takes one of those productions per call; Rule itself exists mainly
// to describe a CFG file entry before it is split into individual
// productions sharing the same lhs.
type Rule struct {
	NonTerminal string
	Productions []Production
}

// record is a Grammar production together with its left-hand side. Records
// are kept in a slice in file order, for deterministic dumps.
type record struct {
	lhs string
	rhs Production
}

// Grammar is a context-free grammar: an ordered sequence of productions
// together with its terminal and non-terminal vocabularies and its start
// symbol (§3).
type Grammar struct {
	Start string

	productions []record
	terminals   map[string]bool
	nonTerms    map[string]bool
}

// AddTerm registers sym as a terminal of the grammar. The TokenClass
// parameter of the teacher's version is dropped here: this implementation's
// terminals are just their own string identity (quoted literal, ID, or
// CONSTANT), since §4.8's token-bridge already maps scanner token classes
// onto those identities.
func (g *Grammar) AddTerm(sym string) {
	if g.terminals == nil {
		g.terminals = map[string]bool{}
	}
	g.terminals[sym] = true
}

// AddRule adds one production for the given left-hand non-terminal.
func (g *Grammar) AddRule(lhs string, rhs Production) {
	if g.nonTerms == nil {
		g.nonTerms = map[string]bool{}
	}
	g.nonTerms[lhs] = true
	if g.Start == "" {
		g.Start = lhs
	}
	g.productions = append(g.productions, record{lhs: lhs, rhs: rhs})
}

// Productions returns every production in the grammar, in the order they
// were added.
func (g Grammar) Productions() []Production {
	out := make([]Production, len(g.productions))
	for i, r := range g.productions {
		out[i] = r.rhs
	}
	return out
}

// ProductionsFor returns the productions whose left-hand side is lhs, in
// file order.
func (g Grammar) ProductionsFor(lhs string) []Production {
	var out []Production
	for _, r := range g.productions {
		if r.lhs == lhs {
			out = append(out, r.rhs)
		}
	}
	return out
}

// LHSFor returns the left-hand non-terminal for the i'th production in file
// order (index aligned with Productions()).
func (g Grammar) LHSFor(i int) string {
	return g.productions[i].lhs
}

// Terminals returns the grammar's terminal vocabulary, sorted.
func (g Grammar) Terminals() []string {
	return util.OrderedKeys(g.terminals)
}

// NonTerminals returns the grammar's non-terminal vocabulary, sorted.
func (g Grammar) NonTerminals() []string {
	return util.OrderedKeys(g.nonTerms)
}

// IsTerminal reports whether sym is a terminal of the grammar. The end and
// epsilon markers count as terminals for this purpose.
func (g Grammar) IsTerminal(sym string) bool {
	if sym == End || sym == Epsilon {
		return true
	}
	return g.terminals[sym]
}

// IsNonTerminal reports whether sym is a non-terminal of the grammar.
func (g Grammar) IsNonTerminal(sym string) bool {
	return g.nonTerms[sym]
}

// StartSymbol returns the grammar's start symbol: the lhs of the first rule
// loaded (§4.3).
func (g Grammar) StartSymbol() string {
	return g.Start
}

// augmentedStart is the synthetic start symbol added by Augmented. It begins
// with an uppercase letter, so a CFG file can also use it as a non-terminal
// name; Augmented returns a grammar whose start symbol is already S'
// unchanged, and makes no other check for a clash with this name.
const augmentedStart = "S'"

// Augmented returns a copy of g with a synthetic production S' -> S added,
// where S is g's start symbol, and S' as the new start symbol. Per the
// Design Notes, this makes the accept condition in the table builder
// uniform and independent of whether the grammar file's own first rule
// happens to already be an augmented start rule.
func (g Grammar) Augmented() Grammar {
	if g.Start == augmentedStart {
		// already augmented; Augmented is idempotent
		return g
	}

	cp := Grammar{
		Start:       augmentedStart,
		productions: make([]record, 0, len(g.productions)+1),
		terminals:   map[string]bool{},
		nonTerms:    map[string]bool{},
	}
	for k := range g.terminals {
		cp.terminals[k] = true
	}
	for k := range g.nonTerms {
		cp.nonTerms[k] = true
	}
	cp.nonTerms[augmentedStart] = true

	cp.productions = append(cp.productions, record{lhs: augmentedStart, rhs: Production{g.Start}})
	cp.productions = append(cp.productions, g.productions...)

	return cp
}

// Validate checks the invariants of §3: a start symbol that is the lhs of
// at least one production, every rhs symbol accounted for in exactly one of
// the terminal/non-terminal vocabularies, and at least one production and
// one terminal.
func (g Grammar) Validate() error {
	if len(g.productions) == 0 {
		return fmt.Errorf("grammar has no productions")
	}
	if len(g.terminals) == 0 {
		return fmt.Errorf("grammar has no terminals")
	}
	if g.Start == "" {
		return fmt.Errorf("grammar has no start symbol")
	}

	var startHasRule bool
	for _, r := range g.productions {
		if r.lhs == g.Start {
			startHasRule = true
		}
		if !g.nonTerms[r.lhs] {
			return fmt.Errorf("lhs %q of a production is not registered as a non-terminal", r.lhs)
		}
		for _, sym := range r.rhs {
			isTerm := g.terminals[sym]
			isNonTerm := g.nonTerms[sym]
			if isTerm && isNonTerm {
				return fmt.Errorf("symbol %q is registered as both a terminal and a non-terminal", sym)
			}
			if !isTerm && !isNonTerm {
				return fmt.Errorf("symbol %q in production %s -> %s is neither a known terminal nor non-terminal", sym, r.lhs, r.rhs)
			}
		}
	}
	if !startHasRule {
		return fmt.Errorf("start symbol %q is not the lhs of any production", g.Start)
	}

	return nil
}

// InputSymbol is one element of the terminal-symbol sequence fed to the
// parse driver: a parser symbol together with enough of the original
// scanner token to report errors against (§4.7, §4.8).
type InputSymbol struct {
	Terminal string
	Line     int
	Lexeme   string
}

// classifySymbol classifies a raw CFG-file token into terminal or non-terminal
// per §4.3's rule.
func classifySymbol(raw string) (symbol string, isTerminal bool) {
	if raw == Epsilon {
		return "", true // caller special-cases empty productions before reaching here
	}
	if raw == "ID" || raw == "CONSTANT" {
		return raw, true
	}
	if strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'") && len(raw) >= 2 {
		return raw, true
	}
	r := []rune(raw)
	if len(r) > 0 && r[0] >= 'A' && r[0] <= 'Z' {
		return raw, false
	}
	// any other bare token is an implicit terminal, treated as if quoted
	return "'" + raw + "'", true
}

// Load reads a CFG file per §4.3/§6: one rule per line, `<lhs> → <alt1> |
// <alt2> | …`, with the first lhs encountered becoming the grammar's start
// symbol.
func Load(path string) (Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return Grammar{}, icterrors.NewGrammarNotFound(path, err)
	}
	defer f.Close()

	var g Grammar

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// split on the Unicode arrow as a whole code point, not bytes (§9
		// Open Question: Per-line grammar parsing).
		idx := strings.Index(line, "→")
		if idx < 0 {
			return Grammar{}, icterrors.NewGrammarSyntax(path, lineNum, "missing '→' in rule")
		}
		lhs := strings.TrimSpace(line[:idx])
		rhsPart := line[idx+len("→"):]

		if lhs == "" {
			return Grammar{}, icterrors.NewGrammarSyntax(path, lineNum, "empty left-hand side")
		}

		for _, alt := range strings.Split(rhsPart, "|") {
			alt = strings.TrimSpace(alt)

			var rhs Production
			for _, part := range strings.Fields(alt) {
				if part == Epsilon {
					continue
				}
				sym, isTerm := classifySymbol(part)
				if isTerm {
					g.AddTerm(sym)
				}
				rhs = append(rhs, sym)
			}

			g.AddRule(lhs, rhs)
		}
	}
	if err := scanner.Err(); err != nil {
		return Grammar{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return g, nil
}
