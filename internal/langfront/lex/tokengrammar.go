// Package lex implements the grammar-of-tokens loader and the hand-rolled
// DFA lexical scanner (§4.1, §4.2), plus the token-bridge that turns a
// scanned token into a parser terminal (§4.8). Grounded on the file-format
// handling of dekarrin/tunaq's internal/ictiobus/grammar package and on the
// buffer/classification approach of internal/tunascript/lexer.go, rewritten
// against an explicit peek()/advance() core per the Design Notes rather than
// that file's "back up one character" re-dispatch trick.
package lex

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/dekarrin/langfront/internal/icterrors"
	"github.com/dekarrin/langfront/internal/util"
)

// CategoryRule is one compiled category recognizer from a grammar-of-tokens
// file: a name (checked against types.ParseKind to see if it names one of
// the five productive kinds directly) and the single anchored alternation
// compiled from that category's alternatives (§4.1).
type CategoryRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// TokenGrammar is the compiled lexical grammar: the keyword set contributed
// by the special `Keyword` lhs, plus every other rule's alternatives
// compiled into a category recognizer, in file order (§3: "Lexical
// grammar.").
type TokenGrammar struct {
	Keywords   util.StringSet
	Categories []CategoryRule
}

// keywordLHS is the reserved left-hand side whose alternatives populate the
// keyword set instead of becoming a category recognizer.
const keywordLHS = "Keyword"

// translatePattern adapts the mini-regex dialect of §4.1 to Go's RE2 syntax.
// Most of the dialect (\d, \w, character classes, + * ? quantifiers,
// grouping, \x escapes) is already a subset of RE2 and passes through
// unchanged. The one exception is a bare `.`, which the dialect documents as
// "literal ." rather than RE2's "match any character" — the original
// work1.py build_regex this dialect is lifted from escapes every bare `.` to
// `\.` for the same reason. A `.` that is already escaped (preceded by `\`)
// or that appears inside a `[...]` character class (where it is already
// literal) is left alone.
func translatePattern(alt string) string {
	alt = strings.TrimSpace(alt)

	var sb strings.Builder
	inClass := false
	escaped := false
	for _, r := range alt {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			sb.WriteRune(r)
			escaped = true
		case r == '[':
			inClass = true
			sb.WriteRune(r)
		case r == ']':
			inClass = false
			sb.WriteRune(r)
		case r == '.' && !inClass:
			sb.WriteString(`\.`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// LoadTokenGrammar reads a grammar-of-tokens file per §4.1/§6: one rule per
// line, `<lhs> → <alt1> | <alt2> | …`, where `Keyword` contributes to the
// keyword set and every other lhs becomes a category whose alternatives are
// compiled into one anchored alternation `^(?:alt1|alt2|…)$`.
func LoadTokenGrammar(path string) (*TokenGrammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, icterrors.NewGrammarNotFound(path, err)
	}
	defer f.Close()

	tg := &TokenGrammar{Keywords: util.NewStringSet()}

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "→")
		if idx < 0 {
			return nil, icterrors.NewGrammarSyntax(path, lineNum, "missing '→' in rule")
		}
		lhs := strings.TrimSpace(line[:idx])
		rhsPart := line[idx+len("→"):]
		if lhs == "" {
			return nil, icterrors.NewGrammarSyntax(path, lineNum, "empty left-hand side")
		}

		alts := strings.Split(rhsPart, "|")
		for i := range alts {
			alts[i] = strings.TrimSpace(alts[i])
		}

		if lhs == keywordLHS {
			for _, alt := range alts {
				tg.Keywords.Add(strings.Trim(alt, "'"))
			}
			continue
		}

		translated := make([]string, len(alts))
		for i, alt := range alts {
			translated[i] = translatePattern(alt)
		}
		full := "^(?:" + strings.Join(translated, "|") + ")$"
		pat, err := regexp.Compile(full)
		if err != nil {
			return nil, icterrors.NewGrammarSyntax(path, lineNum, fmt.Sprintf("invalid pattern for category %q: %s", lhs, err))
		}

		tg.Categories = append(tg.Categories, CategoryRule{Name: lhs, Pattern: pat})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return tg, nil
}
