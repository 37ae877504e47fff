package lex

import (
	"github.com/dekarrin/langfront/internal/langfront/grammar"
	"github.com/dekarrin/langfront/internal/langfront/types"
)

// Bridge converts a scanned token into the parser's InputSymbol terminal
// form (§4.8). KEYWORD, DELIMITER, OPERATOR, and ERROR tokens become the
// quoted literal terminal for their lexeme; IDENTIFIER becomes the special
// `ID` terminal; CONSTANT becomes the special `CONSTANT` terminal.
//
// ERROR tokens are forwarded rather than short-circuited (§9 Open Question,
// resolved in SPEC_FULL §4): this keeps tokenize and parse fully decoupled,
// at the cost of a less specific diagnostic when a lexical error reaches the
// parser — the reported terminal is the raw lexeme, quoted like any other
// literal, not a dedicated lexical-error message.
func Bridge(tok types.Token) grammar.InputSymbol {
	var terminal string
	switch tok.Kind {
	case types.IDENTIFIER:
		terminal = "ID"
	case types.CONSTANT:
		terminal = "CONSTANT"
	default:
		terminal = "'" + tok.Lexeme + "'"
	}

	return grammar.InputSymbol{Terminal: terminal, Line: tok.Line, Lexeme: tok.Lexeme}
}

// BridgeAll converts an entire token sequence, in order.
func BridgeAll(tokens []types.Token) []grammar.InputSymbol {
	out := make([]grammar.InputSymbol, len(tokens))
	for i, t := range tokens {
		out[i] = Bridge(t)
	}
	return out
}
