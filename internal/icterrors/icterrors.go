// Package icterrors holds the structured error types shared by langfront's
// grammar loaders, scanner, and parser. It follows the same shape as the
// dekarrin/tunaq game's tqerrors package: a typed error carrying both a
// terse Error() string and additional context for display, rather than a
// bare fmt.Errorf.
package icterrors

import "fmt"

// GrammarNotFoundError is returned when a grammar-of-tokens or CFG file
// cannot be opened.
type GrammarNotFoundError struct {
	Path string
	wrap error
}

func (e *GrammarNotFoundError) Error() string {
	return fmt.Sprintf("grammar file not found: %s", e.Path)
}

func (e *GrammarNotFoundError) Unwrap() error { return e.wrap }

// NewGrammarNotFound returns a GrammarNotFoundError for the given path,
// wrapping the underlying os error.
func NewGrammarNotFound(path string, wrapped error) error {
	return &GrammarNotFoundError{Path: path, wrap: wrapped}
}

// GrammarSyntaxError is returned when a grammar file line cannot be parsed.
type GrammarSyntaxError struct {
	Path   string
	Line   int
	Reason string
}

func (e *GrammarSyntaxError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}

// NewGrammarSyntax returns a GrammarSyntaxError for the given file and line.
func NewGrammarSyntax(path string, line int, reason string) error {
	return &GrammarSyntaxError{Path: path, Line: line, Reason: reason}
}

// SyntaxError is a single parse-time diagnostic, carrying the 1-indexed
// source line the offending token was found on and one of the two fixed
// diagnostic messages a parse driver ever emits: "Syntax error, unexpected
// token '<sym>'" or "Invalid action in parser".
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
}

// NewUnexpectedToken returns a SyntaxError reporting an unexpected token at
// the given line.
func NewUnexpectedToken(line int, symbol string) error {
	return &SyntaxError{Line: line, Message: fmt.Sprintf("Syntax error, unexpected token '%s'", symbol)}
}

// NewInvalidAction returns a SyntaxError reporting a missing GOTO entry
// after a reduce.
func NewInvalidAction(line int) error {
	return &SyntaxError{Line: line, Message: "Invalid action in parser"}
}

// ReduceReduceConflictError is fatal to table construction (§4.6, §7).
type ReduceReduceConflictError struct {
	State  string
	Symbol string
	First  string
	Second string
}

func (e *ReduceReduceConflictError) Error() string {
	return fmt.Sprintf("reduce/reduce conflict in state %s on %q: %s vs %s", e.State, e.Symbol, e.First, e.Second)
}

// NewReduceReduceConflict returns a ReduceReduceConflictError.
func NewReduceReduceConflict(state, symbol, first, second string) error {
	return &ReduceReduceConflictError{State: state, Symbol: symbol, First: first, Second: second}
}
