package lex

import (
	"regexp"
	"strings"

	"github.com/dekarrin/langfront/internal/langfront/types"
)

// state is the scanner's current recognition mode (§4.2). A tagged enum with
// an exhaustive switch in the main loop, per the Design Notes preference
// over a dispatch-map-by-name.
type state int

const (
	stateStart state = iota
	stateIdentifier
	stateNumber
	stateScientific
	stateComplex
	stateString
)

var (
	reIdentifier = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	reScientific = regexp.MustCompile(`^[+-]?(\d+\.\d+|\d+)[Ee][+-]?\d+$`)
	reComplex    = regexp.MustCompile(`^[+-]?(\d+\.\d+|\d+)[+-](\d+\.\d+|\d+)i$`)
	reInteger    = regexp.MustCompile(`^([1-9]\d*|0)$`)
	reFloat      = regexp.MustCompile(`^[+-]?\d+\.\d+$`)
	reString     = regexp.MustCompile(`^".*"$|^'.*'$`)
)

const (
	operatorChars  = "+-*/=<>!&|"
	delimiterChars = ";,(){}[]"
)

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isSpace(r rune) bool  { return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f' }

// Scanner lexes source text into a classified token stream (§4.2). It
// exposes its read position only through peek()/advance(); the sole
// exception is the clamped back-step used to recover from a broken
// complex-number literal, which rewinds pos directly (§9, SPEC_FULL §4).
type Scanner struct {
	grammar *TokenGrammar

	src         []rune
	pos         int
	line        int
	lexemeStart int
	lexemeLine  int
}

// NewScanner returns a Scanner that classifies tokens using tg's keyword set
// and category rules.
func NewScanner(tg *TokenGrammar) *Scanner {
	return &Scanner{grammar: tg}
}

// Scan tokenizes source in full and returns every token in source order,
// including ERROR tokens for unrecognized input (§4.2's "Output" contract:
// "no tokens are silently dropped").
func (s *Scanner) Scan(source string) []types.Token {
	s.src = []rune(source)
	s.pos = 0
	s.line = 1
	return s.run()
}

// Scan is the package-level convenience form of Scanner.Scan, for callers
// that don't need to reuse a Scanner across multiple inputs.
func Scan(tg *TokenGrammar, source string) []types.Token {
	return NewScanner(tg).Scan(source)
}

// peek returns the next unconsumed rune without advancing, and false if the
// source is exhausted.
func (s *Scanner) peek() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

// advance consumes and returns the next rune, bumping the line counter first
// if it is a newline (§4.2: "Newlines increment the current line counter
// before dispatch").
func (s *Scanner) advance() rune {
	r := s.src[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
	}
	return r
}

// beginLexeme marks the current position as the start of a new token.
func (s *Scanner) beginLexeme() {
	s.lexemeStart = s.pos
	s.lexemeLine = s.line
}

// lexeme returns the runes consumed since the current token began.
func (s *Scanner) lexeme() string {
	return string(s.src[s.lexemeStart:s.pos])
}

func (s *Scanner) run() []types.Token {
	var tokens []types.Token
	st := stateStart

	// per-lexeme tracking, reset whenever a new lexeme begins
	var numDotSeen, numESeen bool
	var complexDotSeen bool
	var complexDigits int
	var complexSignPos int

	for {
		switch st {
		case stateStart:
			ch, ok := s.peek()
			if !ok {
				return tokens
			}

			switch {
			case isLetter(ch) || ch == '_':
				s.beginLexeme()
				s.advance()
				st = stateIdentifier

			case isDigit(ch):
				s.beginLexeme()
				s.advance()
				numDotSeen, numESeen = false, false

				// leading-zero rule (§4.2, §8 property 4): "0" followed
				// immediately by another digit is a single ERROR token
				// covering the whole digit run, bypassing ordinary number
				// continuation entirely.
				if s.lexeme() == "0" {
					if next, ok := s.peek(); ok && isDigit(next) {
						for {
							d, ok := s.peek()
							if !ok || !isDigit(d) {
								break
							}
							s.advance()
						}
						tokens = append(tokens, types.Token{Line: s.lexemeLine, Kind: types.ERROR, Lexeme: s.lexeme()})
						st = stateStart
						continue
					}
				}
				st = stateNumber

			case ch == '"':
				s.beginLexeme()
				s.advance()
				st = stateString

			case strings.ContainsRune(operatorChars, ch):
				line := s.line
				s.advance()
				tokens = append(tokens, types.Token{Line: line, Kind: types.OPERATOR, Lexeme: string(ch)})

			case strings.ContainsRune(delimiterChars, ch):
				line := s.line
				s.advance()
				tokens = append(tokens, types.Token{Line: line, Kind: types.DELIMITER, Lexeme: string(ch)})

			case isSpace(ch):
				s.advance()

			default:
				line := s.line
				s.advance()
				tokens = append(tokens, types.Token{Line: line, Kind: types.ERROR, Lexeme: string(ch)})
			}

		case stateIdentifier:
			ch, ok := s.peek()
			if ok && (isLetter(ch) || isDigit(ch) || ch == '_') {
				s.advance()
				continue
			}
			tokens = append(tokens, s.classify(s.lexeme()))
			st = stateStart

		case stateNumber:
			ch, ok := s.peek()
			switch {
			case ok && isDigit(ch):
				s.advance()
			case ok && ch == '.' && !numDotSeen && !numESeen:
				s.advance()
				numDotSeen = true
			case ok && (ch == 'e' || ch == 'E') && !numESeen:
				s.advance()
				numESeen = true
				st = stateScientific
			case ok && (ch == '+' || ch == '-'):
				complexSignPos = s.pos
				s.advance()
				complexDotSeen = false
				complexDigits = 0
				st = stateComplex
			default:
				tokens = append(tokens, s.classify(s.lexeme()))
				st = stateStart
			}

		case stateScientific:
			ch, ok := s.peek()
			if ok && (isDigit(ch) || ch == '+' || ch == '-') {
				s.advance()
				continue
			}
			tokens = append(tokens, s.classify(s.lexeme()))
			st = stateStart

		case stateComplex:
			ch, ok := s.peek()
			switch {
			case ok && isDigit(ch):
				s.advance()
				complexDigits++

			case ok && ch == '.' && !complexDotSeen:
				s.advance()
				complexDotSeen = true

			case ok && ch == 'i' && complexDigits > 0:
				s.advance()
				tokens = append(tokens, s.classify(s.lexeme()))
				st = stateStart

			default:
				// broken complex shape (§9 Open Question, resolved in
				// SPEC_FULL §4): back up two runes, clamped no earlier than
				// the position of the sign that started this COMPLEX run.
				// That floor (rather than lexemeStart) guarantees the
				// recovered lexeme is never empty and that pos strictly
				// decreases, since the sign position is always at least one
				// rune past lexemeStart (a number always has at least one
				// leading digit) and strictly before the current pos (the
				// sign itself has already been consumed).
				back := s.pos - 2
				if back < complexSignPos {
					back = complexSignPos
				}
				s.pos = back
				tokens = append(tokens, s.classify(s.lexeme()))
				st = stateStart
			}

		case stateString:
			ch, ok := s.peek()
			if !ok {
				// unterminated string at EOF: emit whatever was buffered.
				tokens = append(tokens, types.Token{Line: s.lexemeLine, Kind: types.ERROR, Lexeme: s.lexeme()})
				return tokens
			}
			if ch == '\n' {
				lexeme := s.lexeme()
				line := s.lexemeLine
				s.advance() // bumps the line counter before returning to START
				tokens = append(tokens, types.Token{Line: line, Kind: types.ERROR, Lexeme: lexeme})
				st = stateStart
				continue
			}
			if ch == '"' {
				prev := s.src[s.pos-1]
				s.advance()
				if prev != '\\' {
					tokens = append(tokens, s.classify(s.lexeme()))
					st = stateStart
					continue
				}
				continue
			}
			s.advance()
		}
	}
}

// classify assigns a Kind to a finalized lexeme (§4.2's classification rule
// set). Keywords are checked first, then any loaded category rule naming a
// recognized Kind, then the hardcoded fallback rules in the order §4.2 lists
// them: identifier, scientific, complex, integer, float, string, and finally
// ERROR.
func (s *Scanner) classify(lexeme string) types.Token {
	tok := types.Token{Line: s.lexemeLine, Lexeme: lexeme}

	if s.grammar != nil && s.grammar.Keywords.Has(lexeme) {
		tok.Kind = types.KEYWORD
		return tok
	}

	if s.grammar != nil {
		for _, cat := range s.grammar.Categories {
			if kind, ok := types.ParseKind(cat.Name); ok && cat.Pattern.MatchString(lexeme) {
				tok.Kind = kind
				return tok
			}
		}
	}

	switch {
	case reIdentifier.MatchString(lexeme):
		tok.Kind = types.IDENTIFIER
	case reScientific.MatchString(lexeme):
		tok.Kind = types.CONSTANT
	case reComplex.MatchString(lexeme):
		tok.Kind = types.CONSTANT
	case reInteger.MatchString(lexeme):
		tok.Kind = types.CONSTANT
	case reFloat.MatchString(lexeme):
		tok.Kind = types.CONSTANT
	case reString.MatchString(lexeme):
		tok.Kind = types.CONSTANT
	default:
		tok.Kind = types.ERROR
	}
	return tok
}
