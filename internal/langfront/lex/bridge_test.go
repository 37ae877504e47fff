package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/langfront/internal/langfront/types"
)

func Test_Bridge(t *testing.T) {
	testCases := []struct {
		name string
		tok  types.Token
		want string
	}{
		{"keyword", types.Token{Kind: types.KEYWORD, Lexeme: "if"}, "'if'"},
		{"identifier", types.Token{Kind: types.IDENTIFIER, Lexeme: "x"}, "ID"},
		{"constant", types.Token{Kind: types.CONSTANT, Lexeme: "42"}, "CONSTANT"},
		{"delimiter", types.Token{Kind: types.DELIMITER, Lexeme: ";"}, "';'"},
		{"operator", types.Token{Kind: types.OPERATOR, Lexeme: "+"}, "'+'"},
		{"error", types.Token{Kind: types.ERROR, Lexeme: "@"}, "'@'"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Bridge(tc.tok)
			assert.Equal(t, tc.want, got.Terminal)
			assert.Equal(t, tc.tok.Lexeme, got.Lexeme)
		})
	}
}

func Test_BridgeAll_PreservesOrder(t *testing.T) {
	tokens := []types.Token{
		{Line: 1, Kind: types.KEYWORD, Lexeme: "int"},
		{Line: 1, Kind: types.IDENTIFIER, Lexeme: "x"},
		{Line: 1, Kind: types.DELIMITER, Lexeme: ";"},
	}
	out := BridgeAll(tokens)

	want := []string{"'int'", "ID", "';'"}
	for i, w := range want {
		assert.Equal(t, w, out[i].Terminal)
	}
}
