package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		terminals []string
		rules     []Rule
		expectErr bool
	}{
		{
			name:      "empty grammar",
			expectErr: true,
		},
		{
			name:      "no rules in grammar",
			terminals: []string{"ID"},
			expectErr: true,
		},
		{
			name: "no terms in grammar",
			rules: []Rule{{
				NonTerminal: "S",
				Productions: []Production{{"S"}},
			}},
			expectErr: true,
		},
		{
			name:      "single rule grammar",
			terminals: []string{"ID"},
			rules: []Rule{{
				NonTerminal: "S",
				Productions: []Production{{"ID"}},
			}},
		},
		{
			name:      "rhs references unknown symbol",
			terminals: []string{"ID"},
			rules: []Rule{{
				NonTerminal: "S",
				Productions: []Production{{"Missing"}},
			}},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := Grammar{}
			for _, term := range tc.terminals {
				g.AddTerm(term)
			}
			for _, r := range tc.rules {
				for _, alt := range r.Productions {
					g.AddRule(r.NonTerminal, alt)
				}
			}

			actual := g.Validate()
			if tc.expectErr {
				assert.Error(actual)
			} else {
				assert.NoError(actual)
			}
		})
	}
}

func Test_Grammar_Augmented(t *testing.T) {
	g := Grammar{}
	g.AddTerm("'+'")
	g.AddTerm("ID")
	g.AddRule("E", Production{"E", "'+'", "ID"})
	g.AddRule("E", Production{"ID"})

	aug := g.Augmented()

	assert.Equal(t, augmentedStart, aug.StartSymbol())
	require.Len(t, aug.ProductionsFor(augmentedStart), 1)
	assert.Equal(t, Production{"E"}, aug.ProductionsFor(augmentedStart)[0])
	assert.Equal(t, "E", g.StartSymbol(), "Augmented must not mutate the receiver")
	assert.Len(t, aug.Productions(), len(g.Productions())+1)
}

func Test_Grammar_Load(t *testing.T) {
	g, err := Load("testdata/arith.cfg")
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, "E", g.StartSymbol())
	assert.Contains(t, g.Terminals(), "'+'")
	assert.Contains(t, g.Terminals(), "ID")
	assert.Contains(t, g.NonTerminals(), "E")
	assert.Contains(t, g.NonTerminals(), "T")
}

func Test_Grammar_Load_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.cfg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.cfg")
}

func Test_Grammar_BinaryRoundTrip(t *testing.T) {
	g, err := Load("testdata/arith.cfg")
	require.NoError(t, err)

	data, err := g.MarshalBinary()
	require.NoError(t, err)

	var g2 Grammar
	require.NoError(t, g2.UnmarshalBinary(data))

	assert.Equal(t, g.StartSymbol(), g2.StartSymbol())
	assert.Equal(t, g.Terminals(), g2.Terminals())
	assert.Equal(t, g.NonTerminals(), g2.NonTerminals())
	assert.Equal(t, g.Productions(), g2.Productions())
}
