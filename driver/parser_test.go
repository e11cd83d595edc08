package driver

import (
	"testing"

	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/grammar/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S -> C C ; C -> c C | d
func buildCGrammar(t *testing.T) (*grammar.Grammar, *grammar.Table) {
	t.Helper()
	table := symbol.NewTable()
	w := table.Writer()
	s, _ := w.RegisterNonTerminal("S")
	c, _ := w.RegisterNonTerminal("C")
	lowerC, _ := w.RegisterTerminal("c")
	lowerD, _ := w.RegisterTerminal("d")

	g, err := grammar.NewGrammar(table, s)
	require.NoError(t, err)
	_, err = g.AddProduction(s, []symbol.Symbol{c, c})
	require.NoError(t, err)
	_, err = g.AddProduction(c, []symbol.Symbol{lowerC, c})
	require.NoError(t, err)
	_, err = g.AddProduction(c, []symbol.Symbol{lowerD})
	require.NoError(t, err)

	fst := grammar.ComputeFirstSet(g.Productions)
	automaton := grammar.BuildLR1Automaton(g, fst)
	tab, err := grammar.BuildLALR1Table(g, automaton, grammar.BuildOptions{})
	require.NoError(t, err)

	return g, tab
}

func tok(name string, kind symbol.Kind) Token {
	return Token{Symbol: symbol.New(name, kind), Lexeme: name}
}

func TestParserAcceptsValidSentence(t *testing.T) {
	_, tab := buildCGrammar(t)
	p := &Parser{tab: tab}

	src := NewSliceTokenSource([]Token{
		tok("c", symbol.Terminal),
		tok("d", symbol.Terminal),
		tok("d", symbol.Terminal),
	})

	reductions, err := p.Parse(src)
	require.NoError(t, err)
	assert.NotEmpty(t, reductions)
	assert.Equal(t, "S", reductions[len(reductions)-1].Production.LHS.Name)
}

func TestParserRejectsInvalidSentence(t *testing.T) {
	_, tab := buildCGrammar(t)
	p := &Parser{tab: tab}

	src := NewSliceTokenSource([]Token{
		tok("d", symbol.Terminal),
		tok("c", symbol.Terminal),
	})

	accepted, err := p.Accepts(src)
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestParserReportsExpectedTerminalsOnSyntaxError(t *testing.T) {
	_, tab := buildCGrammar(t)
	p := &Parser{tab: tab}

	src := NewSliceTokenSource([]Token{
		tok("x", symbol.Terminal),
	})

	_, err := p.Parse(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected")
}

func TestParserAcceptsSingleCharacterEachSide(t *testing.T) {
	_, tab := buildCGrammar(t)
	p := &Parser{tab: tab}

	src := NewSliceTokenSource([]Token{
		tok("d", symbol.Terminal),
		tok("d", symbol.Terminal),
	})

	accepted, err := p.Accepts(src)
	require.NoError(t, err)
	assert.True(t, accepted)
}
