package cache

import (
	"bytes"
	"testing"

	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/grammar/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestSaveLoadRoundTrip(t *testing.T) {
	g, tab := buildCGrammar(t)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, g, tab))

	loaded, err := Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, tab.InitialState, loaded.InitialState)
	assert.Equal(t, len(tab.Action), len(loaded.Action))

	lowerC := symbol.New("c", symbol.Terminal)
	original := tab.Action[tab.InitialState][lowerC]
	reloaded := loaded.Action[loaded.InitialState][lowerC]
	require.NotNil(t, original)
	require.NotNil(t, reloaded)
	assert.Equal(t, original.Kind, reloaded.Kind)
	assert.Equal(t, original.State, reloaded.State)
}
