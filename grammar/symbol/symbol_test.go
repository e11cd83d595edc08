package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolEquality(t *testing.T) {
	a1 := New("a", Terminal)
	a2 := New("a", Terminal)
	aNonTerm := New("a", NonTerminal)
	b := New("b", Terminal)

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, aNonTerm)
	assert.NotEqual(t, a1, b)
	assert.True(t, a1.IsTerminal())
	assert.True(t, aNonTerm.IsNonTerminal())
}

func TestReservedSymbols(t *testing.T) {
	assert.True(t, EOF.IsEOF())
	assert.True(t, EOF.IsTerminal())
	assert.True(t, Epsilon.IsEpsilon())
	assert.True(t, Nil.IsNil())
}

func TestTable(t *testing.T) {
	tab := NewTable()
	w := tab.Writer()

	expr, err := w.RegisterNonTerminal("expr")
	require.NoError(t, err)
	term, err := w.RegisterNonTerminal("term")
	require.NoError(t, err)
	id, err := w.RegisterTerminal("id")
	require.NoError(t, err)

	// Re-registering the same name returns the same symbol.
	expr2, err := w.RegisterNonTerminal("expr")
	require.NoError(t, err)
	assert.Equal(t, expr, expr2)

	// A name cannot switch kind.
	_, err = w.RegisterTerminal("expr")
	assert.Error(t, err)

	r := tab.Reader()
	got, ok := r.Lookup("id")
	require.True(t, ok)
	assert.Equal(t, id, got)

	nonTerms := r.NonTerminals()
	assert.Contains(t, nonTerms, expr)
	assert.Contains(t, nonTerms, term)

	terms := r.Terminals()
	assert.Contains(t, terms, id)
	assert.Contains(t, terms, EOF)
}
