package grammar

import (
	"testing"

	"github.com/nihei9/lrforge/grammar/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionEquality(t *testing.T) {
	expr := symbol.New("expr", symbol.NonTerminal)
	plus := symbol.New("+", symbol.Terminal)
	term := symbol.New("term", symbol.NonTerminal)

	p1, err := New(0, expr, []symbol.Symbol{expr, plus, term})
	require.NoError(t, err)
	p2, err := New(7, expr, []symbol.Symbol{expr, plus, term})
	require.NoError(t, err)
	p3, err := New(0, expr, []symbol.Symbol{term})
	require.NoError(t, err)

	assert.True(t, p1.Equals(p2))
	assert.False(t, p1.Equals(p3))
}

func TestProductionRejectsNilSymbols(t *testing.T) {
	expr := symbol.New("expr", symbol.NonTerminal)
	_, err := New(0, symbol.Nil, []symbol.Symbol{expr})
	assert.Error(t, err)

	_, err = New(0, expr, []symbol.Symbol{symbol.Nil})
	assert.Error(t, err)
}

func TestProductionSetDeduplicatesAndNumbers(t *testing.T) {
	ps := NewProductionSet()
	expr := symbol.New("expr", symbol.NonTerminal)
	term := symbol.New("term", symbol.NonTerminal)

	p1, _ := New(-1, expr, []symbol.Symbol{term})
	added := ps.Append(p1)
	assert.True(t, added)
	assert.Equal(t, 0, p1.Num)

	dup, _ := New(-1, expr, []symbol.Symbol{term})
	added = ps.Append(dup)
	assert.False(t, added)

	p2, _ := New(-1, term, nil)
	added = ps.Append(p2)
	assert.True(t, added)
	assert.Equal(t, 1, p2.Num)
	assert.True(t, p2.IsEmpty())

	assert.Equal(t, 2, ps.Len())
	assert.Equal(t, []*Production{p1, p2}, ps.All())
	assert.Equal(t, []*Production{p1}, ps.ByLHS(expr))
}
